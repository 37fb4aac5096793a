// Package breakout implements a brick-breaker simulation: ball physics,
// brick and paddle collisions, power-ups, particles and the game state
// machine, plus the adapter that plugs it into the arcade platform.
package breakout

import "github.com/vovakirdan/megagame/internal/config"

// BuildLevel lays out the brick grid for a level.
//
// Every level uses the same grid: rows of bricks centered horizontally in
// the field, with the top row the toughest (health = rows - row) and
// points proportional to health. Ids follow creation order, row by row.
// Levels differ in launch speed, which the difficulty manager scales.
func BuildLevel(level int, layout config.LayoutConfig, fieldWidth float64) []Brick {
	stepX := layout.BrickWidth + layout.Gap
	stepY := layout.BrickHeight + layout.Gap
	offsetX := (fieldWidth - float64(layout.Cols)*stepX) / 2

	colors := layout.Colors
	if len(colors) == 0 {
		colors = config.DefaultBrickColors
	}

	bricks := make([]Brick, 0, layout.Rows*layout.Cols)
	id := 0
	for row := range layout.Rows {
		health := layout.Rows - row
		for col := range layout.Cols {
			bricks = append(bricks, Brick{
				ID:        id,
				X:         offsetX + float64(col)*stepX,
				Y:         layout.OffsetY + float64(row)*stepY,
				Width:     layout.BrickWidth,
				Height:    layout.BrickHeight,
				Health:    health,
				MaxHealth: health,
				Points:    health * layout.PointsPerHealth,
				Color:     colors[row%len(colors)],
			})
			id++
		}
	}
	return bricks
}

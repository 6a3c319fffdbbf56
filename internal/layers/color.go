package layers

import "github.com/lychee-technology/xrosedb/internal/models"

// RGBA is a color with float components in [0, 1].
type RGBA struct {
	Red   float32
	Green float32
	Blue  float32
	Alpha float32
}

var (
	DefaultStroke = RGBA{Red: 0, Green: 0, Blue: 0, Alpha: 1}
	DefaultFill   = RGBA{Red: 1, Green: 1, Blue: 1, Alpha: 1}
)

func colorFromModel(c models.Color) RGBA {
	return RGBA{Red: c.Red, Green: c.Green, Blue: c.Blue, Alpha: c.Alpha}
}

func (c RGBA) model(id int) models.Color {
	return models.Color{ColorID: id, Red: c.Red, Blue: c.Blue, Green: c.Green, Alpha: c.Alpha}
}

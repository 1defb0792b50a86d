package primitive

import "image/color"

var (
	ColorStroke    = color.RGBA{0, 0, 0, 255}
	ColorArrive    = color.RGBA{51, 51, 255, 255}
	ColorLeave     = color.RGBA{255, 0, 0, 255}
	ColorTee       = color.RGBA{255, 0, 255, 255}
	ColorSpindle   = color.RGBA{111, 0, 0, 255}
	ColorHighlight = color.RGBA{0, 200, 0, 255}
	ColorHandle    = color.RGBA{0, 120, 215, 255}
)

// Color is the color identity of a kind.
func (k Kind) Color() color.RGBA {
	switch k {
	case KindArrive:
		return ColorArrive
	case KindLeave:
		return ColorLeave
	case KindTee:
		return ColorTee
	case KindSpindle:
		return ColorSpindle
	}
	return ColorStroke
}

// Package render draws board states as SVG documents and PNG images.
package render

import (
	"fmt"
	"image/color"
)

// Theme holds the colors used for rendering.
type Theme struct {
	LightSquare   color.RGBA
	DarkSquare    color.RGBA
	LastTurnColor color.RGBA
	BlackPiece    color.RGBA
	RedPiece      color.RGBA
	PieceOutline  color.RGBA
	KingRing      color.RGBA
	NumberColor   color.RGBA
}

// DefaultTheme returns the default board theme.
func DefaultTheme() *Theme {
	return &Theme{
		LightSquare:   color.RGBA{240, 217, 181, 255}, // Tan
		DarkSquare:    color.RGBA{181, 136, 99, 255},  // Brown
		LastTurnColor: color.RGBA{180, 190, 100, 90},  // Soft yellow-green
		BlackPiece:    color.RGBA{40, 40, 40, 255},
		RedPiece:      color.RGBA{190, 40, 40, 255},
		PieceOutline:  color.RGBA{20, 20, 20, 255},
		KingRing:      color.RGBA{230, 190, 60, 255}, // Gold
		NumberColor:   color.RGBA{240, 217, 181, 255},
	}
}

// hex formats the RGB part of c as #rrggbb.
func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// opacity returns the alpha of c as a fraction.
func opacity(c color.RGBA) string {
	return fmt.Sprintf("%.3g", float64(c.A)/255)
}

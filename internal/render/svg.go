package render

import (
	"fmt"
	"strings"

	"github.com/hailam/checkers/internal/board"
)

// DefaultSize is the edge length in pixels used when Options.Size is zero.
const DefaultSize = 512

// Options controls the rendered output.
type Options struct {
	// Size is the edge length of the board in pixels.
	Size int
	// Flip puts red's side at the top.
	Flip bool
	// Numbers labels the playable squares with their numbers.
	Numbers bool
	// Highlight marks every square visited by the turn.
	Highlight board.Turn
	// Theme overrides DefaultTheme.
	Theme *Theme
}

func (o Options) withDefaults() Options {
	if o.Size <= 0 {
		o.Size = DefaultSize
	}
	if o.Theme == nil {
		o.Theme = DefaultTheme()
	}
	return o
}

// cellOrigin returns the top-left corner of a square in board units.
func cellOrigin(sq board.Square, flip bool) (x, y int) {
	row, col := sq.Row(), sq.Col()
	if flip {
		row, col = 7-row, 7-col
	}
	return col, row
}

// SVG returns a standalone SVG document for s.
func SVG(s board.State, opts Options) string {
	return svgDocument(s, opts.withDefaults(), opts.Numbers)
}

func svgDocument(s board.State, opts Options, numbers bool) string {
	t := opts.Theme
	size := float64(opts.Size)
	cell := size / 8

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		opts.Size, opts.Size, opts.Size, opts.Size)
	fmt.Fprintf(&sb, `<rect x="0" y="0" width="%g" height="%g" fill="%s"/>`+"\n", size, size, hex(t.LightSquare))

	for sq := board.FirstSquare; sq <= board.LastSquare; sq++ {
		col, row := cellOrigin(sq, opts.Flip)
		fmt.Fprintf(&sb, `<rect class="square" x="%g" y="%g" width="%g" height="%g" fill="%s"/>`+"\n",
			float64(col)*cell, float64(row)*cell, cell, cell, hex(t.DarkSquare))
	}

	for _, sq := range opts.Highlight.Path() {
		col, row := cellOrigin(sq, opts.Flip)
		fmt.Fprintf(&sb, `<rect class="highlight" x="%g" y="%g" width="%g" height="%g" fill="%s" fill-opacity="%s"/>`+"\n",
			float64(col)*cell, float64(row)*cell, cell, cell, hex(t.LastTurnColor), opacity(t.LastTurnColor))
	}

	occupied := s.Occupied()
	for occupied != 0 {
		sq := occupied.PopLSB()
		p := s.PieceAt(sq)
		col, row := cellOrigin(sq, opts.Flip)
		cx := (float64(col) + 0.5) * cell
		cy := (float64(row) + 0.5) * cell

		fill := t.BlackPiece
		if p.Color() == board.Red {
			fill = t.RedPiece
		}
		fmt.Fprintf(&sb, `<circle class="piece" cx="%g" cy="%g" r="%g" fill="%s" stroke="%s" stroke-width="%g"/>`+"\n",
			cx, cy, cell*0.4, hex(fill), hex(t.PieceOutline), cell*0.04)
		if p.Kind() == board.King {
			fmt.Fprintf(&sb, `<circle class="king" cx="%g" cy="%g" r="%g" fill="none" stroke="%s" stroke-width="%g"/>`+"\n",
				cx, cy, cell*0.22, hex(t.KingRing), cell*0.07)
		}
	}

	if numbers {
		for sq := board.FirstSquare; sq <= board.LastSquare; sq++ {
			col, row := cellOrigin(sq, opts.Flip)
			fmt.Fprintf(&sb, `<text x="%g" y="%g" font-family="sans-serif" font-size="%g" fill="%s">%d</text>`+"\n",
				float64(col)*cell+cell*0.06, float64(row)*cell+cell*0.22, cell*0.18, hex(t.NumberColor), sq)
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

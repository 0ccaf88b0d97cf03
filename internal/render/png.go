package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/hailam/checkers/internal/board"
)

// renderScale is the supersampling factor used before downscaling.
const renderScale = 3

var (
	fontOnce sync.Once
	fontData *opentype.Font
	fontErr  error
)

func loadFont() (*opentype.Font, error) {
	fontOnce.Do(func() {
		fontData, fontErr = opentype.Parse(goregular.TTF)
	})
	return fontData, fontErr
}

// Image rasterises s into an RGBA image of opts.Size pixels square.
func Image(s board.State, opts Options) (*image.RGBA, error) {
	opts = opts.withDefaults()
	renderSize := opts.Size * renderScale

	// Render at higher resolution for quality, then scale down.
	large := opts
	large.Size = renderSize
	icon, err := oksvg.ReadIconStream(strings.NewReader(svgDocument(s, large, false)))
	if err != nil {
		return nil, fmt.Errorf("render: parse svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(renderSize), float64(renderSize))

	rgba := image.NewRGBA(image.Rect(0, 0, renderSize, renderSize))
	scanner := rasterx.NewScannerGV(renderSize, renderSize, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(renderSize, renderSize, scanner)
	icon.Draw(raster, 1.0)

	dst := image.NewRGBA(image.Rect(0, 0, opts.Size, opts.Size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), rgba, rgba.Bounds(), draw.Src, nil)

	if opts.Numbers {
		if err := drawNumbers(dst, opts); err != nil {
			return nil, err
		}
	}
	return dst, nil
}

// drawNumbers labels the playable squares in the top-left corner.
func drawNumbers(dst *image.RGBA, opts Options) error {
	f, err := loadFont()
	if err != nil {
		return fmt.Errorf("render: load font: %w", err)
	}
	cell := float64(opts.Size) / 8
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    cell * 0.18,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("render: font face: %w", err)
	}
	defer face.Close()

	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(opts.Theme.NumberColor),
		Face: face,
	}
	for sq := board.FirstSquare; sq <= board.LastSquare; sq++ {
		col, row := cellOrigin(sq, opts.Flip)
		x := float64(col)*cell + cell*0.06
		y := float64(row)*cell + cell*0.22
		d.Dot = fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
		d.DrawString(strconv.Itoa(int(sq)))
	}
	return nil
}

// PNG writes s as a PNG image to w.
func PNG(w io.Writer, s board.State, opts Options) error {
	img, err := Image(s, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// Package render draws positions as raster images.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/hailam/jmchess/internal/board"
)

//go:embed assets/pieces/*.svg
var pieceAssets embed.FS

// MinSquareSize is the smallest square edge, in pixels, that is rendered.
const MinSquareSize = 16

// Theme holds the colors used for a board image.
type Theme struct {
	LightSquare color.RGBA
	DarkSquare  color.RGBA
	Highlight   color.RGBA
	Background  color.RGBA
	Label       color.RGBA
	WhitePiece  color.RGBA
	BlackPiece  color.RGBA
	Outline     color.RGBA
}

// DefaultTheme returns the classic tan and brown theme.
func DefaultTheme() Theme {
	return Theme{
		LightSquare: color.RGBA{240, 217, 181, 255}, // Tan
		DarkSquare:  color.RGBA{181, 136, 99, 255},  // Brown
		Highlight:   color.RGBA{130, 151, 105, 200}, // Green
		Background:  color.RGBA{40, 44, 52, 255},    // Dark gray
		Label:       color.RGBA{220, 220, 220, 255}, // Light gray
		WhitePiece:  color.RGBA{250, 250, 250, 255},
		BlackPiece:  color.RGBA{30, 30, 30, 255},
		Outline:     color.RGBA{0, 0, 0, 255},
	}
}

// Renderer draws positions with pre-rasterised piece glyphs. It is safe
// for concurrent use once created.
type Renderer struct {
	squareSize int
	margin     int
	theme      Theme
	glyphs     map[board.Piece]*image.RGBA
}

// New creates a renderer for the given square size in pixels.
func New(squareSize int, theme Theme) (*Renderer, error) {
	if squareSize < MinSquareSize {
		return nil, fmt.Errorf("square size %d below minimum %d", squareSize, MinSquareSize)
	}

	r := &Renderer{
		squareSize: squareSize,
		margin:     squareSize / 2,
		theme:      theme,
		glyphs:     make(map[board.Piece]*image.RGBA),
	}
	if err := r.loadGlyphs(); err != nil {
		return nil, err
	}
	return r, nil
}

// loadGlyphs rasterises each piece kind once per color.
func (r *Renderer) loadGlyphs() error {
	for pt := board.Pawn; pt <= board.King; pt++ {
		path := fmt.Sprintf("assets/pieces/%c.svg", pt.Char()-'a'+'A')
		data, err := pieceAssets.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read piece asset %s: %w", path, err)
		}

		for _, c := range []board.Color{board.White, board.Black} {
			fill, stroke := r.theme.WhitePiece, r.theme.Outline
			if c == board.Black {
				fill, stroke = r.theme.BlackPiece, r.theme.WhitePiece
			}
			svg := strings.NewReplacer("FILL", hex(fill), "STROKE", hex(stroke)).Replace(string(data))

			icon, err := oksvg.ReadIconStream(bytes.NewReader([]byte(svg)))
			if err != nil {
				return fmt.Errorf("parse SVG %s: %w", path, err)
			}

			size := r.squareSize
			icon.SetTarget(0, 0, float64(size), float64(size))

			rgba := image.NewRGBA(image.Rect(0, 0, size, size))
			scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
			raster := rasterx.NewDasher(size, size, scanner)
			icon.Draw(raster, 1.0)

			r.glyphs[board.NewPiece(pt, c)] = rgba
		}
	}
	return nil
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Size returns the edge of the full image in pixels.
func (r *Renderer) Size() int {
	return board.Width*r.squareSize + 2*r.margin
}

// SquareRect returns the pixel rectangle of a square.
func (r *Renderer) SquareRect(sq board.Square) image.Rectangle {
	x := r.margin + sq.File()*r.squareSize
	y := r.margin + sq.Row()*r.squareSize
	return image.Rect(x, y, x+r.squareSize, y+r.squareSize)
}

// SquareColor returns the base color of a square. a8 is light.
func (r *Renderer) SquareColor(sq board.Square) color.RGBA {
	if (sq.File()+sq.Row())%2 == 0 {
		return r.theme.LightSquare
	}
	return r.theme.DarkSquare
}

// Image draws the position with white at the bottom. Highlighted squares
// are tinted before pieces are drawn.
func (r *Renderer) Image(pos *board.Position, highlight ...board.Square) *image.RGBA {
	size := r.Size()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(r.theme.Background), image.Point{}, draw.Src)

	for sq := board.Square(0); sq < board.NoSquare; sq++ {
		draw.Draw(img, r.SquareRect(sq), image.NewUniform(r.SquareColor(sq)), image.Point{}, draw.Src)
	}

	for _, sq := range highlight {
		if !sq.IsValid() {
			continue
		}
		draw.Draw(img, r.SquareRect(sq), image.NewUniform(r.theme.Highlight), image.Point{}, draw.Over)
	}

	for sq := board.Square(0); sq < board.NoSquare; sq++ {
		glyph := r.glyphs[pos.PieceAt(sq)]
		if glyph == nil {
			continue
		}
		draw.Draw(img, r.SquareRect(sq), glyph, image.Point{}, draw.Over)
	}

	r.drawLabels(img)
	return img
}

// drawLabels writes rank numbers on the left and file letters below.
func (r *Renderer) drawLabels(img *image.RGBA) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(r.theme.Label),
		Face: face,
	}
	ascent := face.Metrics().Ascent.Ceil()

	for row := 0; row < board.Height; row++ {
		label := fmt.Sprint(board.Height - row)
		w := font.MeasureString(face, label).Ceil()
		x := (r.margin - w) / 2
		y := r.margin + row*r.squareSize + (r.squareSize+ascent)/2
		d.Dot = fixed.P(x, y)
		d.DrawString(label)
	}

	for file := 0; file < board.Width; file++ {
		label := string(rune('a' + file))
		w := font.MeasureString(face, label).Ceil()
		x := r.margin + file*r.squareSize + (r.squareSize-w)/2
		y := r.margin + board.Height*r.squareSize + (r.margin+ascent)/2
		d.Dot = fixed.P(x, y)
		d.DrawString(label)
	}
}

// WritePNG encodes the position image as PNG.
func (r *Renderer) WritePNG(w io.Writer, pos *board.Position, highlight ...board.Square) error {
	return png.Encode(w, r.Image(pos, highlight...))
}

package export

import (
	"bytes"
	"fmt"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Rasterizer lays out plain text and renders it into a PNG image.
type Rasterizer interface {
	// Rasterize returns the encoded PNG along with its pixel dimensions.
	Rasterize(content string) (png []byte, width, height int, err error)
}

// TextRasterizer renders flowed plain text with the embedded Go Regular
// face at a fixed pixel width proportional to an A4 page.
type TextRasterizer struct {
	face        font.Face
	widthPx     int
	fontSize    float64
	lineSpacing float64
}

// Ensure TextRasterizer implements the Rasterizer interface.
var _ Rasterizer = (*TextRasterizer)(nil)

// NewTextRasterizer creates a rasterizer rendering at the given pixel
// width and font size. The font is embedded in the binary, so no font
// file needs to be present on the host.
func NewTextRasterizer(widthPx int, fontSize float64) (*TextRasterizer, error) {
	if widthPx <= 0 {
		return nil, fmt.Errorf("page width must be positive, got %d", widthPx)
	}
	if fontSize <= 0 {
		return nil, fmt.Errorf("font size must be positive, got %f", fontSize)
	}

	parsed, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded font: %w", err)
	}

	face := truetype.NewFace(parsed, &truetype.Options{
		Size:    fontSize,
		Hinting: font.HintingFull,
	})

	return &TextRasterizer{
		face:        face,
		widthPx:     widthPx,
		fontSize:    fontSize,
		lineSpacing: 1.4,
	}, nil
}

// Rasterize word-wraps the content within the fixed width, sizes the
// canvas to the wrapped line count, and renders black text on a white
// background.
func (r *TextRasterizer) Rasterize(content string) ([]byte, int, int, error) {
	if content == "" {
		return nil, 0, 0, fmt.Errorf("cannot rasterize empty content")
	}

	margin := r.fontSize
	textWidth := float64(r.widthPx) - 2*margin
	if textWidth <= 0 {
		return nil, 0, 0, fmt.Errorf("page width %d too small for margins", r.widthPx)
	}

	// Measure with a throwaway context; gg needs a context to wrap text.
	measure := gg.NewContext(1, 1)
	measure.SetFontFace(r.face)
	lines := measure.WordWrap(content, textWidth)
	if len(lines) == 0 {
		return nil, 0, 0, fmt.Errorf("cannot rasterize empty content")
	}

	lineHeight := r.fontSize * r.lineSpacing
	height := int(2*margin + lineHeight*float64(len(lines)))

	dc := gg.NewContext(r.widthPx, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0, 0, 0)
	dc.SetFontFace(r.face)
	dc.DrawStringWrapped(content, margin, margin, 0, 0, textWidth, r.lineSpacing, gg.AlignLeft)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, 0, 0, fmt.Errorf("failed to encode PNG: %w", err)
	}

	return buf.Bytes(), r.widthPx, height, nil
}

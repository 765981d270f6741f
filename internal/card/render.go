package card

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strconv"
	"strings"

	"profilecard/internal/models"
	"profilecard/internal/validation"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	_ "golang.org/x/image/webp"
)

// Card raster geometry.
const (
	Width  = 800
	Height = 480

	headerHeight = 96
	margin       = 16
	photoSize    = 160
	logoSize     = 64
	qrSize       = 160
	lineHeight   = 18
	textLeft     = margin*2 + photoSize
	textRight    = Width - margin*2 - qrSize
	charWidth    = 7
)

var (
	white           = color.RGBA{0xff, 0xff, 0xff, 0xff}
	ink             = color.RGBA{0x1f, 0x29, 0x37, 0xff}
	muted           = color.RGBA{0x6b, 0x72, 0x80, 0xff}
	PlaceholderGrey = color.RGBA{0xd1, 0xd5, 0xdb, 0xff}
)

// Render rasterizes v. Images that cannot be decoded are drawn as grey blocks
// and a QR payload that cannot be encoded leaves its slot empty.
func Render(v View) image.Image {
	canvas := image.NewRGBA(image.Rect(0, 0, Width, Height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(white), image.Point{}, draw.Src)

	brand, err := ParseHexColor(v.BrandColor)
	if err != nil {
		brand, _ = ParseHexColor(models.DefaultBrandColor)
	}
	draw.Draw(canvas, image.Rect(0, 0, Width, headerHeight), image.NewUniform(brand), image.Point{}, draw.Src)

	titleLeft := margin
	if v.Logo != "" {
		drawImage(canvas, image.Rect(margin, margin, margin+logoSize, margin+logoSize), v.Logo)
		titleLeft = margin*2 + logoSize
	}
	drawText(canvas, v.Title, titleLeft, 44, white, Width-titleLeft-margin)
	drawText(canvas, v.Subtitle, titleLeft, 68, white, Width-titleLeft-margin)

	if v.Photo != "" {
		drawImage(canvas, image.Rect(margin, headerHeight+margin, margin+photoSize, headerHeight+margin+photoSize), v.Photo)
	}

	y := headerHeight + margin + 12
	lines := make([]Field, 0, len(v.Fields)+len(v.Lists))
	lines = append(lines, v.Fields...)
	for _, l := range v.Lists {
		lines = append(lines, Field{Label: l.Title, Value: strings.Join(l.Items, ", ")})
	}
	for _, f := range lines {
		if y > Height-margin {
			break
		}
		label := f.Label + ": "
		drawText(canvas, label, textLeft, y, muted, textRight-textLeft)
		drawText(canvas, f.Value, textLeft+len(label)*charWidth, y, ink, textRight-textLeft-len(label)*charWidth)
		y += lineHeight
	}

	if v.QR != "" {
		if code, err := QRImage(v.QR, qrSize); err == nil {
			at := image.Pt(Width-margin-qrSize, Height-margin-qrSize)
			draw.Draw(canvas, image.Rectangle{Min: at, Max: at.Add(image.Pt(qrSize, qrSize))}, code, code.Bounds().Min, draw.Src)
		}
	}
	return canvas
}

// RenderPNG rasterizes v and encodes it as PNG.
func RenderPNG(v View) ([]byte, error) {
	return EncodePNG(Render(v))
}

func drawImage(dst draw.Image, r image.Rectangle, dataURI string) {
	src, err := DecodeDataImage(dataURI)
	if err != nil {
		draw.Draw(dst, r, image.NewUniform(PlaceholderGrey), image.Point{}, draw.Src)
		return
	}
	draw.ApproxBiLinear.Scale(dst, r, src, src.Bounds(), draw.Over, nil)
}

func drawText(dst draw.Image, s string, x, y int, c color.Color, maxWidth int) {
	if maxWidth <= 0 {
		return
	}
	if limit, runes := maxWidth/charWidth, []rune(s); len(runes) > limit {
		if limit > 3 {
			s = string(runes[:limit-3]) + "..."
		} else {
			s = string(runes[:limit])
		}
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// DecodeDataImage decodes a base64 image data URI. SVG is not rasterized and
// canvases over validation.MaxImagePixels are refused before any pixel is decoded.
func DecodeDataImage(dataURI string) (image.Image, error) {
	header, payload, ok := strings.Cut(dataURI, ",")
	if !ok || !strings.HasPrefix(header, "data:image/") || !strings.HasSuffix(header, ";base64") {
		return nil, errors.New("not a base64 image data URI")
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	if err := validation.CheckDimensions(raw); err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// ParseHexColor parses #RGB, #RGBA, #RRGGBB and #RRGGBBAA.
func ParseHexColor(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(h) {
	case 3, 4:
		var expanded strings.Builder
		for _, r := range h {
			expanded.WriteRune(r)
			expanded.WriteRune(r)
		}
		h = expanded.String()
	case 6, 8:
	default:
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	if len(h) == 6 {
		h += "ff"
	}
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, nil
}

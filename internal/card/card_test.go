package card_test

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"strings"
	"testing"

	"profilecard/internal/card"
	"profilecard/internal/fixtures"
	"profilecard/internal/models"
	"profilecard/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseURL = "https://cards.example.com/"

func fieldValue(v card.View, label string) string {
	for _, f := range v.Fields {
		if f.Label == label {
			return f.Value
		}
	}
	return ""
}

func TestBuild_StudentDefaultsToSummary(t *testing.T) {
	s := fixtures.Student(1)
	s.ID = models.NewID()
	s.Instagram = "@asha"

	v := card.Build(s, baseURL, card.ModeDefault)

	assert.Equal(t, card.ModeSummary, v.QRMode)
	var summary map[string]string
	require.NoError(t, json.Unmarshal([]byte(v.QR), &summary))
	assert.Equal(t, map[string]string{
		"Name": "Asha Rao", "ID": "SH-0001", "School": "Springfield High",
		"Contact": "9876543210", "Instagram": "@asha",
	}, summary)
	assert.Equal(t, card.Placeholder, fieldValue(v, "Parent Email"))
	assert.Equal(t, card.Placeholder, fieldValue(v, "Twitter"))
}

func TestBuild_OtherKindsDefaultToLink(t *testing.T) {
	id := models.NewID()
	profiles := map[string]models.Profile{
		"https://cards.example.com/biodata/" + id:      fixtures.BioData(1),
		"https://cards.example.com/professional/" + id: fixtures.Professional(1, 2),
		"https://cards.example.com/buyercard/" + id:    fixtures.BuyerCard(1),
		"https://cards.example.com/seller/" + id:       fixtures.Seller(),
	}
	for want, p := range profiles {
		p.GetBase().ID = id
		v := card.Build(p, baseURL, card.ModeDefault)
		assert.Equal(t, card.ModeLink, v.QRMode)
		assert.Equal(t, want, v.QR)
	}
}

func TestBuild_AlternateModes(t *testing.T) {
	s := fixtures.Student(1)
	s.ID = models.NewID()
	v := card.Build(s, baseURL, card.ModeLink)
	assert.Equal(t, "https://cards.example.com/student/"+s.ID, v.QR)

	seller := fixtures.Seller()
	v = card.Build(seller, baseURL, card.ModeSummary)
	assert.JSONEq(t, `{"Owner":"Farah Ali","Business":"Ali Textiles","Mobile":"9700000000"}`, v.QR)
}

func TestBuild_PlaceholdersAndNoMutation(t *testing.T) {
	b := fixtures.BuyerCard(1)
	b.ProductCodes = []string{}
	b.BrandColor = ""
	before := *b

	v := card.Build(b, baseURL, card.ModeDefault)

	assert.Equal(t, before, *b)
	assert.Equal(t, models.DefaultBrandColor, v.BrandColor)
	require.Len(t, v.Lists, 1)
	assert.Equal(t, []string{card.Placeholder}, v.Lists[0].Items)

	bio := fixtures.BioData(1)
	v = card.Build(bio, baseURL, card.ModeDefault)
	assert.Equal(t, card.Placeholder, fieldValue(v, "Height"))
	assert.Equal(t, []string{"B.Tech, JNTU (2016) - CSE"}, v.Lists[0].Items)
}

func TestParseMode(t *testing.T) {
	m, err := card.ParseMode("Summary")
	assert.NoError(t, err)
	assert.Equal(t, card.ModeSummary, m)

	m, err = card.ParseMode("")
	assert.NoError(t, err)
	assert.Equal(t, card.ModeDefault, m)

	_, err = card.ParseMode("barcode")
	assert.Error(t, err)
}

func TestQRCode_DecodesAsPNG(t *testing.T) {
	data, err := card.QRCode("https://cards.example.com/seller/abc", 200)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 200, 200), img.Bounds())
}

func TestRender(t *testing.T) {
	p := fixtures.Professional(1, 3)
	p.ID = models.NewID()
	v := card.Build(p, baseURL, card.ModeDefault)

	img := card.Render(v)
	assert.Equal(t, image.Rect(0, 0, card.Width, card.Height), img.Bounds())

	brand, err := card.ParseHexColor(models.DefaultBrandColor)
	require.NoError(t, err)
	r, g, b, _ := img.At(card.Width-4, 4).RGBA()
	br, bg, bb, _ := brand.RGBA()
	assert.Equal(t, []uint32{br, bg, bb}, []uint32{r, g, b})

	data, err := card.RenderPNG(v)
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
}

func TestRender_UndecodableImageIsGrey(t *testing.T) {
	v := card.View{
		Title:      "Broken",
		Photo:      "data:image/svg+xml;base64,PHN2Zy8+",
		BrandColor: "not-a-color",
	}

	img := card.Render(v)

	r, g, b, _ := img.At(20, 120).RGBA()
	gr, gg, gb, _ := card.PlaceholderGrey.RGBA()
	assert.Equal(t, []uint32{gr, gg, gb}, []uint32{r, g, b})
}

func TestParseHexColor(t *testing.T) {
	c, err := card.ParseHexColor("#3B82F6")
	require.NoError(t, err)
	assert.Equal(t, uint8(0x3b), c.R)
	assert.Equal(t, uint8(0xff), c.A)

	c, err = card.ParseHexColor("#fff")
	require.NoError(t, err)
	assert.Equal(t, uint8(0xff), c.G)

	_, err = card.ParseHexColor("#12")
	assert.Error(t, err)
}

func TestBuild_SummaryPastQRCapacityFallsBackToLink(t *testing.T) {
	s := fixtures.Student(1)
	s.ID = models.NewID()
	s.Website = "https://example.com/" + strings.Repeat("a", 3000)

	for _, mode := range []card.Mode{card.ModeDefault, card.ModeSummary} {
		v := card.Build(s, baseURL, mode)

		assert.Equal(t, card.ModeLink, v.QRMode)
		assert.Equal(t, "https://cards.example.com/student/"+s.ID, v.QR)
		_, err := card.QRCode(v.QR, card.DefaultQRSize)
		assert.NoError(t, err)
	}
	assert.Equal(t, s.Website, fieldValue(card.Build(s, baseURL, card.ModeDefault), "Website"))
}

func TestEncodable(t *testing.T) {
	assert.True(t, card.Encodable("https://cards.example.com/seller/abc"))
	assert.False(t, card.Encodable(strings.Repeat("x", 3000)))
}

func TestDecodeDataImage_RefusesHugeCanvas(t *testing.T) {
	_, err := card.DecodeDataImage(fixtures.DataURI(fixtures.PNGHeader(12000, 12000)))
	assert.ErrorIs(t, err, validation.ErrImageDimensions)

	img, err := card.DecodeDataImage(fixtures.Image)
	require.NoError(t, err)
	assert.Equal(t, 1, img.Bounds().Dx())
}

func TestRender_HugeCanvasIsGrey(t *testing.T) {
	v := card.View{
		Title: "Huge",
		Photo: fixtures.DataURI(fixtures.PNGHeader(12000, 12000)),
	}

	img := card.Render(v)

	r, g, b, _ := img.At(20, 120).RGBA()
	gr, gg, gb, _ := card.PlaceholderGrey.RGBA()
	assert.Equal(t, []uint32{gr, gg, gb}, []uint32{r, g, b})
}

package models_test

import (
	"testing"

	"profilecard/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	assert.True(t, models.KindBuyerCard.Valid())
	assert.False(t, models.Kind("widgets").Valid())
	assert.Equal(t, "professionals", models.KindProfessional.Collection())
	assert.Equal(t, "professional", models.KindProfessional.ShareSegment())
	assert.Len(t, models.Kinds, 5)
}

func TestParseID(t *testing.T) {
	assert.NoError(t, models.ParseID(models.NewID()))
	assert.Error(t, models.ParseID("507f1f77bcf86cd799439011"))
	assert.Error(t, models.ParseID(""))
}

func TestBioData_Normalize(t *testing.T) {
	b := &models.BioData{DOB: " 1994-05-17T18:30:00Z "}
	b.Normalize()
	assert.Equal(t, "1994-05-17", b.DOB)
	assert.NotNil(t, b.Education)

	b = &models.BioData{DOB: "1994-05-17"}
	b.Normalize()
	assert.Equal(t, "1994-05-17", b.DOB)
}

func TestBuyerCard_Normalize(t *testing.T) {
	b := &models.BuyerCard{ProductCodes: []string{"  A1 ", "", "   ", "B2"}}
	b.Normalize()
	assert.Equal(t, []string{"A1", "B2"}, b.ProductCodes)
	assert.Equal(t, models.DefaultBrandColor, b.BrandColor)

	b = &models.BuyerCard{BrandColor: "#000000"}
	b.Normalize()
	assert.Equal(t, "#000000", b.BrandColor)
	assert.Equal(t, []string{}, b.ProductCodes)
}

func TestSeller_Normalize(t *testing.T) {
	s := &models.Seller{Phone: "9700000000"}
	s.Normalize()
	assert.Equal(t, "9700000000", s.Mobile)
	assert.Empty(t, s.Phone)
	assert.Equal(t, []string{}, s.Permits)

	s = &models.Seller{Mobile: "9700000001", Phone: "9700000000"}
	s.Normalize()
	assert.Equal(t, "9700000001", s.Mobile)
	assert.Nil(t, s.UniqueKeys())
}

func TestProfessional_Normalize(t *testing.T) {
	p := &models.Professional{}
	p.Normalize()
	assert.Equal(t, []models.Product{}, p.ProductsAndServices)
	assert.Equal(t, []string{}, p.YoutubeLinks)
}

func TestStudent_UniqueKeys(t *testing.T) {
	s := &models.Student{StudentEmail: "a@b.co", IDNumber: "X1"}
	assert.Equal(t, []models.UniqueKey{
		{Field: "student_email", Value: "a@b.co"},
		{Field: "id_number", Value: "X1"},
	}, s.UniqueKeys())
}

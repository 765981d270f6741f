// Package fixtures provides valid sample profiles and request payloads for tests.
package fixtures

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"profilecard/internal/models"
)

// PNG is a 1x1 transparent PNG.
var PNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

// Image is PNG as an embedded data URI.
var Image = "data:image/png;base64," + base64.StdEncoding.EncodeToString(PNG)

// PNGHeader returns the signature and IHDR chunk of an 8-bit grayscale PNG of
// width x height. It carries no pixel data, so only the header can be read.
func PNGHeader(width, height int) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], uint32(width))
	binary.BigEndian.PutUint32(ihdr[4:8], uint32(height))
	ihdr[8] = 8 // bit depth; color type, compression, filter and interlace stay 0

	chunk := make([]byte, 0, 12+len(ihdr))
	chunk = binary.BigEndian.AppendUint32(chunk, uint32(len(ihdr)))
	chunk = append(chunk, "IHDR"...)
	chunk = append(chunk, ihdr...)
	chunk = binary.BigEndian.AppendUint32(chunk, crc32.ChecksumIEEE(chunk[4:]))

	return append([]byte("\x89PNG\r\n\x1a\n"), chunk...)
}

// DataURI embeds raw PNG bytes as a data URI.
func DataURI(raw []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)
}

// Student returns a valid student whose unique fields derive from n.
func Student(n int) *models.Student {
	return &models.Student{
		Name:           "Asha Rao",
		Age:            16,
		StudentContact: "9876543210",
		StudentEmail:   fmt.Sprintf("asha%d@school.edu", n),
		Photo:          Image,
		School:         "Springfield High",
		IDNumber:       fmt.Sprintf("SH-%04d", n),
		Logo:           Image,
		Address:        "12 Park Street",
		ParentContact:  "9123456780",
	}
}

// BioData returns a valid biodata whose email derives from n.
func BioData(n int) *models.BioData {
	return &models.BioData{
		FullName:     "Ravi Kumar",
		DOB:          "1994-05-17",
		Photo:        Image,
		MotherTongue: "Telugu",
		Nationality:  "Indian",
		Location:     "Hyderabad",
		Phone:        "9000000001",
		Email:        fmt.Sprintf("ravi%d@example.com", n),
		Address:      "4 Lake View Road",
		Education: []models.Education{
			{Degree: "B.Tech", Institution: "JNTU", Year: 2016, Specialization: "CSE"},
		},
	}
}

// Professional returns a valid professional with the given number of products.
func Professional(n, products int) *models.Professional {
	p := &models.Professional{
		FullName:            "Meera Shah",
		Mobile:              "9988776655",
		Email:               fmt.Sprintf("meera%d@studio.in", n),
		Photo:               Image,
		Company:             "Shah Studio",
		Address:             "88 MG Road",
		Designation:         "Principal Architect",
		Description:         "Residential and interior design",
		Logo:                Image,
		ProductsAndServices: []models.Product{},
		YoutubeLinks:        []string{},
	}
	for i := 0; i < products; i++ {
		p.ProductsAndServices = append(p.ProductsAndServices, models.Product{
			Title: fmt.Sprintf("Package %d", i+1), Price: 1000, Currency: "INR",
		})
	}
	return p
}

// BuyerCard returns a valid buyer card whose email derives from n.
func BuyerCard(n int) *models.BuyerCard {
	return &models.BuyerCard{
		Name:         "Kiran Traders",
		Email:        fmt.Sprintf("kiran%d@traders.in", n),
		Phone:        "9812345670",
		BrandColor:   models.DefaultBrandColor,
		Address:      "Shop 5, Market Yard",
		ProductCodes: []string{"A1", "B2"},
	}
}

// Seller returns a valid seller.
func Seller() *models.Seller {
	return &models.Seller{
		Owner:        "Farah Ali",
		BusinessName: "Ali Textiles",
		Mobile:       "9700000000",
		Address:      "Cloth Market, Lane 3",
		Logo:         Image,
		BrandColor:   models.DefaultBrandColor,
		Permits:      []string{"GST-29ABCDE1234F1Z5"},
	}
}

// Payload returns a valid create request body for kind whose unique fields derive from n.
func Payload(kind models.Kind, n int) map[string]any {
	switch kind {
	case models.KindStudent:
		return map[string]any{
			"name": "Asha Rao", "age": 16, "student_contact": "9876543210",
			"student_email": fmt.Sprintf("asha%d@school.edu", n), "photo": Image,
			"school": "Springfield High", "id_number": fmt.Sprintf("SH-%04d", n), "logo": Image,
			"address": "12 Park Street", "parent_contact": "9123456780",
		}
	case models.KindBioData:
		return map[string]any{
			"fullName": "Ravi Kumar", "dob": "1994-05-17", "photo": Image, "motherTongue": "Telugu",
			"nationality": "Indian", "location": "Hyderabad", "phone": "9000000001",
			"email": fmt.Sprintf("ravi%d@example.com", n), "address": "4 Lake View Road",
			"education": []any{
				map[string]any{"degree": "B.Tech", "institution": "JNTU", "year": 2016, "specialization": "CSE"},
			},
		}
	case models.KindProfessional:
		return map[string]any{
			"fullName": "Meera Shah", "mobile": "9988776655", "email": fmt.Sprintf("meera%d@studio.in", n),
			"photo": Image, "company": "Shah Studio", "address": "88 MG Road",
			"designation": "Principal Architect", "description": "Residential and interior design", "logo": Image,
		}
	case models.KindBuyerCard:
		return map[string]any{
			"name": "Kiran Traders", "email": fmt.Sprintf("kiran%d@traders.in", n), "phone": "9812345670",
			"address": "Shop 5, Market Yard", "productCodes": []any{"A1", "B2"},
		}
	case models.KindSeller:
		return map[string]any{
			"owner": "Farah Ali", "businessName": "Ali Textiles", "mobile": "9700000000",
			"address": "Cloth Market, Lane 3", "logo": Image, "permits": []any{"GST-29ABCDE1234F1Z5"},
		}
	}
	panic("fixtures: unknown kind " + string(kind))
}

// RequiredFields lists the required wire fields per kind.
var RequiredFields = map[models.Kind][]string{
	models.KindStudent:      {"name", "age", "student_contact", "student_email", "photo", "school", "id_number", "logo", "address", "parent_contact"},
	models.KindBioData:      {"fullName", "dob", "photo", "motherTongue", "nationality", "location", "phone", "email", "address"},
	models.KindProfessional: {"fullName", "mobile", "email", "photo", "company", "address", "designation", "description", "logo"},
	models.KindBuyerCard:    {"name", "email", "phone", "address"},
	models.KindSeller:       {"owner", "businessName", "mobile", "address", "logo"},
}

// ContactFields lists the ten-digit fields per kind.
var ContactFields = map[models.Kind][]string{
	models.KindStudent:      {"student_contact", "parent_contact"},
	models.KindBioData:      {"phone"},
	models.KindProfessional: {"mobile"},
	models.KindBuyerCard:    {"phone"},
	models.KindSeller:       {"mobile"},
}

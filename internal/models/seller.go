package models

// Seller is a business card for a seller with their trade permits.
type Seller struct {
	Base `bson:",inline"`

	Owner        string   `json:"owner" bson:"owner" gorm:"column:owner" validate:"required"`
	BusinessName string   `json:"businessName" bson:"businessName" gorm:"column:business_name" validate:"required"`
	Mobile       string   `json:"mobile" bson:"mobile" gorm:"column:mobile" validate:"required,tendigit"`
	Phone        string   `json:"phone,omitempty" bson:"-" gorm:"-"`
	Address      string   `json:"address" bson:"address" gorm:"column:address" validate:"required"`
	Logo         string   `json:"logo" bson:"logo" gorm:"column:logo" validate:"required,dataimage"`
	BrandColor   string   `json:"brandColor" bson:"brandColor" gorm:"column:brand_color" validate:"required,hexcolor"`
	Permits      []string `json:"permits" bson:"permits" gorm:"column:permits;serializer:json"`
}

func (Seller) TableName() string { return KindSeller.Collection() }

func (s *Seller) Kind() Kind { return KindSeller }

// Sellers carry no uniqueness constraint.
func (s *Seller) UniqueKeys() []UniqueKey { return nil }

func (s *Seller) Normalize() {
	// The seller form submits the number as "phone".
	if trim(s.Mobile) == "" {
		s.Mobile = s.Phone
	}
	s.Phone = ""
	if trim(s.BrandColor) == "" {
		s.BrandColor = DefaultBrandColor
	}
	s.Permits = nonNil(s.Permits)
}

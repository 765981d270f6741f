package models

// BuyerCard is a buyer's contact card with the product codes they deal in.
type BuyerCard struct {
	Base `bson:",inline"`

	Name         string   `json:"name" bson:"name" gorm:"column:name" validate:"required"`
	Email        string   `json:"email" bson:"email" gorm:"column:email;uniqueIndex" validate:"required,emailshape"`
	Phone        string   `json:"phone" bson:"phone" gorm:"column:phone" validate:"required,tendigit"`
	BrandColor   string   `json:"brandColor" bson:"brandColor" gorm:"column:brand_color" validate:"required,hexcolor"`
	Address      string   `json:"address" bson:"address" gorm:"column:address" validate:"required"`
	ProductCodes []string `json:"productCodes" bson:"productCodes" gorm:"column:product_codes;serializer:json"`
}

func (BuyerCard) TableName() string { return KindBuyerCard.Collection() }

func (b *BuyerCard) Kind() Kind { return KindBuyerCard }

func (b *BuyerCard) UniqueKeys() []UniqueKey {
	return []UniqueKey{{Field: "email", Value: b.Email}}
}

func (b *BuyerCard) Normalize() {
	if trim(b.BrandColor) == "" {
		b.BrandColor = DefaultBrandColor
	}
	b.ProductCodes = compact(b.ProductCodes)
}

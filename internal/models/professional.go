package models

// Product is one entry of a professional's products and services showcase.
type Product struct {
	Title       string  `json:"title" bson:"title" validate:"required"`
	Description string  `json:"description,omitempty" bson:"description,omitempty"`
	Image       string  `json:"image,omitempty" bson:"image,omitempty" validate:"omitempty,dataimage"`
	Price       float64 `json:"price" bson:"price" validate:"gte=0"`
	Currency    string  `json:"currency,omitempty" bson:"currency,omitempty"`
}

// Payment holds the optional payment details shown on a professional card.
type Payment struct {
	UPIID         string `json:"upiId,omitempty" bson:"upiId,omitempty"`
	AccountHolder string `json:"accountHolder,omitempty" bson:"accountHolder,omitempty"`
	QRCode        string `json:"qrCode,omitempty" bson:"qrCode,omitempty" validate:"omitempty,dataimage"`
}

// Professional is a visiting card / portfolio.
type Professional struct {
	Base `bson:",inline"`

	FullName    string `json:"fullName" bson:"fullName" gorm:"column:full_name" validate:"required"`
	Mobile      string `json:"mobile" bson:"mobile" gorm:"column:mobile" validate:"required,tendigit"`
	Email       string `json:"email" bson:"email" gorm:"column:email;uniqueIndex" validate:"required,emailshape"`
	Photo       string `json:"photo" bson:"photo" gorm:"column:photo" validate:"required,dataimage"`
	Company     string `json:"company" bson:"company" gorm:"column:company" validate:"required"`
	Address     string `json:"address" bson:"address" gorm:"column:address" validate:"required"`
	Designation string `json:"designation" bson:"designation" gorm:"column:designation" validate:"required"`
	Description string `json:"description" bson:"description" gorm:"column:description" validate:"required"`
	Logo        string `json:"logo" bson:"logo" gorm:"column:logo" validate:"required,dataimage"`
	Services    string `json:"services,omitempty" bson:"services,omitempty" gorm:"column:services"`

	WhatsApp  string `json:"whatsapp,omitempty" bson:"whatsapp,omitempty" gorm:"column:whatsapp"`
	Instagram string `json:"instagram,omitempty" bson:"instagram,omitempty" gorm:"column:instagram"`
	Facebook  string `json:"facebook,omitempty" bson:"facebook,omitempty" gorm:"column:facebook"`
	LinkedIn  string `json:"linkedin,omitempty" bson:"linkedin,omitempty" gorm:"column:linkedin"`
	Twitter   string `json:"twitter,omitempty" bson:"twitter,omitempty" gorm:"column:twitter"`
	Website   string `json:"website,omitempty" bson:"website,omitempty" gorm:"column:website"`
	Location  string `json:"location,omitempty" bson:"location,omitempty" gorm:"column:location"`

	ProductsAndServices []Product `json:"productsAndServices" bson:"productsAndServices" gorm:"column:products_and_services;serializer:json" validate:"boundedarray=3,dive"`
	YoutubeLinks        []string  `json:"youtubeLinks" bson:"youtubeLinks" gorm:"column:youtube_links;serializer:json" validate:"boundedarray=4"`
	Payment             *Payment  `json:"payment,omitempty" bson:"payment,omitempty" gorm:"column:payment;serializer:json" validate:"omitempty"`
}

func (Professional) TableName() string { return KindProfessional.Collection() }

func (p *Professional) Kind() Kind { return KindProfessional }

func (p *Professional) UniqueKeys() []UniqueKey {
	return []UniqueKey{{Field: "email", Value: p.Email}}
}

func (p *Professional) Normalize() {
	if p.ProductsAndServices == nil {
		p.ProductsAndServices = []Product{}
	}
	p.YoutubeLinks = nonNil(p.YoutubeLinks)
}

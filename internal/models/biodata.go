package models

import "time"

// Education is one entry of a biodata's education history.
type Education struct {
	Degree         string `json:"degree" bson:"degree"`
	Institution    string `json:"institution" bson:"institution"`
	Year           int    `json:"year,omitempty" bson:"year,omitempty"`
	Specialization string `json:"specialization,omitempty" bson:"specialization,omitempty"`
}

// BioData is a personal biodata sheet.
type BioData struct {
	Base `bson:",inline"`

	FullName     string   `json:"fullName" bson:"fullName" gorm:"column:full_name" validate:"required"`
	DOB          string   `json:"dob" bson:"dob" gorm:"column:dob" validate:"required,datetime=2006-01-02"`
	Height       *float64 `json:"height,omitempty" bson:"height,omitempty" gorm:"column:height" validate:"omitempty,gte=100,lte=250"`
	Weight       *float64 `json:"weight,omitempty" bson:"weight,omitempty" gorm:"column:weight" validate:"omitempty,gte=30,lte=200"`
	Photo        string   `json:"photo" bson:"photo" gorm:"column:photo" validate:"required,dataimage"`
	Religion     string   `json:"religion,omitempty" bson:"religion,omitempty" gorm:"column:religion"`
	MotherTongue string   `json:"motherTongue" bson:"motherTongue" gorm:"column:mother_tongue" validate:"required"`
	Nationality  string   `json:"nationality" bson:"nationality" gorm:"column:nationality" validate:"required"`
	Location     string   `json:"location" bson:"location" gorm:"column:location" validate:"required"`

	Phone     string      `json:"phone" bson:"phone" gorm:"column:phone" validate:"required,tendigit"`
	Email     string      `json:"email" bson:"email" gorm:"column:email;uniqueIndex" validate:"required,emailshape"`
	Address   string      `json:"address" bson:"address" gorm:"column:address" validate:"required"`
	Education []Education `json:"education" bson:"education" gorm:"column:education;serializer:json" validate:"dive"`

	Parents     string `json:"parents,omitempty" bson:"parents,omitempty" gorm:"column:parents"`
	Siblings    string `json:"siblings,omitempty" bson:"siblings,omitempty" gorm:"column:siblings"`
	Personality string `json:"personality,omitempty" bson:"personality,omitempty" gorm:"column:personality"`
	Hobbies     string `json:"hobbies,omitempty" bson:"hobbies,omitempty" gorm:"column:hobbies"`
	Preferences string `json:"preferences,omitempty" bson:"preferences,omitempty" gorm:"column:preferences"`
}

func (BioData) TableName() string { return KindBioData.Collection() }

func (b *BioData) Kind() Kind { return KindBioData }

func (b *BioData) UniqueKeys() []UniqueKey {
	return []UniqueKey{{Field: "email", Value: b.Email}}
}

func (b *BioData) Normalize() {
	b.DOB = trim(b.DOB)
	// Date inputs from pickers may carry a time component.
	if t, err := time.Parse(time.RFC3339, b.DOB); err == nil {
		b.DOB = t.UTC().Format(time.DateOnly)
	}
	if b.Education == nil {
		b.Education = []Education{}
	}
}

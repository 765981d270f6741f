package models

// Student is a school identity card.
type Student struct {
	Base `bson:",inline"`

	Name           string `json:"name" bson:"name" gorm:"column:name" validate:"required"`
	Age            int    `json:"age" bson:"age" gorm:"column:age" validate:"required,gte=5,lte=25"`
	StudentContact string `json:"student_contact" bson:"student_contact" gorm:"column:student_contact" validate:"required,tendigit"`
	StudentEmail   string `json:"student_email" bson:"student_email" gorm:"column:student_email;uniqueIndex" validate:"required,emailshape"`
	Photo          string `json:"photo" bson:"photo" gorm:"column:photo" validate:"required,dataimage"`

	School   string `json:"school" bson:"school" gorm:"column:school" validate:"required"`
	IDNumber string `json:"id_number" bson:"id_number" gorm:"column:id_number;uniqueIndex" validate:"required"`
	Logo     string `json:"logo" bson:"logo" gorm:"column:logo" validate:"required,dataimage"`
	Address  string `json:"address" bson:"address" gorm:"column:address" validate:"required"`

	ParentContact string `json:"parent_contact" bson:"parent_contact" gorm:"column:parent_contact" validate:"required,tendigit"`
	ParentEmail   string `json:"parent_email,omitempty" bson:"parent_email,omitempty" gorm:"column:parent_email" validate:"omitempty,emailshape"`

	Instagram string `json:"instagram,omitempty" bson:"instagram,omitempty" gorm:"column:instagram"`
	Facebook  string `json:"facebook,omitempty" bson:"facebook,omitempty" gorm:"column:facebook"`
	LinkedIn  string `json:"linkedin,omitempty" bson:"linkedin,omitempty" gorm:"column:linkedin"`
	Twitter   string `json:"twitter,omitempty" bson:"twitter,omitempty" gorm:"column:twitter"`
	Website   string `json:"website,omitempty" bson:"website,omitempty" gorm:"column:website"`
}

func (Student) TableName() string { return KindStudent.Collection() }

func (s *Student) Kind() Kind { return KindStudent }

func (s *Student) UniqueKeys() []UniqueKey {
	return []UniqueKey{
		{Field: "student_email", Value: s.StudentEmail},
		{Field: "id_number", Value: s.IDNumber},
	}
}

func (s *Student) Normalize() {}

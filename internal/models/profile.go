package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultBrandColor is applied to cards that do not pick their own color.
const DefaultBrandColor = "#3B82F6"

// Kind names one of the profile collections.
type Kind string

const (
	KindStudent      Kind = "students"
	KindBioData      Kind = "biodata"
	KindProfessional Kind = "professionals"
	KindBuyerCard    Kind = "buyercards"
	KindSeller       Kind = "sellers"
)

// Kinds lists every profile kind in registration order.
var Kinds = []Kind{KindStudent, KindBioData, KindProfessional, KindBuyerCard, KindSeller}

// Collection is the REST path segment, Mongo collection and SQL table for the kind.
func (k Kind) Collection() string { return string(k) }

// ShareSegment is the path segment used by shareable card links.
func (k Kind) ShareSegment() string {
	switch k {
	case KindStudent:
		return "student"
	case KindBioData:
		return "biodata"
	case KindProfessional:
		return "professional"
	case KindBuyerCard:
		return "buyercard"
	case KindSeller:
		return "seller"
	}
	return string(k)
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Base carries the server-assigned identity of every record.
type Base struct {
	ID        string    `json:"id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt" gorm:"index"`
}

// GetBase exposes the embedded Base to generic code.
func (b *Base) GetBase() *Base { return b }

// UniqueKey is one field value that must be unique within its kind.
type UniqueKey struct {
	Field string // wire, document and column name
	Value string
}

// Profile is implemented by pointers to every profile model.
type Profile interface {
	GetBase() *Base
	Kind() Kind
	UniqueKeys() []UniqueKey
	// Normalize applies defaults, trimming and aliases before validation.
	Normalize()
}

// Record constrains a type parameter to a pointer to a profile model T.
type Record[T any] interface {
	*T
	Profile
}

// NewID returns a fresh record identifier.
func NewID() string {
	return uuid.New().String()
}

// ParseID checks that id is a well-formed record identifier.
func ParseID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("parse id %q: %w", id, err)
	}
	return nil
}

// ServerKeys are input keys owned by the server and ignored on create.
var ServerKeys = []string{"id", "_id", "createdAt", "__v"}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Package property provides the catalog domain model, filtering and querying.
package property

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/portalsur/portalsur/internal/currency"
)

// Type categorizes a listing.
type Type string

const (
	TypeVilla      Type = "villa"
	TypeApartment  Type = "apartment"
	TypeHouse      Type = "house"
	TypeLand       Type = "land"
	TypeCommercial Type = "commercial"
	TypeOffice     Type = "office"
	TypeParking    Type = "parking"
)

// ValidType returns true if s is a known property type.
func ValidType(s string) bool {
	switch Type(s) {
	case TypeVilla, TypeApartment, TypeHouse, TypeLand, TypeCommercial,
		TypeOffice, TypeParking:
		return true
	}
	return false
}

// PrivateData holds owner-facing fields that only a privileged session
// may read or edit.
type PrivateData struct {
	OwnerName        string `json:"ownerName"`
	OwnerPhone       string `json:"ownerPhone"`
	LegalDescription string `json:"legalDescription"`
	PrivateNotes     string `json:"privateNotes"`
}

// Property is the catalog's unit of record. ID is assigned by the store
// on create and is immutable afterwards. Updates replace the whole record.
type Property struct {
	ID          string       `json:"id"`
	Title       string       `json:"title" validate:"required"`
	Subtitle    string       `json:"subtitle"`
	Location    string       `json:"location" validate:"required"`
	Price       float64      `json:"price" validate:"gte=0"`
	Currency    currency.Tag `json:"currency"`
	Type        Type         `json:"type" validate:"required"`
	Bedrooms    int          `json:"bedrooms" validate:"gte=1"`
	Bathrooms   int          `json:"bathrooms" validate:"gte=1"`
	Area        float64      `json:"area" validate:"gt=0"`
	ImageURL    string       `json:"imageUrl"`
	Description string       `json:"description"`
	Amenities   []string     `json:"amenities,omitempty"`
	IsPremium   bool         `json:"isPremium"`
	IsPublished bool         `json:"isPublished"`
	PrivateData *PrivateData `json:"privateData,omitempty"`
}

// Redacted returns a copy of p with the private sub-record stripped.
// Non-privileged read paths must serve this form.
func (p Property) Redacted() Property {
	p.PrivateData = nil
	return p
}

// ValidationError reports a rejected input field. It is raised before a
// record reaches the store.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

var validate = validator.New()

// Validate checks a property against the field constraints. The first
// offending field is reported as a *ValidationError.
func Validate(p Property) error {
	if !ValidType(string(p.Type)) {
		return &ValidationError{Field: "type", Message: fmt.Sprintf("unknown property type %q", p.Type)}
	}
	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ValidationError{
			Field:   strings.ToLower(fe.Field()),
			Message: fmt.Sprintf("failed %q constraint", fe.Tag()),
		}
	}
	return fmt.Errorf("validating property: %w", err)
}

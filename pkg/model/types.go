package model

import internalmodel "github.com/goliatone/go-formstate/internal/model"

// FieldKind re-exports the internal FieldKind enumeration.
type FieldKind = internalmodel.FieldKind

const (
	FieldKindText    = internalmodel.FieldKindText
	FieldKindBoolean = internalmodel.FieldKindBoolean
	FieldKindNumber  = internalmodel.FieldKindNumber
	FieldKindEnum    = internalmodel.FieldKindEnum
	FieldKindSet     = internalmodel.FieldKindSet
)

type (
	FieldName     = internalmodel.FieldName
	Field         = internalmodel.Field
	Option        = internalmodel.Option
	Bounds        = internalmodel.Bounds
	Section       = internalmodel.Section
	Form          = internalmodel.Form
	Record        = internalmodel.Record
	StringSet     = internalmodel.StringSet
	CoercionError = internalmodel.CoercionError
)

const (
	FullName       = internalmodel.FullName
	Email          = internalmodel.Email
	Password       = internalmodel.Password
	ShowPassword   = internalmodel.ShowPassword
	Search         = internalmodel.Search
	Age            = internalmodel.Age
	PhoneNumber    = internalmodel.PhoneNumber
	BirthDate      = internalmodel.BirthDate
	Department     = internalmodel.Department
	BioDescription = internalmodel.BioDescription
	Country        = internalmodel.Country
	State          = internalmodel.State
	Priority       = internalmodel.Priority
	ClientMatch    = internalmodel.ClientMatch
	Gender         = internalmodel.Gender
	Interests      = internalmodel.Interests
	AboutCode      = internalmodel.AboutCode
	KeepDataFor    = internalmodel.KeepDataFor
	Rating         = internalmodel.Rating
	FieldStatus    = internalmodel.FieldStatus
	Volume         = internalmodel.Volume
	AcceptTerms    = internalmodel.AcceptTerms

	RatingMax     = internalmodel.RatingMax
	VolumeDefault = internalmodel.VolumeDefault
)

// DefaultRecord returns a record holding every key at its default value.
func DefaultRecord() Record {
	return internalmodel.DefaultRecord()
}

// NewStringSet builds an insertion-ordered set without duplicates.
func NewStringSet(values ...string) StringSet {
	return internalmodel.NewStringSet(values...)
}

// FieldNames lists every record key in form order.
func FieldNames() []FieldName {
	return internalmodel.FieldNames()
}

// Lookup returns the field definition registered for name.
func Lookup(name FieldName) (Field, bool) {
	return internalmodel.Lookup(name)
}

// Known reports whether name is a record key.
func Known(name FieldName) bool {
	return internalmodel.Known(name)
}

// PracticeForm returns the form layout shared by the renderers.
func PracticeForm() Form {
	return internalmodel.PracticeForm()
}

// Coerce converts a raw edit value into the type stored for name.
func Coerce(name FieldName, value any) (any, error) {
	return internalmodel.Coerce(name, value)
}

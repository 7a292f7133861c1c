package patient

import (
	"fmt"
	"time"
)

// Gender is the enumerated patient gender stored in patients.gender.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Valid reports whether g is one of the stored genders.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// ParseGender converts user input into a Gender.
func ParseGender(s string) (Gender, error) {
	g := Gender(s)
	if !g.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidGender, s)
	}
	return g, nil
}

// BloodType is the enumerated ABO/Rh blood group stored in patients.blood_type.
type BloodType string

const (
	BloodTypeAPositive  BloodType = "A+"
	BloodTypeANegative  BloodType = "A-"
	BloodTypeBPositive  BloodType = "B+"
	BloodTypeBNegative  BloodType = "B-"
	BloodTypeABPositive BloodType = "AB+"
	BloodTypeABNegative BloodType = "AB-"
	BloodTypeOPositive  BloodType = "O+"
	BloodTypeONegative  BloodType = "O-"
)

// Valid reports whether b is one of the eight stored blood types.
func (b BloodType) Valid() bool {
	switch b {
	case BloodTypeAPositive, BloodTypeANegative,
		BloodTypeBPositive, BloodTypeBNegative,
		BloodTypeABPositive, BloodTypeABNegative,
		BloodTypeOPositive, BloodTypeONegative:
		return true
	}
	return false
}

// ParseBloodType converts user input into a BloodType.
func ParseBloodType(s string) (BloodType, error) {
	b := BloodType(s)
	if !b.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidBloodType, s)
	}
	return b, nil
}

// Patient is a stored patient row. Optional columns are nil when NULL.
type Patient struct {
	ID          int64      `json:"patient_id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	DateOfBirth time.Time  `json:"date_of_birth"`
	Gender      Gender     `json:"gender"`
	Phone       *string    `json:"phone,omitempty"`
	Email       *string    `json:"email,omitempty"`
	Address     *string    `json:"address,omitempty"`
	BloodType   *BloodType `json:"blood_type,omitempty"`
}

// FullName joins first and last name the way listings display it.
func (p Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// CreatePatientRequest carries the fields accepted when registering a patient.
type CreatePatientRequest struct {
	FirstName   string
	LastName    string
	DateOfBirth time.Time
	Gender      Gender
	Phone       *string
	Email       *string
	Address     *string
	BloodType   *BloodType
}

// SearchFilter narrows SearchPatients. Zero-valued fields do not filter.
type SearchFilter struct {
	// Name matches as a substring of the first or the last name.
	Name   string
	Gender Gender
}

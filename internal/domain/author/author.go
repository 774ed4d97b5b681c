package author

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MaxNameLength        = 100
	MaxDescriptionLength = 1500
)

// Author is a stored author record.
type Author struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	DateOfBirth time.Time `db:"date_of_birth"`
}

// New creates an author with a fresh ID after validating its fields
func New(name, description string, dateOfBirth time.Time) (*Author, error) {
	a := &Author{ID: uuid.New()}
	if err := a.Update(name, description, dateOfBirth); err != nil {
		return nil, err
	}
	return a, nil
}

// Update replaces every mutable field, following the same rules as New
func (a *Author) Update(name, description string, dateOfBirth time.Time) error {
	name = strings.TrimSpace(name)
	if err := validate(name, description); err != nil {
		return err
	}
	a.Name = name
	a.Description = description
	a.DateOfBirth = dateOfBirth
	return nil
}

// Age returns the author's age in whole years at the given instant.
func (a *Author) Age(now time.Time) int {
	if a.DateOfBirth.IsZero() {
		return 0
	}
	dob := a.DateOfBirth.In(now.Location())
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return max(age, 0)
}

func validate(name, description string) error {
	if name == "" {
		return DomainError{Code: ErrNameRequired, Message: "You should fill out a name."}
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return DomainError{Code: ErrNameTooLong, Message: fmt.Sprintf("The name shouldn't have more than %d characters.", MaxNameLength)}
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return DomainError{Code: ErrDescriptionTooLong, Message: fmt.Sprintf("The description shouldn't have more than %d characters.", MaxDescriptionLength)}
	}
	return nil
}

// DomainError represents a domain-level validation error
type DomainError struct {
	Message string
	Code    string
}

func (e DomainError) Error() string {
	return fmt.Sprintf("domain error [%s]: %s", e.Code, e.Message)
}

// Domain error codes
const (
	ErrNameRequired       = "NAME_REQUIRED"
	ErrNameTooLong        = "NAME_TOO_LONG"
	ErrDescriptionTooLong = "DESCRIPTION_TOO_LONG"
)

package checkout

import (
	"regexp"
	"sort"
	"strings"

	"storefront-service/internal/models"
)

var (
	phonePattern = regexp.MustCompile(`^\d{10}$`)
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	zipPattern   = regexp.MustCompile(`^\d{4}$`)
)

// Form is the checkout form as entered by the buyer.
type Form struct {
	Name    string
	Surname string
	Phone   string
	Email   string
	ZipCode string
}

// ValidationError carries one message per failing field. The submission gate
// blocks on any validation failure; nothing is sent to the server.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return "invalid checkout form: " + strings.Join(names, ", ")
}

// Validate checks the form's required fields. Name and surname must be
// non-empty, the phone is 10 digits, the email loosely RFC-shaped and the zip
// code 4 digits.
func (f Form) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(f.Name) == "" {
		fields["name"] = "Name is required."
	}
	if strings.TrimSpace(f.Surname) == "" {
		fields["surname"] = "Surname is required."
	}
	if !phonePattern.MatchString(strings.TrimSpace(f.Phone)) {
		fields["phone"] = "Valid phone number is required."
	}
	if !emailPattern.MatchString(strings.TrimSpace(f.Email)) {
		fields["email"] = "Valid email is required."
	}
	if !zipPattern.MatchString(strings.TrimSpace(f.ZipCode)) {
		fields["zipCode"] = "Valid zip code is required."
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// UserData converts the form into the wire representation.
func (f Form) UserData() models.UserData {
	return models.UserData{
		Name:    f.Name,
		Surname: f.Surname,
		Phone:   f.Phone,
		Email:   f.Email,
		ZipCode: f.ZipCode,
	}
}

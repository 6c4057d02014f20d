package services

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/you/kpaforms/domain"
)

// Field limits mirror the column sizes of the users and form_submissions tables
const (
	phoneMinLength    = 10
	phoneMaxLength    = 15
	nameMaxLength     = 100
	emailMaxLength    = 100
	passwordMinLength = 6
	passwordMaxLength = 72 // bcrypt ignores anything past 72 bytes
	titleMaxLength    = 200
)

// validateRegistration checks a registration request
func validateRegistration(in *domain.RegisterInput) error {
	return toValidationError(validation.ValidateStruct(in,
		validation.Field(&in.PhoneNumber,
			validation.Required,
			is.Digit,
			validation.Length(phoneMinLength, phoneMaxLength),
		),
		validation.Field(&in.FullName,
			validation.Required,
			validation.RuneLength(1, nameMaxLength),
		),
		validation.Field(&in.Email,
			is.Email,
			validation.Length(0, emailMaxLength),
		),
		validation.Field(&in.Password,
			validation.Required,
			validation.Length(passwordMinLength, passwordMaxLength),
		),
	))
}

// validateDraft checks a new submission. Enumerated fields are checked with
// the domain parsers so every path shares one definition of the allowed values.
func validateDraft(d *domain.SubmissionDraft) error {
	return toValidationError(validation.ValidateStruct(d,
		validation.Field(&d.FormType, validation.Required, enum(formTypeOf)),
		validation.Field(&d.Title, validation.Required, validation.RuneLength(1, titleMaxLength)),
		validation.Field(&d.Category, enum(categoryOf)),
		validation.Field(&d.Priority, enum(priorityOf)),
	))
}

// validatePatch checks a partial update. Absent (nil) fields are skipped.
func validatePatch(p *domain.SubmissionPatch) error {
	return toValidationError(validation.ValidateStruct(p,
		validation.Field(&p.Title, validation.NilOrNotEmpty, validation.RuneLength(1, titleMaxLength)),
		validation.Field(&p.Category, enum(categoryOf)),
		validation.Field(&p.Priority, enum(priorityOf)),
		validation.Field(&p.Status, enum(statusOf)),
	))
}

func formTypeOf(s string) error { _, err := domain.ParseFormType(s); return err }
func categoryOf(s string) error { _, err := domain.ParseCategory(s); return err }
func priorityOf(s string) error { _, err := domain.ParsePriority(s); return err }
func statusOf(s string) error   { _, err := domain.ParseStatus(s); return err }

// enum adapts a domain parser into a rule that accepts string or *string.
// Nil pointers are absent values and pass.
func enum(check func(string) error) validation.Rule {
	return validation.By(func(value interface{}) error {
		switch v := value.(type) {
		case string:
			if v == "" {
				return nil
			}
			return check(v)
		case *string:
			if v == nil {
				return nil
			}
			return check(*v)
		default:
			return errors.New("must be a string")
		}
	})
}

// toValidationError converts ozzo validation errors into a field-tagged
// domain.ValidationError. Other errors pass through unchanged.
func toValidationError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &domain.ValidationError{Fields: make(map[string]string, len(verrs))}
	for field, ferr := range verrs {
		if ferr == nil {
			continue
		}
		out.Fields[field] = ferr.Error()
	}
	if len(out.Fields) == 0 {
		return nil
	}
	return out
}

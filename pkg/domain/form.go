package domain

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Field identifies one input of the contact form.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldMessage Field = "message"
)

// Fields lists the form inputs in display order.
var Fields = []Field{FieldName, FieldEmail, FieldMessage}

// maxSuggestDistance bounds how far a typo may be from a real field name
// before we stop suggesting it.
const maxSuggestDistance = 3

// ParseField resolves a field name. Unknown names return ErrUnknownField,
// with the closest known name attached when one is near enough.
func ParseField(name string) (Field, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, f := range Fields {
		if string(f) == key {
			return f, nil
		}
	}

	best, bestDist := Field(""), maxSuggestDistance+1
	for _, f := range Fields {
		if d := levenshtein.ComputeDistance(key, string(f)); d < bestDist {
			best, bestDist = f, d
		}
	}
	if best != "" {
		return "", fmt.Errorf("%w: %q (did you mean %q?)", ErrUnknownField, name, best)
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// FormFields is the contact form record. Values are always defined strings
// and may be empty.
type FormFields struct {
	Name    string `json:"name" mapstructure:"name"`
	Email   string `json:"email" mapstructure:"email"`
	Message string `json:"message" mapstructure:"message"`
}

// Get returns the value of one field.
func (f FormFields) Get(field Field) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldEmail:
		return f.Email
	case FieldMessage:
		return f.Message
	}
	return ""
}

// With returns a copy of f with one field overwritten.
// Unknown fields leave the record untouched.
func (f FormFields) With(field Field, value string) FormFields {
	switch field {
	case FieldName:
		f.Name = value
	case FieldEmail:
		f.Email = value
	case FieldMessage:
		f.Message = value
	}
	return f
}

// Missing returns the fields that are blank after trimming whitespace.
func (f FormFields) Missing() []Field {
	var missing []Field
	for _, field := range Fields {
		if strings.TrimSpace(f.Get(field)) == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (f FormFields) Trimmed() FormFields {
	return FormFields{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Message: strings.TrimSpace(f.Message),
	}
}

// IsZero reports whether every field is empty.
func (f FormFields) IsZero() bool {
	return f == FormFields{}
}

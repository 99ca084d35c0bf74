// Package forms describes the editable field sets of the profile and workshop
// editors and binds submitted values back onto them.
package forms

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/workshops/internal/common"
	"github.com/dmitrijs2005/workshops/internal/server/validation"
)

type Kind string

const (
	KindText   Kind = "text"
	KindChoice Kind = "choice"
	KindBool   Kind = "bool"
	KindDate   Kind = "date"
)

// DateLayout is the accepted format of date fields.
const DateLayout = "2006-01-02"

type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field is one input of a form. Initial is captured when the form is built
// and never re-read from the record afterwards.
type Field struct {
	Name      string   `json:"name"`
	Label     string   `json:"label"`
	Kind      Kind     `json:"kind"`
	Initial   string   `json:"initial,omitempty"`
	Required  bool     `json:"required"`
	Hidden    bool     `json:"hidden,omitempty"`
	MaxLength int      `json:"max_length,omitempty"`
	Choices   []Choice `json:"choices,omitempty"`
}

type Form struct {
	Name        string  `json:"name"`
	LabelSuffix string  `json:"label_suffix"`
	Fields      []Field `json:"fields"`
}

// Field returns the named field.
func (f *Form) Field(name string) (Field, bool) {
	for _, fld := range f.Fields {
		if fld.Name == name {
			return fld, true
		}
	}
	return Field{}, false
}

// Bind validates submitted values against the form, in field order, and
// returns the cleaned values. Hidden fields fall back to their initial value
// when absent. The first failure is returned as a *validation.FieldError.
func (f *Form) Bind(values map[string]string) (map[string]string, error) {
	cleaned := make(map[string]string, len(f.Fields))

	for _, fld := range f.Fields {
		v, ok := values[fld.Name]
		if fld.Hidden && !ok {
			v = fld.Initial
		}
		v = strings.TrimSpace(v)

		if err := fld.check(v); err != nil {
			return nil, &validation.FieldError{Field: fld.Name, Err: err}
		}
		cleaned[fld.Name] = v
	}

	return cleaned, nil
}

func (fld Field) check(v string) error {
	if fld.Kind == KindBool {
		accepted := isTrue(v)
		if fld.Required && !accepted {
			return common.ErrRequired
		}
		return nil
	}

	if v == "" {
		if fld.Required {
			return common.ErrRequired
		}
		return nil
	}

	if fld.MaxLength > 0 {
		if err := validation.MaxLength(fld.MaxLength)(v); err != nil {
			return err
		}
	}

	switch fld.Kind {
	case KindChoice:
		for _, c := range fld.Choices {
			if c.Value == v {
				return nil
			}
		}
		return common.ErrInvalidChoice
	case KindDate:
		if _, err := time.Parse(DateLayout, v); err != nil {
			return common.ErrInvalidFormat
		}
	}
	return nil
}

func isTrue(v string) bool {
	switch strings.ToLower(v) {
	case "true", "on", "1", "yes":
		return true
	}
	return false
}

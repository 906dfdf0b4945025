package wizard

import (
	"errors"
	"sort"
	"strings"
)

// ErrInvalidForm is returned by step submissions whose form failed validation.
// The form's Errors map holds the per-field messages.
var ErrInvalidForm = errors.New("wizard: form has validation errors")

const (
	msgRequired     = "پر کردن این فیلد الزامی است"
	msgDigitsOnly   = "فقط عدد مجاز است"
	msgAreaPositive = "متراژ باید بیشتر از صفر باشد"
	msgPickLocation = "لطفاً موقعیت جدیدی روی نقشه انتخاب کنید!"

	msgAreaInteger    = "متراژ باید عدد صحیح باشد"
	msgUnknownOption  = "گزینه انتخاب شده نامعتبر است"
	msgTooManyDigits  = "حداکثر %d رقم مجاز است"
	msgBadCoordinates = "مختصات نامعتبر است"
)

// FieldErrors maps a form field name to its message. A field without an
// entry is valid.
type FieldErrors map[string]string

func (e FieldErrors) HasErrors() bool {
	for _, msg := range e {
		if msg != "" {
			return true
		}
	}
	return false
}

func (e FieldErrors) Get(field string) string {
	return e[field]
}

func (e FieldErrors) Clear(field string) {
	delete(e, field)
}

// String lists the failing fields, sorted, for logs.
func (e FieldErrors) String() string {
	fields := make([]string, 0, len(e))
	for f, msg := range e {
		if msg != "" {
			fields = append(fields, f)
		}
	}
	sort.Strings(fields)
	return strings.Join(fields, ",")
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// fixedDigits checks a numeric string of an exact length.
func fixedDigits(value string, length int, required, wrongLength string) string {
	switch {
	case strings.TrimSpace(value) == "":
		return required
	case len(value) != length || !isDigits(value):
		return wrongLength
	}
	return ""
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

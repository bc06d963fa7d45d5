// Package contact defines the contact record and its field validators.
package contact

import (
	"regexp"
	"time"
)

// TimeFormat renders CreatedAt as UTC ISO-8601 with millisecond precision.
const TimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Header holds the CSV column titles in row order.
var Header = []string{"NAME", "NUMBER", "EMAIL", "CREATED_AT"}

// Record is a single contact. Values are immutable once built by New.
type Record struct {
	Name      string
	Number    string
	Email     string
	CreatedAt time.Time
}

// New builds a Record stamped with now. The timestamp is normalized to UTC
// and never recomputed.
func New(name, number, email string, now time.Time) Record {
	return Record{
		Name:      name,
		Number:    number,
		Email:     email,
		CreatedAt: now.UTC(),
	}
}

// Row returns the record's fields in Header column order.
func (r Record) Row() []string {
	return []string{r.Name, r.Number, r.Email, r.CreatedAt.UTC().Format(TimeFormat)}
}

// Complete reports whether every field carries a value.
func (r Record) Complete() bool {
	return r.Name != "" && r.Number != "" && r.Email != "" && !r.CreatedAt.IsZero()
}

// Validator reports whether a candidate value is well-formed for a field.
type Validator func(string) bool

// emailPart excludes @ and any whitespace: ASCII, vertical tab, Unicode
// separators (Zs, Zl, Zp) and the byte order mark.
const emailPart = `[^\s\x0B\p{Z}\x{FEFF}@]+`

var (
	phonePattern = regexp.MustCompile(`^[0-9]{10,15}$`)
	emailPattern = regexp.MustCompile(`^` + emailPart + `@` + emailPart + `\.` + emailPart + `$`)
)

// ValidPhone accepts 10 to 15 ASCII digits with no separators or leading +.
func ValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// ValidEmail accepts local@domain.tld shapes with no whitespace and a single @.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

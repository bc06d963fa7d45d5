package contact

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestValidPhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"ten digits", "1234567890", true},
		{"fifteen digits", "123456789012345", true},
		{"eleven digits", "12345678901", true},
		{"nine digits", "123456789", false},
		{"sixteen digits", "1234567890123456", false},
		{"letters", "abc", false},
		{"leading plus", "+1234567890", false},
		{"dashes", "123-456-7890", false},
		{"interior space", "12345 67890", false},
		{"trailing newline", "1234567890\n", false},
		{"non-ascii digits", "١٢٣٤٥٦٧٨٩٠", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidPhone(tt.input); got != tt.want {
				t.Errorf("ValidPhone(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidPhone_AllLengths(t *testing.T) {
	for n := 1; n <= 20; n++ {
		s := strings.Repeat("7", n)
		want := n >= 10 && n <= 15
		if got := ValidPhone(s); got != want {
			t.Errorf("ValidPhone(%d digits) = %v, want %v", n, got, want)
		}
	}
}

func TestValidEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"minimal", "a@b.c", true},
		{"typical", "ada@x.io", true},
		{"subdomain", "first.last@mail.example.com", true},
		{"plus tag", "ada+lists@x.io", true},
		{"missing at", "ab.c", false},
		{"missing dot after at", "a@b", false},
		{"space in local", "a b@c.d", false},
		{"space in domain", "a@b c.d", false},
		{"leading space", " a@b.c", false},
		{"two ats", "a@b@c.d", false},
		{"empty local", "@b.c", false},
		{"empty tld", "a@b.", false},
		{"tab", "a\t@b.c", false},
		{"vertical tab", "a\v@b.c", false},
		{"no-break space in local", "a\u00a0b@c.d", false},
		{"em space in domain", "a@b\u2003c.d", false},
		{"ideographic space at end", "a@b.c\u3000", false},
		{"byte order mark at start", "\ufeffa@b.c", false},
		{"line separator", "a@b\u2028.c", false},
		{"paragraph separator", "a\u2029@b.c", false},
		{"narrow no-break space", "a@b.\u202fc", false},
		{"non-ascii letters", "ada@bücher.de", true},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidEmail(tt.input); got != tt.want {
				t.Errorf("ValidEmail(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNew_StampsUTCOnce(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	now := time.Date(2026, 3, 1, 14, 30, 0, 123_000_000, loc)

	r := New("Ada Lovelace", "1234567890", "ada@x.io", now)

	if !r.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want instant %v", r.CreatedAt, now)
	}
	if r.CreatedAt.Location() != time.UTC {
		t.Errorf("CreatedAt location = %v, want UTC", r.CreatedAt.Location())
	}
}

func TestRecord_Row(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 30, 45, 678_000_000, time.UTC)
	r := New("Ada Lovelace", "1234567890", "ada@x.io", now)

	want := []string{"Ada Lovelace", "1234567890", "ada@x.io", "2026-03-01T12:30:45.678Z"}
	if diff := cmp.Diff(want, r.Row()); diff != "" {
		t.Errorf("Row() mismatch (-want +got):\n%s", diff)
	}
	if len(r.Row()) != len(Header) {
		t.Errorf("row has %d columns, header has %d", len(r.Row()), len(Header))
	}
}

func TestRecord_Complete(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		rec  Record
		want bool
	}{
		{"all fields", New("a", "1234567890", "a@b.c", now), true},
		{"no name", New("", "1234567890", "a@b.c", now), false},
		{"no number", New("a", "", "a@b.c", now), false},
		{"no email", New("a", "1234567890", "", now), false},
		{"zero time", Record{Name: "a", Number: "1234567890", Email: "a@b.c"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.Complete(); got != tt.want {
				t.Errorf("Complete() = %v, want %v", got, tt.want)
			}
		})
	}
}

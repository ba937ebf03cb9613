package daterange

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const Layout = "2006-01-02"

var ErrMalformedDate = errors.New("malformed date")

// Date is a calendar date without time of day. The zero value is the unspecified date,
// which is distinct from a malformed one: malformed input never produces a Date.
type Date struct {
	t   time.Time
	set bool
}

func DateOf(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), set: true}
}

func FromTime(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	return DateOf(t.Year(), t.Month(), t.Day())
}

// ParseDate accepts YYYY-MM-DD, or an RFC3339 timestamp truncated to its date. Blank input is unspecified.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	if t, err := time.Parse(Layout, s); err == nil {
		return FromTime(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return FromTime(t), nil
	}
	return Date{}, fmt.Errorf("%w: '%s'", ErrMalformedDate, s)
}

func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) Specified() bool {
	return d.set
}

func (d Date) Time() time.Time {
	return d.t
}

func (d Date) Before(o Date) bool {
	return d.t.Before(o.t)
}

func (d Date) After(o Date) bool {
	return d.t.After(o.t)
}

func (d Date) Equal(o Date) bool {
	return d.set == o.set && d.t.Equal(o.t)
}

func (d Date) AddDays(n int) Date {
	if !d.set {
		return d
	}
	return FromTime(d.t.AddDate(0, 0, n))
}

func (d Date) String() string {
	if !d.set {
		return ""
	}
	return d.t.Format(Layout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if !d.set {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// UnmarshalParam lets gin bind dates from query strings and forms.
func (d *Date) UnmarshalParam(param string) error {
	parsed, err := ParseDate(param)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

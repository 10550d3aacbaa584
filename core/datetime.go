package core

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	naiveLayout      = "2006-01-02T15:04:05"
	naiveMicroLayout = "2006-01-02T15:04:05.000000"
)

var (
	zonedLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04Z07:00",
		"2006-01-02 15:04:05.999999999Z07:00",
	}
	naiveLayouts = []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02 15:04",
		"2006-01-02",
	}
)

// ParseError is returned when a date string is not a valid ISO-8601 date or datetime.
type ParseError struct {
	Value string
	Err   error
}

func (err *ParseError) Error() string {
	return fmt.Sprintf("invalid ISO-8601 datetime %q", err.Value)
}

func (err *ParseError) Unwrap() error { return err.Err }

// DateTime is an ISO-8601 datetime which remembers whether it was given with a zone offset.
// Naive values are read in the local zone and written back without an offset.
type DateTime struct {
	time.Time
	zoned bool
}

func NewDateTime(t time.Time) DateTime {
	return DateTime{Time: t, zoned: true}
}

// NaiveDateTime returns a DateTime in the local zone that renders without an offset.
func NaiveDateTime(year int, month time.Month, day, hour, min int) DateTime {
	return DateTime{Time: time.Date(year, month, day, hour, min, 0, 0, time.Local)}
}

// ParseDateTime parses `s` as an ISO-8601 date or datetime, with or without zone offset.
func ParseDateTime(s string) (DateTime, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range zonedLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return DateTime{Time: t, zoned: true}, nil
		}
		lastErr = err
	}
	for _, layout := range naiveLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return DateTime{Time: t}, nil
		}
		lastErr = err
	}
	return DateTime{}, &ParseError{Value: s, Err: lastErr}
}

func (dt DateTime) Zoned() bool { return dt.zoned }

func (dt DateTime) String() string {
	if dt.zoned {
		return dt.Time.Format(time.RFC3339Nano)
	}
	if dt.Time.Nanosecond() != 0 {
		return dt.Time.Format(naiveMicroLayout)
	}
	return dt.Time.Format(naiveLayout)
}

func (dt DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(dt.String())
}

func (dt *DateTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*dt = DateTime{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &ParseError{Value: string(data), Err: err}
	}
	parsed, err := ParseDateTime(s)
	if err != nil {
		return err
	}
	*dt = parsed
	return nil
}

func (dt DateTime) MarshalText() ([]byte, error) {
	return []byte(dt.String()), nil
}

func (dt *DateTime) UnmarshalText(text []byte) error {
	parsed, err := ParseDateTime(string(text))
	if err != nil {
		return err
	}
	*dt = parsed
	return nil
}

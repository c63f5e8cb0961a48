package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// DateLayout is the wire and storage format of Date.
const DateLayout = "2006-01-02"

// Date is a calendar day stored in a date column. It marshals to JSON as
// "YYYY-MM-DD" whatever the driver hands back (time.Time on Postgres, text on SQLite).
type Date string

// ParseDate validates s as YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", err
	}
	return Date(s), nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(d))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil {
		*d = ""
		return nil
	}
	*d = Date(normalizeDate(*s))
	return nil
}

// Scan implements sql.Scanner.
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = ""
	case time.Time:
		*d = Date(v.Format(DateLayout))
	case []byte:
		*d = Date(normalizeDate(string(v)))
	case string:
		*d = Date(normalizeDate(v))
	default:
		return errors.New("unsupported type for Date")
	}
	return nil
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	if d == "" {
		return nil, nil
	}
	return string(d), nil
}

// normalizeDate keeps the day part of timestamps such as 2024-05-01T00:00:00Z.
func normalizeDate(s string) string {
	if len(s) > len(DateLayout) {
		if _, err := time.Parse(DateLayout, s[:len(DateLayout)]); err == nil {
			return s[:len(DateLayout)]
		}
	}
	return s
}

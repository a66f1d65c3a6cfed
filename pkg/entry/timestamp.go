package entry

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	layoutDay     = "2006-01-02"
	layoutDisplay = "January 02, 2006 15:04"
)

func ParseTime(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// ParseDay parses a day key as produced by Timestamp.DayKey.
func ParseDay(v string) (time.Time, error) {
	return time.Parse(layoutDay, v)
}

type Timestamp struct {
	time.Time
}

// DayKey is the date segment of the timestamp as written, without any
// conversion to the local zone.
func (t Timestamp) DayKey() string {
	if t.IsZero() {
		return ""
	}
	return t.Format(layoutDay)
}

// Display formats the timestamp for people, in the local zone.
func (t Timestamp) Display() string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(layoutDisplay)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", FormatTime(t.Time))), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var timestamp string
	if err := json.Unmarshal(b, &timestamp); err != nil {
		return err
	}
	if timestamp == "" {
		t.Time = time.Time{}
		return nil
	}
	var err error
	t.Time, err = ParseTime(timestamp)
	return err
}

func (t Timestamp) String() string {
	return FormatTime(t.Time)
}

// FormatTime renders v as RFC 3339 in its own offset, so a timestamp read
// from a document is written back unchanged.
func FormatTime(v time.Time) string {
	return v.Format(time.RFC3339Nano)
}

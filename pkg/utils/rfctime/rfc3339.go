package rfctime

import (
	"bytes"
	"encoding/json"
	"time"
)

// Timestamps in biosimulation documents (OMEX metadata, simulator registry
// records) are RFC3339 date-times with second resolution in UTC, like
// "2020-04-13T12:00:00Z".
const RFC3339SecondUTC string = "2006-01-02T15:04:05Z"

// date-time in https://www.ietf.org/rfc/rfc3339.txt .
//
// This type is useful to interchange timestamps via network/file.
// It stringifies in UTC with second resolution.
type RFC3339 time.Time

func New(t time.Time) RFC3339 {
	return RFC3339(t.UTC().Truncate(time.Second))
}

func (t RFC3339) Time() time.Time {
	return time.Time(t)
}

func (t RFC3339) IsZero() bool {
	return time.Time(t).IsZero()
}

// return true when this and other point the same instant.
func (t RFC3339) Equal(other RFC3339) bool {
	return t.Time().Equal(other.Time())
}

func (t RFC3339) String() string {
	return time.Time(t).UTC().Format(RFC3339SecondUTC)
}

// Parse string as RFC3339 date-time.
//
// Both "Z" and numeric offsets are accepted; the value is normalized to UTC.
func Parse(s string) (RFC3339, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return RFC3339{}, err
	}
	return New(t), nil
}

// implement encoding/json.Marshaler
func (t RFC3339) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// implement encoding/json.Unmarshaler
func (t *RFC3339) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}

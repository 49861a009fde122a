package timex

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// layouts accepted by Time.UnmarshalJSON. The diary API serializes
// timestamps either with a zone (RFC 3339) or as a bare local date-time.
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Time is a timestamp that tolerates the formats used by the diary API.
// A JSON null or empty string yields the zero value.
type Time struct {
	time.Time
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}

func (t *Time) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unsupported timestamp %q", s)
}

// Now returns the current time truncated to microseconds, which is the
// precision the API keeps.
func Now() Time {
	return Time{Time: time.Now().UTC().Truncate(time.Microsecond)}
}

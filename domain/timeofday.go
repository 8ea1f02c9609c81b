package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// storedTimeLayout is the wall-clock format used at every storage and wire boundary.
const storedTimeLayout = "15:04:05"

// TimeOfDay represents a wall-clock time with no date or timezone component.
// It is used for product availability windows and is serialized as "HH:MM:SS".
type TimeOfDay struct {
	Hour   int // Hour of the day, 0-23.
	Minute int // Minute of the hour, 0-59.
	Second int // Second of the minute, 0-59.
}

// ParseTimeOfDay parses a "HH:MM:SS" string into a TimeOfDay.
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	parsed, err := time.Parse(storedTimeLayout, value)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("parsing time of day %q : %w", value, err)
	}
	return TimeOfDay{
		Hour:   parsed.Hour(),
		Minute: parsed.Minute(),
		Second: parsed.Second(),
	}, nil
}

// String returns the "HH:MM:SS" representation.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// Before reports whether t is earlier in the day than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.seconds() < other.seconds()
}

func (t TimeOfDay) seconds() int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

// MarshalJSON implements json.Marshaler, producing a "HH:MM:SS" string.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements json.Unmarshaler, accepting a "HH:MM:SS" string.
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("unmarshalling time of day : %w", err)
	}
	parsed, err := ParseTimeOfDay(value)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// EqualTimes compares two optional times of day, treating nil as "no value".
func EqualTimes(a, b *TimeOfDay) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

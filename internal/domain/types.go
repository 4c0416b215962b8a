package domain

import (
	"fmt"
	"strings"
)

// Mode represents how a session is delivered.
type Mode int

const (
	F2F Mode = iota
	Online
)

func (m Mode) String() string {
	if m == Online {
		return "Online"
	}
	return "F2F"
}

// Availability is a four-valued ordinal describing how willing an
// instructor is to take a given (day, hour, mode) cell. The order
// matters: aggregating a multi-hour session takes the minimum.
type Availability uint8

const (
	Impossible Availability = iota
	Dislike
	Possible
	Preferred
)

// AllAvailabilities lists the levels from least to most willing.
var AllAvailabilities = [4]Availability{Impossible, Dislike, Possible, Preferred}

var availabilityNames = [4]string{"Impossible", "Dislike", "Possible", "Preferred"}

func (a Availability) String() string {
	if int(a) >= len(availabilityNames) {
		return "INVALID_AVAILABILITY"
	}
	return availabilityNames[a]
}

// ParseAvailability accepts the level names case-insensitively.
func ParseAvailability(s string) (Availability, error) {
	lowered := strings.ToLower(strings.TrimSpace(s))
	for i, name := range availabilityNames {
		if lowered == strings.ToLower(name) {
			return Availability(i), nil
		}
	}
	return 0, fmt.Errorf("bad availability %q", s)
}

// MinAvailability models "availability of the least available
// constituent hour".
func MinAvailability(a, b Availability) Availability {
	if b < a {
		return b
	}
	return a
}

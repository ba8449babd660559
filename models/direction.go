package models

import (
	"fmt"
	"strings"
)

// Direction is the attendance event type.
type Direction string

const (
	DirectionIn  Direction = "IN"
	DirectionOut Direction = "OUT"
)

// ParseDirection accepts "in"/"out" in any case.
func ParseDirection(raw string) (Direction, error) {
	switch d := Direction(strings.ToUpper(strings.TrimSpace(raw))); d {
	case DirectionIn, DirectionOut:
		return d, nil
	default:
		return "", fmt.Errorf("invalid direction %q: must be IN or OUT", raw)
	}
}

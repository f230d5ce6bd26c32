package enums

import "fmt"

// ScheduleType tags what a dated schedule was created from.
type ScheduleType string

const (
	ScheduleTypeService    ScheduleType = "service"
	ScheduleTypeEvent      ScheduleType = "event"
	ScheduleTypeStandalone ScheduleType = "standalone"
)

var validScheduleTypes = []ScheduleType{
	ScheduleTypeService,
	ScheduleTypeEvent,
	ScheduleTypeStandalone,
}

// String implements fmt.Stringer.
func (s ScheduleType) String() string {
	return string(s)
}

// IsValid reports whether the value matches a known ScheduleType.
func (s ScheduleType) IsValid() bool {
	for _, candidate := range validScheduleTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseScheduleType converts raw input into a ScheduleType.
func ParseScheduleType(value string) (ScheduleType, error) {
	for _, candidate := range validScheduleTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid schedule type %q", value)
}

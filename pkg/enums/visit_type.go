package enums

import "fmt"

// VisitType classifies the purpose of a scheduled visit.
type VisitType string

const (
	VisitTypeFirst       VisitType = "first"
	VisitTypePaid        VisitType = "paid"
	VisitTypeEmergency   VisitType = "emergency"
	VisitTypeTechnical   VisitType = "technical"
	VisitTypePeriodic    VisitType = "periodic"
	VisitTypeWorkplace   VisitType = "workplace"
	VisitTypeObservation VisitType = "observation"
	VisitTypeFinal       VisitType = "final"
)

var validVisitTypes = []VisitType{
	VisitTypeFirst,
	VisitTypePaid,
	VisitTypeEmergency,
	VisitTypeTechnical,
	VisitTypePeriodic,
	VisitTypeWorkplace,
	VisitTypeObservation,
	VisitTypeFinal,
}

// String implements fmt.Stringer.
func (v VisitType) String() string {
	return string(v)
}

// IsValid reports whether the value is a known VisitType.
func (v VisitType) IsValid() bool {
	for _, candidate := range validVisitTypes {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseVisitType converts raw input into a VisitType.
func ParseVisitType(value string) (VisitType, error) {
	for _, candidate := range validVisitTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid visit type %q", value)
}

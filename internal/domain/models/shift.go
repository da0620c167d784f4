package models

import "fmt"

// ShiftKey identifies one of the three fixed front-desk rotation slots.
type ShiftKey string

const (
	ShiftMorning   ShiftKey = "morning"
	ShiftAfternoon ShiftKey = "afternoon"
	ShiftNight     ShiftKey = "night"
)

// shiftOrder is the fixed rotation cycle. Exactly one shift is active at a
// time and handover always advances to the next slot in this order.
var shiftOrder = [3]ShiftKey{ShiftMorning, ShiftAfternoon, ShiftNight}

var shiftLabels = map[ShiftKey]string{
	ShiftMorning:   "Mañana",
	ShiftAfternoon: "Tarde",
	ShiftNight:     "Noche",
}

var shiftHours = map[ShiftKey]string{
	ShiftMorning:   "07:00–15:00",
	ShiftAfternoon: "15:00–23:00",
	ShiftNight:     "23:00–07:00",
}

// Valid reports whether k is one of the three known rotation slots.
func (k ShiftKey) Valid() bool {
	_, ok := shiftLabels[k]
	return ok
}

// Next returns the slot that follows k in the rotation cycle.
func (k ShiftKey) Next() ShiftKey {
	for i, key := range shiftOrder {
		if key == k {
			return shiftOrder[(i+1)%len(shiftOrder)]
		}
	}
	return ShiftMorning
}

// Label returns the display name used on reports and persisted records.
func (k ShiftKey) Label() string {
	return shiftLabels[k]
}

// Hours returns the slot's staffed hour range.
func (k ShiftKey) Hours() string {
	return shiftHours[k]
}

// ParseShiftKey validates a raw shift identifier.
func ParseShiftKey(raw string) (ShiftKey, error) {
	key := ShiftKey(raw)
	if !key.Valid() {
		return "", fmt.Errorf("unknown shift key %q", raw)
	}
	return key, nil
}

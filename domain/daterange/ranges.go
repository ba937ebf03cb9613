package daterange

const millisPerDay = 86_400_000

// Range is a closed interval of calendar dates; either bound may be unspecified.
type Range struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

func Of(start, end Date) Range {
	return Range{Start: start, End: end}
}

// PermissiveWhenUnspecified reports whether a check must pass because some bound is still unknown.
// Partial input is not a violation until both ends are known.
func PermissiveWhenUnspecified(bounds ...Date) bool {
	for _, b := range bounds {
		if !b.Specified() {
			return true
		}
	}
	return false
}

func IsRangeValid(start, end Date) bool {
	if PermissiveWhenUnspecified(start, end) {
		return true
	}
	return !start.After(end)
}

func (r Range) Valid() bool {
	return IsRangeValid(r.Start, r.End)
}

// IsChildWithinParent checks inclusive containment of child in parent.
func IsChildWithinParent(parent, child Range) bool {
	if PermissiveWhenUnspecified(parent.Start, parent.End, child.Start, child.End) {
		return true
	}
	return !child.Start.Before(parent.Start) && !child.End.After(parent.End)
}

func (r Range) Contains(child Range) bool {
	return IsChildWithinParent(r, child)
}

// DurationDays returns end - start in days; ok is false when a bound is unspecified.
func DurationDays(start, end Date) (days float64, ok bool) {
	if PermissiveWhenUnspecified(start, end) {
		return 0, false
	}
	return float64(end.Time().Sub(start.Time()).Milliseconds()) / millisPerDay, true
}

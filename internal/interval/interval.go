// Package interval holds the half-open interval arithmetic shared by
// conflict detection and task visibility.
package interval

import "time"

// Overlaps reports whether [aStart, aEnd) intersects [bStart, bEnd).
// Touching endpoints do NOT count: a booking ending exactly when an
// availability range starts is not a conflict.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// OverlapsTime is Overlaps for instants.
func OverlapsTime(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Contains reports whether [innerStart, innerEnd) lies entirely inside
// [outerStart, outerEnd). Strictly stronger than Overlaps: conflict
// detection requires containment, task visibility only overlap, and the
// asymmetry is deliberate.
func Contains(outerStart, outerEnd, innerStart, innerEnd int) bool {
	return outerStart <= innerStart && innerEnd <= outerEnd
}

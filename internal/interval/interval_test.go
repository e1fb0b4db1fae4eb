package interval

import "testing"

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd int
		want                       bool
	}{
		{"partial overlap", 540, 600, 570, 660, true},
		{"contained", 480, 1020, 540, 600, true},
		{"identical", 540, 600, 540, 600, true},
		{"disjoint", 480, 540, 600, 660, false},
		{"touching endpoints are not overlap", 480, 540, 540, 600, false},
		{"touching the other way", 540, 600, 480, 540, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd); got != tt.want {
				t.Errorf("Overlaps(%d,%d,%d,%d) = %v, want %v",
					tt.aStart, tt.aEnd, tt.bStart, tt.bEnd, got, tt.want)
			}

			// Overlap is symmetric for every pair.
			if got := Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd); got != tt.want {
				t.Errorf("Overlaps is not symmetric for %s", tt.name)
			}
		})
	}
}

func TestContains(t *testing.T) {
	// 08:00-17:00 in minutes
	outerStart, outerEnd := 480, 1020

	tests := []struct {
		name                 string
		innerStart, innerEnd int
		want                 bool
	}{
		{"fully inside", 540, 600, true},
		{"exact match", 480, 1020, true},
		{"touching start", 480, 540, true},
		{"touching end", 960, 1020, true},
		{"starts before", 420, 600, false},
		{"ends after", 960, 1080, false},
		{"fully outside", 1080, 1200, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Contains(outerStart, outerEnd, tt.innerStart, tt.innerEnd); got != tt.want {
				t.Errorf("Contains(%d,%d,%d,%d) = %v, want %v",
					outerStart, outerEnd, tt.innerStart, tt.innerEnd, got, tt.want)
			}
		})
	}
}

// Containment is strictly stronger than overlap: 07:00-10:00 overlaps the
// 08:00-17:00 range but is not contained in it.
func TestContainsStrongerThanOverlaps(t *testing.T) {
	outerStart, outerEnd := 480, 1020 // 08:00-17:00
	innerStart, innerEnd := 420, 600  // 07:00-10:00

	if !Overlaps(innerStart, innerEnd, outerStart, outerEnd) {
		t.Fatal("expected overlap")
	}
	if Contains(outerStart, outerEnd, innerStart, innerEnd) {
		t.Fatal("expected no containment")
	}
}

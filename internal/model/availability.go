package model

// TimeRange is a contiguous time-of-day interval on a single weekday.
// The store keeps whatever the UI sends: ranges may be unsorted, may
// overlap, and a range being edited may transiently have start >= end.
// Consumers tolerate all of that.
type TimeRange struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

// DailyAvailability is one weekday's slice of the recurring template.
type DailyAvailability struct {
	Enabled bool        `json:"enabled"`
	Ranges  []TimeRange `json:"ranges"`
}

// clone deep-copies the day so snapshot mutations never share range slices.
func (d DailyAvailability) clone() DailyAvailability {
	out := DailyAvailability{Enabled: d.Enabled}
	if d.Ranges != nil {
		out.Ranges = make([]TimeRange, len(d.Ranges))
		copy(out.Ranges, d.Ranges)
	}
	return out
}

// WeeklyAvailability maps each of the seven weekdays to its availability.
// It is persisted as a whole snapshot, never diffed.
type WeeklyAvailability map[Weekday]DailyAvailability

// DefaultWeeklyAvailability returns the canonical starting template:
// every day enabled with a single 08:00–17:00 range.
func DefaultWeeklyAvailability() WeeklyAvailability {
	w := make(WeeklyAvailability, len(Weekdays))
	for _, day := range Weekdays {
		w[day] = DailyAvailability{
			Enabled: true,
			Ranges: []TimeRange{
				{Start: TimeOfDay{Hour: 8}, End: TimeOfDay{Hour: 17}},
			},
		}
	}
	return w
}

// Clone deep-copies the snapshot.
func (w WeeklyAvailability) Clone() WeeklyAvailability {
	out := make(WeeklyAvailability, len(w))
	for day, daily := range w {
		out[day] = daily.clone()
	}
	return out
}

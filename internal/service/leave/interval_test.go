package leave

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workmate-hq/attendance-backend-go/internal/domain/leave"
)

func intPtr(v int) *int { return &v }

func TestOverlaps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"disjoint", Interval{100, 200}, Interval{300, 400}, false},
		{"touching boundary", Interval{100, 200}, Interval{200, 300}, false},
		{"touching boundary reversed", Interval{200, 300}, Interval{100, 200}, false},
		{"partial overlap", Interval{100, 200}, Interval{150, 250}, true},
		{"contained", Interval{100, 400}, Interval{200, 300}, true},
		{"identical", Interval{100, 200}, Interval{100, 200}, true},
		{"one-minute overlap", Interval{100, 201}, Interval{200, 300}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.a, tt.b))
			assert.Equal(t, tt.want, Overlaps(tt.b, tt.a), "overlap must be symmetric")
		})
	}
}

func TestIntervals_FullDaySpansEachDay(t *testing.T) {
	t.Parallel()

	got := Intervals(leave.DurationFullDay, date(2024, 1, 15), date(2024, 1, 17), nil, nil)
	require.Len(t, got, 3)

	for i, iv := range got {
		assert.Equal(t, int64(workdayEndMinute-workdayStartMinute), iv.End-iv.Start, "day %d", i)
	}
	// Consecutive days are a day apart and never overlap each other.
	for i := 1; i < len(got); i++ {
		assert.Equal(t, int64(24*60), got[i].Start-got[i-1].Start)
		assert.False(t, Overlaps(got[i-1], got[i]))
	}
}

func TestIntervals_HalfDays(t *testing.T) {
	t.Parallel()

	day := date(2024, 1, 15)
	am := Intervals(leave.DurationHalfDayAM, day, day, nil, nil)
	pm := Intervals(leave.DurationHalfDayPM, day, day, nil, nil)
	full := Intervals(leave.DurationFullDay, day, day, nil, nil)

	require.Len(t, am, 1)
	require.Len(t, pm, 1)
	require.Len(t, full, 1)

	assert.Equal(t, int64(4*60), am[0].End-am[0].Start)
	assert.Equal(t, int64(4*60), pm[0].End-pm[0].Start)

	// AM and PM halves of the same day never collide, both collide with a
	// full day.
	assert.False(t, Overlaps(am[0], pm[0]))
	assert.True(t, Overlaps(am[0], full[0]))
	assert.True(t, Overlaps(pm[0], full[0]))
}

func TestIntervals_QuarterDay(t *testing.T) {
	t.Parallel()

	day := date(2024, 1, 15)

	got := Intervals(leave.DurationQuarterDay, day, day, intPtr(10*60), intPtr(12*60))
	require.Len(t, got, 1)
	assert.Equal(t, int64(QuarterDayMinutes), got[0].End-got[0].Start)

	am := Intervals(leave.DurationHalfDayAM, day, day, nil, nil)
	assert.True(t, Overlaps(got[0], am[0]))

	// A quarter starting right where the AM half ends only touches it.
	touching := Intervals(leave.DurationQuarterDay, day, day, intPtr(13*60), intPtr(15*60))
	require.Len(t, touching, 1)
	assert.False(t, Overlaps(touching[0], am[0]))

	// Without both clock times there is nothing to check against.
	assert.Nil(t, Intervals(leave.DurationQuarterDay, day, day, nil, nil))
	assert.Nil(t, Intervals(leave.DurationQuarterDay, day, day, intPtr(10*60), nil))
}

func TestIntervals_SameClockDifferentDays(t *testing.T) {
	t.Parallel()

	monday := Intervals(leave.DurationHalfDayAM, date(2024, 1, 15), date(2024, 1, 15), nil, nil)
	tuesday := Intervals(leave.DurationHalfDayAM, date(2024, 1, 16), date(2024, 1, 16), nil, nil)
	assert.False(t, Overlaps(monday[0], tuesday[0]))
}

func TestNominalDays(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 7.0, NominalDays(leave.DurationFullDay, date(2024, 1, 15), date(2024, 1, 21)))
	assert.Equal(t, 1.0, NominalDays(leave.DurationFullDay, date(2024, 1, 15), date(2024, 1, 15)))
	assert.Equal(t, 0.5, NominalDays(leave.DurationHalfDayAM, date(2024, 1, 15), date(2024, 1, 15)))
	assert.Equal(t, 0.5, NominalDays(leave.DurationHalfDayPM, date(2024, 1, 15), date(2024, 1, 15)))
	assert.Equal(t, 0.25, NominalDays(leave.DurationQuarterDay, date(2024, 1, 15), date(2024, 1, 15)))
}

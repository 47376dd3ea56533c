package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
	return time.Date(2024, 6, 10, hour, min, 0, 0, time.UTC)
}

func TestIntervalOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a    Interval
		b    Interval
		want bool
	}{
		{
			name: "identical intervals overlap",
			a:    Interval{at(9, 0), at(9, 30)},
			b:    Interval{at(9, 0), at(9, 30)},
			want: true,
		},
		{
			name: "partial overlap",
			a:    Interval{at(9, 0), at(10, 0)},
			b:    Interval{at(9, 30), at(10, 30)},
			want: true,
		},
		{
			name: "containment overlaps",
			a:    Interval{at(9, 0), at(12, 0)},
			b:    Interval{at(10, 0), at(10, 30)},
			want: true,
		},
		{
			name: "touching ends do not overlap",
			a:    Interval{at(9, 0), at(9, 30)},
			b:    Interval{at(9, 30), at(10, 0)},
			want: false,
		},
		{
			name: "touching ends reversed order",
			a:    Interval{at(9, 30), at(10, 0)},
			b:    Interval{at(9, 0), at(9, 30)},
			want: false,
		},
		{
			name: "disjoint",
			a:    Interval{at(9, 0), at(9, 30)},
			b:    Interval{at(11, 0), at(11, 30)},
			want: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.want, tc.b.Overlaps(tc.a), "overlap must be symmetric")
		})
	}
}

package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/VelourStudioApp/salon-scheduler/internal/models"
)

func TestWithinWorkingHours(t *testing.T) {
	wh := &models.WorkingHours{
		Active:     true,
		StartTime:  "09:00",
		EndTime:    "18:00",
		LunchStart: "12:00",
		LunchEnd:   "13:00",
	}

	slot := func(startHM string, minutes int) (time.Time, time.Time) {
		hm, _ := time.Parse("15:04", startHM)
		start := time.Date(2026, 3, 10, hm.Hour(), hm.Minute(), 0, 0, time.UTC)
		return start, start.Add(time.Duration(minutes) * time.Minute)
	}

	ok := func(startHM string, minutes int) bool {
		s, e := slot(startHM, minutes)
		return WithinWorkingHours(wh, s, e)
	}

	assert.True(t, ok("09:00", 60))
	assert.True(t, ok("13:00", 60))
	assert.True(t, ok("17:00", 60))

	assert.False(t, ok("08:30", 60), "before opening")
	assert.False(t, ok("17:30", 60), "runs past closing")
	assert.False(t, ok("11:30", 60), "overlaps lunch start")
	assert.False(t, ok("12:30", 60), "inside lunch")

	s, e := slot("10:00", 30)
	assert.False(t, WithinWorkingHours(nil, s, e), "no schedule for the day")
	assert.False(t, WithinWorkingHours(&models.WorkingHours{Active: false}, s, e), "day off")
}

package booking

import (
	"context"
	"time"

	domain "github.com/VelourStudioApp/salon-scheduler/internal/domain/booking"
	"github.com/VelourStudioApp/salon-scheduler/internal/httperr"
)

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute lists the free slots of one stylist for one day, stepped
// by the service duration. Booked (non-cancelled) slots and the
// lunch break are cut out.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	salonID uint,
	stylistID uint,
	serviceID uint,
	date time.Time,
) ([]TimeSlot, error) {

	svc, err := uc.repo.GetService(ctx, salonID, serviceID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidSelection)
	}

	weekday := int(date.Weekday())
	wh, err := uc.repo.GetWorkingHours(ctx, stylistID, weekday)
	if err != nil || !wh.Active {
		return []TimeSlot{}, nil
	}

	loc := date.Location()
	parseHM := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(
			date.Year(), date.Month(), date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		)
	}

	dayStart := parseHM(wh.StartTime)
	dayEnd := parseHM(wh.EndTime)

	hasLunch := wh.LunchStart != "" && wh.LunchEnd != ""
	var lunchStart, lunchEnd time.Time
	if hasLunch {
		lunchStart = parseHM(wh.LunchStart)
		lunchEnd = parseHM(wh.LunchEnd)
	}

	bookings, err := uc.repo.ListBookingsForPeriod(
		ctx,
		salonID,
		&stylistID,
		dayStart,
		dayStart.AddDate(0, 0, 1),
	)
	if err != nil {
		return nil, err
	}

	taken := map[string]bool{}
	for i := range bookings {
		if domain.Blocks(domain.Status(bookings[i].Status)) {
			taken[bookings[i].TimeOfDay] = true
		}
	}

	slotDuration := time.Duration(svc.DurationMin) * time.Minute
	var slots []TimeSlot

	for cur := dayStart; !cur.Add(slotDuration).After(dayEnd); cur = cur.Add(slotDuration) {
		slotStart := cur
		slotEnd := cur.Add(slotDuration)

		if hasLunch && slotStart.Before(lunchEnd) && slotEnd.After(lunchStart) {
			continue
		}

		if taken[slotStart.Format("15:04")] {
			continue
		}

		slots = append(slots, TimeSlot{
			Start: slotStart.Format("15:04"),
			End:   slotEnd.Format("15:04"),
		})
	}

	return slots, nil
}

package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/VelourStudioApp/salon-scheduler/internal/domain/booking"
	"github.com/VelourStudioApp/salon-scheduler/internal/models"
	"github.com/VelourStudioApp/salon-scheduler/internal/notify"
	"github.com/VelourStudioApp/salon-scheduler/internal/timezone"
)

const lockKey = "salon:reminder-scheduler:lock"

// ReminderScheduler periodically finds bookings one day ahead whose
// time-of-day matches the current hour and enqueues one reminder per
// consented channel. Delivery is at-least-once; the outbox ledger is
// the dedup source of truth, and its unique index backstops a pass
// that races its own re-run.
type ReminderScheduler struct {
	repo          domain.Repository
	outbox        notify.Outbox
	rdb           *redis.Client
	interval      time.Duration
	lookaheadDays int

	now func() time.Time
}

func NewReminderScheduler(
	repo domain.Repository,
	outbox notify.Outbox,
	rdb *redis.Client,
	interval time.Duration,
	lookaheadDays int,
) *ReminderScheduler {
	if lookaheadDays <= 0 {
		lookaheadDays = 1
	}
	return &ReminderScheduler{
		repo:          repo,
		outbox:        outbox,
		rdb:           rdb,
		interval:      interval,
		lookaheadDays: lookaheadDays,
		now:           timezone.Now,
	}
}

func (s *ReminderScheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Printf("reminder scheduler started (interval %s)", s.interval)

	for {
		select {
		case <-ctx.Done():
			log.Println("reminder scheduler stopped")
			return
		case <-ticker.C:
			if err := s.RunOnce(ctx); err != nil {
				log.Printf("reminder pass failed: %v", err)
			}
		}
	}
}

// RunOnce executes a single reminder pass. The redis lock keeps a
// second instance from scanning the same hour; losing the lock is
// not an error.
func (s *ReminderScheduler) RunOnce(ctx context.Context) error {
	if s.rdb != nil {
		ok, err := s.rdb.SetNX(ctx, lockKey, "1", s.interval/2).Result()
		if err != nil {
			return fmt.Errorf("scheduler lock: %w", err)
		}
		if !ok {
			return nil
		}
	}

	now := s.now()
	target := now.AddDate(0, 0, s.lookaheadDays)

	bookings, err := s.repo.ListBookingsDueForReminder(ctx, target, now.Hour())
	if err != nil {
		return err
	}

	for i := range bookings {
		s.remind(ctx, &bookings[i])
	}

	return nil
}

func (s *ReminderScheduler) remind(ctx context.Context, b *models.Booking) {
	body := fmt.Sprintf(
		"Reminder: your appointment at %s is tomorrow at %s.",
		b.Salon.Name, b.TimeOfDay,
	)

	type target struct {
		channel     string
		destination string
		subject     string
		optedOut    bool
	}

	targets := []target{
		{notify.ChannelEmail, b.Client.Email, "Appointment reminder", b.Client.EmailOptOut},
		{notify.ChannelSMS, b.Client.Phone, "", b.Client.SMSOptOut},
	}

	for _, t := range targets {
		if t.optedOut || t.destination == "" {
			continue
		}

		sent, err := s.outbox.Exists(ctx, b.ID, notify.KindReminder, t.channel)
		if err != nil {
			log.Printf("reminder dedup check failed for booking %d: %v", b.ID, err)
			continue
		}
		if sent {
			continue
		}

		_, err = s.outbox.Enqueue(ctx, notify.Input{
			Channel:     t.channel,
			Destination: t.destination,
			Subject:     t.subject,
			Body:        body,
			BookingID:   b.ID,
			Kind:        notify.KindReminder,
		})
		if err != nil && !errors.Is(err, notify.ErrDuplicate) {
			log.Printf("reminder enqueue failed for booking %d: %v", b.ID, err)
		}
	}
}

package notify

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/VelourStudioApp/salon-scheduler/internal/models"
)

// ===============================
// Channels / Kinds
// ===============================

const (
	ChannelEmail = "EMAIL"
	ChannelSMS   = "SMS"
)

const (
	KindConfirmation = "CONFIRMATION"
	KindReminder     = "REMINDER"
	KindThankYou     = "THANK_YOU"
)

// ErrDuplicate means a record for the same (booking, kind, channel)
// already exists. The ledger index enforces this, so a racing second
// enqueue loses here instead of producing a second send.
var ErrDuplicate = errors.New("notification already recorded")

type Input struct {
	Channel     string
	Destination string
	Subject     string
	Body        string

	BookingID uint
	Kind      string
}

// Outbox is the durable hand-off to the external dispatcher and the
// dedup ledger the reminder scheduler reads. Append-only.
type Outbox interface {
	Enqueue(ctx context.Context, in Input) (*models.NotificationRecord, error)
	Exists(ctx context.Context, bookingID uint, kind, channel string) (bool, error)
}

// ===============================
// Gorm implementation
// ===============================

type GormOutbox struct {
	db *gorm.DB
}

func NewGormOutbox(db *gorm.DB) *GormOutbox {
	return &GormOutbox{db: db}
}

func (o *GormOutbox) Enqueue(
	ctx context.Context,
	in Input,
) (*models.NotificationRecord, error) {

	rec := models.NotificationRecord{
		BookingID:   in.BookingID,
		Kind:        in.Kind,
		Channel:     in.Channel,
		Destination: in.Destination,
		Subject:     in.Subject,
		Body:        in.Body,
	}

	if err := o.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	return &rec, nil
}

func (o *GormOutbox) Exists(
	ctx context.Context,
	bookingID uint,
	kind string,
	channel string,
) (bool, error) {

	var count int64
	if err := o.db.WithContext(ctx).
		Model(&models.NotificationRecord{}).
		Where(
			"booking_id = ? AND kind = ? AND channel = ?",
			bookingID, kind, channel,
		).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

var _ Outbox = (*GormOutbox)(nil)

package notify

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"carebook/internal/database"
	"carebook/internal/metrics"
	"carebook/internal/model"
)

// BookingSource lists a caregiver's committed bookings.
type BookingSource interface {
	GetBookings(ctx context.Context, caregiverID string) ([]model.Booking, error)
}

// Scheduler fires once a day and reminds every caregiver with a registered
// chat about tomorrow's bookings. Delivery is rate limited so a large
// caregiver base cannot trip Telegram's flood control.
type Scheduler struct {
	db       *database.DB
	bookings BookingSource
	notifier Notifier
	limiter  *rate.Limiter
	sendHour int
	logger   *zerolog.Logger
}

func NewScheduler(db *database.DB, bookings BookingSource, notifier Notifier, ratePerSecond, sendHour int, logger *zerolog.Logger) *Scheduler {
	if ratePerSecond <= 0 {
		ratePerSecond = 20
	}
	return &Scheduler{
		db:       db,
		bookings: bookings,
		notifier: notifier,
		limiter:  rate.NewLimiter(rate.Limit(ratePerSecond), ratePerSecond),
		sendHour: sendHour,
		logger:   logger,
	}
}

// Start blocks until ctx is cancelled. First run waits for the configured
// hour, then repeats every 24h.
func (s *Scheduler) Start(ctx context.Context) {
	wait := timeUntilNextHour(s.sendHour)
	s.logger.Info().Dur("first_run_in", wait).Msg("reminder scheduler started")

	timer := time.NewTimer(wait)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			s.SendDueReminders(ctx)
			timer.Reset(24 * time.Hour)
		}
	}
}

// SendDueReminders sends one reminder per not-yet-reminded booking
// happening tomorrow.
func (s *Scheduler) SendDueReminders(ctx context.Context) {
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	chats, err := s.db.ListCaregiverChats(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("reminder: list caregiver chats")
		return
	}

	for _, chat := range chats {
		bookings, err := s.bookings.GetBookings(ctx, chat.CaregiverID)
		if err != nil {
			s.logger.Error().Err(err).Str("caregiver_id", chat.CaregiverID).Msg("reminder: fetch bookings")
			continue
		}

		for _, b := range bookings {
			if b.Date != tomorrow || !shouldRemindStatus(b.Status) {
				continue
			}

			sent, err := s.db.WasReminderSent(ctx, b.ID)
			if err != nil {
				s.logger.Error().Err(err).Str("booking_id", b.ID).Msg("reminder: check log")
				continue
			}
			if sent {
				continue
			}

			if err := s.limiter.Wait(ctx); err != nil {
				return
			}

			if err := s.notifier.SendMessage(ctx, chat.ChatID, formatReminderMessage(b)); err != nil {
				s.logger.Error().Err(err).Str("booking_id", b.ID).Msg("reminder: send")
				metrics.IncReminderSent("failed")
				continue
			}

			if err := s.db.MarkReminderSent(ctx, b.ID); err != nil {
				s.logger.Error().Err(err).Str("booking_id", b.ID).Msg("reminder: mark sent")
			}
			metrics.IncReminderSent("sent")
		}
	}
}

func timeUntilNextHour(hour int) time.Duration {
	now := time.Now()
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next.Sub(now)
}

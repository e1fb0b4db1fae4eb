package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"carebook/internal/model"
)

// LoadAvailability returns the caregiver's stored snapshot. ok=false when
// the caregiver has never saved one; callers fall back to the default
// template.
func (db *DB) LoadAvailability(ctx context.Context, caregiverID string) (model.WeeklyAvailability, bool, error) {
	var raw string
	err := db.QueryRowContext(ctx,
		"SELECT snapshot FROM availability_snapshots WHERE caregiver_id = ?",
		caregiverID,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var w model.WeeklyAvailability
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		return nil, false, fmt.Errorf("decode snapshot for %s: %w", caregiverID, err)
	}
	return w, true, nil
}

// SaveAvailability stores the whole snapshot, replacing any previous one.
func (db *DB) SaveAvailability(ctx context.Context, caregiverID string, w model.WeeklyAvailability) error {
	raw, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO availability_snapshots (caregiver_id, snapshot, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(caregiver_id) DO UPDATE SET
			snapshot = excluded.snapshot,
			updated_at = excluded.updated_at`,
		caregiverID, string(raw), time.Now())
	return err
}

// SetupComplete reports whether the caregiver has been through initial
// setup. The flag is stored as a 'true'/'false' string.
func (db *DB) SetupComplete(ctx context.Context, caregiverID string) (bool, error) {
	var flag string
	err := db.QueryRowContext(ctx,
		"SELECT setup_complete FROM caregiver_settings WHERE caregiver_id = ?",
		caregiverID,
	).Scan(&flag)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return flag == "true", nil
}

// MarkSetupComplete records that the first availability save has happened.
func (db *DB) MarkSetupComplete(ctx context.Context, caregiverID string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO caregiver_settings (caregiver_id, setup_complete, updated_at)
		VALUES (?, 'true', ?)
		ON CONFLICT(caregiver_id) DO UPDATE SET
			setup_complete = 'true',
			updated_at = excluded.updated_at`,
		caregiverID, time.Now())
	return err
}

// SetTelegramChat registers the caregiver's Telegram chat for reminders.
func (db *DB) SetTelegramChat(ctx context.Context, caregiverID string, chatID int64) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO caregiver_settings (caregiver_id, telegram_chat_id, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(caregiver_id) DO UPDATE SET
			telegram_chat_id = excluded.telegram_chat_id,
			updated_at = excluded.updated_at`,
		caregiverID, chatID, time.Now())
	return err
}

// CaregiverChat pairs a caregiver with a registered Telegram chat.
type CaregiverChat struct {
	CaregiverID string
	ChatID      int64
}

// ListCaregiverChats returns every caregiver with a registered chat.
func (db *DB) ListCaregiverChats(ctx context.Context) ([]CaregiverChat, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT caregiver_id, telegram_chat_id
		FROM caregiver_settings
		WHERE telegram_chat_id != 0
		ORDER BY caregiver_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chats []CaregiverChat
	for rows.Next() {
		var c CaregiverChat
		if err := rows.Scan(&c.CaregiverID, &c.ChatID); err != nil {
			return nil, err
		}
		chats = append(chats, c)
	}
	return chats, rows.Err()
}

// WasReminderSent reports whether a reminder was already sent for the booking.
func (db *DB) WasReminderSent(ctx context.Context, bookingID string) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM reminder_log WHERE booking_id = ?",
		bookingID,
	).Scan(&count)
	return count > 0, err
}

// MarkReminderSent records a sent reminder for deduplication.
func (db *DB) MarkReminderSent(ctx context.Context, bookingID string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO reminder_log (booking_id, sent_at) VALUES (?, ?)
		ON CONFLICT(booking_id) DO UPDATE SET sent_at = excluded.sent_at`,
		bookingID, time.Now())
	return err
}

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"carebook/internal/model"
)

// ReplaceTasks swaps the booking's task list for the one the marketplace
// sent. Tasks without ids get fresh ones; position records the caller's
// order so reads preserve it.
func (db *DB) ReplaceTasks(ctx context.Context, bookingID string, list []model.CareTask) ([]model.CareTask, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM care_tasks WHERE booking_id = ?", bookingID); err != nil {
		return nil, fmt.Errorf("clear tasks: %w", err)
	}

	now := time.Now()
	stored := make([]model.CareTask, len(list))
	for i, t := range list {
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO care_tasks
				(id, booking_id, position, tag, name, description,
				 date, start_time, end_time, completed, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, bookingID, i, string(t.Tag), t.Name, t.Description,
			t.Date, t.StartTime, t.EndTime, t.Completed, now, now,
		); err != nil {
			return nil, fmt.Errorf("insert task %d: %w", i, err)
		}
		stored[i] = t
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return stored, nil
}

// GetTasks returns the booking's tasks in their original order.
func (db *DB) GetTasks(ctx context.Context, bookingID string) ([]model.CareTask, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, tag, name, description, date, start_time, end_time, completed
		FROM care_tasks
		WHERE booking_id = ?
		ORDER BY position`,
		bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.CareTask
	for rows.Next() {
		var t model.CareTask
		var tag string
		var description, date, startTime, endTime sql.NullString
		if err := rows.Scan(&t.ID, &tag, &t.Name, &description,
			&date, &startTime, &endTime, &t.Completed); err != nil {
			return nil, err
		}
		t.Tag = model.TaskTag(tag)
		t.Description = description.String
		t.Date = date.String
		t.StartTime = startTime.String
		t.EndTime = endTime.String
		list = append(list, t)
	}
	return list, rows.Err()
}

// SetTaskCompleted persists a single task's completed flag.
func (db *DB) SetTaskCompleted(ctx context.Context, taskID string, completed bool) error {
	res, err := db.ExecContext(ctx, `
		UPDATE care_tasks SET completed = ?, updated_at = ? WHERE id = ?`,
		completed, time.Now(), taskID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

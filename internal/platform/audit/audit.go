package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// ChangeEntry is a row of the change_log table: one record per successful
// write to a core table.
type ChangeEntry struct {
	ID            uuid.UUID `json:"id"`
	TableName     string    `json:"table_name"`
	OperationType string    `json:"operation_type"`
	RecordID      string    `json:"record_id"`
	ChangedBy     string    `json:"changed_by"`
	ChangedDate   time.Time `json:"changed_date"`
}

// ActivityEntry is a row of the user_activity_log table.
type ActivityEntry struct {
	ID                  uuid.UUID `json:"id"`
	UserName            string    `json:"user_name"`
	ActivityType        string    `json:"activity_type"`
	ActivityDescription string    `json:"activity_description"`
	ActivityTimestamp   time.Time `json:"activity_timestamp"`
}

// ChangeRecorder is the interface domain services use to record data changes.
type ChangeRecorder interface {
	RecordChange(ctx context.Context, tableName, operationType, recordID, changedBy string) error
}

// Logger persists audit rows. Write failures are logged here as well as
// returned, because callers deliberately drop the error: the audit trail
// must never block data capture.
type Logger struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

func NewLogger(pool *pgxpool.Pool, log zerolog.Logger) *Logger {
	return &Logger{pool: pool, log: log}
}

func (l *Logger) RecordChange(ctx context.Context, tableName, operationType, recordID, changedBy string) error {
	_, err := l.pool.Exec(ctx, `
		INSERT INTO change_log (id, table_name, operation_type, record_id, changed_by, changed_date)
		VALUES ($1, $2, $3, $4, $5, NOW())`,
		uuid.New(), tableName, operationType, recordID, changedBy)
	if err != nil {
		l.log.Warn().Err(err).
			Str("table", tableName).
			Str("operation", operationType).
			Msg("failed to record change")
		return fmt.Errorf("record change: %w", err)
	}
	return nil
}

func (l *Logger) RecordActivity(ctx context.Context, userName, activityType, description string) error {
	_, err := l.pool.Exec(ctx, `
		INSERT INTO user_activity_log (id, user_name, activity_type, activity_description, activity_timestamp)
		VALUES ($1, $2, $3, $4, NOW())`,
		uuid.New(), userName, activityType, description)
	if err != nil {
		return fmt.Errorf("record activity: %w", err)
	}
	return nil
}

// RecentChanges returns the newest change_log rows, most recent first.
func (l *Logger) RecentChanges(ctx context.Context, limit int) ([]ChangeEntry, error) {
	rows, err := l.pool.Query(ctx, `
		SELECT id, table_name, operation_type, record_id, changed_by, changed_date
		FROM change_log
		ORDER BY changed_date DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query change log: %w", err)
	}
	defer rows.Close()

	var entries []ChangeEntry
	for rows.Next() {
		var e ChangeEntry
		if err := rows.Scan(&e.ID, &e.TableName, &e.OperationType, &e.RecordID, &e.ChangedBy, &e.ChangedDate); err != nil {
			return nil, fmt.Errorf("scan change entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// RecentActivity returns the newest user_activity_log rows, most recent first.
func (l *Logger) RecentActivity(ctx context.Context, limit int) ([]ActivityEntry, error) {
	rows, err := l.pool.Query(ctx, `
		SELECT id, user_name, activity_type, activity_description, activity_timestamp
		FROM user_activity_log
		ORDER BY activity_timestamp DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query activity log: %w", err)
	}
	defer rows.Close()

	var entries []ActivityEntry
	for rows.Next() {
		var e ActivityEntry
		if err := rows.Scan(&e.ID, &e.UserName, &e.ActivityType, &e.ActivityDescription, &e.ActivityTimestamp); err != nil {
			return nil, fmt.Errorf("scan activity entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/vitornoms1/FinanceManager/internal/logger"
)

type Entry struct {
	UserID     int64
	Action     string
	EntityType string
	EntityID   int64
	Metadata   []byte
}

// Write inserts an audit row; failures are returned so callers can ignore them.
func Write(ctx context.Context, db *pgxpool.Pool, e Entry) error {
	if db == nil {
		return nil
	}

	var metadata interface{}
	if len(e.Metadata) > 0 {
		metadata = json.RawMessage(e.Metadata)
	}

	_, err := db.Exec(ctx, `
		INSERT INTO audit_log (user_id, action, entity_type, entity_id, metadata)
		VALUES ($1, $2, $3, NULLIF($4, 0), $5)`,
		e.UserID, e.Action, e.EntityType, e.EntityID, metadata,
	)
	return err
}

// Record writes an audit row for a finished mutation without blocking the
// request. Errors are logged and dropped.
func Record(db *pgxpool.Pool, userID int64, action, entityType string, entityID int64) {
	if db == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		err := Write(ctx, db, Entry{
			UserID:     userID,
			Action:     action,
			EntityType: entityType,
			EntityID:   entityID,
		})
		if err != nil {
			logger.Warn("audit write failed",
				zap.String("action", action),
				zap.String("entity", entityType),
				zap.Error(err))
		}
	}()
}

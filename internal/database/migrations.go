package database

import (
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"
)

type compositeIndex struct {
	table   string
	name    string
	columns []string
}

// Indexes backing the notification feed and the owner-wide comment cascade.
var compositeIndexes = []compositeIndex{
	{"notifications", "idx_notifications_user_created", []string{"user_id", "created_at"}},
	{"comments", "idx_comments_owner", []string{"board_owner_id", "board_owner_type"}},
	{"board_tasks", "idx_board_tasks_board_position", []string{"board_id", "column_id", "position"}},
}

// AddIndexes adds composite indexes that struct tags cannot express on their own.
func AddIndexes(db *gorm.DB) error {
	migrator := db.Migrator()

	for _, idx := range compositeIndexes {
		if migrator.HasIndex(idx.table, idx.name) {
			slog.Debug("index already exists, skipping", slog.String("index", idx.name))
			continue
		}

		if err := db.Exec(createIndexSQL(idx)).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		slog.Info("created index", slog.String("index", idx.name), slog.String("table", idx.table))
	}

	return nil
}

func createIndexSQL(idx compositeIndex) string {
	return fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, strings.Join(idx.columns, ", "))
}

package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/ryotashiba/project-management-api/internal/models"
)

// Migrate runs schema migrations and creates hot-path indexes.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.Project{},
		&models.Task{},
		&models.Sprint{},
		&models.TimeEntry{},
		&models.Comment{},
		&models.Meeting{},
		&models.Appointment{},
		&models.AppSetting{},
		&models.ApiKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return addIndexes(db)
}

// addIndexes creates composite indexes for the scope predicate's two shapes:
// lookups by organization_id and by (organization_id IS NULL, owner column).
func addIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		{"projects", "idx_projects_scope", "organization_id, user_id"},
		{"tasks", "idx_tasks_scope", "organization_id, user_id"},
		{"tasks", "idx_tasks_project_status", "project_id, status"},
		{"sprints", "idx_sprints_scope", "organization_id, user_id"},
		{"time_entries", "idx_time_entries_scope_date", "organization_id, user_id, date"},
		{"comments", "idx_comments_scope", "organization_id, user_id"},
		{"meetings", "idx_meetings_scope", "organization_id, organizer_id"},
		{"appointments", "idx_appointments_scope", "organization_id, user_id"},
		{"app_settings", "idx_app_settings_scope_key", "organization_id, user_id, key"},
		{"api_keys", "idx_api_keys_scope", "organization_id, user_id"},
	}

	for _, idx := range indexes {
		sql := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}

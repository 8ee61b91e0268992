package database

import (
	"database/sql"
	"fmt"
	"sort"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations is the ordered schema history. New changes append a new version;
// applied versions are never edited.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_core_tables",
		SQL: `
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			display_name TEXT NOT NULL,
			tier TEXT NOT NULL DEFAULT 'free',
			created_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS geofences (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			polygon TEXT NOT NULL,
			visibility TEXT NOT NULL DEFAULT 'private',
			owner_id TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS signals (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			owner_id TEXT NOT NULL,
			target_kind TEXT NOT NULL,
			target_geofence_id TEXT,
			target_polygon TEXT,
			triggers TEXT NOT NULL,
			conditions TEXT,
			classification TEXT NOT NULL DEFAULT 'personal',
			is_active INTEGER NOT NULL DEFAULT 1,
			view_count INTEGER NOT NULL DEFAULT 0,
			subscriber_count INTEGER NOT NULL DEFAULT 0,
			sighting_count INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_signals_active ON signals(is_active);
		CREATE INDEX IF NOT EXISTS idx_signals_owner ON signals(owner_id);

		CREATE TABLE IF NOT EXISTS sightings (
			id TEXT PRIMARY KEY,
			category_id TEXT NOT NULL,
			type_id TEXT NOT NULL,
			lat REAL NOT NULL,
			lng REAL NOT NULL,
			tags TEXT,
			importance TEXT NOT NULL DEFAULT 'normal',
			reporter_id TEXT NOT NULL,
			observed_at INTEGER NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			hot_score REAL NOT NULL DEFAULT 0,
			visibility TEXT NOT NULL DEFAULT 'visible'
		);
		CREATE INDEX IF NOT EXISTS idx_sightings_category ON sightings(category_id);
		`,
	},
	{
		Version: 2,
		Name:    "create_reaction_and_reputation_tables",
		SQL: `
		CREATE TABLE IF NOT EXISTS sighting_reactions (
			sighting_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			PRIMARY KEY (sighting_id, user_id)
		);

		CREATE TABLE IF NOT EXISTS reputations (
			user_id TEXT PRIMARY KEY,
			score INTEGER NOT NULL DEFAULT 0,
			manual_tier TEXT,
			updated_at INTEGER NOT NULL
		);
		`,
	},
	{
		Version: 3,
		Name:    "create_preference_and_privacy_tables",
		SQL: `
		CREATE TABLE IF NOT EXISTS user_privacy_settings (
			user_id TEXT PRIMARY KEY,
			enable_personalization INTEGER NOT NULL DEFAULT 0,
			enable_location_sharing INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS user_category_interactions (
			user_id TEXT NOT NULL,
			category_id TEXT NOT NULL,
			click_count INTEGER NOT NULL DEFAULT 0,
			subscription_count INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (user_id, category_id)
		);

		CREATE TABLE IF NOT EXISTS user_signal_preferences (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			signal_id TEXT NOT NULL,
			is_hidden INTEGER NOT NULL DEFAULT 0,
			is_pinned INTEGER NOT NULL DEFAULT 0,
			is_unimportant INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_signal_prefs_user ON user_signal_preferences(user_id);

		CREATE TABLE IF NOT EXISTS signal_subscriptions (
			signal_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			PRIMARY KEY (signal_id, user_id)
		);
		`,
	},
	{
		Version: 4,
		Name:    "create_activity_snapshot_table",
		SQL: `
		CREATE TABLE IF NOT EXISTS signal_activity_snapshots (
			signal_id TEXT NOT NULL,
			snapshot_date TEXT NOT NULL,
			new_subscribers INTEGER NOT NULL DEFAULT 0,
			new_sightings INTEGER NOT NULL DEFAULT 0,
			view_count INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (signal_id, snapshot_date)
		);
		`,
	},
}

// Migrate applies all pending migrations in version order.
func Migrate(db *sql.DB) error {
	if err := initMigrationsTable(db); err != nil {
		return err
	}

	applied, err := appliedMigrations(db)
	if err != nil {
		return err
	}

	pending := make([]Migration, 0, len(migrations))
	for _, m := range migrations {
		if !applied[m.Version] {
			pending = append(pending, m)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].Version < pending[j].Version })

	for _, m := range pending {
		err := Transaction(db, func(tx *sql.Tx) error {
			if _, err := tx.Exec(m.SQL); err != nil {
				return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
			}
			_, err := tx.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", m.Version, m.Name)
			return err
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func initMigrationsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

func appliedMigrations(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

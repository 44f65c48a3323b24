package database

import (
	"fmt"

	"github.com/apex/log"
)

// RunMigrations runs all database migrations
func (d *Database) RunMigrations() error {
	log.Info("Running database migrations...")

	if err := d.runMigration001(); err != nil {
		return fmt.Errorf("migration 001 failed: %w", err)
	}

	log.Info("All migrations completed successfully")
	return nil
}

// runMigration001 adds the certification ids column to material_analysis so
// verified sustainability certifications can be attached to a material later.
func (d *Database) runMigration001() error {
	log.Info("Running migration 001: Adding certification_ids to material_analysis")

	// Will fail if the column already exists, but that's ok
	_, err := d.db.Exec(`
		ALTER TABLE material_analysis
		ADD COLUMN certification_ids JSON NULL
	`)
	if err != nil {
		log.Infof("Note: certification_ids column may already exist: %v", err)
	}

	log.Info("Migration 001 completed")
	return nil
}

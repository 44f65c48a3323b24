package database

import (
	"fmt"

	"github.com/apex/log"
)

// CreateTables creates the material intelligence tables if they don't exist.
// The products table is owned by the storefront; it is created here only so
// the service can run against an empty database in development.
func (d *Database) CreateTables() error {
	tables := []struct {
		name string
		ddl  string
	}{
		{
			name: "material_scans",
			ddl: `
			CREATE TABLE IF NOT EXISTS material_scans (
				id BIGINT AUTO_INCREMENT PRIMARY KEY,
				product_id VARCHAR(64) NOT NULL,
				scan_data JSON NOT NULL,
				eco_score FLOAT NOT NULL,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				INDEX idx_material_scans_product (product_id)
			)`,
		},
		{
			name: "material_analysis",
			ddl: `
			CREATE TABLE IF NOT EXISTS material_analysis (
				id BIGINT AUTO_INCREMENT PRIMARY KEY,
				product_id VARCHAR(64) NOT NULL,
				material_name VARCHAR(255) NOT NULL,
				eco_score FLOAT NOT NULL,
				impact_description TEXT NOT NULL,
				carbon_footprint FLOAT NULL,
				water_usage FLOAT NULL,
				recyclability_rating FLOAT NULL,
				biodegradability_rating FLOAT NULL,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				INDEX idx_material_analysis_product (product_id),
				INDEX idx_material_analysis_name (material_name)
			)`,
		},
		{
			name: "products",
			ddl: `
			CREATE TABLE IF NOT EXISTS products (
				id VARCHAR(64) PRIMARY KEY,
				title VARCHAR(255) NOT NULL DEFAULT '',
				brand VARCHAR(255) NOT NULL DEFAULT '',
				sustainability_score FLOAT NOT NULL DEFAULT 0
			)`,
		},
	}

	for _, t := range tables {
		if _, err := d.db.Exec(t.ddl); err != nil {
			return fmt.Errorf("failed to create %s table: %w", t.name, err)
		}
	}

	log.Info("Database tables ready")
	return nil
}

package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/safal11goyal/GreenWise/models"
)

// SaveScan persists one classification call: a material_scans row holding the
// full result JSON plus one material_analysis row per detected material, all
// in a single transaction.
func (d *Database) SaveScan(productID string, result models.ClassificationResult) (int64, error) {
	scanData, err := json.Marshal(result)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal scan data: %w", err)
	}

	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO material_scans (product_id, scan_data, eco_score) VALUES (?, ?, ?)`,
		productID, string(scanData), result.EcoScore)
	logResult("save scan", res, err)
	if err != nil {
		return 0, fmt.Errorf("failed to insert scan: %w", err)
	}
	scanID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get scan id: %w", err)
	}

	for _, m := range result.Materials {
		res, err := tx.Exec(
			`INSERT INTO material_analysis (product_id, material_name, eco_score, impact_description) VALUES (?, ?, ?, ?)`,
			productID, m.Name, m.EcoScore, m.Details)
		logResult("save material "+m.Name, res, err)
		if err != nil {
			return 0, fmt.Errorf("failed to insert material %s: %w", m.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit scan: %w", err)
	}
	return scanID, nil
}

// GetMaterialRows returns all persisted material-analysis rows.
func (d *Database) GetMaterialRows() ([]models.MaterialRow, error) {
	rows, err := d.db.Query(`
		SELECT id, product_id, material_name, eco_score, impact_description,
		       carbon_footprint, water_usage, recyclability_rating, biodegradability_rating,
		       created_at
		FROM material_analysis`)
	if err != nil {
		return nil, fmt.Errorf("failed to query material rows: %w", err)
	}
	defer rows.Close()

	var out []models.MaterialRow
	for rows.Next() {
		var m models.MaterialRow
		var carbon, water, recyclable, biodegradable sql.NullFloat64
		var createdAt time.Time
		if err := rows.Scan(
			&m.ID,
			&m.ProductID,
			&m.MaterialName,
			&m.EcoScore,
			&m.ImpactDescription,
			&carbon,
			&water,
			&recyclable,
			&biodegradable,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan material row: %w", err)
		}
		if carbon.Valid {
			m.CarbonFootprint = &carbon.Float64
		}
		if water.Valid {
			m.WaterUsage = &water.Float64
		}
		if recyclable.Valid {
			m.RecyclabilityRating = &recyclable.Float64
		}
		if biodegradable.Valid {
			m.BiodegradabilityRating = &biodegradable.Float64
		}
		m.CreatedAt = createdAt.Format(time.RFC3339)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate material rows: %w", err)
	}
	return out, nil
}

// GetProductRows returns the brand and sustainability score of every product.
func (d *Database) GetProductRows() ([]models.ProductRow, error) {
	rows, err := d.db.Query(`SELECT id, brand, sustainability_score FROM products`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var out []models.ProductRow
	for rows.Next() {
		var p models.ProductRow
		if err := rows.Scan(&p.ID, &p.Brand, &p.SustainabilityScore); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate product rows: %w", err)
	}
	return out, nil
}

// GetScansByProduct returns the scan history for one product, newest first.
func (d *Database) GetScansByProduct(productID string) ([]models.ScanRecord, error) {
	rows, err := d.db.Query(`
		SELECT id, product_id, eco_score, scan_data, created_at
		FROM material_scans
		WHERE product_id = ?
		ORDER BY created_at DESC`, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query scans: %w", err)
	}
	defer rows.Close()

	var out []models.ScanRecord
	for rows.Next() {
		var s models.ScanRecord
		var createdAt time.Time
		if err := rows.Scan(&s.ID, &s.ProductID, &s.EcoScore, &s.ScanData, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		s.CreatedAt = createdAt.Format(time.RFC3339)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scans: %w", err)
	}
	return out, nil
}

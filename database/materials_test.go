package database

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jknair0/beforeeach"

	"github.com/safal11goyal/GreenWise/models"
)

var (
	db   *sql.DB
	mock sqlmock.Sqlmock
	d    *Database
)

func setUp() {
	db, mock, _ = sqlmock.New()
	d = &Database{db: db}
}

func tearDown() {
	db.Close()
}

var it = beforeeach.Create(setUp, tearDown)

func sampleResult() models.ClassificationResult {
	return models.ClassificationResult{
		Materials: []models.DetectedMaterial{
			{Name: "Plastic", Percentage: 85, EcoScore: 3, Details: "Petroleum-based plastic with high environmental impact"},
			{Name: "Colorants", Percentage: 10, EcoScore: 3, Details: "Chemical dyes with potential toxicity concerns"},
		},
		Confidence: 0.85,
		EcoScore:   3.2,
		Success:    true,
	}
}

func TestSaveScan(t *testing.T) {
	it(func() {
		result := sampleResult()

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO material_scans").
			WillReturnResult(sqlmock.NewResult(7, 1))
		mock.ExpectExec("INSERT INTO material_analysis").
			WithArgs("prod-1", "Plastic", 3.0, "Petroleum-based plastic with high environmental impact").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO material_analysis").
			WithArgs("prod-1", "Colorants", 3.0, "Chemical dyes with potential toxicity concerns").
			WillReturnResult(sqlmock.NewResult(2, 1))
		mock.ExpectCommit()

		scanID, err := d.SaveScan("prod-1", result)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if scanID != 7 {
			t.Errorf("expected scan id 7, got %d", scanID)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})
}

func TestSaveScanRollsBackOnMaterialError(t *testing.T) {
	it(func() {
		result := sampleResult()

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO material_scans").
			WillReturnResult(sqlmock.NewResult(7, 1))
		mock.ExpectExec("INSERT INTO material_analysis").
			WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		if _, err := d.SaveScan("prod-1", result); err == nil {
			t.Fatal("expected an error")
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})
}

func TestGetMaterialRows(t *testing.T) {
	it(func() {
		createdAt := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
		rows := sqlmock.NewRows([]string{
			"id", "product_id", "material_name", "eco_score", "impact_description",
			"carbon_footprint", "water_usage", "recyclability_rating", "biodegradability_rating",
			"created_at",
		}).
			AddRow(1, "prod-1", "Plastic", 3.0, "high impact", 2.5, nil, nil, nil, createdAt).
			AddRow(2, "prod-2", "Cardboard", 7.0, "recyclable", nil, 12.0, 8.0, 9.0, createdAt)

		mock.ExpectQuery("SELECT (.+) FROM material_analysis").WillReturnRows(rows)

		got, err := d.GetMaterialRows()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(got))
		}
		if got[0].CarbonFootprint == nil || *got[0].CarbonFootprint != 2.5 {
			t.Errorf("expected carbon footprint 2.5, got %v", got[0].CarbonFootprint)
		}
		if got[0].WaterUsage != nil {
			t.Errorf("expected nil water usage for NULL column, got %v", *got[0].WaterUsage)
		}
		if got[1].MaterialName != "Cardboard" {
			t.Errorf("expected material Cardboard, got %q", got[1].MaterialName)
		}
		if got[1].CreatedAt != "2025-03-14T12:00:00Z" {
			t.Errorf("unexpected created_at: %q", got[1].CreatedAt)
		}
	})
}

func TestGetProductRows(t *testing.T) {
	it(func() {
		rows := sqlmock.NewRows([]string{"id", "brand", "sustainability_score"}).
			AddRow("p1", "EcoWear", 8.0).
			AddRow("p2", "PlastiCo", 2.0)

		mock.ExpectQuery("SELECT id, brand, sustainability_score FROM products").
			WillReturnRows(rows)

		got, err := d.GetProductRows()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 products, got %d", len(got))
		}
		if got[0].Brand != "EcoWear" || got[0].SustainabilityScore != 8.0 {
			t.Errorf("unexpected first product: %+v", got[0])
		}
	})
}

func TestGetScansByProduct(t *testing.T) {
	it(func() {
		createdAt := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
		rows := sqlmock.NewRows([]string{"id", "product_id", "eco_score", "scan_data", "created_at"}).
			AddRow(3, "prod-1", 3.2, `{"success":true}`, createdAt)

		mock.ExpectQuery("SELECT (.+) FROM material_scans").
			WithArgs("prod-1").
			WillReturnRows(rows)

		got, err := d.GetScansByProduct("prod-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("expected 1 scan, got %d", len(got))
		}
		if got[0].EcoScore != 3.2 || got[0].ProductID != "prod-1" {
			t.Errorf("unexpected scan: %+v", got[0])
		}
	})
}

func TestGetMaterialRowsQueryError(t *testing.T) {
	it(func() {
		mock.ExpectQuery("SELECT (.+) FROM material_analysis").
			WillReturnError(errors.New("connection lost"))

		if _, err := d.GetMaterialRows(); err == nil {
			t.Fatal("expected an error")
		}
	})
}

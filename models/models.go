package models

// AnalyzeRequest is the body of an analyze-materials call from the storefront.
type AnalyzeRequest struct {
	Image     string `json:"image"`
	ProductID string `json:"productId"`
	FileName  string `json:"fileName,omitempty"`
}

// DetectedMaterial is a single material identified in a scanned image.
type DetectedMaterial struct {
	Name        string  `json:"name"`
	Percentage  float64 `json:"percentage"`
	EcoScore    float64 `json:"eco_score"`
	Sustainable bool    `json:"sustainable"`
	Details     string  `json:"details"`
}

// ClassificationMetrics holds the environmental metrics derived from the
// detected materials of one scan.
type ClassificationMetrics struct {
	WaterSaved              int `json:"water_saved"`
	EnergyEfficiency        int `json:"energy_efficiency"`
	BiodegradablePercentage int `json:"biodegradable_percentage"`
}

// ClassificationResult is the full outcome of one material classification.
type ClassificationResult struct {
	Materials       []DetectedMaterial    `json:"materials"`
	Confidence      float64               `json:"confidence"`
	EcoScore        float64               `json:"eco_score"`
	Warnings        []string              `json:"warnings"`
	Metrics         ClassificationMetrics `json:"metrics"`
	Recommendations []string              `json:"recommendations"`
	Success         bool                  `json:"success"`
}

// MaterialRow is one persisted material-analysis record. Optional numeric
// columns are pointers so NULLs survive the round trip; the aggregator reads
// a nil pointer as 0.
type MaterialRow struct {
	ID                     int64    `json:"id"`
	ProductID              string   `json:"product_id"`
	MaterialName           string   `json:"material_name"`
	EcoScore               float64  `json:"eco_score"`
	ImpactDescription      string   `json:"impact_description"`
	CarbonFootprint        *float64 `json:"carbon_footprint,omitempty"`
	WaterUsage             *float64 `json:"water_usage,omitempty"`
	RecyclabilityRating    *float64 `json:"recyclability_rating,omitempty"`
	BiodegradabilityRating *float64 `json:"biodegradability_rating,omitempty"`
	CreatedAt              string   `json:"created_at"`
}

// ProductRow is the slice of a storefront product the brand aggregation
// needs. The join to MaterialRow is by brand name only, nothing referential.
type ProductRow struct {
	ID                  string  `json:"id"`
	Brand               string  `json:"brand"`
	SustainabilityScore float64 `json:"sustainability_score"`
}

// MaterialCount is a material name with its occurrence count.
type MaterialCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// BrandScore is a brand with its average sustainability score.
type BrandScore struct {
	Name     string  `json:"name"`
	AvgScore float64 `json:"avg_score"`
}

// MaterialStats is the fleet-wide aggregation served to the dashboard.
type MaterialStats struct {
	TotalMaterials      int             `json:"total_materials"`
	AvgEcoScore         float64         `json:"avg_eco_score"`
	AvgCarbonFootprint  float64         `json:"avg_carbon_footprint"`
	AvgWaterUsage       float64         `json:"avg_water_usage"`
	AvgRecyclability    float64         `json:"avg_recyclability"`
	AvgBiodegradability float64         `json:"avg_biodegradability"`
	TopMaterials        []MaterialCount `json:"top_materials"`
	BestBrands          []BrandScore    `json:"best_brands"`
}

// ScanRecord is one persisted classification call for a product.
type ScanRecord struct {
	ID        int64   `json:"id"`
	ProductID string  `json:"product_id"`
	EcoScore  float64 `json:"eco_score"`
	ScanData  string  `json:"scan_data"`
	CreatedAt string  `json:"created_at"`
}

// ErrorResponse is the error envelope returned by the HTTP boundary.
type ErrorResponse struct {
	Error   string `json:"error"`
	Success bool   `json:"success"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status           string `json:"status"`
	Service          string `json:"service,omitempty"`
	Timestamp        string `json:"timestamp,omitempty"`
	ConnectedClients int    `json:"connected_clients,omitempty"`
}

// ScanEvent is broadcast to dashboard websocket clients when a new
// classification has been persisted.
type ScanEvent struct {
	ProductID string               `json:"product_id"`
	FileName  string               `json:"file_name,omitempty"`
	Result    ClassificationResult `json:"result"`
}

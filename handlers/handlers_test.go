package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/safal11goyal/GreenWise/middleware"
	"github.com/safal11goyal/GreenWise/models"
)

type fakeStore struct {
	savedProductID string
	savedResult    models.ClassificationResult
	saveErr        error

	materialRows []models.MaterialRow
	productRows  []models.ProductRow
	scans        []models.ScanRecord
	queryErr     error
}

func (f *fakeStore) SaveScan(productID string, result models.ClassificationResult) (int64, error) {
	if f.saveErr != nil {
		return 0, f.saveErr
	}
	f.savedProductID = productID
	f.savedResult = result
	return 1, nil
}

func (f *fakeStore) GetMaterialRows() ([]models.MaterialRow, error) {
	return f.materialRows, f.queryErr
}

func (f *fakeStore) GetProductRows() ([]models.ProductRow, error) {
	return f.productRows, f.queryErr
}

func (f *fakeStore) GetScansByProduct(productID string) ([]models.ScanRecord, error) {
	return f.scans, f.queryErr
}

func setupRouter(store Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.CORSMiddleware())

	h := NewHandlers(store, nil)
	api := router.Group("/api/v3")
	{
		api.GET("/health", h.HealthCheck)
		api.POST("/analyze-materials", h.AnalyzeMaterials)
		api.GET("/materials/stats", h.GetMaterialStats)
		api.GET("/products/:id/analysis", h.GetProductScans)
	}
	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	router := setupRouter(&fakeStore{})

	w := doRequest(router, "GET", "/api/v3/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var resp models.HealthResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
}

func TestAnalyzeMaterialsSuccess(t *testing.T) {
	store := &fakeStore{}
	router := setupRouter(store)

	body := `{"image":"aGVsbG8=","productId":"prod-42","fileName":"my_plastic_bottle.png"}`
	w := doRequest(router, "POST", "/api/v3/analyze-materials", body)

	assert.Equal(t, http.StatusOK, w.Code)

	var result models.ClassificationResult
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, 3.2, result.EcoScore)
	assert.Equal(t, 0.85, result.Confidence)
	assert.Len(t, result.Materials, 3)
	assert.Len(t, result.Warnings, 3)
	assert.Len(t, result.Recommendations, 3)

	assert.Equal(t, "prod-42", store.savedProductID)
	assert.Equal(t, result.EcoScore, store.savedResult.EcoScore)
}

func TestAnalyzeMaterialsMissingFields(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "missing image", body: `{"productId":"prod-1"}`},
		{name: "missing product id", body: `{"image":"aGVsbG8="}`},
		{name: "empty object", body: `{}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := setupRouter(&fakeStore{})

			w := doRequest(router, "POST", "/api/v3/analyze-materials", tc.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp models.ErrorResponse
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, "Image and productId are required", resp.Error)
		})
	}
}

func TestAnalyzeMaterialsBadJSON(t *testing.T) {
	router := setupRouter(&fakeStore{})

	w := doRequest(router, "POST", "/api/v3/analyze-materials", "{not json")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp models.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Invalid request body - could not parse JSON", resp.Error)
}

func TestAnalyzeMaterialsSaveFailure(t *testing.T) {
	router := setupRouter(&fakeStore{saveErr: errors.New("db down")})

	body := `{"image":"aGVsbG8=","productId":"prod-1"}`
	w := doRequest(router, "POST", "/api/v3/analyze-materials", body)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp models.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)
}

func TestGetMaterialStats(t *testing.T) {
	store := &fakeStore{
		materialRows: []models.MaterialRow{
			{MaterialName: "Plastic", EcoScore: 3},
			{MaterialName: "Plastic", EcoScore: 3},
			{MaterialName: "Cardboard", EcoScore: 7},
		},
		productRows: []models.ProductRow{
			{ID: "p1", Brand: "EcoWear", SustainabilityScore: 8},
		},
	}
	router := setupRouter(store)

	w := doRequest(router, "GET", "/api/v3/materials/stats", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var stats models.MaterialStats
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 3, stats.TotalMaterials)
	assert.InDelta(t, 13.0/3, stats.AvgEcoScore, 1e-9)
	assert.Equal(t, []models.MaterialCount{
		{Name: "Plastic", Count: 2},
		{Name: "Cardboard", Count: 1},
	}, stats.TopMaterials)
	assert.Equal(t, []models.BrandScore{{Name: "EcoWear", AvgScore: 8}}, stats.BestBrands)
}

func TestGetMaterialStatsQueryFailure(t *testing.T) {
	router := setupRouter(&fakeStore{queryErr: errors.New("connection lost")})

	w := doRequest(router, "GET", "/api/v3/materials/stats", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp models.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
}

func TestGetProductScans(t *testing.T) {
	store := &fakeStore{
		scans: []models.ScanRecord{
			{ID: 1, ProductID: "prod-1", EcoScore: 3.2, ScanData: `{"success":true}`},
		},
	}
	router := setupRouter(store)

	w := doRequest(router, "GET", "/api/v3/products/prod-1/analysis", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		ProductID string              `json:"product_id"`
		Count     int                 `json:"count"`
		Scans     []models.ScanRecord `json:"scans"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "prod-1", resp.ProductID)
	assert.Equal(t, 1, resp.Count)
	assert.Len(t, resp.Scans, 1)
}

func TestCORSPreflight(t *testing.T) {
	router := setupRouter(&fakeStore{})

	w := doRequest(router, "OPTIONS", "/api/v3/analyze-materials", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

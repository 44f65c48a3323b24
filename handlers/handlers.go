package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/safal11goyal/GreenWise/aggregator"
	"github.com/safal11goyal/GreenWise/classifier"
	"github.com/safal11goyal/GreenWise/metrics"
	"github.com/safal11goyal/GreenWise/models"
	"github.com/safal11goyal/GreenWise/services"
)

// Store is the persistence surface the handlers depend on.
type Store interface {
	SaveScan(productID string, result models.ClassificationResult) (int64, error)
	GetMaterialRows() ([]models.MaterialRow, error)
	GetProductRows() ([]models.ProductRow, error)
	GetScansByProduct(productID string) ([]models.ScanRecord, error)
}

// Handlers represents the HTTP handlers
type Handlers struct {
	store Store
	hub   *services.WebSocketHub
}

// NewHandlers creates new HTTP handlers
func NewHandlers(store Store, hub *services.WebSocketHub) *Handlers {
	return &Handlers{store: store, hub: hub}
}

// HealthCheck handles health check requests
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Service:   "greenwise-material-analysis",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// AnalyzeMaterials classifies an uploaded product image, persists the scan
// and returns the classification result.
func (h *Handlers) AnalyzeMaterials(c *gin.Context) {
	start := time.Now()

	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Failed to parse analyze-materials body: %v", err)
		metrics.ScanErrorsTotal.WithLabelValues("bad_json").Inc()
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body - could not parse JSON",
			Success: false,
		})
		return
	}

	if req.Image == "" || req.ProductID == "" {
		log.Printf("Missing required parameters in analyze-materials call")
		metrics.ScanErrorsTotal.WithLabelValues("missing_fields").Inc()
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Image and productId are required",
			Success: false,
		})
		return
	}

	log.Printf("Processing image for product ID: %s", req.ProductID)
	result := classifier.Classify(req.Image, req.FileName)

	if _, err := h.store.SaveScan(req.ProductID, result); err != nil {
		log.Printf("Failed to save scan for product %s: %v", req.ProductID, err)
		metrics.ScanErrorsTotal.WithLabelValues("persistence").Inc()
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to save analysis result",
			Success: false,
		})
		return
	}

	if h.hub != nil {
		h.hub.BroadcastScan(models.ScanEvent{
			ProductID: req.ProductID,
			FileName:  req.FileName,
			Result:    result,
		})
	}

	metrics.ScansTotal.WithLabelValues(metrics.ScoreBand(result.EcoScore)).Inc()
	metrics.ScanDurationSeconds.Observe(time.Since(start).Seconds())

	c.JSON(http.StatusOK, result)
}

// GetMaterialStats aggregates all persisted material rows and products into
// dashboard statistics.
func (h *Handlers) GetMaterialStats(c *gin.Context) {
	metrics.StatsRequestsTotal.Inc()

	materials, err := h.store.GetMaterialRows()
	if err != nil {
		log.Printf("Failed to load material rows: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to get material stats",
			Success: false,
		})
		return
	}

	products, err := h.store.GetProductRows()
	if err != nil {
		log.Printf("Failed to load product rows: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to get material stats",
			Success: false,
		})
		return
	}

	c.JSON(http.StatusOK, aggregator.Aggregate(materials, products))
}

// GetProductScans returns the scan history for one product, newest first.
func (h *Handlers) GetProductScans(c *gin.Context) {
	productID := c.Param("id")

	scans, err := h.store.GetScansByProduct(productID)
	if err != nil {
		log.Printf("Failed to load scans for product %s: %v", productID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to get scan history",
			Success: false,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product_id": productID,
		"count":      len(scans),
		"scans":      scans,
	})
}

// Package aggregator computes fleet-wide material statistics for the
// sustainability dashboard from already-fetched analysis and product rows.
package aggregator

import (
	"sort"

	"github.com/safal11goyal/GreenWise/models"
)

// TopN caps the top-materials and best-brands lists.
const TopN = 5

// Aggregate computes dashboard statistics over persisted material-analysis
// rows plus a product list joined by brand name. The brand join is a plain
// string grouping, no referential integrity is assumed. Empty input yields
// zeroed stats with TotalMaterials 0 rather than dividing by zero.
func Aggregate(materials []models.MaterialRow, products []models.ProductRow) models.MaterialStats {
	stats := models.MaterialStats{
		TotalMaterials: len(materials),
	}

	if len(materials) > 0 {
		var eco, carbon, water, recyclable, biodegradable float64
		for _, m := range materials {
			eco += m.EcoScore
			carbon += deref(m.CarbonFootprint)
			water += deref(m.WaterUsage)
			recyclable += deref(m.RecyclabilityRating)
			biodegradable += deref(m.BiodegradabilityRating)
		}
		n := float64(len(materials))
		stats.AvgEcoScore = eco / n
		stats.AvgCarbonFootprint = carbon / n
		stats.AvgWaterUsage = water / n
		stats.AvgRecyclability = recyclable / n
		stats.AvgBiodegradability = biodegradable / n
	}

	stats.TopMaterials = topMaterials(materials)
	stats.BestBrands = bestBrands(products)
	return stats
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// topMaterials counts rows per material name and keeps the TopN most
// frequent, ties broken by first appearance in the input.
func topMaterials(materials []models.MaterialRow) []models.MaterialCount {
	counts := make(map[string]int)
	var order []string
	for _, m := range materials {
		if _, seen := counts[m.MaterialName]; !seen {
			order = append(order, m.MaterialName)
		}
		counts[m.MaterialName]++
	}

	// Stable sort over first-seen order keeps ties in insertion order.
	out := make([]models.MaterialCount, 0, len(order))
	for _, name := range order {
		out = append(out, models.MaterialCount{Name: name, Count: counts[name]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})

	if len(out) > TopN {
		out = out[:TopN]
	}
	return out
}

// bestBrands averages sustainability scores per brand and keeps the TopN
// highest, ties broken by first appearance in the input.
func bestBrands(products []models.ProductRow) []models.BrandScore {
	type brandAcc struct {
		total float64
		count int
	}
	scores := make(map[string]*brandAcc)
	var order []string
	for _, p := range products {
		acc, seen := scores[p.Brand]
		if !seen {
			acc = &brandAcc{}
			scores[p.Brand] = acc
			order = append(order, p.Brand)
		}
		acc.total += p.SustainabilityScore
		acc.count++
	}

	out := make([]models.BrandScore, 0, len(order))
	for _, name := range order {
		acc := scores[name]
		out = append(out, models.BrandScore{Name: name, AvgScore: acc.total / float64(acc.count)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AvgScore > out[j].AvgScore
	})

	if len(out) > TopN {
		out = out[:TopN]
	}
	return out
}

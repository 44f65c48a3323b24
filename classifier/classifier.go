// Package classifier maps a scanned product image to its estimated material
// composition and eco score. It is a rule-table heuristic standing in for a
// real vision model: the matching function is generic over an ordered profile
// table, so a model-backed matcher can replace it without touching callers.
package classifier

import (
	"math"
	"strings"

	"github.com/safal11goyal/GreenWise/models"
)

const (
	// Confidence is the fixed confidence reported with every result until a
	// real vision model supplies one.
	Confidence = 0.85

	// SmallImageThreshold and LargeImageThreshold bound the payload-size
	// fallback used when no filename keyword matches. Payloads strictly below
	// the small threshold are treated as unidentifiable, payloads strictly
	// above the large one as complex multi-material products.
	SmallImageThreshold = 10000
	LargeImageThreshold = 500000

	waterSavedBase           = 300
	waterSavedPerSustainable = 200
	energyEfficiencyBase     = 10
	energyEfficiencyFactor   = 3
)

// profile is one hand-authored classification outcome. Keyword profiles are
// matched against the filename in table order, so earlier entries win when
// keyword sets overlap.
type profile struct {
	keywords  []string
	materials []models.DetectedMaterial
	warnings  []string
	ecoScore  float64
	harmful   bool
}

var keywordProfiles = []profile{
	{
		keywords: []string{"plastic", "bottle", "packaging"},
		materials: []models.DetectedMaterial{
			{Name: "Plastic", Percentage: 85, EcoScore: 3, Sustainable: false,
				Details: "Petroleum-based plastic with high environmental impact"},
			{Name: "Colorants", Percentage: 10, EcoScore: 3, Sustainable: false,
				Details: "Chemical dyes with potential toxicity concerns"},
			{Name: "Additives", Percentage: 5, EcoScore: 4, Sustainable: false,
				Details: "Chemical stabilizers and plasticizers"},
		},
		warnings: []string{
			"Contains non-biodegradable plastic",
			"Petroleum-derived materials",
			"Possible microplastic pollution",
		},
		ecoScore: 3.2,
		harmful:  true,
	},
	{
		keywords: []string{"paper", "cardboard", "box"},
		materials: []models.DetectedMaterial{
			{Name: "Recycled Paper", Percentage: 70, EcoScore: 8, Sustainable: true,
				Details: "Post-consumer recycled fibers"},
			{Name: "Virgin Paper", Percentage: 25, EcoScore: 6, Sustainable: false,
				Details: "New wood pulp from managed forests"},
			{Name: "Adhesives", Percentage: 5, EcoScore: 5, Sustainable: false,
				Details: "Bonding agents for paper fibers"},
		},
		warnings: []string{
			"Contains some virgin paper fiber",
			"Production requires water resources",
			"Consider recycling after use",
		},
		ecoScore: 7.3,
	},
	{
		keywords: []string{"textile", "fabric", "cloth"},
		materials: []models.DetectedMaterial{
			{Name: "Cotton", Percentage: 65, EcoScore: 6, Sustainable: true,
				Details: "Natural fiber, but water-intensive cultivation"},
			{Name: "Polyester", Percentage: 30, EcoScore: 3, Sustainable: false,
				Details: "Synthetic petroleum-derived fiber"},
			{Name: "Elastane", Percentage: 5, EcoScore: 3, Sustainable: false,
				Details: "Synthetic stretchy fiber for flexibility"},
		},
		warnings: []string{
			"Contains petroleum-based synthetic fibers",
			"May release microplastics when washed",
			"Cotton production is water-intensive",
		},
		ecoScore: 4.9,
	},
	{
		keywords: []string{"food", "snack", "package"},
		materials: []models.DetectedMaterial{
			{Name: "Multilayer Film", Percentage: 90, EcoScore: 2, Sustainable: false,
				Details: "Multiple plastic layers, difficult to recycle"},
			{Name: "Aluminum Layer", Percentage: 8, EcoScore: 4, Sustainable: false,
				Details: "Metal barrier for preservation"},
			{Name: "Ink", Percentage: 2, EcoScore: 3, Sustainable: false,
				Details: "Printing chemicals for branding and information"},
		},
		warnings: []string{
			"Multi-material packaging is difficult to recycle",
			"Contains non-biodegradable materials",
			"Check local recycling guidelines for disposal",
		},
		ecoScore: 2.5,
		harmful:  true,
	},
	{
		keywords: []string{"electronic", "device", "gadget"},
		materials: []models.DetectedMaterial{
			{Name: "Plastic Casing", Percentage: 60, EcoScore: 3, Sustainable: false,
				Details: "ABS plastic housing with flame retardants"},
			{Name: "Electronic Components", Percentage: 30, EcoScore: 2, Sustainable: false,
				Details: "Circuit boards, wiring, and solder"},
			{Name: "Metals", Percentage: 10, EcoScore: 4, Sustainable: false,
				Details: "Aluminum, copper, and other metals"},
		},
		warnings: []string{
			"Contains potentially hazardous electronic waste",
			"Requires specialized e-waste recycling",
			"May contain rare earth metals with high extraction impact",
		},
		ecoScore: 2.8,
		harmful:  true,
	},
	{
		keywords: []string{"leather", "wool", "fur"},
		materials: []models.DetectedMaterial{
			{Name: "Animal Leather", Percentage: 90, EcoScore: 3, Sustainable: false,
				Details: "Animal-derived material with tanning chemicals"},
			{Name: "Dyes", Percentage: 5, EcoScore: 4, Sustainable: false,
				Details: "Coloring agents for leather"},
			{Name: "Finishing Chemicals", Percentage: 5, EcoScore: 3, Sustainable: false,
				Details: "Sealants and finishers for durability"},
		},
		warnings: []string{
			"Animal-derived materials raise ethical concerns",
			"Tanning process uses potentially harmful chemicals",
			"Consider plant-based leather alternatives",
		},
		ecoScore: 3.1,
		harmful:  true,
	},
}

var largeImageProfile = profile{
	materials: []models.DetectedMaterial{
		{Name: "Mixed Plastics", Percentage: 55, EcoScore: 3, Sustainable: false,
			Details: "Various plastic polymers with different properties"},
		{Name: "Metal Components", Percentage: 30, EcoScore: 5, Sustainable: false,
			Details: "Aluminum and steel elements"},
		{Name: "Synthetic Textiles", Percentage: 15, EcoScore: 4, Sustainable: false,
			Details: "Polyester and nylon fabrics"},
	},
	warnings: []string{
		"Multiple material types make recycling difficult",
		"Contains non-biodegradable components",
		"Consider products with simpler material composition",
	},
	ecoScore: 3.6,
	harmful:  true,
}

var labeledPackagingProfile = profile{
	materials: []models.DetectedMaterial{
		{Name: "Cardboard", Percentage: 70, EcoScore: 7, Sustainable: true,
			Details: "Recyclable fiber-based packaging material"},
		{Name: "Printing Ink", Percentage: 5, EcoScore: 4, Sustainable: false,
			Details: "Inks used for product information and branding"},
		{Name: "Laminate", Percentage: 25, EcoScore: 3, Sustainable: false,
			Details: "Protective coating that reduces recyclability"},
	},
	warnings: []string{
		"Laminated cardboard is difficult to recycle",
		"Inks may contain VOCs (volatile organic compounds)",
		"Separate components before recycling if possible",
	},
	ecoScore: 5.8,
}

var unknownProfile = profile{
	materials: []models.DetectedMaterial{
		{Name: "Unknown Materials", Percentage: 100, EcoScore: 5, Sustainable: false,
			Details: "Material could not be reliably identified from the image. For accurate analysis, please try again with a clearer image or provide material information manually."},
	},
	warnings: []string{
		"Material identification uncertain",
		"Consider providing additional information",
		"Try another scan with better lighting",
	},
	ecoScore: 5.0,
}

var harmfulRecommendations = []string{
	"Consider eco-friendly alternatives with higher sustainability scores",
	"Look for products made from recycled or biodegradable materials",
	"Research brands with stronger environmental commitments",
}

var fillerRecommendations = []string{
	"Check for sustainability certifications on packaging",
	"Support brands that use renewable energy in production",
}

// Classify estimates the material composition of an image payload. The
// payload is an opaque string (base64 or a storage id); the optional filename
// is the stronger signal when present. Pure and deterministic: identical
// input always yields an identical result.
func Classify(image string, fileName string) models.ClassificationResult {
	p := match(image, fileName)

	materials := make([]models.DetectedMaterial, len(p.materials))
	copy(materials, p.materials)
	warnings := make([]string, len(p.warnings))
	copy(warnings, p.warnings)

	return models.ClassificationResult{
		Materials:       materials,
		Confidence:      Confidence,
		EcoScore:        p.ecoScore,
		Warnings:        warnings,
		Metrics:         deriveMetrics(materials),
		Recommendations: deriveRecommendations(materials, p.harmful),
		Success:         true,
	}
}

// match finds the first profile whose keyword group hits the filename, then
// falls back to payload size. Table order carries meaning: a filename like
// "plastic_device.png" matches both the plastic and electronics groups and
// must resolve to plastic.
func match(image string, fileName string) profile {
	if fileName != "" {
		lower := strings.ToLower(fileName)
		for _, p := range keywordProfiles {
			for _, kw := range p.keywords {
				if strings.Contains(lower, kw) {
					return p
				}
			}
		}
	}

	switch {
	case len(image) > LargeImageThreshold:
		return largeImageProfile
	case len(image) < SmallImageThreshold:
		return unknownProfile
	default:
		return labeledPackagingProfile
	}
}

func deriveMetrics(materials []models.DetectedMaterial) models.ClassificationMetrics {
	waterSaved := float64(waterSavedBase)
	ecoSum := 0.0
	biodegradable := 0.0
	for _, m := range materials {
		ecoSum += m.EcoScore
		if m.Sustainable {
			waterSaved += waterSavedPerSustainable
			biodegradable += m.Percentage
		}
	}

	return models.ClassificationMetrics{
		WaterSaved:              int(math.Floor(waterSaved)),
		EnergyEfficiency:        int(math.Floor(energyEfficiencyBase + energyEfficiencyFactor*ecoSum)),
		BiodegradablePercentage: int(biodegradable),
	}
}

// deriveRecommendations builds up to three suggestions. Harmful profiles get
// the generic list; otherwise low-scoring materials each contribute one, with
// generic fillers appended when fewer than two came out of the materials.
func deriveRecommendations(materials []models.DetectedMaterial, harmful bool) []string {
	if harmful {
		out := make([]string, len(harmfulRecommendations))
		copy(out, harmfulRecommendations)
		return out
	}

	var out []string
	for _, m := range materials {
		if m.EcoScore < 6 {
			out = append(out, "Consider alternatives to "+m.Name+" with higher sustainability ratings")
		}
	}
	if len(out) < 2 {
		out = append(out, fillerRecommendations...)
	}
	if len(out) > 3 {
		out = out[:3]
	}
	return out
}

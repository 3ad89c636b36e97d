package materials

import "github.com/octobees/recycling-finder/internal/entity"

// Vocabulary returns the canonical materials list. This is the seed for the
// Materials table and the reference set for reconciliation; descriptions are
// unique across the list. CO2 savings are kg CO2e per kg recycled and are
// informational only.
func Vocabulary() []entity.Material {
	vocab := make([]entity.Material, len(canonicalMaterials))
	copy(vocab, canonicalMaterials)
	return vocab
}

var canonicalMaterials = []entity.Material{
	{Category: "paper", Description: "Corrugated Containers", CO2Savings: 5.58},
	{Category: "paper", Description: "Magazines/third-class mail", CO2Savings: 8.57},
	{Category: "paper", Description: "Newspaper", CO2Savings: 4.68},
	{Category: "paper", Description: "Office Paper", CO2Savings: 7.95},
	{Category: "paper", Description: "Phonebooks", CO2Savings: 6.17},
	{Category: "paper", Description: "Textbooks", CO2Savings: 9.02},
	{Category: "paper", Description: "Mixed Paper (general)", CO2Savings: 6.07},
	{Category: "paper", Description: "Mixed Paper (primarily)", CO2Savings: 6.00},
	{Category: "paper", Description: "Mixed Paper (primarily from Food Waste)", CO2Savings: 3.66},
	{Category: "organic", Description: "Food Waste (non-meat)", CO2Savings: 0.76},
	{Category: "organic", Description: "Food Waste (meat only)", CO2Savings: 15.1},
	{Category: "organic", Description: "Beef", CO2Savings: 30.9},
	{Category: "organic", Description: "Poultry", CO2Savings: 2.45},
	{Category: "organic", Description: "Grains", CO2Savings: 0.62},
	{Category: "organic", Description: "Bread", CO2Savings: 0.66},
	{Category: "organic", Description: "Fruits and Vegetables", CO2Savings: 0.44},
	{Category: "organic", Description: "Dairy Products", CO2Savings: 1.75},
	{Category: "plastic", Description: "HDPE", CO2Savings: 1.42},
	{Category: "plastic", Description: "LDPE", CO2Savings: 1.80},
	{Category: "plastic", Description: "PET", CO2Savings: 2.17},
	{Category: "plastic", Description: "LLDPE", CO2Savings: 1.58},
	{Category: "plastic", Description: "PP", CO2Savings: 1.00},
	{Category: "plastic", Description: "PS", CO2Savings: 2.50},
	{Category: "plastic", Description: "PVC", CO2Savings: 1.93},
	{Category: "plastic", Description: "Mixed Plastics", CO2Savings: 1.87},
	{Category: "plastic", Description: "PLA", CO2Savings: 2.45},
	{Category: "electronics", Description: "Desktop CPUs", CO2Savings: 20.80},
	{Category: "electronics", Description: "Portable Electronic Devices", CO2Savings: 29.83},
	{Category: "electronics", Description: "Flat-Panel Displays", CO2Savings: 24.19},
	{Category: "electronics", Description: "Electronic Peripherals", CO2Savings: 10.32},
	{Category: "electronics", Description: "Hard-Copy Devices", CO2Savings: 7.65},
	{Category: "electronics", Description: "Mixed Electronics", CO2Savings: 20.79},
	{Category: "metal", Description: "Aluminum Cans", CO2Savings: 4.80},
	{Category: "metal", Description: "Aluminum Ingot", CO2Savings: 7.48},
	{Category: "metal", Description: "Steel Cans", CO2Savings: 3.03},
	{Category: "metal", Description: "Copper Wire", CO2Savings: 6.72},
	{Category: "metal", Description: "Mixed Metals", CO2Savings: 3.65},
	{Category: "glass", Description: "Glass", CO2Savings: 0.53},
	{Category: "construction", Description: "Asphalt Concrete", CO2Savings: 0.19},
	{Category: "construction", Description: "Asphalt Shingles", CO2Savings: 0.19},
	{Category: "construction", Description: "Carpet", CO2Savings: 3.68},
	{Category: "construction", Description: "Clay Bricks", CO2Savings: 0.27},
	{Category: "construction", Description: "Dimensional Lumber", CO2Savings: 2.11},
	{Category: "construction", Description: "Drywall", CO2Savings: 0.00},
	{Category: "construction", Description: "Fiberglass Insulation", CO2Savings: 0.38},
	{Category: "construction", Description: "Medium-density Fiberboard", CO2Savings: 3.05},
	{Category: "construction", Description: "Structural Steel", CO2Savings: 1.67},
	{Category: "construction", Description: "Vinyl Flooring", CO2Savings: 0.58},
	{Category: "construction", Description: "Wood Flooring", CO2Savings: 4.11},
	{Category: "tires", Description: "Tires", CO2Savings: 4.30},
}

package materials

// categoryKeywords classifies free-text material mentions that arrive without
// a category. Declaration order matters: the first category with a matching
// keyword wins, so the richer lists sit first. Website-derived mentions skip
// this table entirely because the scanner already grouped them.
type categoryKeywords struct {
	Category string
	Keywords []string
}

var keywordTable = []categoryKeywords{
	{Category: "metal", Keywords: []string{
		"iron", "steel", "aluminum", "copper", "scrap", "metal", "tin",
		"brass", "bronze", "zinc", "lead", "ferrous", "non-ferrous",
		"cans", "wire", "ingot",
	}},
	{Category: "plastic", Keywords: []string{
		"plastic", "pp", "ps", "pet", "pvc", "hdpe", "ldpe", "lldpe",
		"polypropylene", "polystyrene", "polyethylene", "polyvinyl",
		"bottles", "containers", "packaging", "pla", "bioplastic",
	}},
	{Category: "textile", Keywords: []string{
		"clothing", "clothes", "fabric", "textile", "garments", "apparel",
		"fashion", "wool", "cotton", "polyester", "nylon", "linen",
		"denim", "silk", "leather",
	}},
	{Category: "paper", Keywords: []string{
		"paper", "cardboard", "carton", "newspaper", "magazine", "mail",
		"book", "phonebook", "office paper", "printing paper", "corrugated",
		"box", "document", "catalog", "envelope", "receipt",
	}},
	{Category: "glass", Keywords: []string{
		"glass", "bottle", "jar", "window", "mirror", "glassware",
		"windscreen", "windshield", "pane", "cullet",
	}},
	{Category: "electronics", Keywords: []string{
		"electronic", "e-waste", "computer", "phone", "laptop",
	}},
	{Category: "batteries", Keywords: []string{
		"battery", "batteries", "accumulator",
	}},
	{Category: "automotive", Keywords: []string{
		"car", "automotive", "vehicle", "auto parts",
	}},
	{Category: "organic", Keywords: []string{
		"organic", "compost", "food waste", "green waste",
	}},
	{Category: "hazardous", Keywords: []string{
		"hazardous", "chemical", "paint", "oil",
	}},
}

// ScanKeywords is the keyword table used by the website scanner, keyed the
// way the scan collaborators group their findings.
func ScanKeywords() map[string][]string {
	scan := make(map[string][]string, len(keywordTable))
	for _, entry := range keywordTable {
		scan[entry.Category] = append([]string(nil), entry.Keywords...)
	}
	return scan
}

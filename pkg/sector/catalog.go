// Package sector holds the static industry classification tables consulted by
// the screener. The tables are read-only; there is no runtime mutation.
package sector

import "strings"

// industryCategory maps a fine-grained industry label to a coarse category.
// Labels follow the profile pages' own wording; lookups are case-insensitive.
var industryCategory = map[string]string{
	"auto ancillaries":                "Auto",
	"automobile":                      "Auto",
	"automobiles - trucks/lcv":        "Auto",
	"2/3 wheelers":                    "Auto",
	"tyres":                           "Auto",
	"iron & steel":                    "Metals",
	"steel - sponge iron":             "Metals",
	"aluminium":                       "Metals",
	"mining & mineral products":       "Metals",
	"banks - private sector":          "Banking",
	"banks - public sector":           "Banking",
	"finance - nbfc":                  "Finance",
	"finance - housing":               "Finance",
	"finance - investments":           "Finance",
	"it - software":                   "IT",
	"it - hardware":                   "IT",
	"computers - software":            "IT",
	"pharmaceuticals":                 "Pharma",
	"pharmaceuticals - bulk drugs":    "Pharma",
	"healthcare":                      "Pharma",
	"cement":                          "Cement",
	"cement - products":               "Cement",
	"chemicals":                       "Chemicals",
	"fertilizers":                     "Chemicals",
	"paints/varnish":                  "Chemicals",
	"fmcg":                            "FMCG",
	"consumer food":                   "FMCG",
	"sugar":                           "FMCG",
	"power generation & distribution": "Power",
	"refineries":                      "Energy",
	"oil drill/allied":                "Energy",
	"gas distribution":                "Energy",
	"textiles":                        "Textiles",
	"textiles - spinning":             "Textiles",
	"readymade garments/apparels":     "Textiles",
	"realty":                          "Realty",
	"construction":                    "Realty",
	"infrastructure developers":       "Realty",
	"capital goods - electrical":      "Capital Goods",
	"capital goods - non electrical":  "Capital Goods",
	"engineering":                     "Capital Goods",
	"telecom-service":                 "Telecom",
	"telecomm equipment":              "Telecom",
	"trading":                         "Trading",
	"plastic products":                "Plastics",
	"paper":                           "Paper",
	"shipping":                        "Logistics",
	"logistics":                       "Logistics",
}

// allowedIndustries is the explicit allow-list applied to the final
// sector-filtered subset of a scan.
var allowedIndustries = map[string]struct{}{
	"auto ancillaries":                {},
	"automobile":                      {},
	"2/3 wheelers":                    {},
	"iron & steel":                    {},
	"aluminium":                       {},
	"mining & mineral products":       {},
	"pharmaceuticals":                 {},
	"it - software":                   {},
	"cement":                          {},
	"chemicals":                       {},
	"capital goods - electrical":      {},
	"capital goods - non electrical":  {},
	"power generation & distribution": {},
	"refineries":                      {},
}

// Category resolves the coarse category for an industry label, falling back to
// the sector label when the industry is unmapped. Returns ("", false) when
// neither maps.
func Category(industry, sectorLabel string) (string, bool) {
	if c, ok := industryCategory[normalize(industry)]; ok {
		return c, true
	}
	if c, ok := industryCategory[normalize(sectorLabel)]; ok {
		return c, true
	}
	return "", false
}

// Allowed reports whether an industry label is on the allow-list. An empty
// label is never allowed.
func Allowed(industry string) bool {
	if strings.TrimSpace(industry) == "" {
		return false
	}
	_, ok := allowedIndustries[normalize(industry)]
	return ok
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

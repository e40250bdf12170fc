package lca

import (
	"sort"
	"strings"
)

// gridEmissionFactors maps eGRID subregion acronyms to total output emission
// rates in kg CO2e per kWh.
//
// Source: US EPA eGRID2022 subregion output emission rates (lb/MWh converted
// at 0.4536 kg/lb). Values are rounded to three decimals.
var gridEmissionFactors = map[string]float64{
	"AZNM": 0.352, // WECC Southwest (Phoenix)
	"CAMX": 0.225, // WECC California
	"ERCT": 0.350, // ERCOT All
	"FRCC": 0.369, // Florida
	"MROW": 0.421, // MRO West
	"NEWE": 0.247, // NPCC New England
	"NWPP": 0.285, // WECC Northwest
	"NYUP": 0.106, // NPCC Upstate NY
	"RFCE": 0.278, // RFC East
	"RFCW": 0.472, // RFC West
	"RMPA": 0.537, // WECC Rockies
	"SRSO": 0.392, // SERC South
}

// GridFactor returns the emission factor for an eGRID subregion. Lookup is
// case-insensitive. Unlisted regions report false; there is no default.
func GridFactor(region string) (float64, bool) {
	factor, ok := gridEmissionFactors[strings.ToUpper(strings.TrimSpace(region))]
	return factor, ok
}

// GridRegions returns the listed subregion acronyms in sorted order.
func GridRegions() []string {
	regions := make([]string, 0, len(gridEmissionFactors))
	for r := range gridEmissionFactors {
		regions = append(regions, r)
	}
	sort.Strings(regions)
	return regions
}

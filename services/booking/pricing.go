package booking

import "gutterbook/models"

// Price tables for the gutter services. A combination that resolves to
// zero signals an invalid selection and is rejected before any slot
// mutation.

var cleaningOptionPrices = map[string]float64{
	"Garage":       40,
	"Conservatory": 40,
	"Extension":    40,
}

var repairOptionPrices = map[string]float64{
	"Running Outlet":            65,
	"Union Joint":               65,
	"Corner":                    65,
	"Gutter Bracket":            65,
	"Downpipe":                  65,
	"Gutter Length Replacement": 85,
}

// housePrices maps home style -> home type -> base price.
var housePrices = map[string]map[string]float64{
	"Terrace": {
		"Bungalow":             59,
		"2 bed House":          69,
		"3 bed House":          79,
		"4 bed House":          99,
		"5 bed House":          129,
		"Town House/3 Stories": 129,
	},
	"Semi-Detached": {
		"Bungalow":             69,
		"2 bed House":          79,
		"3 bed House":          89,
		"4 bed House":          99,
		"5 bed House":          139,
		"Town House/3 Stories": 139,
	},
	"Detached": {
		"Bungalow":             79,
		"2 bed House":          89,
		"3 bed House":          99,
		"4 bed House":          119,
		"5 bed House":          149,
		"Town House/3 Stories": 149,
	},
}

// IsCleaningOption reports whether opt is a valid gutter cleaning add-on.
func IsCleaningOption(opt string) bool {
	_, ok := cleaningOptionPrices[opt]
	return ok
}

// IsRepairOption reports whether opt is a valid gutter repair item.
func IsRepairOption(opt string) bool {
	_, ok := repairOptionPrices[opt]
	return ok
}

// ComputeTotalPrice is the pure pricing function: base price from the
// house style/type plus the selected service options. Unknown selections
// contribute nothing, so invalid combinations fall through to zero.
func ComputeTotalPrice(req models.CreateBookingRequest) float64 {
	total := 0.0

	if byType, ok := housePrices[req.SelectHomeStyle]; ok {
		total += byType[req.SelectHomeType]
	}

	switch req.SelectService {
	case models.ServiceGutterCleaning:
		for _, opt := range req.CleaningOptions {
			total += cleaningOptionPrices[opt]
		}
	case models.ServiceGutterRepair:
		for _, opt := range req.RepairOptions {
			total += repairOptionPrices[opt]
		}
	}

	return total
}

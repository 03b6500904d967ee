package lookup

// Defaults returns the built-in routing and country tables. They mirror the
// desk assignments the department runs with; deployments override them via
// routing.yaml.
func Defaults() Tables {
	million := 1000000.0
	return Tables{
		Countries: map[string]string{
			"AT": "Austria",
			"BE": "Belgium",
			"CH": "Switzerland",
			"CZ": "Czech Republic",
			"DE": "Germany",
			"DK": "Denmark",
			"ES": "Spain",
			"FI": "Finland",
			"FR": "France",
			"GB": "United Kingdom",
			"GR": "Greece",
			"HU": "Hungary",
			"IT": "Italy",
			"JP": "Japan",
			"NL": "Netherlands",
			"NO": "Norway",
			"PL": "Poland",
			"PT": "Portugal",
			"SE": "Sweden",
			"SG": "Singapore",
			"TR": "Turkey",
			"TW": "Taiwan",
			"US": "United States",
		},
		CreditManagers: []RoutingRule{
			{Label: "J. Keller", MinAmountUSD: &million},
			{Label: "M. Brandt", NameContains: "BANK AUSTRIA", Countries: []string{"AT"}},
			{Label: "M. Brandt", Countries: []string{"AT", "CH", "DE"}},
			{Label: "C. Moreau", Countries: []string{"FR", "BE", "NL", "GB"}},
			{Label: "L. Romano", Countries: []string{"IT", "ES", "PT", "GR"}},
			{Label: "A. Szabo", Countries: []string{"PL", "HU", "CZ", "TR"}},
			{Label: "N. Lindqvist", Countries: []string{"SE", "NO", "DK", "FI"}},
		},
		AccountExecutives: []RoutingRule{
			{Label: "S. Winter", NameContains: "EUROFACTOR"},
			{Label: "K. Tanaka", Countries: []string{"JP", "TW", "SG"}},
			{Label: "D. Fischer", Countries: []string{"DE", "AT", "CH"}},
			{Label: "P. Laurent", Countries: []string{"FR", "BE", "NL", "GB"}},
			{Label: "R. Conti", Countries: []string{"IT", "ES", "PT"}},
		},
	}
}

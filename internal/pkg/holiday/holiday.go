package holiday

// Holiday is a public holiday as returned by the external calendar service.
// Date stays a plain "YYYY-MM-DD" string so calendar matching is exact and
// free of time-of-day and zone concerns.
type Holiday struct {
	Date        string `json:"date"`
	LocalName   string `json:"localName"`
	Name        string `json:"name"`
	CountryCode string `json:"countryCode"`
}

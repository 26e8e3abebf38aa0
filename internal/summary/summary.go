package summary

import "time"

// CountryCount is one bucket of the per-country signup distribution.
type CountryCount struct {
	Code  string `json:"code"`
	Count int    `json:"count"`
}

// Summary is the aggregated view of the signup sheet served to the dashboard.
type Summary struct {
	Total         int            `json:"total"`
	MarketingYes  int            `json:"marketingYes"`
	MarketingRate float64        `json:"marketingRate"`
	Countries     []CountryCount `json:"countries"`
	UnknownCount  int            `json:"unknownCount"`
	TopCountry    *CountryCount  `json:"topCountry"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

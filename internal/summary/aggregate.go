package summary

import (
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Column names recognized in the signup sheet's header row.
const (
	colEmail     = "email"
	colTimestamp = "timestamp"
	colConsent   = "acepta_marketing"
	colCountry   = "ip_country"
)

// unknownCountry is the placeholder for signups whose country could not be
// resolved; it never becomes a country bucket.
const unknownCountry = "UNKNOWN"

// Aggregate computes a Summary from raw sheet rows. Row 0 is the header;
// a row counts as a signup only when it has at least one non-blank cell
// and a non-blank email or timestamp.
func Aggregate(rows [][]string, now time.Time) Summary {
	s := Summary{
		Countries: []CountryCount{},
		UpdatedAt: now,
	}

	if len(rows) == 0 {
		return s
	}

	idx := NewHeaderIndex(rows[0])
	counts := make(map[string]int)
	var order []string

	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}

		email := strings.TrimSpace(idx.Field(row, colEmail))
		timestamp := strings.TrimSpace(idx.Field(row, colTimestamp))
		if email == "" && timestamp == "" {
			// No identity signal: a formatting row, not a signup.
			continue
		}

		s.Total++

		if isTruthy(idx.Field(row, colConsent)) {
			s.MarketingYes++
		}

		country := strings.ToUpper(strings.TrimSpace(idx.Field(row, colCountry)))
		if country == "" || country == unknownCountry {
			s.UnknownCount++
			continue
		}
		if _, seen := counts[country]; !seen {
			order = append(order, country)
		}
		counts[country]++
	}

	for _, code := range order {
		s.Countries = append(s.Countries, CountryCount{Code: code, Count: counts[code]})
	}
	// Descending by count; ties keep first-seen order.
	sort.SliceStable(s.Countries, func(i, j int) bool {
		return s.Countries[i].Count > s.Countries[j].Count
	})

	if s.Total > 0 {
		s.MarketingRate = float64(s.MarketingYes) / float64(s.Total)
	}
	if len(s.Countries) > 0 {
		top := s.Countries[0]
		s.TopCountry = &top
	}

	log.Debug().
		Int("rows", len(rows)).
		Int("total", s.Total).
		Int("countries", len(s.Countries)).
		Int("unknown", s.UnknownCount).
		Msg("Aggregated signup rows")

	return s
}

// isBlankRow reports whether a row has zero cells or only blank cells.
func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// isTruthy reports whether a consent cell opts in to marketing.
// Anything outside the known truthy set is treated as a no, never an error.
func isTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes", "si":
		return true
	}
	return false
}

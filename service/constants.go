package service

import "time"

const (
	// DefaultSessionTTL is how long an administrator session stays valid.
	DefaultSessionTTL = 24 * time.Hour

	// QuoteValidityMonths is how long a submitted quote can be converted.
	QuoteValidityMonths = 1

	// QuoteCacheTTL bounds how long a priced selection is reused.
	QuoteCacheTTL = 10 * time.Minute

	MaxSearchLength = 200
)

const (
	MsgMissingFields = "Please fill in all required fields before proceeding."
	MsgNoReportData  = "No data available to generate a report for the selected filters."
)

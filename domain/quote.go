package domain

import "time"

// QuoteSubmission is handed to the quote list when an applicant buys a
// configured quote.
type QuoteSubmission struct {
	SubmissionID string         `json:"submission_id"`
	ProductKey   string         `json:"product_key"`
	ProductName  string         `json:"product_name"`
	Applicant    ApplicantInfo  `json:"applicant_info"`
	Selection    SelectionState `json:"selection"`
	TotalPremium Money          `json:"total_premium"`
	Timestamp    time.Time      `json:"timestamp"`
}

type QuoteStatus string

const (
	QuotePending   QuoteStatus = "Pending"
	QuoteApproved  QuoteStatus = "Approved"
	QuoteRejected  QuoteStatus = "Rejected"
	QuoteConverted QuoteStatus = "Converted"
)

// QuoteRecord is one row of the quote list.
type QuoteRecord struct {
	ID           string      `json:"id"`
	Client       string      `json:"client"`
	Product      string      `json:"product"`
	Amount       Money       `json:"amount"`
	Status       QuoteStatus `json:"status"`
	Date         string      `json:"date"`
	ValidUntil   string      `json:"validUntil"`
	SubmissionID string      `json:"submissionId,omitempty"`
}

// QuoteFilter narrows the quote list. Empty fields match everything.
type QuoteFilter struct {
	Search    string `json:"search"`
	Status    string `json:"status"`
	DateRange string `json:"range"`
}

const (
	RangeAll   = "all"
	RangeToday = "today"
	RangeWeek  = "week"
	RangeMonth = "month"
)

// QuoteStats summarises the quote list.
type QuoteStats struct {
	Total          int   `json:"total"`
	Pending        int   `json:"pending"`
	Converted      int   `json:"converted"`
	ConversionRate int   `json:"conversion_rate"`
	TotalValue     Money `json:"total_value"`
}

// Package export renders quote and user reports as CSV.
package export

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"time"

	"quote-desk/domain"
)

var ErrNoData = errors.New("no data to export")

const QuotesFilename = "quotes_report.csv"

var (
	quoteHeader = []string{"Quote ID", "Client", "Product", "Amount (KSh)", "Status", "Date", "Valid Until"}
	userHeader  = []string{"ID", "Name", "Email", "Phone", "Status", "Policies", "Join Date"}
)

// UsersFilename names the users report for the day it is generated.
func UsersFilename(now time.Time) string {
	return "users-report-" + now.Format("2006-01-02") + ".csv"
}

// Quotes writes a header and one row per record. Fields holding commas,
// quotes or newlines are quoted.
func Quotes(w io.Writer, records []domain.QuoteRecord) error {
	if len(records) == 0 {
		return ErrNoData
	}
	rows := make([][]string, 0, len(records))
	for _, q := range records {
		rows = append(rows, []string{
			q.ID,
			q.Client,
			q.Product,
			strconv.FormatInt(int64(q.Amount), 10),
			string(q.Status),
			q.Date,
			q.ValidUntil,
		})
	}
	return write(w, quoteHeader, rows)
}

func Users(w io.Writer, users []domain.User) error {
	if len(users) == 0 {
		return ErrNoData
	}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{
			strconv.Itoa(u.ID),
			u.Name,
			u.Email,
			u.Phone,
			u.Status,
			strconv.Itoa(u.Policies),
			u.JoinDate,
		})
	}
	return write(w, userHeader, rows)
}

func write(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

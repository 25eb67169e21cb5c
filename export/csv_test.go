package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quote-desk/domain"
)

func TestQuotes_TwoRecords(t *testing.T) {
	records := []domain.QuoteRecord{
		{ID: "Q001", Client: "Doe, John", Product: "Motor Insurance", Amount: 25000, Status: domain.QuotePending, Date: "2024-01-15", ValidUntil: "2024-02-15"},
		{ID: "Q002", Client: "Jane Smith", Product: "Health, Family", Amount: 45000, Status: domain.QuoteApproved, Date: "2024-01-16", ValidUntil: "2024-02-16"},
	}

	var buf bytes.Buffer
	require.NoError(t, Quotes(&buf, records))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Quote ID,Client,Product,Amount (KSh),Status,Date,Valid Until", lines[0])
	assert.Equal(t, `Q001,"Doe, John",Motor Insurance,25000,Pending,2024-01-15,2024-02-15`, lines[1])
	assert.Equal(t, `Q002,Jane Smith,"Health, Family",45000,Approved,2024-01-16,2024-02-16`, lines[2])
}

func TestQuotes_Empty(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, Quotes(&buf, nil), ErrNoData)
	assert.Zero(t, buf.Len())
}

func TestUsers(t *testing.T) {
	users := []domain.User{
		{ID: 1, Name: "John Doe", Email: "john@example.com", Phone: "1234567890", Status: "active", Policies: 2, JoinDate: "2024-01-01"},
	}
	var buf bytes.Buffer
	require.NoError(t, Users(&buf, users))
	assert.Equal(t,
		"ID,Name,Email,Phone,Status,Policies,Join Date\n1,John Doe,john@example.com,1234567890,active,2,2024-01-01\n",
		buf.String())

	assert.ErrorIs(t, Users(&buf, nil), ErrNoData)
}

func TestUsersFilename(t *testing.T) {
	assert.Equal(t, "users-report-2026-03-14.csv", UsersFilename(time.Date(2026, 3, 14, 23, 0, 0, 0, time.UTC)))
}

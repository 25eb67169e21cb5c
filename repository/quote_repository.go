package repository

import (
	"context"
	"fmt"
	"sync"

	"quote-desk/domain"
)

type QuoteRepository interface {
	List(ctx context.Context) ([]domain.QuoteRecord, error)
	Get(ctx context.Context, id string) (domain.QuoteRecord, error)
	// Add assigns the next quote id to rec and stores it.
	Add(ctx context.Context, rec domain.QuoteRecord) (domain.QuoteRecord, error)
	SetStatus(ctx context.Context, id string, status domain.QuoteStatus) (domain.QuoteRecord, error)
}

// SeedQuotes are the demo quotes the quote list starts with.
var SeedQuotes = []domain.QuoteRecord{
	{ID: "Q001", Client: "John Doe", Product: "Motor Insurance", Amount: 25000, Status: domain.QuotePending, Date: "2024-01-15", ValidUntil: "2024-02-15"},
	{ID: "Q002", Client: "Jane Smith", Product: "Health Insurance", Amount: 45000, Status: domain.QuoteApproved, Date: "2024-01-16", ValidUntil: "2024-02-16"},
	{ID: "Q003", Client: "Mike Johnson", Product: "Life Insurance", Amount: 120000, Status: domain.QuoteRejected, Date: "2024-01-17", ValidUntil: "2024-02-17"},
	{ID: "Q004", Client: "Sarah Wilson", Product: "Property Insurance", Amount: 85000, Status: domain.QuoteConverted, Date: "2024-01-18", ValidUntil: "2024-02-18"},
}

// QuoteRepositoryMemory keeps quotes in insertion order.
type QuoteRepositoryMemory struct {
	mu     sync.RWMutex
	quotes []domain.QuoteRecord
	next   int
}

func NewQuoteRepositoryMemory(seed []domain.QuoteRecord) *QuoteRepositoryMemory {
	r := &QuoteRepositoryMemory{
		quotes: append([]domain.QuoteRecord(nil), seed...),
		next:   len(seed) + 1,
	}
	return r
}

func (r *QuoteRepositoryMemory) List(_ context.Context) ([]domain.QuoteRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.QuoteRecord(nil), r.quotes...), nil
}

func (r *QuoteRepositoryMemory) Get(_ context.Context, id string) (domain.QuoteRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, q := range r.quotes {
		if q.ID == id {
			return q, nil
		}
	}
	return domain.QuoteRecord{}, ErrNotFound
}

func (r *QuoteRepositoryMemory) Add(_ context.Context, rec domain.QuoteRecord) (domain.QuoteRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec.ID = fmt.Sprintf("Q%03d", r.next)
	r.next++
	r.quotes = append(r.quotes, rec)
	return rec, nil
}

func (r *QuoteRepositoryMemory) SetStatus(_ context.Context, id string, status domain.QuoteStatus) (domain.QuoteRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.quotes {
		if r.quotes[i].ID == id {
			r.quotes[i].Status = status
			return r.quotes[i], nil
		}
	}
	return domain.QuoteRecord{}, ErrNotFound
}

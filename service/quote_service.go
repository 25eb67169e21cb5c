package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"quote-desk/catalog"
	"quote-desk/domain"
	"quote-desk/export"
	"quote-desk/repository"
)

const dateLayout = "2006-01-02"

// TierChoice is one category selection in a quote request.
type TierChoice struct {
	Category string `json:"category"`
	Tier     string `json:"tier"`
}

// QuoteRequest describes a configured quote form: applicant fields, tier
// selections in the order they were made, and the active add-ons.
type QuoteRequest struct {
	Product    string            `json:"product"`
	Applicant  map[string]string `json:"applicant"`
	Selections []TierChoice      `json:"selections"`
	AddOns     []string          `json:"add_ons"`
}

// QuoteResult is the priced outcome of a QuoteRequest.
type QuoteResult struct {
	Product      string                     `json:"product"`
	Ready        bool                       `json:"ready"`
	Messages     []domain.ValidationMessage `json:"messages,omitempty"`
	Breakdown    domain.PremiumBreakdown    `json:"breakdown"`
	Installments *domain.InstallmentPlan    `json:"installments,omitempty"`
	Presentation Presentation               `json:"presentation"`
}

type QuoteService struct {
	catalog  *catalog.Catalog
	repo     repository.QuoteRepository
	cache    repository.CacheRepository
	cacheTTL time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

func NewQuoteService(
	cat *catalog.Catalog,
	repo repository.QuoteRepository,
	cache repository.CacheRepository,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *QuoteService {
	return &QuoteService{
		catalog:  cat,
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
		now:      time.Now,
	}
}

// Form replays req onto a fresh form. Applicant fields are set before any
// selection so value-rated tiers see the vehicle value.
func (s *QuoteService) Form(req QuoteRequest) (*Form, error) {
	product, err := s.catalog.Product(req.Product)
	if err != nil {
		return nil, err
	}
	f := NewForm(product)
	for name, value := range req.Applicant {
		if err := f.SetField(name, value); err != nil {
			return nil, err
		}
	}
	for _, c := range req.Selections {
		if err := f.SelectTier(c.Category, c.Tier); err != nil {
			return nil, err
		}
	}
	for _, id := range req.AddOns {
		if err := f.ToggleAddOn(id); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Price validates and prices req. Results are cached by request content.
func (s *QuoteService) Price(ctx context.Context, req QuoteRequest) (QuoteResult, error) {
	key, err := cacheKey(req)
	if err != nil {
		return QuoteResult{}, err
	}
	if cached, ok := s.cache.Get(ctx, key); ok {
		var res QuoteResult
		if err := json.Unmarshal([]byte(cached), &res); err == nil {
			s.logger.Debug("price cache hit", zap.String("product", req.Product))
			return res, nil
		}
	}

	f, err := s.Form(req)
	if err != nil {
		return QuoteResult{}, err
	}
	msgs := f.Validate(s.now())
	res := QuoteResult{
		Product:      f.Product().Key,
		Ready:        !domain.Blocking(msgs),
		Messages:     msgs,
		Breakdown:    f.Breakdown(),
		Presentation: f.Presentation(),
	}
	if plan, ok := f.Installments(); ok {
		res.Installments = &plan
	}

	if data, err := json.Marshal(res); err == nil {
		if err := s.cache.Set(ctx, key, string(data), s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache priced quote", zap.Error(err))
		}
	}
	return res, nil
}

func cacheKey(req QuoteRequest) (string, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encode quote request: %w", err)
	}
	sum := sha256.Sum256(data)
	return "price:" + hex.EncodeToString(sum[:]), nil
}

// Create validates req, moves it through the form and submits it to the
// quote list. Blocking validation messages come back with ErrValidation.
func (s *QuoteService) Create(ctx context.Context, req QuoteRequest) (domain.QuoteRecord, []domain.ValidationMessage, error) {
	f, err := s.Form(req)
	if err != nil {
		return domain.QuoteRecord{}, nil, err
	}
	now := s.now()
	msgs, ok := f.Proceed(now)
	if !ok {
		return domain.QuoteRecord{}, msgs, ErrValidation
	}
	rec, err := f.Submit(ctx, s, now)
	if err != nil {
		return domain.QuoteRecord{}, msgs, err
	}
	return rec, msgs, nil
}

// Submit adds a configured quote to the list as Pending.
func (s *QuoteService) Submit(ctx context.Context, sub domain.QuoteSubmission) (domain.QuoteRecord, error) {
	if sub.TotalPremium <= 0 {
		return domain.QuoteRecord{}, fmt.Errorf("%w: no premium", ErrInvalidQuote)
	}
	date := sub.Timestamp
	rec := domain.QuoteRecord{
		Client:       strings.TrimSpace(sub.Applicant[domain.FieldFullName]),
		Product:      sub.ProductName,
		Amount:       sub.TotalPremium,
		Status:       domain.QuotePending,
		Date:         date.Format(dateLayout),
		ValidUntil:   date.AddDate(0, QuoteValidityMonths, 0).Format(dateLayout),
		SubmissionID: sub.SubmissionID,
	}
	rec, err := s.repo.Add(ctx, rec)
	if err != nil {
		return domain.QuoteRecord{}, fmt.Errorf("store quote: %w", err)
	}
	s.logger.Info("quote submitted",
		zap.String("id", rec.ID),
		zap.String("product", sub.ProductKey),
		zap.Int64("amount", int64(rec.Amount)),
	)
	return rec, nil
}

// List returns the quotes matching f.
func (s *QuoteService) List(ctx context.Context, f domain.QuoteFilter) ([]domain.QuoteRecord, error) {
	if len(f.Search) > MaxSearchLength {
		return nil, fmt.Errorf("%w: search too long", ErrInvalidQuote)
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]domain.QuoteRecord, 0, len(all))
	for _, q := range all {
		if matches(q, f, now) {
			out = append(out, q)
		}
	}
	return out, nil
}

func matches(q domain.QuoteRecord, f domain.QuoteFilter, now time.Time) bool {
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		if !strings.Contains(strings.ToLower(q.Client), term) &&
			!strings.Contains(strings.ToLower(q.ID), term) {
			return false
		}
	}
	if f.Status != "" && !strings.EqualFold(f.Status, "all") &&
		!strings.EqualFold(f.Status, string(q.Status)) {
		return false
	}
	return inRange(q.Date, f.DateRange, now)
}

func inRange(date, rng string, now time.Time) bool {
	if rng == "" || rng == domain.RangeAll {
		return true
	}
	d, err := time.ParseInLocation(dateLayout, date, now.Location())
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch rng {
	case domain.RangeToday:
		return d.Equal(today)
	case domain.RangeWeek:
		start := today.AddDate(0, 0, -int(today.Weekday()))
		return !d.Before(start)
	case domain.RangeMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return !d.Before(start)
	default:
		return true
	}
}

// Stats summarises the quotes matching f.
func (s *QuoteService) Stats(ctx context.Context, f domain.QuoteFilter) (domain.QuoteStats, error) {
	quotes, err := s.List(ctx, f)
	if err != nil {
		return domain.QuoteStats{}, err
	}
	var st domain.QuoteStats
	st.Total = len(quotes)
	for _, q := range quotes {
		switch q.Status {
		case domain.QuotePending:
			st.Pending++
		case domain.QuoteConverted:
			st.Converted++
		}
		st.TotalValue += q.Amount
	}
	if st.Total > 0 {
		st.ConversionRate = int(math.Round(float64(st.Converted) / float64(st.Total) * 100))
	}
	return st, nil
}

// Convert marks a quote as converted to a policy.
func (s *QuoteService) Convert(ctx context.Context, id string) (domain.QuoteRecord, error) {
	rec, err := s.repo.SetStatus(ctx, id, domain.QuoteConverted)
	if err != nil {
		return domain.QuoteRecord{}, err
	}
	s.logger.Info("quote converted", zap.String("id", id))
	return rec, nil
}

// Export renders the quotes matching f as CSV.
func (s *QuoteService) Export(ctx context.Context, f domain.QuoteFilter) ([]byte, string, error) {
	quotes, err := s.List(ctx, f)
	if err != nil {
		return nil, "", err
	}
	var buf bytes.Buffer
	if err := export.Quotes(&buf, quotes); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), export.QuotesFilename, nil
}

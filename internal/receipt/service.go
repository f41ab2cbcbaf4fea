package receipt

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zombor/printshop-pos/internal/pricing"
)

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Prices is the price table the service reads rates from and updates
type Prices interface {
	RateSource
	Rates(c pricing.Category) pricing.Rates
	All() map[pricing.Category]pricing.Rates
	SetRate(c pricing.Category, colored bool, value decimal.Decimal)
	SetImageSurcharge(c pricing.Category, value decimal.Decimal)
	Reset()
	Save() error
	Backup(now time.Time) (string, error)
	Summary() string
}

// Service coordinates the active receipt, the price table and receipt storage.
// It is not safe for concurrent use.
type Service struct {
	prices     Prices
	storage    Storage
	timeSource TimeSource

	current *Receipt
	history []*Receipt
}

// NewService creates a new Service with the default time source
func NewService(prices Prices, storage Storage) *Service {
	return NewServiceWithDeps(prices, storage, &defaultTimeSource{})
}

// NewServiceWithDeps creates a new Service with a custom time source for testing
func NewServiceWithDeps(prices Prices, storage Storage, timeSrc TimeSource) *Service {
	return &Service{
		prices:     prices,
		storage:    storage,
		timeSource: timeSrc,
		current:    NewReceipt(timeSrc.Now()),
	}
}

// AddTransaction prices a new transaction and appends it to the active receipt
func (s *Service) AddTransaction(service pricing.Category, pages int, colored, hasImages bool) *Transaction {
	t := NewTransaction(service, pages, colored, hasImages, s.timeSource.Now())
	t.ComputeSubtotal(s.prices)
	s.current.Add(t)
	return t
}

// RemoveTransaction removes the transaction at index, reporting false if there is none
func (s *Service) RemoveTransaction(index int) bool {
	if err := s.current.Remove(index); err != nil {
		slog.Debug("Transaction not removed", "index", index, "error", err)
		return false
	}
	return true
}

// ClearCurrentReceipt discards the active receipt and starts a new one
func (s *Service) ClearCurrentReceipt() {
	s.current = NewReceipt(s.timeSource.Now())
}

// CurrentReceipt returns the active receipt
func (s *Service) CurrentReceipt() *Receipt {
	return s.current
}

// Transactions returns the transactions of the active receipt
func (s *Service) Transactions() []*Transaction {
	return s.current.Transactions()
}

// CurrentTotal returns the total of the active receipt
func (s *Service) CurrentTotal() decimal.Decimal {
	return s.current.Total()
}

// GenerateReceipt writes the active receipt to storage, records it in the
// history and starts a new receipt. State is only changed once the write succeeded.
func (s *Service) GenerateReceipt() (string, error) {
	if s.current.Len() == 0 {
		return "", ErrEmptyReceipt
	}

	text := s.current.RenderText()
	path, err := s.storage.Save(s.current.Filename(), []byte(text))
	if err != nil {
		return "", fmt.Errorf("writing receipt: %w", err)
	}

	slog.Info("Receipt generated",
		"path", path,
		"transactions", s.current.Len(),
		"total", s.current.Total().StringFixed(2),
	)

	s.history = append(s.history, s.current)
	s.current = NewReceipt(s.timeSource.Now())
	return path, nil
}

// UpdatePricing sets all three rates of a category and saves the table
func (s *Service) UpdatePricing(service pricing.Category, monochrome, colored, imageSurcharge decimal.Decimal) error {
	s.prices.SetRate(service, false, monochrome)
	s.prices.SetRate(service, true, colored)
	s.prices.SetImageSurcharge(service, imageSurcharge)
	if err := s.prices.Save(); err != nil {
		return fmt.Errorf("updating pricing for %s: %w", service, err)
	}
	return nil
}

// ResetPricing restores the default rates and saves the table
func (s *Service) ResetPricing() error {
	s.prices.Reset()
	if err := s.prices.Save(); err != nil {
		return fmt.Errorf("resetting pricing: %w", err)
	}
	return nil
}

// RecalculateCurrentTransactions reprices the active receipt against the current rates
func (s *Service) RecalculateCurrentTransactions() {
	s.current.Recalculate(s.prices)
}

// Pricing returns the rates of one category
func (s *Service) Pricing(service pricing.Category) pricing.Rates {
	return s.prices.Rates(service)
}

// AllPricing returns the rates of every category
func (s *Service) AllPricing() map[pricing.Category]pricing.Rates {
	return s.prices.All()
}

// PricingSummary renders the rates of every category
func (s *Service) PricingSummary() string {
	return s.prices.Summary()
}

// BackupPricing copies the price config file aside
func (s *Service) BackupPricing() (string, error) {
	path, err := s.prices.Backup(s.timeSource.Now())
	if err != nil {
		return "", fmt.Errorf("backing up pricing: %w", err)
	}
	return path, nil
}

// History returns the receipts generated since the service was created
func (s *Service) History() []*Receipt {
	out := make([]*Receipt, len(s.history))
	copy(out, s.history)
	return out
}

// ListReceiptFiles returns the stored receipt files, most recent first
func (s *Service) ListReceiptFiles() ([]string, error) {
	paths, err := s.storage.List()
	if err != nil {
		return nil, fmt.Errorf("listing receipts: %w", err)
	}
	return paths, nil
}

// ReadReceiptFile returns the contents of a stored receipt
func (s *Service) ReadReceiptFile(name string) ([]byte, error) {
	data, err := s.storage.Get(name)
	if err != nil {
		return nil, fmt.Errorf("getting receipt file: %w", err)
	}
	return data, nil
}


package receipt

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zombor/printshop-pos/internal/pricing"
)

// ServiceSummary aggregates one category over a day
type ServiceSummary struct {
	Service      pricing.Category `json:"service"`
	Transactions int              `json:"transactions"`
	Revenue      decimal.Decimal  `json:"revenue"`
}

// Summary aggregates the receipts generated on one calendar day
type Summary struct {
	Date         time.Time        `json:"date"`
	Receipts     int              `json:"receipts"`
	Transactions int              `json:"transactions"`
	Revenue      decimal.Decimal  `json:"revenue"`
	Services     []ServiceSummary `json:"services"`
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}

// DailySummary totals the generated receipts created on day's calendar date
func (s *Service) DailySummary(day time.Time) Summary {
	byService := make(map[pricing.Category]*ServiceSummary)
	for _, c := range pricing.Categories() {
		byService[c] = &ServiceSummary{Service: c, Revenue: decimal.Zero}
	}

	sum := Summary{Date: day, Revenue: decimal.Zero}
	for _, r := range s.history {
		if !sameDay(day, r.CreatedAt) {
			continue
		}
		sum.Receipts++
		for _, t := range r.Transactions() {
			sum.Transactions++
			sum.Revenue = sum.Revenue.Add(t.Subtotal())
			if ss, ok := byService[t.Service]; ok {
				ss.Transactions++
				ss.Revenue = ss.Revenue.Add(t.Subtotal())
			}
		}
	}

	for _, c := range pricing.Categories() {
		sum.Services = append(sum.Services, *byService[c])
	}
	return sum
}

// Text renders the summary as the exported report
func (sum Summary) Text(generatedAt time.Time) string {
	lines := []string{
		"DAILY SUMMARY - " + sum.Date.Format("January 02, 2006"),
		strings.Repeat("=", receiptWidth),
		"",
		fmt.Sprintf("Receipts Generated: %d", sum.Receipts),
		fmt.Sprintf("Total Transactions: %d", sum.Transactions),
		"Total Revenue: " + pricing.FormatCurrency(sum.Revenue),
		"",
		"Service Breakdown:",
	}
	for _, ss := range sum.Services {
		lines = append(lines, fmt.Sprintf("- %ss: %d transactions, %s",
			ss.Service.DisplayName(), ss.Transactions, pricing.FormatCurrency(ss.Revenue)))
	}
	lines = append(lines,
		"",
		"Generated on: "+generatedAt.Format("2006-01-02 15:04:05"),
	)
	return strings.Join(lines, "\n") + "\n"
}

// ExportDailySummary writes the day's summary to storage and returns its path
func (s *Service) ExportDailySummary(day time.Time) (string, error) {
	text := s.DailySummary(day).Text(s.timeSource.Now())
	name := fmt.Sprintf("daily_summary_%s.txt", day.Format("2006-01-02"))
	path, err := s.storage.Save(name, []byte(text))
	if err != nil {
		return "", fmt.Errorf("writing daily summary: %w", err)
	}
	return path, nil
}

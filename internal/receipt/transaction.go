package receipt

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zombor/printshop-pos/internal/pricing"
)

// RateSource provides the per-page rates a subtotal is computed against
type RateSource interface {
	Rate(c pricing.Category, colored bool) decimal.Decimal
	ImageSurcharge(c pricing.Category) decimal.Decimal
}

// Transaction is a single billable line item.
// Its subtotal is cached and only changes when ComputeSubtotal is called again.
type Transaction struct {
	Service   pricing.Category `json:"service"`
	Pages     int              `json:"pages"`
	Colored   bool             `json:"colored"`
	HasImages bool             `json:"has_images"`
	CreatedAt time.Time        `json:"created_at"`

	subtotal decimal.Decimal
}

// NewTransaction creates a transaction with a zero subtotal
func NewTransaction(service pricing.Category, pages int, colored, hasImages bool, createdAt time.Time) *Transaction {
	return &Transaction{
		Service:   service,
		Pages:     pages,
		Colored:   colored,
		HasImages: hasImages,
		CreatedAt: createdAt,
	}
}

// ComputeSubtotal prices the transaction against prices, caches the result and returns it
func (t *Transaction) ComputeSubtotal(prices RateSource) decimal.Decimal {
	pages := decimal.NewFromInt(int64(t.Pages))
	subtotal := prices.Rate(t.Service, t.Colored).Mul(pages)
	if t.HasImages {
		subtotal = subtotal.Add(prices.ImageSurcharge(t.Service).Mul(pages))
	}
	t.subtotal = subtotal
	return subtotal
}

// Subtotal returns the value from the last ComputeSubtotal call
func (t *Transaction) Subtotal() decimal.Decimal {
	return t.subtotal
}

// Describe renders the transaction as a single line
func (t *Transaction) Describe() string {
	color := "Monochrome"
	if t.Colored {
		color = "Colored"
	}
	images := ""
	if t.HasImages {
		images = " (with images)"
	}
	return fmt.Sprintf("%s - %d pages - %s%s: %s",
		t.Service, t.Pages, color, images, pricing.FormatCurrency(t.subtotal))
}

package receipt

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/zombor/printshop-pos/internal/pricing"
)

// Preview is the cost breakdown of a transaction that has not been added
type Preview struct {
	Service        pricing.Category `json:"service"`
	Pages          int              `json:"pages"`
	Colored        bool             `json:"colored"`
	HasImages      bool             `json:"has_images"`
	BasePrice      decimal.Decimal  `json:"base_price"`
	BaseTotal      decimal.Decimal  `json:"base_total"`
	ImageSurcharge decimal.Decimal  `json:"image_surcharge"`
	ImageTotal     decimal.Decimal  `json:"image_total"`
	Subtotal       decimal.Decimal  `json:"subtotal"`
}

// Preview prices a hypothetical transaction without touching the active receipt
func (s *Service) Preview(service pricing.Category, pages int, colored, hasImages bool) Preview {
	t := NewTransaction(service, pages, colored, hasImages, s.timeSource.Now())
	subtotal := t.ComputeSubtotal(s.prices)

	count := decimal.NewFromInt(int64(pages))
	base := s.prices.Rate(service, colored)
	p := Preview{
		Service:        service,
		Pages:          pages,
		Colored:        colored,
		HasImages:      hasImages,
		BasePrice:      base,
		BaseTotal:      base.Mul(count),
		ImageSurcharge: decimal.Zero,
		ImageTotal:     decimal.Zero,
		Subtotal:       subtotal,
	}
	if hasImages {
		p.ImageSurcharge = s.prices.ImageSurcharge(service)
		p.ImageTotal = p.ImageSurcharge.Mul(count)
	}
	return p
}

// Lines renders the breakdown the way it is shown before adding a service
func (p Preview) Lines() []string {
	colorType := "Mono"
	if p.Colored {
		colorType = "Colored"
	}

	lines := []string{
		fmt.Sprintf("%d pages × %s (%s)", p.Pages, pricing.FormatCurrency(p.BasePrice), colorType),
		"= " + pricing.FormatCurrency(p.BaseTotal),
	}
	if p.HasImages {
		lines = append(lines, fmt.Sprintf("Images: %d × %s = %s",
			p.Pages, pricing.FormatCurrency(p.ImageSurcharge), pricing.FormatCurrency(p.ImageTotal)))
	}
	lines = append(lines,
		strings.Repeat("─", 25),
		"Total: "+pricing.FormatCurrency(p.Subtotal),
	)
	return lines
}

package receipt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zombor/printshop-pos/internal/pricing"
)

var (
	// ErrIndexOutOfRange is returned when removing a transaction that does not exist
	ErrIndexOutOfRange = errors.New("transaction index out of range")

	// ErrEmptyReceipt is returned when generating a receipt without transactions
	ErrEmptyReceipt = errors.New("no transactions to generate receipt for")
)

const (
	receiptWidth   = 50
	receiptHeading = "           PRINTING BUSINESS POS"
	receiptFooter  = "Thank you for your business!"
)

// Receipt is an ordered batch of transactions with a cached total
type Receipt struct {
	CreatedAt time.Time `json:"created_at"`

	transactions []*Transaction
	total        decimal.Decimal
}

// NewReceipt creates an empty receipt stamped with createdAt
func NewReceipt(createdAt time.Time) *Receipt {
	return &Receipt{CreatedAt: createdAt}
}

// Add appends a transaction and refreshes the total
func (r *Receipt) Add(t *Transaction) {
	r.transactions = append(r.transactions, t)
	r.calculateTotal()
}

// Remove deletes the transaction at index and refreshes the total
func (r *Receipt) Remove(index int) error {
	if index < 0 || index >= len(r.transactions) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	r.transactions = append(r.transactions[:index], r.transactions[index+1:]...)
	r.calculateTotal()
	return nil
}

// Recalculate reprices every transaction and refreshes the total
func (r *Receipt) Recalculate(prices RateSource) {
	for _, t := range r.transactions {
		t.ComputeSubtotal(prices)
	}
	r.calculateTotal()
}

func (r *Receipt) calculateTotal() {
	total := decimal.Zero
	for _, t := range r.transactions {
		total = total.Add(t.Subtotal())
	}
	r.total = total
}

// Total returns the cached sum of the subtotals
func (r *Receipt) Total() decimal.Decimal {
	return r.total
}

// Len returns the number of transactions
func (r *Receipt) Len() int {
	return len(r.transactions)
}

// Transactions returns the transactions in insertion order
func (r *Receipt) Transactions() []*Transaction {
	out := make([]*Transaction, len(r.transactions))
	copy(out, r.transactions)
	return out
}

// Filename returns the export name derived from the creation time
func (r *Receipt) Filename() string {
	return fmt.Sprintf("Receipt_%s.txt", r.CreatedAt.Format("01-02-2006_15-04-05"))
}

// RenderText renders the receipt in its persisted text layout
func (r *Receipt) RenderText() string {
	banner := strings.Repeat("=", receiptWidth)
	rule := strings.Repeat("-", receiptWidth)

	lines := []string{
		banner,
		receiptHeading,
		banner,
		"",
		"Date: " + r.CreatedAt.Format("01/02/2006"),
		"Time: " + r.CreatedAt.Format("03:04:05 PM"),
		"",
		rule,
		"TRANSACTION DETAILS:",
		rule,
	}
	for i, t := range r.transactions {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, t.Describe()))
	}
	lines = append(lines,
		"",
		rule,
		"TOTAL: "+pricing.FormatCurrency(r.total),
		rule,
		"",
		receiptFooter,
		banner,
	)
	return strings.Join(lines, "\n")
}

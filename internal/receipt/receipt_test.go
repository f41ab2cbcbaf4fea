package receipt

import (
	"errors"
	"math/rand"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/zombor/printshop-pos/internal/pricing"
)

var _ = Describe("Transaction", func() {
	var (
		table *pricing.Table
		now   time.Time
	)

	BeforeEach(func() {
		table = pricing.NewTable("unused.ini")
		now = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	})

	Describe("ComputeSubtotal", func() {
		DescribeTable("monochrome jobs without images cost the monochrome rate per page",
			func(c pricing.Category, pages int) {
				t := NewTransaction(c, pages, false, false, now)
				want := table.Rate(c, false).Mul(decimal.NewFromInt(int64(pages)))
				Expect(t.ComputeSubtotal(table).Equal(want)).To(BeTrue())
			},
			Entry("print, 1 page", pricing.Print, 1),
			Entry("photocopy, 12 pages", pricing.Photocopy, 12),
			Entry("scan, 1000 pages", pricing.Scan, 1000),
		)

		DescribeTable("the image surcharge scales by page count regardless of color",
			func(c pricing.Category, pages int, colored bool) {
				t := NewTransaction(c, pages, colored, true, now)
				count := decimal.NewFromInt(int64(pages))
				want := table.Rate(c, colored).Mul(count).Add(table.ImageSurcharge(c).Mul(count))
				Expect(t.ComputeSubtotal(table).Equal(want)).To(BeTrue())
			},
			Entry("print, colored", pricing.Print, 5, true),
			Entry("print, monochrome", pricing.Print, 5, false),
			Entry("scan, colored", pricing.Scan, 7, true),
			Entry("photocopy, monochrome", pricing.Photocopy, 2, false),
		)

		It("should price the worked example at 50.00", func() {
			t := NewTransaction(pricing.Print, 5, true, true, now)
			Expect(t.ComputeSubtotal(table).StringFixed(2)).To(Equal("50.00"))
			Expect(t.Subtotal().StringFixed(2)).To(Equal("50.00"))
		})

		It("should keep the value from the last call", func() {
			t := NewTransaction(pricing.Print, 5, true, true, now)
			t.ComputeSubtotal(table)

			other := pricing.NewTable("unused.ini")
			other.SetRate(pricing.Print, true, decimal.NewFromInt(9))
			other.SetImageSurcharge(pricing.Print, decimal.NewFromInt(3))
			t.ComputeSubtotal(other)

			Expect(t.Subtotal().StringFixed(2)).To(Equal("60.00"))
		})
	})

	Describe("Describe", func() {
		It("should render a colored job with images", func() {
			t := NewTransaction(pricing.Print, 5, true, true, now)
			t.ComputeSubtotal(table)
			Expect(t.Describe()).To(Equal("Print - 5 pages - Colored (with images): ₱50.00"))
		})

		It("should render a monochrome job without images", func() {
			t := NewTransaction(pricing.Photocopy, 3, false, false, now)
			t.ComputeSubtotal(table)
			Expect(t.Describe()).To(Equal("Photocopy - 3 pages - Monochrome: ₱9.00"))
		})
	})
})

var _ = Describe("Receipt", func() {
	var (
		table   *pricing.Table
		receipt *Receipt
		created time.Time
	)

	newTransaction := func(c pricing.Category, pages int, colored, images bool) *Transaction {
		t := NewTransaction(c, pages, colored, images, created)
		t.ComputeSubtotal(table)
		return t
	}

	BeforeEach(func() {
		table = pricing.NewTable("unused.ini")
		created = time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
		receipt = NewReceipt(created)
	})

	Describe("Remove", func() {
		BeforeEach(func() {
			receipt.Add(newTransaction(pricing.Print, 5, true, true))
		})

		When("the index is out of range", func() {
			It("returns ErrIndexOutOfRange and leaves the receipt unchanged", func() {
				err := receipt.Remove(1)
				Expect(errors.Is(err, ErrIndexOutOfRange)).To(BeTrue())
				Expect(receipt.Len()).To(Equal(1))
				Expect(receipt.Total().StringFixed(2)).To(Equal("50.00"))
			})
		})

		When("the index is valid", func() {
			It("should remove the transaction and zero the total", func() {
				Expect(receipt.Remove(0)).To(Succeed())
				Expect(receipt.Len()).To(BeZero())
				Expect(receipt.Total().IsZero()).To(BeTrue())
			})
		})
	})

	It("should keep the total equal to the sum of subtotals across random edits", func() {
		rng := rand.New(rand.NewSource(GinkgoRandomSeed()))
		cats := pricing.Categories()
		for i := 0; i < 200; i++ {
			if receipt.Len() > 0 && rng.Intn(3) == 0 {
				Expect(receipt.Remove(rng.Intn(receipt.Len()))).To(Succeed())
			} else {
				receipt.Add(newTransaction(cats[rng.Intn(len(cats))], 1+rng.Intn(50), rng.Intn(2) == 0, rng.Intn(2) == 0))
			}

			sum := decimal.Zero
			for _, t := range receipt.Transactions() {
				sum = sum.Add(t.Subtotal())
			}
			Expect(receipt.Total().Equal(sum)).To(BeTrue())
		}
	})

	Describe("Filename", func() {
		It("should be derived from the creation time", func() {
			Expect(receipt.Filename()).To(Equal("Receipt_03-05-2024_14-07-09.txt"))
		})
	})

	Describe("RenderText", func() {
		var first, second *Transaction

		BeforeEach(func() {
			first = newTransaction(pricing.Print, 5, true, true)
			second = newTransaction(pricing.Photocopy, 3, false, false)
			receipt.Add(first)
			receipt.Add(second)
		})

		It("should reproduce the receipt layout exactly", func() {
			want := strings.Join([]string{
				"==================================================",
				"           PRINTING BUSINESS POS",
				"==================================================",
				"",
				"Date: 03/05/2024",
				"Time: 02:07:09 PM",
				"",
				"--------------------------------------------------",
				"TRANSACTION DETAILS:",
				"--------------------------------------------------",
				"1. Print - 5 pages - Colored (with images): ₱50.00",
				"2. Photocopy - 3 pages - Monochrome: ₱9.00",
				"",
				"--------------------------------------------------",
				"TOTAL: ₱59.00",
				"--------------------------------------------------",
				"",
				"Thank you for your business!",
				"==================================================",
			}, "\n")
			Expect(receipt.RenderText()).To(Equal(want))
		})

		It("should end the total line with the sum of the subtotals", func() {
			sum := first.Subtotal().Add(second.Subtotal())
			Expect(receipt.RenderText()).To(ContainSubstring("TOTAL: ₱" + sum.StringFixed(2) + "\n"))
		})

		It("should list the transactions in insertion order", func() {
			text := receipt.RenderText()
			Expect(strings.Index(text, "1. "+first.Describe())).To(BeNumerically("<", strings.Index(text, "2. "+second.Describe())))
		})
	})

	Describe("Recalculate", func() {
		It("should reprice every transaction", func() {
			receipt.Add(newTransaction(pricing.Print, 5, true, true))
			table.SetRate(pricing.Print, true, decimal.NewFromInt(9))
			table.SetImageSurcharge(pricing.Print, decimal.NewFromInt(3))
			receipt.Recalculate(table)
			Expect(receipt.Total().StringFixed(2)).To(Equal("60.00"))
		})
	})
})

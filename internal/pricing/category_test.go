package pricing

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Category", func() {
	DescribeTable("ParseCategory",
		func(input string, want Category) {
			c, err := ParseCategory(input)
			Expect(err).NotTo(HaveOccurred())
			Expect(c).To(Equal(want))
		},
		Entry("lower case", "print", Print),
		Entry("upper case", "PHOTOCOPY", Photocopy),
		Entry("mixed case with spaces", "  Scan ", Scan),
	)

	When("the name is unknown", func() {
		It("returns ErrUnknownCategory", func() {
			_, err := ParseCategory("laminate")
			Expect(errors.Is(err, ErrUnknownCategory)).To(BeTrue())
		})
	})

	It("should upper-case the section name", func() {
		Expect(Photocopy.Section()).To(Equal("PHOTOCOPY"))
	})

	It("should describe known and unknown services", func() {
		Expect(Print.DisplayName()).To(Equal("Print Service"))
		Expect(Category(9).DisplayName()).To(Equal("Unknown Service"))
		Expect(Category(9).Valid()).To(BeFalse())
		Expect(Scan.Valid()).To(BeTrue())
	})
})

var _ = Describe("money helpers", func() {
	It("should format with the currency symbol and two decimals", func() {
		Expect(FormatCurrency(dec("50"))).To(Equal("₱50.00"))
		Expect(FormatCurrency(dec("0.125"))).To(Equal("₱0.13"))
	})

	DescribeTable("ValidPrice",
		func(price string, valid bool) {
			Expect(ValidPrice(dec(price))).To(Equal(valid))
		},
		Entry("zero", "0", false),
		Entry("lower bound", "0.01", true),
		Entry("upper bound", "100", true),
		Entry("above upper bound", "100.01", false),
		Entry("negative", "-2", false),
	)
})

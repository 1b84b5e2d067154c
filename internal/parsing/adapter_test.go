package parsing

import (
	"encoding/json"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Adapt", func() {
	var parser *Parser

	BeforeEach(func() {
		parser = NewDefaultParser()
	})

	Describe("AdaptItems", func() {
		var (
			candidates []Candidate
			items      []Item
		)

		JustBeforeEach(func() {
			items = parser.AdaptItems(candidates)
		})

		When("candidates are messy but usable", func() {
			BeforeEach(func() {
				candidates = []Candidate{
					{Name: "  Apples ", Price: "$2,50", Quantity: "0", Category: "Produce"},
					{Name: "Granola", Price: "4.99", Quantity: "2.7", Category: "Snacks"},
				}
			})

			It("normalizes every field", func() {
				Expect(items).To(Equal([]Item{
					{Name: "Apples", Price: 2.50, Quantity: 1, Category: Fruits},
					{Name: "Granola", Price: 4.99, Quantity: 2, Category: Snacks},
				}))
			})
		})

		When("a candidate already has a valid category", func() {
			BeforeEach(func() {
				candidates = []Candidate{{Name: "Apples", Price: "1.00", Category: "Snacks"}}
			})

			It("keeps it", func() {
				Expect(items[0].Category).To(Equal(Snacks))
			})
		})

		When("a candidate has no name or no positive price", func() {
			BeforeEach(func() {
				candidates = []Candidate{
					{Name: "   ", Price: "1.00"},
					{Name: "Free Bag", Price: "0"},
					{Name: "Mystery", Price: "abc"},
					{Name: "Refund", Price: "-3.00"},
				}
			})

			It("discards it", func() {
				Expect(items).To(BeEmpty())
			})
		})

		When("a price is above the item ceiling", func() {
			BeforeEach(func() {
				candidates = []Candidate{
					{Name: "Barcode", Price: "4006381333931"},
					{Name: "Huge", Price: Loose("1" + strings.Repeat("0", 300))},
					{Name: "Big Ticket", Price: "9999.00"},
				}
			})

			It("discards it but keeps prices at the ceiling", func() {
				Expect(items).To(Equal([]Item{
					{Name: "Big Ticket", Price: 9999, Quantity: 1, Category: Other},
				}))
			})
		})

		When("quantity is missing", func() {
			BeforeEach(func() {
				candidates = []Candidate{{Name: "Milk", Price: "3.49"}}
			})

			It("defaults to one", func() {
				Expect(items[0].Quantity).To(Equal(1))
			})
		})
	})

	Describe("Loose", func() {
		DescribeTable("decoding JSON scalars",
			func(input string, expected float64) {
				var l Loose
				Expect(json.Unmarshal([]byte(input), &l)).To(Succeed())
				Expect(l.Amount()).To(Equal(expected))
			},
			Entry("plain number", `3.49`, 3.49),
			Entry("exponent number", `1e3`, 1000.0),
			Entry("small exponent number", `2.5E-1`, 0.25),
			Entry("number out of float range", `1e400`, 0.0),
			Entry("string", `"$2.99"`, 2.99),
			Entry("null", `null`, 0.0),
			Entry("boolean", `true`, 0.0),
		)
	})

	Describe("decoding and adapting a JSON answer", func() {
		var (
			payload string
			draft   Draft
		)

		JustBeforeEach(func() {
			var candidate CandidateReceipt
			Expect(json.Unmarshal([]byte(payload), &candidate)).To(Succeed())
			draft = parser.Adapt(candidate)
		})

		BeforeEach(func() {
			payload = `{
				"merchant": " Fresh Mart ",
				"subtotal": "9.48",
				"tax": 0.76,
				"total": null,
				"items": [
					{"name": "Milk", "price": 3.49, "quantity": 2, "category": "Dairy"},
					{"name": "Chips", "price": "$2.99", "quantity": "1", "category": "junk"}
				]
			}`
		})

		It("trims the merchant", func() {
			Expect(draft.Merchant).To(Equal("Fresh Mart"))
		})

		It("coerces totals from strings, numbers and null", func() {
			Expect(draft.Totals).To(Equal(Totals{Subtotal: 9.48, Tax: 0.76, Total: 0}))
		})

		It("adapts the items", func() {
			Expect(draft.Items).To(Equal([]Item{
				{Name: "Milk", Price: 3.49, Quantity: 2, Category: Dairy},
				{Name: "Chips", Price: 2.99, Quantity: 1, Category: JunkFood},
			}))
		})
	})
})

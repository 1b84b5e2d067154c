package parsing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ExtractMerchant", func() {
	DescribeTable("picks the store name",
		func(raw, expected string) {
			Expect(ExtractMerchant(raw)).To(Equal(expected))
		},
		Entry("skips header and greeting lines", "RECEIPT\nThank You\nFresh Mart #42\n123 Main St", "Fresh Mart #42"),
		Entry("skips lines without a word", "12/01/2024\n#42 - 17\n  \nCorner Shop", "Corner Shop"),
		Entry("skips date and time lines", "Date 12/01\nTIME 10:42\nGreen Grocer", "Green Grocer"),
		Entry("normalizes the chosen line", "  Fresh | Mart  ", "Fresh Mart"),
		Entry("only looks at the first six lines", "1\n2\n3\n4\n5\n6\nLate Store", ""),
		Entry("returns empty for empty text", "", ""),
	)
})

package parsing

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ParseAmount", func() {
	DescribeTable("coerces loose monetary strings",
		func(input string, expected float64) {
			Expect(ParseAmount(input)).To(BeNumerically("~", expected, 1e-9))
		},
		Entry("plain decimal", "12.50", 12.50),
		Entry("dollar sign and comma decimal", "$12,50", 12.50),
		Entry("letters only", "abc", 0.0),
		Entry("empty string", "", 0.0),
		Entry("three decimals", "3.999", 3.999),
		Entry("surrounding text", "USD 4.20 ea", 4.20),
		Entry("only the first comma becomes a point", "1,234,56", 0.0),
		Entry("two points", "1.2.3", 0.0),
		Entry("lone minus", "-", 0.0),
		Entry("integer", "7", 7.0),
		Entry("overflow to infinity", strings.Repeat("9", 400), 0.0),
	)
})

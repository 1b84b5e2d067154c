package parsing

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Classifier", func() {
	var classifier *Classifier

	BeforeEach(func() {
		classifier = NewClassifier(DefaultKeywordTable())
	})

	DescribeTable("Classify",
		func(name string, expected Category) {
			Expect(classifier.Classify(name)).To(Equal(expected))
		},
		Entry("matches a keyword case-insensitively", "BANANAS", Fruits),
		Entry("matches plural forms by substring", "Free Range Eggs", Protein),
		Entry("matches keywords inside longer words", "Pineapple Chunks", Fruits),
		Entry("prefers the first listed category", "Strawberry Yogurt", Fruits),
		Entry("prefers fruit over drinks for orange juice", "Orange Juice", Fruits),
		Entry("prefers junk food over dairy", "Chocolate Milk", JunkFood),
		Entry("matches multi-word keywords", "Charmin Toilet Paper", Household),
		Entry("matches vegetables", "Green Pepper", Vegetables),
		Entry("matches drinks", "Coffee Beans", Drinks),
		Entry("falls back to Other", "Sourdough Bread", Other),
		Entry("classifies empty names as Other", "", Other),
	)

	It("always returns a member of the enum", func() {
		for _, name := range []string{"", "???", "12345", "Milk", "detergent pods", "ÄÖÜ"} {
			Expect(classifier.Classify(name).Valid()).To(BeTrue())
		}
	})

	When("the table is nil", func() {
		It("classifies everything as Other", func() {
			Expect(NewClassifier(nil).Classify("Bananas")).To(Equal(Other))
		})
	})
})

var _ = Describe("Category", func() {
	It("lists nine categories ending with Other", func() {
		all := Categories()
		Expect(all).To(HaveLen(9))
		Expect(all[len(all)-1]).To(Equal(Other))
	})

	It("flags only Junk Food as junk", func() {
		for _, c := range Categories() {
			Expect(c.Junk()).To(Equal(c == JunkFood))
		}
	})

	It("rejects unknown values", func() {
		Expect(Category("Produce").Valid()).To(BeFalse())
		Expect(Category("").Valid()).To(BeFalse())
		Expect(Category("fruits").Valid()).To(BeFalse())
	})

	It("returns a copy of the category list", func() {
		all := Categories()
		all[0] = "Mutated"
		Expect(Categories()[0]).To(Equal(Fruits))
	})
})

var _ = Describe("ParseKeywordTable", func() {
	var (
		data  string
		table KeywordTable
		err   error
	)

	JustBeforeEach(func() {
		table, err = ParseKeywordTable([]byte(data))
	})

	When("the table is valid", func() {
		BeforeEach(func() {
			data = `
categories:
  - category: Drinks
    keywords: [" Juice ", coffee]
  - category: Fruits
    keywords: [orange]
`
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("lowercases and trims keywords", func() {
			Expect(table[0].Keywords).To(Equal([]string{"juice", "coffee"}))
		})

		It("preserves declared order for tie-breaks", func() {
			Expect(NewClassifier(table).Classify("Orange Juice")).To(Equal(Drinks))
		})
	})

	When("a category is unknown", func() {
		BeforeEach(func() {
			data = "categories:\n  - category: Produce\n    keywords: [kale]\n"
		})

		It("returns the error", func() {
			Expect(err).To(MatchError(ContainSubstring(`unknown category "Produce"`)))
		})
	})

	When("keywords are given for Other", func() {
		BeforeEach(func() {
			data = "categories:\n  - category: Other\n    keywords: [misc]\n"
		})

		It("returns the error", func() {
			Expect(err).To(MatchError(ContainSubstring("cannot have keywords")))
		})
	})

	When("a category appears twice", func() {
		BeforeEach(func() {
			data = "categories:\n  - category: Dairy\n    keywords: [milk]\n  - category: Dairy\n    keywords: [cheese]\n"
		})

		It("returns the error", func() {
			Expect(err).To(MatchError(ContainSubstring("duplicate category")))
		})
	})

	When("a keyword is blank", func() {
		BeforeEach(func() {
			data = "categories:\n  - category: Dairy\n    keywords: [milk, '  ']\n"
		})

		It("returns the error", func() {
			Expect(err).To(MatchError(ContainSubstring("empty keyword")))
		})
	})

	When("no categories are declared", func() {
		BeforeEach(func() {
			data = "categories: []\n"
		})

		It("returns the error", func() {
			Expect(err).To(HaveOccurred())
		})
	})

	When("the YAML is malformed", func() {
		BeforeEach(func() {
			data = "categories: [\n"
		})

		It("returns the error", func() {
			Expect(err).To(MatchError(ContainSubstring("decoding keyword table")))
		})
	})
})

var _ = Describe("LoadKeywordTable", func() {
	It("reads a table from disk", func() {
		path := filepath.Join(GinkgoT().TempDir(), "categories.yaml")
		Expect(os.WriteFile(path, []byte("categories:\n  - category: Snacks\n    keywords: [pretzel]\n"), 0644)).To(Succeed())

		table, err := LoadKeywordTable(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(NewClassifier(table).Classify("Salted Pretzels")).To(Equal(Snacks))
	})

	It("returns the error when the file is missing", func() {
		_, err := LoadKeywordTable(filepath.Join(GinkgoT().TempDir(), "missing.yaml"))
		Expect(err).To(MatchError(ContainSubstring("reading keyword table")))
	})
})

package scanning

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/ghttp"

	"github.com/zombor/grocery-tracker/internal/parsing"
)

var _ = Describe("Ollama", func() {
	var (
		server    *ghttp.Server
		extractor *Ollama
		draft     *parsing.Draft
		err       error
	)

	BeforeEach(func() {
		server = ghttp.NewServer()
		var newErr error
		extractor, newErr = NewOllama(server.URL()+"/", "test-model", parsing.NewDefaultParser())
		Expect(newErr).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		server.Close()
	})

	JustBeforeEach(func() {
		draft, err = extractor.Extract(context.Background(), "Fresh Mart\nMilk 3.49")
	})

	When("the model answers with JSON", func() {
		BeforeEach(func() {
			server.AppendHandlers(ghttp.CombineHandlers(
				ghttp.VerifyRequest(http.MethodPost, "/api/chat"),
				ghttp.VerifyContentType("application/json"),
				func(w http.ResponseWriter, r *http.Request) {
					body, readErr := io.ReadAll(r.Body)
					Expect(readErr).NotTo(HaveOccurred())
					var req ollamaChatRequest
					Expect(json.Unmarshal(body, &req)).To(Succeed())
					Expect(req.Model).To(Equal("test-model"))
					Expect(req.Format).To(Equal("json"))
					Expect(req.Messages).To(HaveLen(2))
					Expect(req.Messages[1].Content).To(ContainSubstring("Milk 3.49"))
				},
				ghttp.RespondWithJSONEncoded(http.StatusOK, ollamaChatResponse{
					Message: ollamaMessage{
						Role:    "assistant",
						Content: `{"merchant": "Fresh Mart", "subtotal": null, "tax": null, "total": 3.49, "items": [{"name": "Milk", "price": 3.49, "quantity": 1, "category": "Dairy"}]}`,
					},
					Done: true,
				}),
			))
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("returns the adapted draft", func() {
			Expect(draft.Merchant).To(Equal("Fresh Mart"))
			Expect(draft.Items).To(Equal([]parsing.Item{
				{Name: "Milk", Price: 3.49, Quantity: 1, Category: parsing.Dairy},
			}))
			Expect(draft.Totals.Total).To(Equal(3.49))
		})
	})

	When("the API returns an error status", func() {
		BeforeEach(func() {
			server.AppendHandlers(ghttp.RespondWith(http.StatusInternalServerError, "model not loaded"))
		})

		It("returns the error", func() {
			Expect(err).To(MatchError(ContainSubstring("status 500")))
			Expect(err).To(MatchError(ContainSubstring("model not loaded")))
		})
	})

	When("the model answers with prose", func() {
		BeforeEach(func() {
			server.AppendHandlers(ghttp.RespondWithJSONEncoded(http.StatusOK, ollamaChatResponse{
				Message: ollamaMessage{Role: "assistant", Content: "Sorry, I can't help."},
				Done:    true,
			}))
		})

		It("returns the error", func() {
			Expect(err).To(MatchError(ContainSubstring("parsing receipt data")))
		})
	})

	When("the response body is not JSON", func() {
		BeforeEach(func() {
			server.AppendHandlers(ghttp.RespondWith(http.StatusOK, "<html>"))
		})

		It("returns the error", func() {
			Expect(err).To(MatchError(ContainSubstring("decoding response")))
		})
	})
})

var _ = Describe("NewOllama", func() {
	It("applies defaults", func() {
		o, err := NewOllama("", "", parsing.NewDefaultParser())
		Expect(err).NotTo(HaveOccurred())
		Expect(o.baseURL).To(Equal("http://localhost:11434"))
		Expect(o.model).To(Equal("llama3.1"))
		Expect(o.Close()).To(Succeed())
	})
})

var _ = Describe("Heuristic", func() {
	It("parses locally and never fails", func() {
		h := NewHeuristic(parsing.NewDefaultParser())
		draft, err := h.Extract(context.Background(), "Corner Shop\nApples 1.99\nTOTAL 1.99")
		Expect(err).NotTo(HaveOccurred())
		Expect(draft.Merchant).To(Equal("Corner Shop"))
		Expect(draft.Items).To(HaveLen(1))
		Expect(draft.Totals.Total).To(Equal(1.99))
		Expect(h.Close()).To(Succeed())
	})

	It("returns an empty draft for unusable text", func() {
		draft, err := NewHeuristic(parsing.NewDefaultParser()).Extract(context.Background(), "")
		Expect(err).NotTo(HaveOccurred())
		Expect(draft.Empty()).To(BeTrue())
	})
})

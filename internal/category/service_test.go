package category_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/budget-allocation/internal/api"
	"github.com/frahmantamala/budget-allocation/internal/category"
	categoryDatamodel "github.com/frahmantamala/budget-allocation/internal/core/datamodel/category"
)

func TestCategoryService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Category Service Suite")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

type mockGateway struct {
	env      *api.Envelope
	err      error
	lastPath string
	lastBody any
}

func (m *mockGateway) Get(ctx context.Context, path string) (*api.Envelope, error) {
	m.lastPath = path
	return m.env, m.err
}

func (m *mockGateway) Post(ctx context.Context, path string, body any) (*api.Envelope, error) {
	m.lastPath = path
	m.lastBody = body
	return m.env, m.err
}

func (m *mockGateway) Put(ctx context.Context, path string, body any) (*api.Envelope, error) {
	m.lastPath = path
	m.lastBody = body
	return m.env, m.err
}

func (m *mockGateway) Delete(ctx context.Context, path string) (*api.Envelope, error) {
	m.lastPath = path
	return m.env, m.err
}

func successEnvelope(data string) *api.Envelope {
	return &api.Envelope{Success: true, Data: json.RawMessage(data)}
}

var _ = Describe("CategoryService", func() {
	var (
		gw      *mockGateway
		service *category.Service
	)

	BeforeEach(func() {
		gw = &mockGateway{}
		service = category.NewService(gw, testLogger())
	})

	Describe("GetAll", func() {
		It("maps wire rows into domain categories", func() {
			gw.env = successEnvelope(
				`[{"Id":1,"Name":"Cloud","Limit":5000,"Timeframe":"Monthly","ThresholdPercent":80}]`)

			categories, err := service.GetAll(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(categories).To(HaveLen(1))
			Expect(categories[0].Name).To(Equal("Cloud"))
			Expect(categories[0].Timeframe).To(Equal(categoryDatamodel.TimeframeMonthly))
		})

		It("accepts camelCase entity payloads", func() {
			gw.env = successEnvelope(
				`[{"id":1,"name":"Cloud","limit":5000,"timeframe":"Monthly","thresholdPercent":80}]`)

			categories, err := service.GetAll(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(categories[0].Limit).To(Equal(5000.0))
		})
	})

	Describe("Create", func() {
		It("rejects an invalid timeframe before any network call", func() {
			_, err := service.Create(context.Background(), category.CategoryDTO{
				Name:      "Cloud",
				Limit:     100,
				Timeframe: "Fortnightly",
			})
			Expect(err).To(HaveOccurred())
			Expect(gw.lastPath).To(BeEmpty())
		})

		It("rejects a threshold above 100", func() {
			_, err := service.Create(context.Background(), category.CategoryDTO{
				Name:             "Cloud",
				Limit:            100,
				Timeframe:        categoryDatamodel.TimeframeMonthly,
				ThresholdPercent: 150,
			})
			Expect(err).To(HaveOccurred())
		})

		It("creates a valid category", func() {
			gw.env = successEnvelope(`{"Id":5,"Name":"Cloud","Limit":100,"Timeframe":"Monthly"}`)

			created, err := service.Create(context.Background(), category.CategoryDTO{
				Name:      "Cloud",
				Limit:     100,
				Timeframe: categoryDatamodel.TimeframeMonthly,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).To(Equal(int64(5)))
		})
	})

	Describe("Delete", func() {
		It("surfaces the backend cascade message", func() {
			gw.env = &api.Envelope{Success: true, Message: "Category and 3 allocations deleted"}

			message, err := service.Delete(context.Background(), 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(gw.lastPath).To(Equal("/categories/5"))
			Expect(message).To(Equal("Category and 3 allocations deleted"))
		})

		It("falls back to a default message", func() {
			gw.env = &api.Envelope{Success: true}

			message, err := service.Delete(context.Background(), 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(message).NotTo(BeEmpty())
		})
	})
})

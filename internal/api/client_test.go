package api_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/budget-allocation/internal"
	"github.com/frahmantamala/budget-allocation/internal/api"
)

type staticToken string

func (t staticToken) Token() string { return string(t) }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

var _ = Describe("Client", func() {
	var (
		router *chi.Mux
		server *httptest.Server
		client *api.Client
	)

	newClient := func(token string) *api.Client {
		return api.NewClient(api.Config{BaseURL: server.URL}, staticToken(token), testLogger())
	}

	BeforeEach(func() {
		router = chi.NewRouter()
		server = httptest.NewServer(router)
		client = nil
	})

	AfterEach(func() {
		server.Close()
	})

	It("attaches the bearer token and a request ID", func() {
		var gotAuth, gotRequestID string
		router.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotRequestID = r.Header.Get("X-Request-ID")
			w.Write([]byte(`{"Success":true}`))
		})

		client = newClient("token-123")
		env, err := client.Get(context.Background(), "/ping")
		Expect(err).NotTo(HaveOccurred())
		Expect(env.Success).To(BeTrue())
		Expect(gotAuth).To(Equal("Bearer token-123"))
		Expect(gotRequestID).NotTo(BeEmpty())
	})

	It("scopes log lines to the request", func() {
		router.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"Success":true}`))
		})

		var buf bytes.Buffer
		debugLogger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		client = api.NewClient(api.Config{BaseURL: server.URL}, staticToken("token-123"), debugLogger)

		_, err := client.Get(context.Background(), "/ping")
		Expect(err).NotTo(HaveOccurred())

		out := buf.String()
		Expect(out).To(ContainSubstring("api request"))
		Expect(out).To(ContainSubstring("api response"))
		Expect(out).To(ContainSubstring("method=GET"))
		Expect(out).To(ContainSubstring("request_id="))
	})

	It("sends no Authorization header without a session", func() {
		var gotAuth string
		var hasHeader bool
		router.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			_, hasHeader = r.Header["Authorization"]
			w.Write([]byte(`{"Success":true}`))
		})

		client = newClient("")
		_, err := client.Get(context.Background(), "/ping")
		Expect(err).NotTo(HaveOccurred())
		Expect(hasHeader).To(BeFalse())
		Expect(gotAuth).To(BeEmpty())
	})

	It("fires the unauthorized hook on 401", func() {
		router.Get("/secret", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		client = newClient("stale")
		hookFired := false
		client.SetUnauthorizedHook(func() { hookFired = true })

		_, err := client.Get(context.Background(), "/secret")
		Expect(err).To(HaveOccurred())
		Expect(hookFired).To(BeTrue())
		Expect(errors.Is(err, internal.ErrSessionExpired)).To(BeTrue())
	})

	It("maps 403 to an authorization error", func() {
		router.Post("/requests/review", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		})

		client = newClient("token")
		_, err := client.Post(context.Background(), "/requests/review", map[string]any{})
		Expect(errors.Is(err, internal.ErrAccessDenied)).To(BeTrue())
	})

	It("maps 400 to a validation error carrying the backend details", func() {
		router.Post("/categories", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"Success":false,"Message":"name is required","Errors":["Name"]}`))
		})

		client = newClient("token")
		_, err := client.Post(context.Background(), "/categories", map[string]any{})
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		Expect(appErr.Message).To(Equal("name is required"))
		Expect(appErr.Details).NotTo(BeNil())
	})

	It("maps 404 to a not found error", func() {
		client = newClient("token")
		_, err := client.Get(context.Background(), "/allocations/999")
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Type).To(Equal(internal.ErrorTypeNotFound))
	})

	It("maps 5xx to a server error", func() {
		router.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		client = newClient("token")
		_, err := client.Get(context.Background(), "/boom")
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Type).To(Equal(internal.ErrorTypeServer))
	})

	It("maps transport failures to a network error", func() {
		server.Close()
		client = newClient("token")
		_, err := client.Get(context.Background(), "/ping")
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Type).To(Equal(internal.ErrorTypeNetwork))
	})

	It("synthesizes a success envelope for empty 2xx bodies", func() {
		router.Delete("/allocations/1", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

		client = newClient("token")
		env, err := client.Delete(context.Background(), "/allocations/1")
		Expect(err).NotTo(HaveOccurred())
		Expect(env.Success).To(BeTrue())
	})
})

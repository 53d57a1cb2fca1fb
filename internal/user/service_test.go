package user_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/budget-allocation/internal"
	"github.com/frahmantamala/budget-allocation/internal/api"
	userDatamodel "github.com/frahmantamala/budget-allocation/internal/core/datamodel/user"
	"github.com/frahmantamala/budget-allocation/internal/user"
)

func TestUserService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Service Suite")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

type mockGateway struct {
	envelopes map[string]*api.Envelope
	errors    map[string]error
	calls     []string
	lastBody  any
}

func newMockGateway() *mockGateway {
	return &mockGateway{
		envelopes: make(map[string]*api.Envelope),
		errors:    make(map[string]error),
	}
}

func (m *mockGateway) respond(path string) (*api.Envelope, error) {
	m.calls = append(m.calls, path)
	if err := m.errors[path]; err != nil {
		return nil, err
	}
	if env := m.envelopes[path]; env != nil {
		return env, nil
	}
	return &api.Envelope{Success: true}, nil
}

func (m *mockGateway) Get(ctx context.Context, path string) (*api.Envelope, error) {
	return m.respond(path)
}

func (m *mockGateway) Post(ctx context.Context, path string, body any) (*api.Envelope, error) {
	m.lastBody = body
	return m.respond(path)
}

func (m *mockGateway) Put(ctx context.Context, path string, body any) (*api.Envelope, error) {
	m.lastBody = body
	return m.respond(path)
}

func (m *mockGateway) Delete(ctx context.Context, path string) (*api.Envelope, error) {
	return m.respond(path)
}

func successEnvelope(data string) *api.Envelope {
	return &api.Envelope{Success: true, Data: json.RawMessage(data)}
}

var _ = Describe("UserService", func() {
	var (
		gw      *mockGateway
		service *user.Service
	)

	BeforeEach(func() {
		gw = newMockGateway()
		service = user.NewService(gw, testLogger())
	})

	Describe("Delete", func() {
		It("refuses to delete the current account", func() {
			err := service.Delete(context.Background(), 3, 3)
			Expect(errors.Is(err, internal.ErrCannotDeleteSelf)).To(BeTrue())
			Expect(gw.calls).To(BeEmpty())
		})

		It("deletes other accounts", func() {
			Expect(service.Delete(context.Background(), 5, 3)).To(Succeed())
			Expect(gw.calls).To(Equal([]string{"/users/5"}))
		})
	})

	Describe("Create", func() {
		It("requires a password for new accounts", func() {
			_, err := service.Create(context.Background(), user.UserDTO{
				Name:  "Ana",
				Email: "ana@example.com",
				Role:  userDatamodel.RoleFinanceAdmin,
			})
			Expect(err).To(HaveOccurred())
			Expect(gw.calls).To(BeEmpty())
		})

		It("sends the backend field casing", func() {
			gw.envelopes["/users"] = successEnvelope(
				`{"Id":8,"Name":"Ana","Email":"ana@example.com","Role":1,"IsActive":true}`)

			created, err := service.Create(context.Background(), user.UserDTO{
				Name:     "Ana",
				Email:    "ana@example.com",
				Password: "secret123",
				Role:     userDatamodel.RoleFinanceAdmin,
				IsActive: true,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).To(Equal(int64(8)))

			raw, err := json.Marshal(gw.lastBody)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(raw)).To(ContainSubstring(`"Email":"ana@example.com"`))
			Expect(string(raw)).To(ContainSubstring(`"Role":1`))
		})
	})

	Describe("Update", func() {
		It("omits the password when not provided", func() {
			gw.envelopes["/users/8"] = successEnvelope(
				`{"Id":8,"Name":"Ana","Email":"ana@example.com","Role":1,"IsActive":true}`)

			_, err := service.Update(context.Background(), 8, user.UserDTO{
				Name:     "Ana",
				Email:    "ana@example.com",
				Role:     userDatamodel.RoleFinanceAdmin,
				IsActive: true,
			})
			Expect(err).NotTo(HaveOccurred())

			raw, err := json.Marshal(gw.lastBody)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(raw)).NotTo(ContainSubstring("Password"))
		})
	})

	Describe("Departments", func() {
		It("prefers the dedicated endpoint", func() {
			gw.envelopes["/departments"] = successEnvelope(
				`[{"Id":1,"Name":"Engineering"},{"Id":2,"Name":"Marketing"}]`)

			departments, err := service.Departments(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(departments).To(HaveLen(2))
			Expect(gw.calls).To(Equal([]string{"/departments"}))
		})

		It("derives the directory from the summary when the endpoint is empty", func() {
			gw.envelopes["/departments"] = successEnvelope(`[]`)
			gw.envelopes["/dashboard/management"] = successEnvelope(`{
				"Departments": [
					{"DepartmentId": 1, "DepartmentName": "Engineering",
					 "TotalAllocation": 6000, "TotalSpent": 4300,
					 "Categories": [{"CategoryId": 10}, {"CategoryId": 11}]}
				]
			}`)

			departments, err := service.Departments(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(departments).To(HaveLen(1))
			Expect(departments[0].Name).To(Equal("Engineering"))
			Expect(departments[0].TotalAllocation).To(Equal(6000.0))
			Expect(departments[0].CategoriesCount).To(Equal(2))
		})

		It("derives the directory when the endpoint is missing entirely", func() {
			gw.errors["/departments"] = internal.NewNotFoundError("no such route", internal.ErrCodeResourceNotFound)
			gw.envelopes["/dashboard/management"] = successEnvelope(`{
				"Departments": [{"DepartmentId": 2, "DepartmentName": "Marketing", "Categories": []}]
			}`)

			departments, err := service.Departments(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(departments).To(HaveLen(1))
			Expect(departments[0].ID).To(Equal(int64(2)))
		})
	})

	Describe("ChangePassword", func() {
		It("requires a new password", func() {
			err := service.ChangePassword(context.Background(), 3, "old", "")
			Expect(err).To(HaveOccurred())
			Expect(gw.calls).To(BeEmpty())
		})

		It("posts old and new password", func() {
			Expect(service.ChangePassword(context.Background(), 3, "old", "newpass")).To(Succeed())
			Expect(gw.calls).To(Equal([]string{"/users/3/change-password"}))

			raw, err := json.Marshal(gw.lastBody)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(raw)).To(ContainSubstring(`"OldPassword":"old"`))
		})
	})
})

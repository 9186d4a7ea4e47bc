package auth_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/condosys/condo-management/internal/auth"
)

func TestAuthEngine(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Engine Suite")
}

type permissionKey struct {
	GroupID int64
	Code    string
	Action  auth.Action
}

// MockEngineRepository implements auth.EngineRepository for testing
type MockEngineRepository struct {
	grants     map[permissionKey]bool
	shouldFail bool
	failError  error
}

func NewMockEngineRepository() *MockEngineRepository {
	return &MockEngineRepository{grants: make(map[permissionKey]bool)}
}

func (m *MockEngineRepository) HasPermission(ctx context.Context, groupID int64, functionCode string, action auth.Action) (bool, error) {
	if m.shouldFail {
		return false, m.failError
	}
	return m.grants[permissionKey{groupID, functionCode, action}], nil
}

func (m *MockEngineRepository) Grant(groupID int64, code string, action auth.Action) {
	m.grants[permissionKey{groupID, code, action}] = true
}

func (m *MockEngineRepository) SetShouldFail(shouldFail bool, err error) {
	m.shouldFail = shouldFail
	m.failError = err
}

var _ = Describe("Engine", func() {
	var (
		mockRepo *MockEngineRepository
		engine   *auth.Engine
		user     *auth.User
	)

	BeforeEach(func() {
		mockRepo = NewMockEngineRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		engine = auth.NewEngine(mockRepo, logger)
		user = &auth.User{
			ID:       1,
			Username: "maria",
			GroupID:  10,
			IsActive: true,
		}
	})

	Describe("Authorize", func() {
		Context("when the user's group holds the permission", func() {
			BeforeEach(func() {
				mockRepo.Grant(10, "employees.manage", auth.ActionWrite)
			})

			It("should allow the action", func() {
				ok, err := engine.Authorize(context.Background(), user, "employees.manage", auth.ActionWrite)
				Expect(err).NotTo(HaveOccurred())
				Expect(ok).To(BeTrue())
			})

			It("should not allow a different action on the same function", func() {
				ok, err := engine.Authorize(context.Background(), user, "employees.manage", auth.ActionExecute)
				Expect(err).NotTo(HaveOccurred())
				Expect(ok).To(BeFalse())
			})
		})

		Context("when no permission row matches", func() {
			It("should deny without an error", func() {
				ok, err := engine.Authorize(context.Background(), user, "budgets.approve", auth.ActionExecute)
				Expect(err).NotTo(HaveOccurred())
				Expect(ok).To(BeFalse())
			})
		})

		Context("when the function code is unknown", func() {
			It("should deny without an error", func() {
				ok, err := engine.Authorize(context.Background(), user, "does.not.exist", auth.ActionRead)
				Expect(err).NotTo(HaveOccurred())
				Expect(ok).To(BeFalse())
			})
		})

		Context("when the user is inactive", func() {
			BeforeEach(func() {
				mockRepo.Grant(10, "employees.manage", auth.ActionWrite)
				user.IsActive = false
			})

			It("should deny without touching storage", func() {
				ok, err := engine.Authorize(context.Background(), user, "employees.manage", auth.ActionWrite)
				Expect(err).NotTo(HaveOccurred())
				Expect(ok).To(BeFalse())
			})
		})

		Context("when there is no user", func() {
			It("should deny without an error", func() {
				ok, err := engine.Authorize(context.Background(), nil, "employees.manage", auth.ActionWrite)
				Expect(err).NotTo(HaveOccurred())
				Expect(ok).To(BeFalse())
			})
		})

		Context("when the lookup fails", func() {
			BeforeEach(func() {
				mockRepo.SetShouldFail(true, errors.New("connection refused"))
			})

			It("should surface the storage error", func() {
				ok, err := engine.Authorize(context.Background(), user, "employees.manage", auth.ActionWrite)
				Expect(err).To(HaveOccurred())
				Expect(ok).To(BeFalse())
			})
		})
	})

	Describe("ParseAction", func() {
		It("should accept the closed vocabulary", func() {
			for _, s := range []string{"execute", "read", "write"} {
				action, err := auth.ParseAction(s)
				Expect(err).NotTo(HaveOccurred())
				Expect(string(action)).To(Equal(s))
			}
		})

		It("should reject anything else", func() {
			_, err := auth.ParseAction("delete")
			Expect(err).To(HaveOccurred())
		})
	})
})

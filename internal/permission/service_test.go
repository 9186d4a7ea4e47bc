package permission_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/condosys/condo-management/internal"
	"github.com/condosys/condo-management/internal/auth"
	"github.com/condosys/condo-management/internal/permission"
)

func TestPermissionService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Permission Service Suite")
}

// MockRepository implements permission.Repository for testing
type MockRepository struct {
	permissions map[int64]*permission.Permission
	nextID      int64
}

func NewMockRepository() *MockRepository {
	return &MockRepository{permissions: make(map[int64]*permission.Permission), nextID: 1}
}

func (m *MockRepository) Create(ctx context.Context, p *permission.Permission) error {
	p.ID = m.nextID
	m.nextID++
	cp := *p
	m.permissions[p.ID] = &cp
	return nil
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*permission.Permission, error) {
	p, ok := m.permissions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *MockRepository) GetByTuple(ctx context.Context, groupID, functionID int64, action auth.Action) (*permission.Permission, error) {
	for _, p := range m.permissions {
		if p.GroupID == groupID && p.FunctionID == functionID && p.Action == action {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockRepository) List(ctx context.Context, groupID int64, limit, offset int) ([]permission.Permission, error) {
	var out []permission.Permission
	for _, p := range m.permissions {
		if groupID != 0 && p.GroupID != groupID {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (m *MockRepository) Delete(ctx context.Context, id int64) error {
	delete(m.permissions, id)
	return nil
}

var _ = Describe("Permission Service", func() {
	var (
		mockRepo *MockRepository
		service  *permission.Service
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = permission.NewService(mockRepo, logger)
	})

	Describe("Grant", func() {
		It("should create a permission tuple", func() {
			p, err := service.Grant(context.Background(), permission.GrantDTO{
				GroupID:    1,
				FunctionID: 2,
				Action:     "write",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Action).To(Equal(auth.ActionWrite))
		})

		It("should reject a duplicate tuple with a conflict", func() {
			dto := permission.GrantDTO{GroupID: 1, FunctionID: 2, Action: "write"}
			_, err := service.Grant(context.Background(), dto)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Grant(context.Background(), dto)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(409))
			Expect(appErr.Code).To(Equal(internal.ErrCodeDuplicatePermission))
		})

		It("should allow the same function with a different action", func() {
			_, err := service.Grant(context.Background(), permission.GrantDTO{GroupID: 1, FunctionID: 2, Action: "write"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Grant(context.Background(), permission.GrantDTO{GroupID: 1, FunctionID: 2, Action: "read"})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should reject an action outside the vocabulary", func() {
			_, err := service.Grant(context.Background(), permission.GrantDTO{
				GroupID:    1,
				FunctionID: 2,
				Action:     "delete",
			})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidAction))
		})
	})

	Describe("Revoke", func() {
		It("should delete an existing grant", func() {
			p, err := service.Grant(context.Background(), permission.GrantDTO{GroupID: 1, FunctionID: 2, Action: "read"})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Revoke(context.Background(), p.ID)).To(Succeed())

			_, err = mockRepo.GetByID(context.Background(), p.ID)
			Expect(err).To(HaveOccurred())
		})

		It("should return not found for an unknown id", func() {
			err := service.Revoke(context.Background(), 999)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(404))
		})
	})
})

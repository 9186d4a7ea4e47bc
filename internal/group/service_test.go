package group_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/condosys/condo-management/internal"
	"github.com/condosys/condo-management/internal/group"
)

func TestGroupService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Group Service Suite")
}

// MockRepository implements group.Repository for testing
type MockRepository struct {
	groups  map[int64]*group.Group
	members map[int64]int64
	nextID  int64
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		groups:  make(map[int64]*group.Group),
		members: make(map[int64]int64),
		nextID:  1,
	}
}

func (m *MockRepository) Create(ctx context.Context, g *group.Group) error {
	g.ID = m.nextID
	m.nextID++
	cp := *g
	m.groups[g.ID] = &cp
	return nil
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*group.Group, error) {
	g, ok := m.groups[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *g
	return &cp, nil
}

func (m *MockRepository) List(ctx context.Context, limit, offset int) ([]group.Group, error) {
	var out []group.Group
	for _, g := range m.groups {
		out = append(out, *g)
	}
	return out, nil
}

func (m *MockRepository) Update(ctx context.Context, g *group.Group) error {
	cp := *g
	m.groups[g.ID] = &cp
	return nil
}

func (m *MockRepository) Delete(ctx context.Context, id int64) error {
	delete(m.groups, id)
	return nil
}

func (m *MockRepository) CountUsers(ctx context.Context, groupID int64) (int64, error) {
	return m.members[groupID], nil
}

func (m *MockRepository) SetMemberCount(groupID, count int64) {
	m.members[groupID] = count
}

var _ = Describe("Group Service", func() {
	var (
		mockRepo *MockRepository
		service  *group.Service
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = group.NewService(mockRepo, logger)
	})

	Describe("Delete", func() {
		It("should delete an empty group", func() {
			g, err := service.Create(context.Background(), group.CreateGroupDTO{Name: "Conselho"})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Delete(context.Background(), g.ID)).To(Succeed())

			_, err = service.GetByID(context.Background(), g.ID)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(404))
		})

		It("should refuse to delete a group that still has users", func() {
			g, err := service.Create(context.Background(), group.CreateGroupDTO{Name: "Morador"})
			Expect(err).NotTo(HaveOccurred())
			mockRepo.SetMemberCount(g.ID, 3)

			err = service.Delete(context.Background(), g.ID)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(409))
			Expect(appErr.Code).To(Equal(internal.ErrCodeGroupHasUsers))

			_, err = service.GetByID(context.Background(), g.ID)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should return not found for an unknown group", func() {
			err := service.Delete(context.Background(), 999)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(404))
		})
	})
})

package budget_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/condosys/condo-management/internal"
	"github.com/condosys/condo-management/internal/audit"
	"github.com/condosys/condo-management/internal/budget"
)

func TestBudgetService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Budget Service Suite")
}

// MockRepository implements budget.Repository for testing
type MockRepository struct {
	budgets map[int64]*budget.Budget
	nextID  int64
}

func NewMockRepository() *MockRepository {
	return &MockRepository{budgets: make(map[int64]*budget.Budget), nextID: 1}
}

func (m *MockRepository) Create(ctx context.Context, b *budget.Budget) error {
	b.ID = m.nextID
	m.nextID++
	cp := *b
	m.budgets[b.ID] = &cp
	return nil
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*budget.Budget, error) {
	b, ok := m.budgets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *MockRepository) List(ctx context.Context, status budget.Status, limit, offset int) ([]budget.Budget, error) {
	var out []budget.Budget
	for _, b := range m.budgets {
		if status != "" && b.Status != status {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (m *MockRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func (m *MockRepository) UpdateTx(tx *gorm.DB, b *budget.Budget) error {
	cp := *b
	m.budgets[b.ID] = &cp
	return nil
}

type statusChange struct {
	EntityID int64
	ActorID  int64
	Old      string
	New      string
}

// MockRecorder implements budget.Recorder for testing
type MockRecorder struct {
	changes []statusChange
}

func (m *MockRecorder) Record(tx *gorm.DB, entityType string, entityID, actorID int64, changes []audit.Change) error {
	for _, c := range changes {
		m.changes = append(m.changes, statusChange{entityID, actorID, *c.Old, *c.New})
	}
	return nil
}

func (m *MockRecorder) History(ctx context.Context, entityType string, entityID int64, limit, offset int) ([]audit.Record, error) {
	return nil, nil
}

var _ = Describe("Budget Service", func() {
	var (
		mockRepo *MockRepository
		recorder *MockRecorder
		service  *budget.Service
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		recorder = &MockRecorder{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = budget.NewService(mockRepo, recorder, logger)
	})

	createDraft := func() *budget.Budget {
		b, err := service.Create(context.Background(), 7, budget.CreateBudgetDTO{
			Type:        budget.TypeExpense,
			Title:       "Pintura da fachada",
			AmountCents: 1500000,
		})
		Expect(err).NotTo(HaveOccurred())
		return b
	}

	Describe("Create", func() {
		It("should start as a draft owned by the requester", func() {
			b := createDraft()
			Expect(b.Status).To(Equal(budget.StatusDraft))
			Expect(b.RequestedBy).To(Equal(int64(7)))
			Expect(recorder.changes).To(BeEmpty())
		})

		It("should reject an unknown type", func() {
			_, err := service.Create(context.Background(), 7, budget.CreateBudgetDTO{
				Type:        "transfer",
				Title:       "Pintura",
				AmountCents: 100,
			})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("transitions", func() {
		It("should walk draft -> submitted -> approved, auditing each step", func() {
			b := createDraft()

			submitted, err := service.Submit(context.Background(), b.ID, 7)
			Expect(err).NotTo(HaveOccurred())
			Expect(submitted.Status).To(Equal(budget.StatusSubmitted))

			approved, err := service.Approve(context.Background(), b.ID, 99, budget.DecisionDTO{})
			Expect(err).NotTo(HaveOccurred())
			Expect(approved.Status).To(Equal(budget.StatusApproved))
			Expect(*approved.ApprovedBy).To(Equal(int64(99)))
			Expect(approved.ApprovedAt).NotTo(BeNil())

			Expect(recorder.changes).To(HaveLen(2))
			Expect(recorder.changes[0].Old).To(Equal("draft"))
			Expect(recorder.changes[0].New).To(Equal("submitted"))
			Expect(recorder.changes[1].Old).To(Equal("submitted"))
			Expect(recorder.changes[1].New).To(Equal("approved"))
			Expect(recorder.changes[1].ActorID).To(Equal(int64(99)))
		})

		It("should allow rejecting a submitted budget", func() {
			b := createDraft()
			_, err := service.Submit(context.Background(), b.ID, 7)
			Expect(err).NotTo(HaveOccurred())

			rejected, err := service.Reject(context.Background(), b.ID, 99, budget.DecisionDTO{})
			Expect(err).NotTo(HaveOccurred())
			Expect(rejected.Status).To(Equal(budget.StatusRejected))
		})

		It("should refuse to approve a draft directly", func() {
			b := createDraft()

			_, err := service.Approve(context.Background(), b.ID, 99, budget.DecisionDTO{})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidStatus))
			Expect(recorder.changes).To(BeEmpty())
		})

		It("should refuse any transition out of a terminal state", func() {
			b := createDraft()
			_, err := service.Submit(context.Background(), b.ID, 7)
			Expect(err).NotTo(HaveOccurred())
			_, err = service.Approve(context.Background(), b.ID, 99, budget.DecisionDTO{})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Submit(context.Background(), b.ID, 7)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidStatus))

			_, err = service.Reject(context.Background(), b.ID, 99, budget.DecisionDTO{})
			appErr, ok = internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidStatus))
		})
	})
})

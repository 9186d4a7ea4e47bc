package employee_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/condosys/condo-management/internal"
	"github.com/condosys/condo-management/internal/audit"
	"github.com/condosys/condo-management/internal/employee"
)

func TestEmployeeService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Employee Service Suite")
}

// MockRepository implements employee.Repository for testing
type MockRepository struct {
	employees map[int64]*employee.Employee
	nextID    int64
	deleted   []int64
}

func NewMockRepository() *MockRepository {
	return &MockRepository{employees: make(map[int64]*employee.Employee), nextID: 1}
}

func (m *MockRepository) Create(ctx context.Context, e *employee.Employee) error {
	e.ID = m.nextID
	m.nextID++
	cp := *e
	m.employees[e.ID] = &cp
	return nil
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*employee.Employee, error) {
	e, ok := m.employees[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *MockRepository) List(ctx context.Context, activeOnly bool, limit, offset int) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range m.employees {
		if activeOnly && !e.IsActive {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (m *MockRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func (m *MockRepository) UpdateTx(tx *gorm.DB, e *employee.Employee) error {
	cp := *e
	m.employees[e.ID] = &cp
	return nil
}

func (m *MockRepository) DeleteTx(tx *gorm.DB, id int64) error {
	delete(m.employees, id)
	m.deleted = append(m.deleted, id)
	return nil
}

type recordedCall struct {
	EntityType string
	EntityID   int64
	ActorID    int64
	Changes    []audit.Change
}

// MockRecorder implements employee.Recorder for testing
type MockRecorder struct {
	calls []recordedCall
}

func (m *MockRecorder) Record(tx *gorm.DB, entityType string, entityID, actorID int64, changes []audit.Change) error {
	m.calls = append(m.calls, recordedCall{entityType, entityID, actorID, changes})
	return nil
}

func (m *MockRecorder) History(ctx context.Context, entityType string, entityID int64, limit, offset int) ([]audit.Record, error) {
	return nil, nil
}

func strPtr(s string) *string { return &s }
func intPtr(i int64) *int64   { return &i }

var _ = Describe("Employee Service", func() {
	var (
		mockRepo *MockRepository
		recorder *MockRecorder
		service  *employee.Service
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		recorder = &MockRecorder{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = employee.NewService(mockRepo, recorder, logger)
	})

	createOne := func() *employee.Employee {
		e, err := service.Create(context.Background(), employee.CreateEmployeeDTO{
			Name:        "Joao Silva",
			CPF:         "123.456.789-00",
			Role:        "Porteiro",
			HireDate:    "2024-01-15",
			SalaryCents: intPtr(100000),
		})
		Expect(err).NotTo(HaveOccurred())
		return e
	}

	Describe("Create", func() {
		It("should store the employee active with the parsed hire date", func() {
			e := createOne()
			Expect(e.ID).NotTo(BeZero())
			Expect(e.IsActive).To(BeTrue())
			Expect(e.HireDate).To(Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)))
			Expect(recorder.calls).To(BeEmpty())
		})

		It("should reject a malformed hire date", func() {
			_, err := service.Create(context.Background(), employee.CreateEmployeeDTO{
				Name:     "Joao Silva",
				CPF:      "123.456.789-00",
				Role:     "Porteiro",
				HireDate: "15/01/2024",
			})
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidDate))
		})
	})

	Describe("Update", func() {
		It("should record one audit change per modified field", func() {
			e := createOne()

			updated, err := service.Update(context.Background(), e.ID, 42, employee.UpdateEmployeeDTO{
				Role:        strPtr("Zelador"),
				SalaryCents: intPtr(120000),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Role).To(Equal("Zelador"))

			Expect(recorder.calls).To(HaveLen(1))
			call := recorder.calls[0]
			Expect(call.EntityType).To(Equal(audit.EntityEmployee))
			Expect(call.EntityID).To(Equal(e.ID))
			Expect(call.ActorID).To(Equal(int64(42)))
			Expect(call.Changes).To(HaveLen(2))

			fields := []string{call.Changes[0].Field, call.Changes[1].Field}
			Expect(fields).To(ConsistOf("role", "salary"))
			for _, c := range call.Changes {
				if c.Field == "salary" {
					Expect(*c.Old).To(Equal("1000.00"))
					Expect(*c.New).To(Equal("1200.00"))
				}
			}
		})

		It("should record nothing when no field actually changes", func() {
			e := createOne()

			_, err := service.Update(context.Background(), e.ID, 42, employee.UpdateEmployeeDTO{
				Role:        strPtr("Porteiro"),
				SalaryCents: intPtr(100000),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(recorder.calls).To(BeEmpty())
		})

		It("should return not found for an unknown employee", func() {
			_, err := service.Update(context.Background(), 999, 42, employee.UpdateEmployeeDTO{
				Role: strPtr("Zelador"),
			})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(404))
		})
	})

	Describe("Delete", func() {
		It("should remove the row and record a final deleted change", func() {
			e := createOne()

			Expect(service.Delete(context.Background(), e.ID, 42)).To(Succeed())
			Expect(mockRepo.deleted).To(ContainElement(e.ID))

			Expect(recorder.calls).To(HaveLen(1))
			call := recorder.calls[0]
			Expect(call.Changes).To(HaveLen(1))
			Expect(call.Changes[0].Field).To(Equal("deleted"))
			Expect(*call.Changes[0].New).To(Equal("true"))
		})
	})
})

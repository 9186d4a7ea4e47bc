package scheduling_test

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
	"github.com/condosys/condo-management/internal/scheduling"
)

func TestSchedulingService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Scheduling Service Suite")
}

// MockAreaRepository implements scheduling.AreaRepository for testing
type MockAreaRepository struct {
	areas  map[int64]*scheduling.Area
	nextID int64
}

func NewMockAreaRepository() *MockAreaRepository {
	return &MockAreaRepository{areas: make(map[int64]*scheduling.Area), nextID: 1}
}

func (m *MockAreaRepository) Create(ctx context.Context, a *scheduling.Area) error {
	a.ID = m.nextID
	m.nextID++
	cp := *a
	m.areas[a.ID] = &cp
	return nil
}

func (m *MockAreaRepository) GetByID(ctx context.Context, id int64) (*scheduling.Area, error) {
	a, ok := m.areas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *MockAreaRepository) List(ctx context.Context, limit, offset int) ([]scheduling.Area, error) {
	var out []scheduling.Area
	for _, a := range m.areas {
		out = append(out, *a)
	}
	return out, nil
}

func (m *MockAreaRepository) Update(ctx context.Context, a *scheduling.Area) error {
	cp := *a
	m.areas[a.ID] = &cp
	return nil
}

// MockSchedulingRepository implements scheduling.Repository for testing
type MockSchedulingRepository struct {
	schedulings map[int64]*scheduling.Scheduling
	nextID      int64
}

func NewMockSchedulingRepository() *MockSchedulingRepository {
	return &MockSchedulingRepository{schedulings: make(map[int64]*scheduling.Scheduling), nextID: 1}
}

func (m *MockSchedulingRepository) Create(ctx context.Context, sc *scheduling.Scheduling) error {
	sc.ID = m.nextID
	m.nextID++
	cp := *sc
	m.schedulings[sc.ID] = &cp
	return nil
}

func (m *MockSchedulingRepository) GetByID(ctx context.Context, id int64) (*scheduling.Scheduling, error) {
	sc, ok := m.schedulings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *sc
	return &cp, nil
}

func (m *MockSchedulingRepository) List(ctx context.Context, filter scheduling.ListFilter, limit, offset int) ([]scheduling.Scheduling, error) {
	var out []scheduling.Scheduling
	for _, sc := range m.schedulings {
		out = append(out, *sc)
	}
	return out, nil
}

func (m *MockSchedulingRepository) Update(ctx context.Context, sc *scheduling.Scheduling) error {
	cp := *sc
	m.schedulings[sc.ID] = &cp
	return nil
}

func (m *MockSchedulingRepository) HasOverlap(ctx context.Context, areaID int64, start, end time.Time) (bool, error) {
	for _, sc := range m.schedulings {
		if sc.AreaID != areaID {
			continue
		}
		if sc.Status != scheduling.StatusPending && sc.Status != scheduling.StatusApproved {
			continue
		}
		if sc.StartDatetime.Before(end) && sc.EndDatetime.After(start) {
			return true, nil
		}
	}
	return false, nil
}

var _ = Describe("Scheduling Service", func() {
	var (
		areaRepo *MockAreaRepository
		repo     *MockSchedulingRepository
		service  *scheduling.Service
		area     *scheduling.Area
		start    time.Time
		end      time.Time
	)

	BeforeEach(func() {
		areaRepo = NewMockAreaRepository()
		repo = NewMockSchedulingRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = scheduling.NewService(areaRepo, repo, logger)

		var err error
		area, err = service.CreateArea(context.Background(), scheduling.CreateAreaDTO{
			Name:             "Salao de Festas",
			RequiresApproval: true,
		})
		Expect(err).NotTo(HaveOccurred())

		start = time.Date(2025, 7, 12, 18, 0, 0, 0, time.UTC)
		end = start.Add(4 * time.Hour)
	})

	book := func(userID int64) *scheduling.Scheduling {
		sc, err := service.Create(context.Background(), userID, scheduling.CreateSchedulingDTO{
			AreaID:        area.ID,
			UnitID:        3,
			StartDatetime: start,
			EndDatetime:   end,
		})
		Expect(err).NotTo(HaveOccurred())
		return sc
	}

	Describe("Create", func() {
		It("should start pending when the area requires approval", func() {
			sc := book(1)
			Expect(sc.Status).To(Equal(scheduling.StatusPending))
			Expect(sc.ApprovedBy).To(BeNil())
		})

		It("should auto-approve when the area does not require approval", func() {
			freeArea, err := service.CreateArea(context.Background(), scheduling.CreateAreaDTO{
				Name:             "Churrasqueira",
				RequiresApproval: false,
			})
			Expect(err).NotTo(HaveOccurred())

			sc, err := service.Create(context.Background(), 1, scheduling.CreateSchedulingDTO{
				AreaID:        freeArea.ID,
				UnitID:        3,
				StartDatetime: start,
				EndDatetime:   end,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(sc.Status).To(Equal(scheduling.StatusApproved))
			Expect(sc.ApprovedBy).NotTo(BeNil())
			Expect(*sc.ApprovedBy).To(Equal(int64(1)))
			Expect(sc.ApprovedAt).NotTo(BeNil())
		})

		It("should reject an overlapping booking with a conflict", func() {
			book(1)

			_, err := service.Create(context.Background(), 2, scheduling.CreateSchedulingDTO{
				AreaID:        area.ID,
				UnitID:        4,
				StartDatetime: start.Add(time.Hour),
				EndDatetime:   end.Add(time.Hour),
			})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(409))
		})

		It("should allow a booking in a free window", func() {
			book(1)

			_, err := service.Create(context.Background(), 2, scheduling.CreateSchedulingDTO{
				AreaID:        area.ID,
				UnitID:        4,
				StartDatetime: end,
				EndDatetime:   end.Add(2 * time.Hour),
			})
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("Approve", func() {
		It("should stamp approver and approval time", func() {
			sc := book(1)

			approved, err := service.Approve(context.Background(), sc.ID, 99, scheduling.DecisionDTO{})
			Expect(err).NotTo(HaveOccurred())
			Expect(approved.Status).To(Equal(scheduling.StatusApproved))
			Expect(*approved.ApprovedBy).To(Equal(int64(99)))
			Expect(approved.ApprovedAt).NotTo(BeNil())
		})

		It("should reject a second approve", func() {
			sc := book(1)
			_, err := service.Approve(context.Background(), sc.ID, 99, scheduling.DecisionDTO{})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Approve(context.Background(), sc.ID, 99, scheduling.DecisionDTO{})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidStatus))
		})

		It("should reject approving a cancelled scheduling", func() {
			sc := book(1)
			_, err := service.Cancel(context.Background(), sc.ID, 1)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Approve(context.Background(), sc.ID, 99, scheduling.DecisionDTO{})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidStatus))
		})
	})

	Describe("Cancel", func() {
		It("should only allow the requester to cancel", func() {
			sc := book(1)

			_, err := service.Cancel(context.Background(), sc.ID, 2)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(403))

			cancelled, err := service.Cancel(context.Background(), sc.ID, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(cancelled.Status).To(Equal(scheduling.StatusCancelled))
		})
	})
})

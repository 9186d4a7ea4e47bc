package meeting_test

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
	"github.com/condosys/condo-management/internal/meeting"
)

func TestMeetingService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Meeting Service Suite")
}

// MockRepository implements meeting.Repository for testing
type MockRepository struct {
	meetings map[int64]*meeting.Meeting
	nextID   int64
}

func NewMockRepository() *MockRepository {
	return &MockRepository{meetings: make(map[int64]*meeting.Meeting), nextID: 1}
}

func (m *MockRepository) Create(ctx context.Context, mt *meeting.Meeting) error {
	mt.ID = m.nextID
	m.nextID++
	cp := *mt
	m.meetings[mt.ID] = &cp
	return nil
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*meeting.Meeting, error) {
	mt, ok := m.meetings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *mt
	return &cp, nil
}

func (m *MockRepository) List(ctx context.Context, status meeting.Status, limit, offset int) ([]meeting.Meeting, error) {
	var out []meeting.Meeting
	for _, mt := range m.meetings {
		if status != "" && mt.Status != status {
			continue
		}
		out = append(out, *mt)
	}
	return out, nil
}

func (m *MockRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func (m *MockRepository) UpdateTx(tx *gorm.DB, mt *meeting.Meeting) error {
	cp := *mt
	m.meetings[mt.ID] = &cp
	return nil
}

// MockMinuteRepository implements meeting.MinuteRepository for testing
type MockMinuteRepository struct {
	minutes map[int64]*meeting.Minute
	nextID  int64
}

func NewMockMinuteRepository() *MockMinuteRepository {
	return &MockMinuteRepository{minutes: make(map[int64]*meeting.Minute), nextID: 1}
}

func (m *MockMinuteRepository) Create(ctx context.Context, mn *meeting.Minute) error {
	mn.ID = m.nextID
	m.nextID++
	cp := *mn
	m.minutes[mn.ID] = &cp
	return nil
}

func (m *MockMinuteRepository) GetByID(ctx context.Context, id int64) (*meeting.Minute, error) {
	mn, ok := m.minutes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *mn
	return &cp, nil
}

func (m *MockMinuteRepository) GetByMeetingID(ctx context.Context, meetingID int64) (*meeting.Minute, error) {
	for _, mn := range m.minutes {
		if mn.MeetingID == meetingID {
			cp := *mn
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockMinuteRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func (m *MockMinuteRepository) UpdateTx(tx *gorm.DB, mn *meeting.Minute) error {
	cp := *mn
	m.minutes[mn.ID] = &cp
	return nil
}

type recordedChange struct {
	EntityType string
	EntityID   int64
	ActorID    int64
	Field      string
}

// MockRecorder implements meeting.Recorder for testing
type MockRecorder struct {
	changes []recordedChange
}

func (m *MockRecorder) Record(tx *gorm.DB, entityType string, entityID, actorID int64, changes []audit.Change) error {
	for _, c := range changes {
		m.changes = append(m.changes, recordedChange{entityType, entityID, actorID, c.Field})
	}
	return nil
}

func (m *MockRecorder) History(ctx context.Context, entityType string, entityID int64, limit, offset int) ([]audit.Record, error) {
	return nil, nil
}

var _ = Describe("Meeting Service", func() {
	var (
		mockRepo    *MockRepository
		mockMinutes *MockMinuteRepository
		recorder    *MockRecorder
		service     *meeting.Service
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		mockMinutes = NewMockMinuteRepository()
		recorder = &MockRecorder{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = meeting.NewService(mockRepo, mockMinutes, recorder, logger)
	})

	schedule := func() *meeting.Meeting {
		m, err := service.Create(context.Background(), 3, meeting.CreateMeetingDTO{
			Title:       "Assembleia ordinaria",
			MeetingDate: time.Date(2025, 9, 10, 19, 0, 0, 0, time.UTC),
		})
		Expect(err).NotTo(HaveOccurred())
		return m
	}

	Describe("transitions", func() {
		It("should start scheduled and allow completion", func() {
			m := schedule()
			Expect(m.Status).To(Equal(meeting.StatusScheduled))

			completed, err := service.Complete(context.Background(), m.ID, 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(completed.Status).To(Equal(meeting.StatusCompleted))

			Expect(recorder.changes).To(HaveLen(1))
			Expect(recorder.changes[0].Field).To(Equal("status"))
			Expect(recorder.changes[0].EntityType).To(Equal(audit.EntityMeeting))
		})

		It("should refuse to cancel a completed meeting", func() {
			m := schedule()
			_, err := service.Complete(context.Background(), m.ID, 3)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Cancel(context.Background(), m.ID, 3)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidStatus))
		})
	})

	Describe("minutes", func() {
		It("should allow at most one minute per meeting", func() {
			m := schedule()

			mn, err := service.CreateMinute(context.Background(), 3, meeting.CreateMinuteDTO{
				MeetingID: m.ID,
				Content:   "Aprovada a troca do portao.",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(mn.IssuedBy).To(Equal(int64(3)))
			Expect(mn.SentAt).To(BeNil())

			_, err = service.CreateMinute(context.Background(), 3, meeting.CreateMinuteDTO{
				MeetingID: m.ID,
				Content:   "Segunda ata.",
			})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(409))
		})

		It("should refuse a minute for an unknown meeting", func() {
			_, err := service.CreateMinute(context.Background(), 3, meeting.CreateMinuteDTO{
				MeetingID: 999,
				Content:   "Ata orfa.",
			})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(404))
		})

		It("should stamp sent_at once and refuse a second send", func() {
			m := schedule()
			mn, err := service.CreateMinute(context.Background(), 3, meeting.CreateMinuteDTO{
				MeetingID: m.ID,
				Content:   "Aprovada a troca do portao.",
			})
			Expect(err).NotTo(HaveOccurred())

			sent, err := service.SendMinute(context.Background(), mn.ID, 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(sent.SentAt).NotTo(BeNil())
			Expect(recorder.changes).To(ContainElement(recordedChange{audit.EntityMinute, mn.ID, 3, "sent_at"}))

			_, err = service.SendMinute(context.Background(), mn.ID, 3)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(409))
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidStatus))
		})
	})
})

package postgres

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/condosys/condo-management/internal/notice"
)

func TestNoticeRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "NoticeRepository Suite")
}

var _ = Describe("NoticeRepository", func() {
	var (
		db   *gorm.DB
		repo *NoticeRepository
		now  time.Time
	)

	publish := func(title string, active bool, expiresAt *time.Time, publishedAt time.Time) {
		n := &notice.Notice{
			Title:       title,
			Content:     "conteudo",
			Type:        "general",
			Priority:    "normal",
			PublishedBy: 1,
			PublishedAt: publishedAt,
			ExpiresAt:   expiresAt,
			IsActive:    active,
			CreatedAt:   publishedAt,
			UpdatedAt:   publishedAt,
		}
		Expect(repo.Create(context.Background(), n)).To(Succeed())
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&notice.Notice{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewNoticeRepository(db)
		now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("ListBoard", func() {
		It("should return only active, unexpired notices, newest first", func() {
			future := now.Add(24 * time.Hour)
			past := now.Add(-24 * time.Hour)

			publish("antigo mas valido", true, nil, now.Add(-48*time.Hour))
			publish("expira amanha", true, &future, now.Add(-time.Hour))
			publish("ja expirou", true, &past, now.Add(-36*time.Hour))
			publish("desativado", false, nil, now.Add(-time.Minute))

			board, err := repo.ListBoard(context.Background(), now, 50, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(board).To(HaveLen(2))
			Expect(board[0].Title).To(Equal("expira amanha"))
			Expect(board[1].Title).To(Equal("antigo mas valido"))
		})

		It("should return an empty board when everything expired", func() {
			past := now.Add(-time.Hour)
			publish("ja expirou", true, &past, now.Add(-2*time.Hour))

			board, err := repo.ListBoard(context.Background(), now, 50, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(board).To(BeEmpty())
		})
	})
})

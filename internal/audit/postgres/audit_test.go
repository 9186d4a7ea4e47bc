package postgres

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/condosys/condo-management/internal/audit"
)

func TestAuditRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "AuditRepository Suite")
}

var _ = Describe("Audit recorder", func() {
	var (
		db      *gorm.DB
		service *audit.Service
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&audit.Record{}, &audit.Log{})
		Expect(err).NotTo(HaveOccurred())

		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = audit.NewService(NewAuditRepository(db), logger)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("Record", func() {
		It("should write one row per change sharing timestamp and actor", func() {
			changes := []audit.Change{
				{Field: "salary", Old: audit.Cents(100000), New: audit.Cents(120000)},
				{Field: "role", Old: audit.String("Porteiro"), New: audit.String("Zelador")},
			}

			err := db.Transaction(func(tx *gorm.DB) error {
				return service.Record(tx, audit.EntityEmployee, 7, 42, changes)
			})
			Expect(err).NotTo(HaveOccurred())

			var rows []audit.Record
			Expect(db.Order("id ASC").Find(&rows).Error).To(Succeed())
			Expect(rows).To(HaveLen(2))

			Expect(rows[0].EntityType).To(Equal(audit.EntityEmployee))
			Expect(rows[0].EntityID).To(Equal(int64(7)))
			Expect(rows[0].FieldName).To(Equal("salary"))
			Expect(*rows[0].OldValue).To(Equal("1000.00"))
			Expect(*rows[0].NewValue).To(Equal("1200.00"))

			Expect(rows[1].FieldName).To(Equal("role"))

			Expect(rows[0].ChangedBy).To(Equal(int64(42)))
			Expect(rows[1].ChangedBy).To(Equal(int64(42)))
			Expect(rows[0].ChangedAt).To(Equal(rows[1].ChangedAt))
		})

		It("should write nothing for an empty change list", func() {
			err := db.Transaction(func(tx *gorm.DB) error {
				return service.Record(tx, audit.EntityEmployee, 7, 42, nil)
			})
			Expect(err).NotTo(HaveOccurred())

			var count int64
			Expect(db.Model(&audit.Record{}).Count(&count).Error).To(Succeed())
			Expect(count).To(BeZero())
		})

		It("should roll back with the enclosing transaction", func() {
			err := db.Transaction(func(tx *gorm.DB) error {
				if err := service.Record(tx, audit.EntityBudget, 1, 42, []audit.Change{
					{Field: "status", Old: audit.String("draft"), New: audit.String("submitted")},
				}); err != nil {
					return err
				}
				return context.Canceled
			})
			Expect(err).To(HaveOccurred())

			var count int64
			Expect(db.Model(&audit.Record{}).Count(&count).Error).To(Succeed())
			Expect(count).To(BeZero())
		})
	})

	Describe("History", func() {
		It("should return records chronologically ascending", func() {
			base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
			for i, field := range []string{"first", "second", "third"} {
				rec := audit.Record{
					EntityType: audit.EntityPatrimony,
					EntityID:   3,
					FieldName:  field,
					ChangedBy:  1,
					ChangedAt:  base.Add(time.Duration(i) * time.Minute),
				}
				Expect(db.Create(&rec).Error).To(Succeed())
			}
			// A record of another entity must not leak in.
			Expect(db.Create(&audit.Record{
				EntityType: audit.EntityPatrimony,
				EntityID:   99,
				FieldName:  "other",
				ChangedBy:  1,
				ChangedAt:  base,
			}).Error).To(Succeed())

			records, err := service.History(context.Background(), audit.EntityPatrimony, 3, 50, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(3))
			Expect(records[0].FieldName).To(Equal("first"))
			Expect(records[1].FieldName).To(Equal("second"))
			Expect(records[2].FieldName).To(Equal("third"))
		})
	})

	Describe("Logs", func() {
		It("should filter by user, action and entity type, newest first", func() {
			uid := int64(5)
			entity := "employees"
			base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

			entries := []audit.Log{
				{UserID: &uid, Action: "update", EntityType: &entity, RequestPath: "/api/v1/employees/1", CreatedAt: base},
				{UserID: &uid, Action: "update", EntityType: &entity, RequestPath: "/api/v1/employees/2", CreatedAt: base.Add(time.Minute)},
				{UserID: &uid, Action: "read", EntityType: &entity, RequestPath: "/api/v1/employees", CreatedAt: base},
				{Action: "create", RequestPath: "/api/v1/auth/login", CreatedAt: base},
			}
			for i := range entries {
				Expect(db.Create(&entries[i]).Error).To(Succeed())
			}

			logs, err := service.Logs(context.Background(), audit.LogFilter{
				UserID: uid,
				Action: "update",
			}, 50, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(logs).To(HaveLen(2))
			Expect(logs[0].RequestPath).To(Equal("/api/v1/employees/2"))
			Expect(logs[1].RequestPath).To(Equal("/api/v1/employees/1"))
		})
	})
})

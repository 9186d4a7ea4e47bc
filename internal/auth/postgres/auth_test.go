package postgres

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/condosys/condo-management/internal/auth"
	"github.com/condosys/condo-management/internal/function"
	"github.com/condosys/condo-management/internal/group"
	"github.com/condosys/condo-management/internal/permission"
)

func TestAuthRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "AuthRepository Suite")
}

var _ = Describe("AuthRepository", func() {
	var (
		db   *gorm.DB
		repo *AuthRepository
	)

	createGroup := func(name string) *group.Group {
		g := &group.Group{
			Name:      name,
			IsActive:  true,
			CreatedAt: time.Now().UTC(),
			UpdatedAt: time.Now().UTC(),
		}
		Expect(db.Create(g).Error).To(Succeed())
		return g
	}

	createFunction := func(code string) *function.Function {
		f := &function.Function{
			Name:      code,
			Code:      code,
			Module:    "management",
			IsActive:  true,
			CreatedAt: time.Now().UTC(),
		}
		Expect(db.Create(f).Error).To(Succeed())
		return f
	}

	grant := func(groupID, functionID int64, action auth.Action) {
		p := &permission.Permission{
			GroupID:    groupID,
			FunctionID: functionID,
			Action:     action,
			CreatedAt:  time.Now().UTC(),
		}
		Expect(db.Create(p).Error).To(Succeed())
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&group.Group{}, &function.Function{}, &permission.Permission{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewAuthRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("HasPermission", func() {
		It("should find a grant for the exact triple", func() {
			g := createGroup("Sindico")
			f := createFunction("employees.manage")
			grant(g.ID, f.ID, auth.ActionWrite)

			ok, err := repo.HasPermission(context.Background(), g.ID, "employees.manage", auth.ActionWrite)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
		})

		It("should not match a different action on the same function", func() {
			g := createGroup("Sindico")
			f := createFunction("employees.manage")
			grant(g.ID, f.ID, auth.ActionWrite)

			ok, err := repo.HasPermission(context.Background(), g.ID, "employees.manage", auth.ActionExecute)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
		})

		It("should stop matching once the group is deactivated", func() {
			g := createGroup("Sindico")
			f := createFunction("budgets.approve")
			grant(g.ID, f.ID, auth.ActionExecute)

			ok, err := repo.HasPermission(context.Background(), g.ID, "budgets.approve", auth.ActionExecute)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())

			err = db.Table("groups").Where("id = ?", g.ID).Update("is_active", false).Error
			Expect(err).NotTo(HaveOccurred())

			ok, err = repo.HasPermission(context.Background(), g.ID, "budgets.approve", auth.ActionExecute)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
		})

		It("should stop matching once the function is deactivated", func() {
			g := createGroup("Sindico")
			f := createFunction("logs.view")
			grant(g.ID, f.ID, auth.ActionRead)

			err := db.Table("functions").Where("id = ?", f.ID).Update("is_active", false).Error
			Expect(err).NotTo(HaveOccurred())

			ok, err := repo.HasPermission(context.Background(), g.ID, "logs.view", auth.ActionRead)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
		})

		It("should deny an unknown function code without error", func() {
			g := createGroup("Morador")

			ok, err := repo.HasPermission(context.Background(), g.ID, "does.not.exist", auth.ActionRead)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
		})
	})
})

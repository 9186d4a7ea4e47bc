package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/condosys/condo-management/internal/transport/rest"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed groups, functions, permissions and the admin user",
	Long:  `Seed the database with the base groups, the function registry, their permissions and an initial administrator account. Safe to re-run.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlxDB.Close()

		db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open gorm: %v", err)
		}

		groups := []struct {
			Name string
			Desc string
		}{
			{"Sindico", "Condominium administrator"},
			{"Morador", "Resident"},
			{"Funcionario", "Staff"},
		}

		for _, g := range groups {
			var exists int
			if err := db.Raw("SELECT 1 FROM groups WHERE name = ?", g.Name).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO groups (name, description, is_active, created_at, updated_at) VALUES (?, ?, true, now(), now())", g.Name, g.Desc).Error; err != nil {
				log.Fatalf("failed to insert group %s: %v", g.Name, err)
			}
			fmt.Println("Seeded group:", g.Name)
		}

		functions := []struct {
			Name   string
			Code   string
			Module string
		}{
			{"Manage users", rest.FnUsersManage, "auth"},
			{"Manage groups", rest.FnGroupsManage, "auth"},
			{"Manage functions", rest.FnFunctionsManage, "auth"},
			{"Manage permissions", rest.FnPermissionsManage, "auth"},
			{"Manage residence records", rest.FnResidenceManage, "auth"},
			{"Manage providers", rest.FnProvidersManage, "management"},
			{"Manage employees", rest.FnEmployeesManage, "management"},
			{"Manage patrimony", rest.FnPatrimoniesManage, "management"},
			{"Manage common areas", rest.FnAreasManage, "operations"},
			{"Approve schedulings", rest.FnSchedulingApprove, "operations"},
			{"Manage budgets", rest.FnBudgetsManage, "operations"},
			{"Approve budgets", rest.FnBudgetsApprove, "operations"},
			{"Manage meetings", rest.FnMeetingsManage, "operations"},
			{"Manage notices", rest.FnNoticesManage, "operations"},
			{"Manage visitors", rest.FnVisitorsManage, "operations"},
			{"View request logs", rest.FnLogsView, "audit"},
		}

		for _, f := range functions {
			var exists int
			if err := db.Raw("SELECT 1 FROM functions WHERE code = ?", f.Code).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO functions (name, code, module, is_active, created_at) VALUES (?, ?, ?, true, now())", f.Name, f.Code, f.Module).Error; err != nil {
				log.Fatalf("failed to insert function %s: %v", f.Code, err)
			}
			fmt.Println("Seeded function:", f.Code)
		}

		// The administrator group holds every permission: write on management
		// functions, execute on approvals, read on the log viewer.
		grants := map[string]string{
			rest.FnUsersManage:       "write",
			rest.FnGroupsManage:      "write",
			rest.FnFunctionsManage:   "write",
			rest.FnPermissionsManage: "write",
			rest.FnResidenceManage:   "write",
			rest.FnProvidersManage:   "write",
			rest.FnEmployeesManage:   "write",
			rest.FnPatrimoniesManage: "write",
			rest.FnAreasManage:       "write",
			rest.FnSchedulingApprove: "execute",
			rest.FnBudgetsManage:     "write",
			rest.FnBudgetsApprove:    "execute",
			rest.FnMeetingsManage:    "write",
			rest.FnNoticesManage:     "write",
			rest.FnVisitorsManage:    "write",
			rest.FnLogsView:          "read",
		}

		var adminGroupID int64
		if err := db.Raw("SELECT id FROM groups WHERE name = ?", "Sindico").Row().Scan(&adminGroupID); err != nil {
			log.Fatalf("failed to look up Sindico group: %v", err)
		}

		for code, action := range grants {
			var fnID int64
			if err := db.Raw("SELECT id FROM functions WHERE code = ?", code).Row().Scan(&fnID); err != nil {
				log.Fatalf("function not found after insert %s: %v", code, err)
			}

			var exists int
			if err := db.Raw("SELECT 1 FROM permissions WHERE group_id = ? AND function_id = ? AND action = ?", adminGroupID, fnID, action).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO permissions (group_id, function_id, action, created_at) VALUES (?, ?, ?, now())", adminGroupID, fnID, action).Error; err != nil {
				log.Fatalf("failed to grant %s %s to Sindico: %v", action, code, err)
			}
		}
		fmt.Println("Granted full permission set to group Sindico")

		// Staff can register visitors.
		var staffGroupID int64
		if err := db.Raw("SELECT id FROM groups WHERE name = ?", "Funcionario").Row().Scan(&staffGroupID); err != nil {
			log.Fatalf("failed to look up Funcionario group: %v", err)
		}
		var visitorsFnID int64
		if err := db.Raw("SELECT id FROM functions WHERE code = ?", rest.FnVisitorsManage).Row().Scan(&visitorsFnID); err != nil {
			log.Fatalf("failed to look up visitors function: %v", err)
		}
		var exists int
		if err := db.Raw("SELECT 1 FROM permissions WHERE group_id = ? AND function_id = ? AND action = ?", staffGroupID, visitorsFnID, "write").Row().Scan(&exists); err != nil {
			if err := db.Exec("INSERT INTO permissions (group_id, function_id, action, created_at) VALUES (?, ?, 'write', now())", staffGroupID, visitorsFnID).Error; err != nil {
				log.Fatalf("failed to grant visitors.manage to Funcionario: %v", err)
			}
			fmt.Println("Granted visitors.manage write to group Funcionario")
		}

		adminUsername := "admin"
		if err := db.Raw("SELECT 1 FROM users WHERE username = ?", adminUsername).Row().Scan(&exists); err == nil {
			fmt.Println("admin user already exists; nothing to do")
			return
		}

		adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
		if adminPassword == "" {
			adminPassword = "admin123"
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash admin password: %v", err)
		}

		if err := db.Exec(
			"INSERT INTO users (username, email, full_name, password_hash, group_id, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, ?, true, now(), now())",
			adminUsername, "admin@condo.local", "Administrator", string(hash), adminGroupID,
		).Error; err != nil {
			log.Fatalf("failed to insert admin user: %v", err)
		}
		fmt.Println("Seeded admin user:", adminUsername)
	},
}

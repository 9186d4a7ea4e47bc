package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/condosys/condo-management/internal/audit"
	"github.com/condosys/condo-management/internal/auth"
	"github.com/condosys/condo-management/internal/budget"
	"github.com/condosys/condo-management/internal/employee"
	"github.com/condosys/condo-management/internal/function"
	"github.com/condosys/condo-management/internal/group"
	"github.com/condosys/condo-management/internal/meeting"
	"github.com/condosys/condo-management/internal/notice"
	"github.com/condosys/condo-management/internal/patrimony"
	"github.com/condosys/condo-management/internal/permission"
	"github.com/condosys/condo-management/internal/provider"
	"github.com/condosys/condo-management/internal/residence"
	"github.com/condosys/condo-management/internal/scheduling"
	"github.com/condosys/condo-management/internal/transport/middleware"
	"github.com/condosys/condo-management/internal/transport/swagger"
	"github.com/condosys/condo-management/internal/user"
	"github.com/condosys/condo-management/internal/visitor"
)

// Function codes checked by the RBAC middleware. The seed command registers
// each of these in the function registry.
const (
	FnUsersManage       = "users.manage"
	FnGroupsManage      = "groups.manage"
	FnFunctionsManage   = "functions.manage"
	FnPermissionsManage = "permissions.manage"
	FnResidenceManage   = "residence.manage"
	FnProvidersManage   = "providers.manage"
	FnEmployeesManage   = "employees.manage"
	FnPatrimoniesManage = "patrimonies.manage"
	FnAreasManage       = "areas.manage"
	FnSchedulingApprove = "schedulings.approve"
	FnBudgetsManage     = "budgets.manage"
	FnBudgetsApprove    = "budgets.approve"
	FnMeetingsManage    = "meetings.manage"
	FnNoticesManage     = "notices.manage"
	FnVisitorsManage    = "visitors.manage"
	FnLogsView          = "logs.view"
)

// Handlers bundles every route handler so RegisterAllRoutes stays readable.
type Handlers struct {
	Auth       *auth.Handler
	User       *user.Handler
	Group      *group.Handler
	Function   *function.Handler
	Permission *permission.Handler
	Residence  *residence.Handler
	Provider   *provider.Handler
	Employee   *employee.Handler
	Patrimony  *patrimony.Handler
	Scheduling *scheduling.Handler
	Budget     *budget.Handler
	Meeting    *meeting.Handler
	Notice     *notice.Handler
	Visitor    *visitor.Handler
	Audit      *audit.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, rbac *auth.RBACAuthorization, auditSvc *audit.Service, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve the OpenAPI document at root, outside the API prefix.
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	requestLog := audit.RequestLogMiddleware(auditSvc)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Use(requestLog)
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		// Everything below requires a valid session. The request log runs
		// inside the auth middleware so each row carries the actor.
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)
			pr.Use(requestLog)

			pr.Get("/auth/me", h.Auth.Me)

			pr.Route("/users", func(ur chi.Router) {
				ur.Get("/", h.User.List)
				ur.Get("/{id}", h.User.Get)
				ur.Post("/change-password", h.User.ChangePassword)
				ur.Group(func(mr chi.Router) {
					mr.Use(rbac.RequirePermission(FnUsersManage, auth.ActionWrite))
					mr.Post("/", h.User.Create)
					mr.Put("/{id}", h.User.Update)
					mr.Delete("/{id}", h.User.Delete)
				})
			})

			pr.Route("/groups", func(gr chi.Router) {
				gr.Get("/", h.Group.List)
				gr.Get("/{id}", h.Group.Get)
				gr.Group(func(mr chi.Router) {
					mr.Use(rbac.RequirePermission(FnGroupsManage, auth.ActionWrite))
					mr.Post("/", h.Group.Create)
					mr.Put("/{id}", h.Group.Update)
					mr.Delete("/{id}", h.Group.Delete)
				})
			})

			pr.Route("/functions", func(fr chi.Router) {
				fr.Get("/", h.Function.List)
				fr.Get("/{id}", h.Function.Get)
				fr.Group(func(mr chi.Router) {
					mr.Use(rbac.RequirePermission(FnFunctionsManage, auth.ActionWrite))
					mr.Post("/", h.Function.Create)
					mr.Patch("/{id}/deactivate", h.Function.Deactivate)
				})
			})

			pr.Route("/permissions", func(pe chi.Router) {
				pe.Get("/", h.Permission.List)
				pe.Group(func(mr chi.Router) {
					mr.Use(rbac.RequirePermission(FnPermissionsManage, auth.ActionWrite))
					mr.Post("/", h.Permission.Grant)
					mr.Delete("/{id}", h.Permission.Revoke)
				})
			})

			pr.Route("/condominiums", func(cr chi.Router) {
				cr.Get("/", h.Residence.ListCondominiums)
				cr.Get("/{id}", h.Residence.GetCondominium)
				cr.With(rbac.RequirePermission(FnResidenceManage, auth.ActionWrite)).
					Post("/", h.Residence.CreateCondominium)
			})

			pr.Route("/units", func(ur chi.Router) {
				ur.Get("/", h.Residence.ListUnits)
				ur.Get("/{id}", h.Residence.GetUnit)
				ur.With(rbac.RequirePermission(FnResidenceManage, auth.ActionWrite)).
					Post("/", h.Residence.CreateUnit)
			})

			pr.Route("/residents", func(rr chi.Router) {
				rr.Get("/", h.Residence.ListResidents)
				rr.Get("/{id}", h.Residence.GetResident)
				rr.With(rbac.RequirePermission(FnResidenceManage, auth.ActionWrite)).
					Post("/", h.Residence.CreateResident)
			})

			pr.Route("/providers", func(pv chi.Router) {
				pv.Get("/", h.Provider.List)
				pv.Get("/{id}", h.Provider.Get)
				pv.Group(func(mr chi.Router) {
					mr.Use(rbac.RequirePermission(FnProvidersManage, auth.ActionWrite))
					mr.Post("/", h.Provider.Create)
					mr.Put("/{id}", h.Provider.Update)
					mr.Delete("/{id}", h.Provider.Delete)
				})
			})

			pr.Route("/employees", func(er chi.Router) {
				er.Get("/", h.Employee.List)
				er.Get("/{id}", h.Employee.Get)
				er.Get("/{id}/history", h.Employee.History)
				er.Group(func(mr chi.Router) {
					mr.Use(rbac.RequirePermission(FnEmployeesManage, auth.ActionWrite))
					mr.Post("/", h.Employee.Create)
					mr.Put("/{id}", h.Employee.Update)
					mr.Delete("/{id}", h.Employee.Delete)
				})
			})

			pr.Route("/patrimonies", func(pa chi.Router) {
				pa.Get("/", h.Patrimony.List)
				pa.Get("/{id}", h.Patrimony.Get)
				pa.Get("/{id}/history", h.Patrimony.History)
				pa.Group(func(mr chi.Router) {
					mr.Use(rbac.RequirePermission(FnPatrimoniesManage, auth.ActionWrite))
					mr.Post("/", h.Patrimony.Create)
					mr.Put("/{id}", h.Patrimony.Update)
					mr.Delete("/{id}", h.Patrimony.Delete)
				})
			})

			pr.Route("/areas", func(ar chi.Router) {
				ar.Get("/", h.Scheduling.ListAreas)
				ar.Get("/{id}", h.Scheduling.GetArea)
				ar.Group(func(mr chi.Router) {
					mr.Use(rbac.RequirePermission(FnAreasManage, auth.ActionWrite))
					mr.Post("/", h.Scheduling.CreateArea)
					mr.Put("/{id}", h.Scheduling.UpdateArea)
				})
			})

			pr.Route("/schedulings", func(sc chi.Router) {
				sc.Post("/", h.Scheduling.Create)
				sc.Get("/", h.Scheduling.List)
				sc.Get("/{id}", h.Scheduling.Get)
				// Cancellation is ownership-checked in the service, not by RBAC.
				sc.Patch("/{id}/cancel", h.Scheduling.Cancel)
				sc.Group(func(mr chi.Router) {
					mr.Use(rbac.RequireExecute(FnSchedulingApprove))
					mr.Patch("/{id}/approve", h.Scheduling.Approve)
					mr.Patch("/{id}/reject", h.Scheduling.Reject)
				})
			})

			pr.Route("/budgets", func(br chi.Router) {
				br.Get("/", h.Budget.List)
				br.Get("/{id}", h.Budget.Get)
				br.Get("/{id}/history", h.Budget.History)
				br.Group(func(mr chi.Router) {
					mr.Use(rbac.RequirePermission(FnBudgetsManage, auth.ActionWrite))
					mr.Post("/", h.Budget.Create)
					mr.Patch("/{id}/submit", h.Budget.Submit)
				})
				br.Group(func(mr chi.Router) {
					mr.Use(rbac.RequireExecute(FnBudgetsApprove))
					mr.Patch("/{id}/approve", h.Budget.Approve)
					mr.Patch("/{id}/reject", h.Budget.Reject)
				})
			})

			pr.Route("/meetings", func(me chi.Router) {
				me.Get("/", h.Meeting.List)
				me.Get("/{id}", h.Meeting.Get)
				me.Get("/{id}/history", h.Meeting.History)
				me.Get("/{id}/minute", h.Meeting.GetMinute)
				me.Group(func(mr chi.Router) {
					mr.Use(rbac.RequirePermission(FnMeetingsManage, auth.ActionWrite))
					mr.Post("/", h.Meeting.Create)
					mr.Put("/{id}", h.Meeting.Update)
					mr.Patch("/{id}/complete", h.Meeting.Complete)
					mr.Patch("/{id}/cancel", h.Meeting.Cancel)
					mr.Post("/{id}/minute", h.Meeting.CreateMinute)
				})
			})

			pr.Route("/minutes", func(mi chi.Router) {
				mi.Get("/{id}/history", h.Meeting.MinuteHistory)
				mi.Group(func(mr chi.Router) {
					mr.Use(rbac.RequirePermission(FnMeetingsManage, auth.ActionWrite))
					mr.Put("/{id}", h.Meeting.UpdateMinute)
					mr.Post("/{id}/send", h.Meeting.SendMinute)
				})
			})

			pr.Route("/notices", func(no chi.Router) {
				no.Get("/", h.Notice.List)
				no.Get("/{id}", h.Notice.Get)
				no.Get("/{id}/history", h.Notice.History)
				no.Group(func(mr chi.Router) {
					mr.Use(rbac.RequirePermission(FnNoticesManage, auth.ActionWrite))
					mr.Post("/", h.Notice.Create)
					mr.Put("/{id}", h.Notice.Update)
					mr.Delete("/{id}", h.Notice.Delete)
				})
			})
			pr.Get("/notice-board", h.Notice.Board)

			pr.Route("/visitors", func(vi chi.Router) {
				vi.Get("/", h.Visitor.List)
				vi.Get("/{id}", h.Visitor.Get)
				vi.Group(func(mr chi.Router) {
					mr.Use(rbac.RequirePermission(FnVisitorsManage, auth.ActionWrite))
					mr.Post("/", h.Visitor.Register)
					mr.Put("/{id}/exit", h.Visitor.RecordExit)
				})
			})

			pr.Group(func(lg chi.Router) {
				lg.Use(rbac.RequirePermission(FnLogsView, auth.ActionRead))
				lg.Get("/logs", h.Audit.ListLogs)
				lg.Get("/audit", h.Audit.Query)
			})
		})
	})
}

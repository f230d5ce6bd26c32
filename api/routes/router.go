package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ecclesia-app/ecclesia-backend/api/controllers"
	"github.com/ecclesia-app/ecclesia-backend/api/middleware"
	"github.com/ecclesia-app/ecclesia-backend/internal/auth"
	"github.com/ecclesia-app/ecclesia-backend/internal/events"
	"github.com/ecclesia-app/ecclesia-backend/internal/inventory"
	"github.com/ecclesia-app/ecclesia-backend/internal/members"
	"github.com/ecclesia-app/ecclesia-backend/internal/ministries"
	"github.com/ecclesia-app/ecclesia-backend/internal/scheduler"
	"github.com/ecclesia-app/ecclesia-backend/internal/schedules"
	"github.com/ecclesia-app/ecclesia-backend/pkg/auth/session"
	"github.com/ecclesia-app/ecclesia-backend/pkg/config"
	"github.com/ecclesia-app/ecclesia-backend/pkg/enums"
	"github.com/ecclesia-app/ecclesia-backend/pkg/logger"
)

// Deps bundles everything the router wires into handlers. Nil optional fields
// (metrics registry, pingers) degrade gracefully.
type Deps struct {
	DB             controllers.Pinger
	Redis          controllers.Pinger
	SessionManager session.AccessSessionChecker
	Metrics        *prometheus.Registry

	Auth       auth.Service
	Members    members.Service
	Ministries ministries.Service
	Schedules  schedules.Service
	Scheduler  scheduler.Service
	Events     events.Service
	Inventory  inventory.Service
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	adminRole := string(enums.SystemRoleAdmin)
	leaderRole := string(enums.SystemRoleLeader)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(deps.Auth, logg))
		r.Post("/register", controllers.AuthRegister(deps.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(deps.Auth, cfg.JWT, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))

		r.Get("/ping", controllers.PrivatePing())

		r.Route("/members", func(r chi.Router) {
			r.Get("/", controllers.MemberList(deps.Members, logg))
			r.Get("/me", controllers.MemberMe(deps.Members, logg))
			r.Get("/me/availability", controllers.MemberAvailabilityGet(deps.Members, logg))
			r.Put("/me/availability", controllers.MemberAvailabilityPut(deps.Members, logg))
			r.Get("/{memberId}", controllers.MemberDetail(deps.Members, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAnyRole(logg, adminRole, leaderRole))
				r.Patch("/{memberId}", controllers.MemberUpdateProfile(deps.Members, logg))
			})
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(adminRole, logg))
				r.Post("/{memberId}/activate", controllers.MemberSetActive(deps.Members, true, logg))
				r.Post("/{memberId}/deactivate", controllers.MemberSetActive(deps.Members, false, logg))
			})
		})

		r.Route("/ministries", func(r chi.Router) {
			r.Get("/", controllers.MinistryList(deps.Ministries, logg))
			r.Get("/{ministryId}", controllers.MinistryDetail(deps.Ministries, logg))
			r.Get("/{ministryId}/functions", controllers.MinistryListFunctions(deps.Ministries, logg))
			r.Get("/{ministryId}/members", controllers.MinistryListMembers(deps.Ministries, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAnyRole(logg, adminRole, leaderRole))
				r.Post("/", controllers.MinistryCreate(deps.Ministries, logg))
				r.Patch("/{ministryId}", controllers.MinistryUpdate(deps.Ministries, logg))
				r.Post("/{ministryId}/functions", controllers.MinistryAddFunction(deps.Ministries, logg))
				r.Delete("/{ministryId}/functions/{functionId}", controllers.MinistryRemoveFunction(deps.Ministries, logg))
				r.Post("/{ministryId}/members", controllers.MinistryAddMember(deps.Ministries, logg))
				r.Patch("/{ministryId}/members/{userId}", controllers.MinistryUpdateMember(deps.Ministries, logg))
				r.Delete("/{ministryId}/members/{userId}", controllers.MinistryRemoveMember(deps.Ministries, logg))
			})
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(adminRole, logg))
				r.Delete("/{ministryId}", controllers.MinistryDelete(deps.Ministries, logg))
			})
		})

		r.Route("/schedules", func(r chi.Router) {
			r.Get("/", controllers.ScheduleList(deps.Schedules, logg))
			r.Get("/{scheduleId}", controllers.ScheduleDetail(deps.Schedules, logg))
			r.Get("/{scheduleId}/assignments", controllers.ScheduleAssignments(deps.Schedules, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAnyRole(logg, adminRole, leaderRole))
				r.Post("/", controllers.ScheduleCreate(deps.Schedules, logg))
				r.Post("/generate", controllers.ScheduleGenerate(deps.Schedules, logg))
				r.Delete("/{scheduleId}", controllers.ScheduleDelete(deps.Schedules, logg))
			})
		})

		r.Route("/assignments", func(r chi.Router) {
			r.Post("/{assignmentId}/respond", controllers.AssignmentRespond(deps.Schedules, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAnyRole(logg, adminRole, leaderRole))
				r.Delete("/{assignmentId}", controllers.AssignmentRemove(deps.Schedules, logg))
			})
		})

		r.Route("/scheduler", func(r chi.Router) {
			r.Use(middleware.RequireAnyRole(logg, adminRole, leaderRole))
			r.Post("/suggest", controllers.SchedulerSuggest(deps.Scheduler, logg))
			r.Post("/apply", controllers.SchedulerApply(deps.Scheduler, logg))
			r.Post("/validate", controllers.SchedulerValidate(deps.Scheduler, logg))
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", controllers.EventList(deps.Events, logg))
			r.Get("/{eventId}", controllers.EventDetail(deps.Events, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAnyRole(logg, adminRole, leaderRole))
				r.Post("/", controllers.EventCreate(deps.Events, logg))
				r.Delete("/{eventId}", controllers.EventDelete(deps.Events, logg))
			})
		})

		r.Route("/services", func(r chi.Router) {
			r.Get("/", controllers.ServiceTemplateList(deps.Events, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAnyRole(logg, adminRole, leaderRole))
				r.Post("/", controllers.ServiceTemplateCreate(deps.Events, logg))
				r.Patch("/{serviceId}", controllers.ServiceTemplateUpdate(deps.Events, logg))
			})
		})

		r.Route("/locations", func(r chi.Router) {
			r.Get("/", controllers.LocationList(deps.Inventory, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAnyRole(logg, adminRole, leaderRole))
				r.Post("/", controllers.LocationCreate(deps.Inventory, logg))
				r.Delete("/{locationId}", controllers.LocationDelete(deps.Inventory, logg))
			})
		})

		r.Route("/equipment", func(r chi.Router) {
			r.Get("/", controllers.EquipmentList(deps.Inventory, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAnyRole(logg, adminRole, leaderRole))
				r.Post("/", controllers.EquipmentCreate(deps.Inventory, logg))
				r.Patch("/{equipmentId}", controllers.EquipmentUpdate(deps.Inventory, logg))
				r.Delete("/{equipmentId}", controllers.EquipmentDelete(deps.Inventory, logg))
			})
		})
	})

	return r
}

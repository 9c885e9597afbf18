package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"github.com/meridiancg/backoffice-api/internal/auth"
	"github.com/meridiancg/backoffice-api/internal/config"
	"github.com/meridiancg/backoffice-api/internal/http/handler"
	"github.com/meridiancg/backoffice-api/internal/http/middleware"

	_ "github.com/meridiancg/backoffice-api/docs" // generated swagger docs
)

type Router struct {
	cfg                   *config.Config
	logger                *zap.Logger
	authMiddleware        *auth.Middleware
	rateLimiter           *middleware.RateLimiter
	healthHandler         *handler.HealthHandler
	authHandler           *handler.AuthHandler
	accountHandler        *handler.AccountHandler
	contactHandler        *handler.ContactHandler
	billingTermHandler    *handler.BillingTermHandler
	roleHandler           *handler.RoleHandler
	deliveryCenterHandler *handler.DeliveryCenterHandler
	employeeHandler       *handler.EmployeeHandler
	calendarHandler       *handler.CalendarHandler
	currencyRateHandler   *handler.CurrencyRateHandler
	opportunityHandler    *handler.OpportunityHandler
	estimateHandler       *handler.EstimateHandler
	quoteHandler          *handler.QuoteHandler
	documentHandler       *handler.DocumentHandler
	timesheetHandler      *handler.TimesheetHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	healthHandler *handler.HealthHandler,
	authHandler *handler.AuthHandler,
	accountHandler *handler.AccountHandler,
	contactHandler *handler.ContactHandler,
	billingTermHandler *handler.BillingTermHandler,
	roleHandler *handler.RoleHandler,
	deliveryCenterHandler *handler.DeliveryCenterHandler,
	employeeHandler *handler.EmployeeHandler,
	calendarHandler *handler.CalendarHandler,
	currencyRateHandler *handler.CurrencyRateHandler,
	opportunityHandler *handler.OpportunityHandler,
	estimateHandler *handler.EstimateHandler,
	quoteHandler *handler.QuoteHandler,
	documentHandler *handler.DocumentHandler,
	timesheetHandler *handler.TimesheetHandler,
) *Router {
	return &Router{
		cfg:                   cfg,
		logger:                logger,
		authMiddleware:        authMiddleware,
		rateLimiter:           rateLimiter,
		healthHandler:         healthHandler,
		authHandler:           authHandler,
		accountHandler:        accountHandler,
		contactHandler:        contactHandler,
		billingTermHandler:    billingTermHandler,
		roleHandler:           roleHandler,
		deliveryCenterHandler: deliveryCenterHandler,
		employeeHandler:       employeeHandler,
		calendarHandler:       calendarHandler,
		currencyRateHandler:   currencyRateHandler,
		opportunityHandler:    opportunityHandler,
		estimateHandler:       estimateHandler,
		quoteHandler:          quoteHandler,
		documentHandler:       documentHandler,
		timesheetHandler:      timesheetHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	// Health probes
	r.Get("/health", rt.healthHandler.Health)
	r.Get("/health/ready", rt.healthHandler.Ready)

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/auth/login", rt.authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)
			r.Use(rt.rateLimiter.Limit)

			r.Get("/auth/me", rt.authHandler.Me)

			// Accounts
			r.Route("/accounts", func(r chi.Router) {
				r.Get("/", rt.accountHandler.List)
				r.Post("/", rt.accountHandler.Create)
				r.Get("/{id}", rt.accountHandler.GetByID)
				r.Put("/{id}", rt.accountHandler.Update)
				r.Delete("/{id}", rt.accountHandler.Delete)
			})

			// Contacts
			r.Route("/contacts", func(r chi.Router) {
				r.Get("/", rt.contactHandler.List)
				r.Post("/", rt.contactHandler.Create)
				r.Get("/{id}", rt.contactHandler.GetByID)
				r.Put("/{id}", rt.contactHandler.Update)
				r.Delete("/{id}", rt.contactHandler.Delete)
			})

			// Billing terms
			r.Route("/billing-terms", func(r chi.Router) {
				r.Get("/", rt.billingTermHandler.List)
				r.Post("/", rt.billingTermHandler.Create)
				r.Get("/{id}", rt.billingTermHandler.GetByID)
				r.Put("/{id}", rt.billingTermHandler.Update)
				r.Delete("/{id}", rt.billingTermHandler.Delete)
			})

			// Roles and rates
			r.Route("/roles", func(r chi.Router) {
				r.Get("/", rt.roleHandler.List)
				r.Post("/", rt.roleHandler.Create)
				r.Put("/rates/{rateId}", rt.roleHandler.UpdateRate)
				r.Delete("/rates/{rateId}", rt.roleHandler.DeleteRate)
				r.Get("/{id}", rt.roleHandler.GetByID)
				r.Put("/{id}", rt.roleHandler.Update)
				r.Delete("/{id}", rt.roleHandler.Delete)
				r.Get("/{id}/rates", rt.roleHandler.ListRates)
				r.Post("/{id}/rates", rt.roleHandler.CreateRate)
			})

			// Delivery centers and approvers
			r.Route("/delivery-centers", func(r chi.Router) {
				r.Get("/", rt.deliveryCenterHandler.List)
				r.Post("/", rt.deliveryCenterHandler.Create)
				r.Get("/{id}", rt.deliveryCenterHandler.GetByID)
				r.Put("/{id}", rt.deliveryCenterHandler.Update)
				r.Delete("/{id}", rt.deliveryCenterHandler.Delete)
				r.Get("/{id}/approvers", rt.deliveryCenterHandler.ListApprovers)
				r.Post("/{id}/approvers", rt.deliveryCenterHandler.AddApprover)
				r.Delete("/{id}/approvers/{employeeId}", rt.deliveryCenterHandler.RemoveApprover)
			})

			// Employees (mutations are admin-only)
			r.Route("/employees", func(r chi.Router) {
				r.Get("/", rt.employeeHandler.List)
				r.Get("/{id}", rt.employeeHandler.GetByID)
				r.Group(func(r chi.Router) {
					r.Use(rt.authMiddleware.RequireAdmin)
					r.Post("/", rt.employeeHandler.Create)
					r.Put("/{id}", rt.employeeHandler.Update)
					r.Delete("/{id}", rt.employeeHandler.Delete)
				})
			})

			// Calendars
			r.Route("/calendars", func(r chi.Router) {
				r.Get("/", rt.calendarHandler.List)
				r.Post("/", rt.calendarHandler.Create)
				r.Get("/{id}", rt.calendarHandler.GetByID)
				r.Put("/{id}", rt.calendarHandler.Update)
				r.Delete("/{id}", rt.calendarHandler.Delete)
			})

			// Currency rates
			r.Route("/currency-rates", func(r chi.Router) {
				r.Get("/", rt.currencyRateHandler.List)
				r.Post("/", rt.currencyRateHandler.Create)
				r.Get("/latest", rt.currencyRateHandler.GetLatest)
				r.Get("/{id}", rt.currencyRateHandler.GetByID)
				r.Put("/{id}", rt.currencyRateHandler.Update)
				r.Delete("/{id}", rt.currencyRateHandler.Delete)
			})

			// Opportunities and their sub-resources
			r.Route("/opportunities", func(r chi.Router) {
				r.Get("/", rt.opportunityHandler.List)
				r.Post("/", rt.opportunityHandler.Create)
				r.Get("/{id}", rt.opportunityHandler.GetByID)
				r.Put("/{id}", rt.opportunityHandler.Update)
				r.Delete("/{id}", rt.opportunityHandler.Delete)
				r.Get("/{id}/lock", rt.opportunityHandler.GetLockStatus)

				r.Get("/{id}/releases", rt.opportunityHandler.ListReleases)
				r.Post("/{id}/releases", rt.opportunityHandler.CreateRelease)

				r.Get("/{id}/staff", rt.opportunityHandler.ListStaff)
				r.Post("/{id}/staff", rt.opportunityHandler.AddStaff)
				r.Delete("/{id}/staff/{employeeId}", rt.opportunityHandler.RemoveStaff)

				r.Get("/{id}/approvers", rt.opportunityHandler.ListApprovers)
				r.Post("/{id}/approvers", rt.opportunityHandler.AddApprover)
				r.Delete("/{id}/approvers/{employeeId}", rt.opportunityHandler.RemoveApprover)

				r.Post("/{id}/estimates", rt.estimateHandler.Create)
				r.Post("/{id}/quotes", rt.quoteHandler.Create)
			})

			// Releases addressed directly
			r.Put("/releases/{releaseId}", rt.opportunityHandler.UpdateRelease)
			r.Delete("/releases/{releaseId}", rt.opportunityHandler.DeleteRelease)

			// Estimates
			r.Route("/estimates", func(r chi.Router) {
				r.Get("/", rt.estimateHandler.List)
				r.Put("/phases/{phaseId}", rt.estimateHandler.UpdatePhase)
				r.Delete("/phases/{phaseId}", rt.estimateHandler.DeletePhase)
				r.Post("/phases/{phaseId}/line-items", rt.estimateHandler.CreateLineItem)
				r.Put("/line-items/{itemId}", rt.estimateHandler.UpdateLineItem)
				r.Delete("/line-items/{itemId}", rt.estimateHandler.DeleteLineItem)
				r.Get("/{id}", rt.estimateHandler.GetByID)
				r.Put("/{id}", rt.estimateHandler.Update)
				r.Delete("/{id}", rt.estimateHandler.Delete)
				r.Post("/{id}/phases", rt.estimateHandler.CreatePhase)
			})

			// Quotes
			r.Route("/quotes", func(r chi.Router) {
				r.Get("/", rt.quoteHandler.List)
				r.Put("/phases/{phaseId}", rt.quoteHandler.UpdatePhase)
				r.Delete("/phases/{phaseId}", rt.quoteHandler.DeletePhase)
				r.Post("/phases/{phaseId}/line-items", rt.quoteHandler.CreateLineItem)
				r.Put("/line-items/{itemId}", rt.quoteHandler.UpdateLineItem)
				r.Delete("/line-items/{itemId}", rt.quoteHandler.DeleteLineItem)
				r.Put("/payment-triggers/{triggerId}", rt.quoteHandler.UpdatePaymentTrigger)
				r.Delete("/payment-triggers/{triggerId}", rt.quoteHandler.DeletePaymentTrigger)
				r.Put("/variable-compensation/{compId}", rt.quoteHandler.UpdateVariableCompensation)
				r.Delete("/variable-compensation/{compId}", rt.quoteHandler.DeleteVariableCompensation)
				r.Get("/{id}", rt.quoteHandler.GetByID)
				r.Put("/{id}", rt.quoteHandler.Update)
				r.Delete("/{id}", rt.quoteHandler.Delete)
				r.Post("/{id}/activate", rt.quoteHandler.Activate)
				r.Post("/{id}/deactivate", rt.quoteHandler.Deactivate)
				r.Put("/{id}/approval", rt.quoteHandler.UpdateApproval)
				r.Post("/{id}/phases", rt.quoteHandler.CreatePhase)
				r.Post("/{id}/payment-triggers", rt.quoteHandler.CreatePaymentTrigger)
				r.Post("/{id}/variable-compensation", rt.quoteHandler.CreateVariableCompensation)
				r.Get("/{id}/documents", rt.documentHandler.ListByQuote)
				r.Post("/{id}/documents", rt.documentHandler.Upload)
			})

			// Documents addressed directly
			r.Get("/documents/{id}", rt.documentHandler.Download)
			r.Delete("/documents/{id}", rt.documentHandler.Delete)

			// Timesheets
			r.Route("/timesheets", func(r chi.Router) {
				r.Get("/", rt.timesheetHandler.List)
				r.Post("/", rt.timesheetHandler.Create)
				r.Put("/entries/{entryId}", rt.timesheetHandler.UpdateEntry)
				r.Delete("/entries/{entryId}", rt.timesheetHandler.DeleteEntry)
				r.Get("/{id}", rt.timesheetHandler.GetByID)
				r.Delete("/{id}", rt.timesheetHandler.Delete)
				r.Post("/{id}/submit", rt.timesheetHandler.Submit)
				r.Post("/{id}/approve", rt.timesheetHandler.Approve)
				r.Post("/{id}/reject", rt.timesheetHandler.Reject)
				r.Get("/{id}/snapshot", rt.timesheetHandler.GetSnapshot)
				r.Get("/{id}/entries", rt.timesheetHandler.ListEntries)
				r.Post("/{id}/entries", rt.timesheetHandler.CreateEntry)
			})
		})
	})

	return r
}

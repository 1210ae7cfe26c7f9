package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hanbit-enc/siteops-backend/api/controllers"
	"github.com/hanbit-enc/siteops-backend/api/middleware"
	"github.com/hanbit-enc/siteops-backend/internal/invoices"
	"github.com/hanbit-enc/siteops-backend/internal/ledger"
	"github.com/hanbit-enc/siteops-backend/internal/partners"
	"github.com/hanbit-enc/siteops-backend/internal/payments"
	"github.com/hanbit-enc/siteops-backend/internal/sites"
	"github.com/hanbit-enc/siteops-backend/internal/teams"
	"github.com/hanbit-enc/siteops-backend/internal/workers"
	"github.com/hanbit-enc/siteops-backend/pkg/config"
	"github.com/hanbit-enc/siteops-backend/pkg/db"
	"github.com/hanbit-enc/siteops-backend/pkg/logger"
	"github.com/hanbit-enc/siteops-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	idempotencyStore redis.IdempotencyStore,
	metricsGatherer prometheus.Gatherer,
	ledgerEngine *ledger.Engine,
	partnerService partners.Service,
	invoiceService invoices.Service,
	paymentService payments.Service,
	workerService workers.Service,
	teamService teams.Service,
	siteService sites.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	r.Get("/ping", controllers.Ping())

	if metricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metricsGatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Idempotency(idempotencyStore, logg))

		r.Route("/ledger", func(r chi.Router) {
			r.Get("/history", controllers.LedgerHistory(ledgerEngine, logg))
			r.Get("/totals", controllers.LedgerTotals(ledgerEngine, logg))
		})

		r.Route("/partners", func(r chi.Router) {
			r.Get("/", controllers.PartnerList(partnerService, logg))
			r.Post("/", controllers.PartnerCreate(partnerService, logg))
			r.Get("/{partnerID}", controllers.PartnerDetail(partnerService, logg))
			r.Put("/{partnerID}", controllers.PartnerUpdate(partnerService, logg))
			r.Delete("/{partnerID}", controllers.PartnerDelete(partnerService, logg))
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", controllers.InvoiceList(invoiceService, logg))
			r.Post("/", controllers.InvoiceCreate(invoiceService, logg))
			r.Get("/{invoiceID}", controllers.InvoiceDetail(invoiceService, logg))
			r.Put("/{invoiceID}", controllers.InvoiceUpdate(invoiceService, logg))
			r.Post("/{invoiceID}/cancel", controllers.InvoiceCancel(invoiceService, logg))
		})

		r.Route("/payments", func(r chi.Router) {
			r.Get("/", controllers.PaymentList(paymentService, logg))
			r.Post("/", controllers.PaymentCreate(paymentService, logg))
			r.Get("/{paymentID}", controllers.PaymentDetail(paymentService, logg))
			r.Put("/{paymentID}", controllers.PaymentUpdate(paymentService, logg))
			r.Delete("/{paymentID}", controllers.PaymentDelete(paymentService, logg))
		})

		r.Route("/workers", func(r chi.Router) {
			r.Get("/", controllers.WorkerList(workerService, logg))
			r.Post("/", controllers.WorkerCreate(workerService, logg))
			r.Get("/duplicates", controllers.WorkerCheckDuplicates(workerService, logg))
			r.Get("/{workerID}", controllers.WorkerDetail(workerService, logg))
			r.Put("/{workerID}", controllers.WorkerUpdate(workerService, logg))
			r.Delete("/{workerID}", controllers.WorkerDelete(workerService, logg))
		})

		r.Route("/teams", func(r chi.Router) {
			r.Get("/", controllers.TeamList(teamService, logg))
			r.Post("/", controllers.TeamCreate(teamService, logg))
			r.Get("/{teamID}", controllers.TeamDetail(teamService, logg))
			r.Put("/{teamID}", controllers.TeamUpdate(teamService, logg))
			r.Delete("/{teamID}", controllers.TeamDelete(teamService, logg))
		})

		r.Route("/sites", func(r chi.Router) {
			r.Get("/", controllers.SiteList(siteService, logg))
			r.Post("/", controllers.SiteCreate(siteService, logg))
			r.Get("/{siteID}", controllers.SiteDetail(siteService, logg))
			r.Put("/{siteID}", controllers.SiteUpdate(siteService, logg))
			r.Post("/{siteID}/complete", controllers.SiteComplete(siteService, logg))
			r.Delete("/{siteID}", controllers.SiteDelete(siteService, logg))
		})
	})

	return r
}

package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	apicontract "github.com/tuanvumaihuynh/shop-admin/api-contract"
	"github.com/tuanvumaihuynh/shop-admin/internal/config"
	"github.com/tuanvumaihuynh/shop-admin/internal/http/apierr"
	"github.com/tuanvumaihuynh/shop-admin/internal/http/metric"
	"github.com/tuanvumaihuynh/shop-admin/internal/http/middleware"
	"github.com/tuanvumaihuynh/shop-admin/internal/http/swagger"
	"github.com/tuanvumaihuynh/shop-admin/internal/service"
)

var tracer = otel.Tracer("internal/http")

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services are the application services exposed over HTTP.
type Services struct {
	Product      service.ProductService
	Order        service.OrderService
	Customer     service.CustomerService
	BusinessInfo service.BusinessInfoService
	Dashboard    service.DashboardService
}

// Service represents the HTTP service.
type Service struct {
	cfg      config.HTTP
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *metric.Metrics
	pinger   Pinger

	services Services
}

type CleanupFunc func(ctx context.Context) error

func New(
	cfg config.HTTP,
	log *slog.Logger,
	pinger Pinger,
	services Services,
) *Service {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Service{
		cfg:      cfg,
		logger:   log.With(slog.String("service", "http")),
		registry: registry,
		metrics:  metric.New(registry),
		pinger:   pinger,
		services: services,
	}
}

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	handler, err := s.Handler()
	if err != nil {
		return nil, err
	}

	return s.RunWithServer(ctx, handler)
}

// Handler builds the router with every middleware and route registered.
func (s *Service) Handler() (http.Handler, error) {
	r := chi.NewRouter()
	s.RegisterMiddlewares(r)

	if s.cfg.Swagger {
		swagger.Register(r, apicontract.Title, apicontract.GetSpecBytes())
	}

	if err := s.RegisterHandlers(r); err != nil {
		return nil, err
	}

	return r, nil
}

func (s *Service) RunWithServer(ctx context.Context, handler http.Handler) (CleanupFunc, error) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64 KB
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", srv.Addr, err)
	}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.ErrorContext(ctx, "http server stopped unexpectedly", slog.Any("error", err))
		}
	}()

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}, nil
}

func (s *Service) RegisterMiddlewares(r chi.Router) {
	r.Use(
		middleware.Recoverer(s.logger),
		middleware.Trace(tracer),
		middleware.Metrics(s.metrics),
		middleware.CorrelationID(),
		middleware.Cors(s.cfg.CorsAllowedOrigins),
		middleware.Logging(s.logger),
	)
}

func (s *Service) RegisterHandlers(r chi.Router) error {
	validate, err := middleware.OpenAPIValidator(apicontract.GetSpecBytes(), s.handleRequestError)
	if err != nil {
		return fmt.Errorf("create openapi validator: %w", err)
	}

	products := newProductHandler(s.services.Product, s.services.Dashboard)
	orders := newOrderHandler(s.services.Order)
	customers := newCustomerHandler(s.services.Customer, s.services.Order)
	businessInfo := newBusinessInfoHandler(s.services.BusinessInfo)
	dashboard := newDashboardHandler(s.services.Dashboard)

	r.Route("/v1", func(r chi.Router) {
		r.Use(validate)

		r.Get("/products", s.handle(products.ListProducts))
		r.Post("/products", s.handle(products.CreateProduct))
		r.Get("/products/{id}", s.handle(products.GetProduct))
		r.Patch("/products/{id}", s.handle(products.UpdateProduct))
		r.Delete("/products/{id}", s.handle(products.DeleteProduct))
		r.Get("/variants", s.handle(products.ListVariants))

		r.Get("/orders", s.handle(orders.ListOrders))
		r.Post("/orders", s.handle(orders.CreateOrder))
		r.Get("/orders/{id}", s.handle(orders.GetOrder))
		r.Patch("/orders/{id}", s.handle(orders.UpdateOrder))

		r.Get("/customers", s.handle(customers.ListCustomers))
		r.Post("/customers", s.handle(customers.CreateCustomer))
		r.Get("/customers/summary", s.handle(customers.GetCustomerSummary))
		r.Get("/customers/{id}", s.handle(customers.GetCustomer))
		r.Patch("/customers/{id}", s.handle(customers.UpdateCustomer))
		r.Delete("/customers/{id}", s.handle(customers.DeleteCustomer))
		r.Get("/customers/{id}/orders", s.handle(customers.ListCustomerOrders))

		r.Get("/business-info", s.handle(businessInfo.ListBusinessInfo))
		r.Post("/business-info", s.handle(businessInfo.CreateBusinessInfo))
		r.Get("/business-info/{id}", s.handle(businessInfo.GetBusinessInfo))
		r.Patch("/business-info/{id}", s.handle(businessInfo.UpdateBusinessInfo))

		r.Get("/dashboard", s.handle(dashboard.GetDashboard))
		r.Get("/inventory/overview", s.handle(dashboard.GetInventoryOverview))
	})

	r.Get(middleware.HealthPath, s.handle(s.healthz))

	r.Handle(middleware.MetricsPath, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	}))

	return nil
}

type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// handle adapts h to net/http, writing any returned error as an API error.
func (s *Service) handle(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			s.handleResponseError(w, r, err)
		}
	}
}

func (s *Service) healthz(w http.ResponseWriter, r *http.Request) error {
	if err := s.pinger.Ping(r.Context()); err != nil {
		s.logger.ErrorContext(r.Context(), "store is unreachable", slog.Any("error", err))
		return writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}

	return writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Service) handleRequestError(w http.ResponseWriter, r *http.Request, err error) {
	res := apierr.New(err)
	if res.StatusCode >= http.StatusInternalServerError {
		res = apierr.New(&apierr.InvalidParamError{ParamName: "request", Err: err})
	}

	s.logger.WarnContext(r.Context(), "http request error", slog.Any("error", err))
	s.writeError(w, r, res)
}

func (s *Service) handleResponseError(w http.ResponseWriter, r *http.Request, err error) {
	res := apierr.New(err)

	logLevel := slog.LevelInfo
	if res.StatusCode >= 500 {
		logLevel = slog.LevelError
	} else if res.StatusCode >= 400 {
		logLevel = slog.LevelWarn
	}
	s.logger.Log(r.Context(), logLevel, "http response error", slog.Any("error", err))

	s.writeError(w, r, res)
}

func (s *Service) writeError(w http.ResponseWriter, r *http.Request, res apierr.ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.StatusCode)

	if err := json.NewEncoder(w).Encode(res); err != nil {
		s.logger.ErrorContext(r.Context(), "error encoding error response",
			slog.Any("error", err))
	}
}

package handler

import (
	"context"

	"github.com/Govind-Kandale-1/3Tier-website/internal/config"
	"github.com/Govind-Kandale-1/3Tier-website/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// EmployeeService 是 handler 依赖的业务接口，由 service.EmployeeService 实现
type EmployeeService interface {
	List(ctx context.Context) ([]*domain.Employee, error)
	Get(ctx context.Context, id string) (*domain.Employee, error)
	Create(ctx context.Context, in domain.EmployeeInput) (*domain.Employee, error)
	Update(ctx context.Context, id string, in domain.EmployeeInput) (*domain.Employee, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

type Handler struct {
	config   *config.Config
	service  EmployeeService
	registry *prometheus.Registry
	metrics  *metrics

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, svc EmployeeService, registry *prometheus.Registry) (*Handler, error) {
	m, err := newMetrics(registry)
	if err != nil {
		return nil, err
	}

	return &Handler{
		config:   cfg,
		service:  svc,
		registry: registry,
		metrics:  m,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(middleware.RequestID)
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)
	h.Mux.Use(h.cors)
	h.Mux.Use(h.instrument)
	h.Mux.Use(middleware.RequestSize(h.config.Server.MaxBodyBytes))

	h.Mux.Get("/health", h.Health)
	h.Mux.Method("GET", "/metrics", promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{}))

	// 客户端使用复数路径，单数路径保留给旧的调用方
	h.Mux.Route("/api/employees", h.employeeRoutes)
	h.Mux.Route("/api/employee", h.employeeRoutes)
}

func (h *Handler) employeeRoutes(r chi.Router) {
	r.Get("/", h.GetAllEmployees)
	r.Post("/", h.CreateEmployee)
	r.Route("/{id}", func(r chi.Router) {
		r.With(h.employee).Get("/", h.GetEmployee)
		r.Put("/", h.UpdateEmployee)
		r.Delete("/", h.DeleteEmployee)
	})
}

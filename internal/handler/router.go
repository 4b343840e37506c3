package handler

import (
	"log/slog"
	"net/http"

	"github.com/business-admin/internal/middleware"
)

// Router настраивает маршруты API
type Router struct {
	mux        *http.ServeMux
	logger     *slog.Logger
	sessions   *middleware.Sessions
	auth       *AuthHandler
	employees  *EmployeeHandler
	depts      *DepartmentHandler
	projects   *ProjectHandler
	indicators *IndicatorHandler
}

// NewRouter создаёт новый роутер
func NewRouter(
	sessions *middleware.Sessions,
	auth *AuthHandler,
	employees *EmployeeHandler,
	depts *DepartmentHandler,
	projects *ProjectHandler,
	indicators *IndicatorHandler,
	logger *slog.Logger,
) *Router {
	return &Router{
		mux:        http.NewServeMux(),
		logger:     logger,
		sessions:   sessions,
		auth:       auth,
		employees:  employees,
		depts:      depts,
		projects:   projects,
		indicators: indicators,
	}
}

// Setup настраивает все маршруты
func (r *Router) Setup() http.Handler {
	// Health check
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Доступно без сессии
	r.mux.HandleFunc("POST /auth/login", r.auth.Login)
	r.mux.HandleFunc("GET /employees/by-rut/{rut}", r.employees.GetByRut)
	r.mux.HandleFunc("POST /hours", r.employees.RecordHours)

	// Учётные записи
	r.admin("GET /auth/me", r.auth.Me)
	r.admin("PUT /auth/password", r.auth.ChangePassword)
	r.admin("GET /administrators", r.auth.ListAdministrators)
	r.admin("POST /administrators", r.auth.CreateAdministrator)
	r.admin("GET /administrators/next-id", r.auth.NextAdminID)

	// Сотрудники
	r.admin("GET /employees", r.employees.List)
	r.admin("POST /employees", r.employees.Create)
	r.admin("GET /employees/{id}", r.employees.GetByID)
	r.admin("PUT /employees/{id}", r.employees.Update)
	r.admin("DELETE /employees/{id}/department", r.employees.RemoveFromDepartment)

	// Подразделения
	r.admin("GET /departments", r.depts.List)
	r.admin("POST /departments", r.depts.Create)
	r.admin("GET /departments/{id}", r.depts.GetByID)
	r.admin("PUT /departments/{id}", r.depts.Update)
	r.admin("DELETE /departments/{id}", r.depts.Delete)
	r.admin("POST /departments/{id}/employees", r.employees.AssignDepartment)
	r.admin("GET /departments/{id}/employees/{eid}", r.employees.IsInDepartment)

	// Проекты
	r.admin("GET /projects", r.projects.List)
	r.admin("POST /projects", r.projects.Create)
	r.admin("GET /projects/{id}", r.projects.GetByID)
	r.admin("PUT /projects/{id}", r.projects.Update)
	r.admin("DELETE /projects/{id}", r.projects.Delete)
	r.admin("POST /projects/{id}/employees", r.projects.AssignEmployee)
	r.admin("DELETE /projects/{id}/employees/{eid}", r.projects.RemoveEmployee)
	r.admin("GET /projects/{id}/hours", r.employees.ListProjectHours)

	// Индикаторы
	r.admin("GET /indicators", r.indicators.Live)
	r.admin("POST /indicators/archive", r.indicators.Archive)
	r.admin("GET /indicators/records", r.indicators.History)
	r.admin("POST /indicators/records", r.indicators.Save)
	r.admin("DELETE /indicators/records", r.indicators.Clear)
	r.admin("GET /indicators/records/next-id", r.indicators.NextRecordID)
	r.admin("GET /indicators/{name}/latest", r.indicators.Latest)

	// Применяем middleware
	handler := middleware.ContentType(r.mux)
	handler = middleware.Logger(r.logger)(handler)
	handler = middleware.Recoverer(r.logger)(handler)
	handler = middleware.RequestID(handler)

	return handler
}

// admin регистрирует маршрут, требующий сессии администратора
func (r *Router) admin(pattern string, h http.HandlerFunc) {
	r.mux.Handle(pattern, r.sessions.RequireAdmin(h))
}

package handlers

import (
	"net/http"

	"github.com/hongminglow/staffly-be/internal/http/respond"
	"github.com/hongminglow/staffly-be/internal/middleware"
	"github.com/hongminglow/staffly-be/internal/models"
	"github.com/hongminglow/staffly-be/internal/models/dto"
	"github.com/hongminglow/staffly-be/internal/service"
)

// PayrollsHandler serves payroll records.
type PayrollsHandler struct {
	payrolls *service.Payrolls
}

func NewPayrollsHandler(payrolls *service.Payrolls) *PayrollsHandler {
	return &PayrollsHandler{payrolls: payrolls}
}

func (h *PayrollsHandler) Register(mux *http.ServeMux, g *middleware.Guard) {
	staff := g.RequireRole(models.RoleHR, models.RoleAdmin)
	admin := g.RequireRole(models.RoleAdmin)

	mux.Handle("GET /payrolls/check", middleware.Chain(http.HandlerFunc(h.exists), g.Authenticate, staff))
	mux.Handle("POST /payrolls", middleware.Chain(http.HandlerFunc(h.create), g.Authenticate, staff))
	mux.Handle("GET /payrolls", middleware.Chain(http.HandlerFunc(h.listAll), g.Authenticate, admin))
	mux.Handle("PATCH /payrolls/{id}", middleware.Chain(http.HandlerFunc(h.updatePayment), g.Authenticate, admin))
	mux.Handle("GET /payrolls/{email}", middleware.Chain(http.HandlerFunc(h.listOwn), g.Authenticate, g.RequireSelfPath("email")))
}

func (h *PayrollsHandler) exists(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	exists, err := h.payrolls.Exists(r.Context(), q.Get("employee_email"), q.Get("month"), q.Get("year"))
	if err != nil {
		respond.FromError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.ExistsResponse{Exists: exists})
}

func (h *PayrollsHandler) create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePayrollRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.FromError(w, r, err)
		return
	}
	res, err := h.payrolls.Create(r.Context(), req)
	if err != nil {
		respond.FromError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, res)
}

func (h *PayrollsHandler) listAll(w http.ResponseWriter, r *http.Request) {
	payrolls, err := h.payrolls.ListAll(r.Context())
	if err != nil {
		respond.FromError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, payrolls)
}

func (h *PayrollsHandler) listOwn(w http.ResponseWriter, r *http.Request) {
	payrolls, err := h.payrolls.ListForEmployee(r.Context(), r.PathValue("email"), r.URL.Query().Get("status"))
	if err != nil {
		respond.FromError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, payrolls)
}

func (h *PayrollsHandler) updatePayment(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdatePaymentRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.FromError(w, r, err)
		return
	}
	res, err := h.payrolls.UpdatePayment(r.Context(), r.PathValue("id"), req)
	if err != nil {
		respond.FromError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, res)
}

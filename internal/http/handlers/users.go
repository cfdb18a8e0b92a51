package handlers

import (
	"net/http"

	"github.com/hongminglow/staffly-be/internal/http/respond"
	"github.com/hongminglow/staffly-be/internal/middleware"
	"github.com/hongminglow/staffly-be/internal/models"
	"github.com/hongminglow/staffly-be/internal/models/dto"
	"github.com/hongminglow/staffly-be/internal/service"
)

// UsersHandler serves account registration, lookups, and admin actions.
type UsersHandler struct {
	users *service.Users
}

func NewUsersHandler(users *service.Users) *UsersHandler {
	return &UsersHandler{users: users}
}

// Register attaches user routes to the mux behind the guard.
func (h *UsersHandler) Register(mux *http.ServeMux, g *middleware.Guard) {
	staff := g.RequireRole(models.RoleHR, models.RoleAdmin)
	admin := g.RequireRole(models.RoleAdmin)

	mux.HandleFunc("POST /users", h.register)
	mux.Handle("GET /users/{email}", middleware.Chain(http.HandlerFunc(h.getByEmail), g.Authenticate))
	mux.Handle("GET /users", middleware.Chain(http.HandlerFunc(h.listAll), g.Authenticate, admin))
	mux.Handle("GET /users/role/{email}", middleware.Chain(http.HandlerFunc(h.roleFlags), g.Authenticate, g.RequireSelfPath("email")))
	mux.Handle("PATCH /users/{id}", middleware.Chain(http.HandlerFunc(h.setVerified), g.Authenticate, staff))
	mux.Handle("PATCH /update-role/{id}", middleware.Chain(http.HandlerFunc(h.updateRole), g.Authenticate, admin))
	mux.Handle("PATCH /fire-user/{id}", middleware.Chain(http.HandlerFunc(h.fire), g.Authenticate, admin))
	mux.Handle("GET /employees", middleware.Chain(http.HandlerFunc(h.listEmployees), g.Authenticate, staff))
	mux.Handle("GET /employees/{id}", middleware.Chain(http.HandlerFunc(h.getByID), g.Authenticate, staff))
	mux.Handle("GET /all-users", middleware.Chain(http.HandlerFunc(h.listStaff), g.Authenticate, admin))
}

func (h *UsersHandler) register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.FromError(w, r, err)
		return
	}
	res, err := h.users.Register(r.Context(), req)
	if err != nil {
		respond.FromError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, res)
}

func (h *UsersHandler) getByEmail(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByEmail(r.Context(), r.PathValue("email"))
	if err != nil {
		respond.FromError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, user)
}

func (h *UsersHandler) getByID(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		respond.FromError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, user)
}

func (h *UsersHandler) listAll(w http.ResponseWriter, r *http.Request) {
	h.list(w, r)
}

func (h *UsersHandler) listEmployees(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, models.RoleEmployee)
}

func (h *UsersHandler) listStaff(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, models.RoleEmployee, models.RoleHR)
}

func (h *UsersHandler) list(w http.ResponseWriter, r *http.Request, roles ...models.Role) {
	users, err := h.users.List(r.Context(), roles...)
	if err != nil {
		respond.FromError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, users)
}

func (h *UsersHandler) roleFlags(w http.ResponseWriter, r *http.Request) {
	flags, err := h.users.RoleFlags(r.Context(), r.PathValue("email"))
	if err != nil {
		respond.FromError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.RoleResponse{Role: flags})
}

func (h *UsersHandler) setVerified(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.FromError(w, r, err)
		return
	}
	res, err := h.users.SetVerified(r.Context(), r.PathValue("id"), req.IsVerified)
	if err != nil {
		respond.FromError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, res)
}

func (h *UsersHandler) updateRole(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateRoleRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.FromError(w, r, err)
		return
	}
	res, err := h.users.UpdateRole(r.Context(), r.PathValue("id"), req.Role)
	if err != nil {
		respond.FromError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, res)
}

func (h *UsersHandler) fire(w http.ResponseWriter, r *http.Request) {
	res, err := h.users.Deactivate(r.Context(), r.PathValue("id"))
	if err != nil {
		respond.FromError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, res)
}

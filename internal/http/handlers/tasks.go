package handlers

import (
	"net/http"

	"github.com/hongminglow/staffly-be/internal/http/respond"
	"github.com/hongminglow/staffly-be/internal/middleware"
	"github.com/hongminglow/staffly-be/internal/models"
	"github.com/hongminglow/staffly-be/internal/models/dto"
	"github.com/hongminglow/staffly-be/internal/service"
)

// TasksHandler serves work logs. Edit and delete ownership is decided by the
// task service policy.
type TasksHandler struct {
	tasks *service.Tasks
}

func NewTasksHandler(tasks *service.Tasks) *TasksHandler {
	return &TasksHandler{tasks: tasks}
}

func (h *TasksHandler) Register(mux *http.ServeMux, g *middleware.Guard) {
	mux.Handle("POST /tasks", middleware.Chain(http.HandlerFunc(h.create), g.Authenticate))
	mux.Handle("GET /tasks", middleware.Chain(http.HandlerFunc(h.listAll), g.Authenticate, g.RequireRole(models.RoleHR, models.RoleAdmin)))
	mux.Handle("GET /tasks/{email}", middleware.Chain(http.HandlerFunc(h.listOwn), g.Authenticate, g.RequireSelfPath("email")))
	mux.Handle("PATCH /tasks/{id}", middleware.Chain(http.HandlerFunc(h.update), g.Authenticate))
	mux.Handle("DELETE /tasks/{id}", middleware.Chain(http.HandlerFunc(h.delete), g.Authenticate))
}

func (h *TasksHandler) create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTaskRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.FromError(w, r, err)
		return
	}
	res, err := h.tasks.Create(r.Context(), req)
	if err != nil {
		respond.FromError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, res)
}

func (h *TasksHandler) listAll(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.ListAll(r.Context())
	if err != nil {
		respond.FromError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, tasks)
}

func (h *TasksHandler) listOwn(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.ListForUser(r.Context(), r.PathValue("email"))
	if err != nil {
		respond.FromError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, tasks)
}

func (h *TasksHandler) update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateTaskRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.FromError(w, r, err)
		return
	}
	res, err := h.tasks.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		respond.FromError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, res)
}

func (h *TasksHandler) delete(w http.ResponseWriter, r *http.Request) {
	res, err := h.tasks.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		respond.FromError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, res)
}

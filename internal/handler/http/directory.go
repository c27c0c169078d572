package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/personnel-hq/personnel-backend-go/internal/domain/employee"
	"github.com/personnel-hq/personnel-backend-go/internal/handler/http/response"
)

// DirectoryHandler defines the org directory handler interface
type DirectoryHandler interface {
	Search(w http.ResponseWriter, r *http.Request)
	GetApprovers(w http.ResponseWriter, r *http.Request)
}

type directoryHandlerImpl struct {
	directory employee.DirectoryService
}

func NewDirectoryHandler(directory employee.DirectoryService) DirectoryHandler {
	return &directoryHandlerImpl{directory: directory}
}

func (h *directoryHandlerImpl) Search(w http.ResponseWriter, r *http.Request) {
	employees, err := h.directory.Search(r.Context(), employee.SearchRequest{
		Query: r.URL.Query().Get("q"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employees)
}

func (h *directoryHandlerImpl) GetApprovers(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	approvers, err := h.directory.ResolveApprovers(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp := employee.ApproversResponse{}
	if approvers.Leader != nil {
		leader := employee.ToResponse(*approvers.Leader, nil)
		resp.Leader = &leader
	}
	if approvers.Manager != nil {
		manager := employee.ToResponse(*approvers.Manager, nil)
		resp.Manager = &manager
	}

	response.Success(w, resp)
}

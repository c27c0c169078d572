package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/personnel-hq/personnel-backend-go/internal/domain/leave"
	"github.com/personnel-hq/personnel-backend-go/internal/handler/http/response"
)

// LeaveHandler defines the leave workflow handler interface
type LeaveHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	LeaderDecision(w http.ResponseWriter, r *http.Request)
	ManagerDecision(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	ListForReview(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	workflow leave.WorkflowService
}

func NewLeaveHandler(workflow leave.WorkflowService) LeaveHandler {
	return &leaveHandlerImpl{workflow: workflow}
}

func (h *leaveHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	employeeID := getEmployeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req leave.CreateLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ApplicantID = employeeID

	request, err := h.workflow.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", request)
}

func (h *leaveHandlerImpl) decide(
	w http.ResponseWriter, r *http.Request,
	decide func(r *http.Request, req leave.DecisionRequest) (leave.LeaveRequestResponse, error),
) {
	employeeID := getEmployeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	var req leave.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.RequestID = requestID
	req.ReviewerID = employeeID

	request, err := decide(r, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Decision recorded", request)
}

func (h *leaveHandlerImpl) LeaderDecision(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, func(r *http.Request, req leave.DecisionRequest) (leave.LeaveRequestResponse, error) {
		return h.workflow.LeaderDecision(r.Context(), req)
	})
}

func (h *leaveHandlerImpl) ManagerDecision(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, func(r *http.Request, req leave.DecisionRequest) (leave.LeaveRequestResponse, error) {
		return h.workflow.ManagerDecision(r.Context(), req)
	})
}

func (h *leaveHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	employeeID := getEmployeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	request, err := h.workflow.Cancel(r.Context(), requestID, employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request cancelled", request)
}

func (h *leaveHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	employeeID := getEmployeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	requests, err := h.workflow.ListMine(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

func (h *leaveHandlerImpl) ListForReview(w http.ResponseWriter, r *http.Request) {
	employeeID := getEmployeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	queues, err := h.workflow.ListForReview(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, queues)
}

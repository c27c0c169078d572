package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/personnel-hq/personnel-backend-go/internal/domain/presence"
	"github.com/personnel-hq/personnel-backend-go/internal/handler/http/response"
)

// PresenceHandler defines the presence tracking handler interface
type PresenceHandler interface {
	Start(w http.ResponseWriter, r *http.Request)
	Stop(w http.ResponseWriter, r *http.Request)
	ListSessions(w http.ResponseWriter, r *http.Request)
	SubmitTimeEntry(w http.ResponseWriter, r *http.Request)
	ListTimeEntries(w http.ResponseWriter, r *http.Request)
}

type presenceHandlerImpl struct {
	tracker presence.TrackerService
}

func NewPresenceHandler(tracker presence.TrackerService) PresenceHandler {
	return &presenceHandlerImpl{tracker: tracker}
}

// getEmployeeIDFromContext extracts employee_id from JWT context
func getEmployeeIDFromContext(r *http.Request) string {
	_, claims, _ := jwtauth.FromContext(r.Context())
	if employeeID, ok := claims["employee_id"].(string); ok {
		return employeeID
	}
	return ""
}

func (h *presenceHandlerImpl) Start(w http.ResponseWriter, r *http.Request) {
	employeeID := getEmployeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req presence.StartSessionRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request body", nil)
			return
		}
	}
	req.EmployeeID = employeeID

	session, err := h.tracker.StartSession(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Session started", session)
}

func (h *presenceHandlerImpl) Stop(w http.ResponseWriter, r *http.Request) {
	employeeID := getEmployeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	session, err := h.tracker.StopSession(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Session stopped", session)
}

func (h *presenceHandlerImpl) ListSessions(w http.ResponseWriter, r *http.Request) {
	employeeID := getEmployeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	sessions, err := h.tracker.ListSessions(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, sessions)
}

func (h *presenceHandlerImpl) SubmitTimeEntry(w http.ResponseWriter, r *http.Request) {
	employeeID := getEmployeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req presence.SubmitTimeEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EmployeeID = employeeID

	entry, err := h.tracker.SubmitTimeEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Time entry submitted", entry)
}

func (h *presenceHandlerImpl) ListTimeEntries(w http.ResponseWriter, r *http.Request) {
	employeeID := getEmployeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	entries, err := h.tracker.ListTimeEntries(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}

package http

import (
	"net/http"
	"team-allocation-service/internal/allocation"
	"team-allocation-service/internal/domain"
)

type transferListResponse struct {
	TeamID    string   `json:"team_id"`
	Available []string `json:"available"`
	Assigned  []string `json:"assigned"`
}

type saveMembersRequest struct {
	TeamID   string   `json:"team_id"`
	Assigned []string `json:"assigned"`
}

type failureDTO struct {
	MemberID string `json:"member_id"`
	Op       string `json:"op"`
	Outcome  string `json:"outcome"`
	Message  string `json:"message"`
}

type saveMembersResponse struct {
	TeamID   string       `json:"team_id"`
	Added    []string     `json:"added"`
	Removed  []string     `json:"removed"`
	Failures []failureDTO `json:"failures"`
}

func memberIDStrings(ids []domain.MemberID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

func newSaveMembersResponse(result allocation.Result) saveMembersResponse {
	failures := make([]failureDTO, len(result.Failures))
	for i, f := range result.Failures {
		failures[i] = failureDTO{
			MemberID: string(f.MemberID),
			Op:       string(f.Op),
			Outcome:  allocation.Outcome(f.Err),
			Message:  f.Err.Error(),
		}
	}

	return saveMembersResponse{
		TeamID:   string(result.TeamID),
		Added:    memberIDStrings(result.Added),
		Removed:  memberIDStrings(result.Removed),
		Failures: failures,
	}
}

func (h *Handler) handleTransferList(w http.ResponseWriter, r *http.Request) {
	teamID := r.URL.Query().Get("team_id")
	if teamID == "" {
		h.respondBadRequest(w, r, "missing required 'team_id' query parameter")
		return
	}

	set, err := h.allocationService.TransferList(r.Context(), domain.TeamID(teamID))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusOK, transferListResponse{
		TeamID:    string(set.TeamID),
		Available: memberIDStrings(set.Available),
		Assigned:  memberIDStrings(set.Assigned),
	})
}

// handleSaveTeamMembers answers 200 when every request succeeded and 207 when
// some failed; the body lists the failed members either way.
func (h *Handler) handleSaveTeamMembers(w http.ResponseWriter, r *http.Request) {
	var req saveMembersRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondBadRequest(w, r, "invalid json body")
		return
	}
	if req.TeamID == "" {
		h.respondBadRequest(w, r, "'team_id' is required")
		return
	}

	assigned := make([]domain.MemberID, len(req.Assigned))
	for i, id := range req.Assigned {
		assigned[i] = domain.MemberID(id)
	}

	result, err := h.allocationService.SaveTeamMembers(r.Context(), domain.TeamID(req.TeamID), assigned)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	status := http.StatusOK
	if len(result.Failures) > 0 {
		status = http.StatusMultiStatus
	}

	h.respondJSON(w, r, status, newSaveMembersResponse(result))
}

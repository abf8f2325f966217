package http

import (
	"net/http"
	"team-allocation-service/internal/domain"
)

type memberDTO struct {
	MemberID    string  `json:"member_id"`
	StudentName string  `json:"student_name"`
	Role        string  `json:"role"`
	TeamID      *string `json:"team_id"`
}

type addMemberRequest struct {
	MemberID    string `json:"member_id"`
	StudentName string `json:"student_name"`
	Role        string `json:"role"`
}

type memberResponse struct {
	Member memberDTO `json:"member"`
}

type memberListResponse struct {
	Members []memberDTO `json:"members"`
}

type assignRequest struct {
	MemberID string `json:"member_id"`
	TeamID   string `json:"team_id"`
}

type unassignRequest struct {
	MemberID string `json:"member_id"`
	TeamID   string `json:"team_id,omitempty"`
}

func newMemberDTO(member domain.Member) memberDTO {
	dto := memberDTO{
		MemberID:    string(member.ID),
		StudentName: member.StudentName,
		Role:        string(member.Role),
	}
	if member.TeamID != nil {
		teamID := string(*member.TeamID)
		dto.TeamID = &teamID
	}
	return dto
}

func newMemberDTOs(members []domain.Member) []memberDTO {
	dtos := make([]memberDTO, len(members))
	for i, m := range members {
		dtos[i] = newMemberDTO(m)
	}
	return dtos
}

func (h *Handler) handleAddMember(w http.ResponseWriter, r *http.Request) {
	var req addMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondBadRequest(w, r, "invalid json body")
		return
	}

	member, err := h.memberService.CreateMember(r.Context(), domain.Member{
		ID:          domain.MemberID(req.MemberID),
		StudentName: req.StudentName,
		Role:        domain.Role(req.Role),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusCreated, memberResponse{Member: newMemberDTO(member)})
}

func (h *Handler) handleListMembers(w http.ResponseWriter, r *http.Request) {
	var teamID *domain.TeamID
	if value := r.URL.Query().Get("team_id"); value != "" {
		id := domain.TeamID(value)
		teamID = &id
	}

	members, err := h.memberService.Members(r.Context(), teamID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusOK, memberListResponse{Members: newMemberDTOs(members)})
}

func (h *Handler) handleAssignMember(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondBadRequest(w, r, "invalid json body")
		return
	}
	if req.MemberID == "" || req.TeamID == "" {
		h.respondBadRequest(w, r, "'member_id' and 'team_id' are required")
		return
	}

	member, err := h.memberService.Assign(r.Context(), domain.MemberID(req.MemberID), domain.TeamID(req.TeamID))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusOK, memberResponse{Member: newMemberDTO(member)})
}

func (h *Handler) handleUnassignMember(w http.ResponseWriter, r *http.Request) {
	var req unassignRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondBadRequest(w, r, "invalid json body")
		return
	}
	if req.MemberID == "" {
		h.respondBadRequest(w, r, "'member_id' is required")
		return
	}

	member, err := h.memberService.Unassign(r.Context(), domain.MemberID(req.MemberID), domain.TeamID(req.TeamID))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusOK, memberResponse{Member: newMemberDTO(member)})
}

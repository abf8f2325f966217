package http

import (
	"net/http"
	"team-allocation-service/internal/domain"
)

type teamRequest struct {
	TeamID   string `json:"team_id"`
	TeamName string `json:"team_name"`
}

type teamResponse struct {
	TeamID   string      `json:"team_id"`
	TeamName string      `json:"team_name"`
	Members  []memberDTO `json:"members"`
}

type teamAddResponse struct {
	Team teamResponse `json:"team"`
}

type teamListResponse struct {
	Teams []teamResponse `json:"teams"`
}

func (req *teamRequest) toDomainTeam() domain.Team {
	return domain.Team{
		ID:   domain.TeamID(req.TeamID),
		Name: req.TeamName,
	}
}

func newTeamResponse(team domain.Team) teamResponse {
	return teamResponse{
		TeamID:   string(team.ID),
		TeamName: team.Name,
		Members:  newMemberDTOs(team.Members),
	}
}

func (h *Handler) handleAddTeam(w http.ResponseWriter, r *http.Request) {
	var req teamRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondBadRequest(w, r, "invalid json body")
		return
	}

	team, err := h.teamService.CreateTeam(r.Context(), req.toDomainTeam())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	resp := teamAddResponse{
		Team: newTeamResponse(team),
	}

	h.respondJSON(w, r, http.StatusCreated, resp)
}

func (h *Handler) handleGetTeam(w http.ResponseWriter, r *http.Request) {
	teamID := r.URL.Query().Get("team_id")
	if teamID == "" {
		h.respondBadRequest(w, r, "missing required 'team_id' query parameter")
		return
	}

	team, err := h.teamService.Team(r.Context(), domain.TeamID(teamID))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusOK, newTeamResponse(team))
}

func (h *Handler) handleListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamService.Teams(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	resp := teamListResponse{Teams: make([]teamResponse, len(teams))}
	for i, team := range teams {
		resp.Teams[i] = newTeamResponse(team)
	}

	h.respondJSON(w, r, http.StatusOK, resp)
}

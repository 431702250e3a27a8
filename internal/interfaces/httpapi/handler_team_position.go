package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/club-roster/internal/domain/filter"
	"github.com/riskibarqy/club-roster/internal/domain/position"
	"github.com/riskibarqy/club-roster/internal/domain/team"
)

type addTeamRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type addPositionRequest struct {
	Name string `json:"name" validate:"required,max=20"`
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	var pred filter.Predicate[team.Team]
	if keywords := strings.Fields(r.URL.Query().Get("name")); len(keywords) > 0 {
		pred = filter.TeamNameContainsKeywords(keywords)
	}
	writeSuccess(ctx, w, http.StatusOK, teamsToDTO(h.rosterService.FilterTeams(ctx, pred)))
}

func (h *Handler) AddTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddTeam")
	defer span.End()

	var req addTeamRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	name, err := team.NewName(req.Name)
	if err != nil {
		writeError(ctx, w, invalidInput(err))
		return
	}

	if err := h.rosterService.AddTeam(ctx, team.New(name)); err != nil {
		h.logger.WarnContext(ctx, "add team failed", "team", name, "error", err)
		writeError(ctx, w, err)
		return
	}
	if err := h.persistRoster(ctx); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamDTO{Name: name.String()})
}

func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteTeam")
	defer span.End()

	name := team.Name(strings.TrimSpace(r.PathValue("name")))
	if err := h.rosterService.DeleteTeam(ctx, name); err != nil {
		h.logger.WarnContext(ctx, "delete team failed", "team", name, "error", err)
		writeError(ctx, w, err)
		return
	}
	if err := h.persistRoster(ctx); err != nil {
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListTeamPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamPlayers")
	defer span.End()

	name := team.Name(strings.TrimSpace(r.PathValue("name")))
	members, err := h.rosterService.TeamMembers(ctx, name)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(ctx, members))
}

func (h *Handler) ListPositions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPositions")
	defer span.End()

	var pred filter.Predicate[position.Position]
	if keywords := strings.Fields(r.URL.Query().Get("name")); len(keywords) > 0 {
		pred = filter.PositionNameContainsKeywords(keywords)
	}
	writeSuccess(ctx, w, http.StatusOK, positionsToDTO(h.rosterService.FilterPositions(ctx, pred)))
}

func (h *Handler) AddPosition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddPosition")
	defer span.End()

	var req addPositionRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	name, err := position.NewName(req.Name)
	if err != nil {
		writeError(ctx, w, invalidInput(err))
		return
	}

	if err := h.rosterService.AddPosition(ctx, position.New(name)); err != nil {
		h.logger.WarnContext(ctx, "add position failed", "position", name, "error", err)
		writeError(ctx, w, err)
		return
	}
	if err := h.persistRoster(ctx); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, positionDTO{Name: name.String()})
}

func (h *Handler) DeletePosition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePosition")
	defer span.End()

	name := position.Name(strings.TrimSpace(r.PathValue("name")))
	if err := h.rosterService.DeletePosition(ctx, name); err != nil {
		h.logger.WarnContext(ctx, "delete position failed", "position", name, "error", err)
		writeError(ctx, w, err)
		return
	}
	if err := h.persistRoster(ctx); err != nil {
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

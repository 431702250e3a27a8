package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/club-roster/internal/domain/filter"
	"github.com/riskibarqy/club-roster/internal/domain/player"
	"github.com/riskibarqy/club-roster/internal/domain/position"
	"github.com/riskibarqy/club-roster/internal/domain/team"
	"github.com/riskibarqy/club-roster/internal/usecase"
)

type addPlayerRequest struct {
	Name     string   `json:"name" validate:"required,max=100"`
	Phone    string   `json:"phone" validate:"required"`
	Email    string   `json:"email" validate:"required"`
	Address  string   `json:"address" validate:"required"`
	Team     string   `json:"team" validate:"required"`
	Position string   `json:"position" validate:"omitempty"`
	Tags     []string `json:"tags" validate:"omitempty,dive,required"`
}

type editPlayerRequest struct {
	Name    *string   `json:"name" validate:"omitempty,min=1,max=100"`
	Phone   *string   `json:"phone" validate:"omitempty,min=1"`
	Email   *string   `json:"email" validate:"omitempty,min=1"`
	Address *string   `json:"address" validate:"omitempty,min=1"`
	Team    *string   `json:"team" validate:"omitempty,min=1"`
	Tags    *[]string `json:"tags" validate:"omitempty,dive,required"`
}

type assignInjuryRequest struct {
	Injury string `json:"injury" validate:"required"`
}

type assignPositionRequest struct {
	Position string `json:"position" validate:"required"`
}

// ListPlayers narrows the player view. name runs a keyword search; team,
// injury and position combine into one filter. Without parameters every
// view is reset.
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	query := r.URL.Query()
	criteria := make([]filter.Criterion, 0, 3)
	for _, kind := range []filter.Kind{filter.KindTeam, filter.KindInjury, filter.KindPosition} {
		if !query.Has(string(kind)) {
			continue
		}
		criteria = append(criteria, filter.Criterion{Kind: kind, Query: query.Get(string(kind))})
	}

	var (
		persons []player.Person
		err     error
	)
	switch {
	case query.Has("name") && len(criteria) > 0:
		err = fmt.Errorf("%w: name search cannot be combined with team, injury or position filters", usecase.ErrInvalidInput)
	case query.Has("name"):
		persons, err = h.rosterService.FindPersons(ctx, strings.Fields(query.Get("name")))
	case len(criteria) > 0:
		persons, err = h.rosterService.FilterPersons(ctx, criteria...)
	default:
		persons = h.rosterService.ListAll(ctx)
	}
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(ctx, persons))
}

func (h *Handler) ListCaptains(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCaptains")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(ctx, h.rosterService.ListCaptains(ctx)))
}

func (h *Handler) ListInjured(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListInjured")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(ctx, h.rosterService.ListInjured(ctx)))
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	name := player.Name(strings.TrimSpace(r.PathValue("name")))
	p, err := h.rosterService.FindPerson(ctx, name)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(ctx, p))
}

func (h *Handler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddPlayer")
	defer span.End()

	var req addPlayerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	p, err := req.toPerson()
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.rosterService.AddPerson(ctx, p); err != nil {
		h.logger.WarnContext(ctx, "add player failed", "player", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}
	if err := h.persistRoster(ctx); err != nil {
		writeError(ctx, w, err)
		return
	}

	stored, err := h.rosterService.FindPerson(ctx, p.Name)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(ctx, stored))
}

func (h *Handler) EditPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EditPlayer")
	defer span.End()

	var req editPlayerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	in, err := req.toInput()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	name := player.Name(strings.TrimSpace(r.PathValue("name")))
	edited, err := h.rosterService.EditPerson(ctx, name, in)
	if err != nil {
		h.logger.WarnContext(ctx, "edit player failed", "player", name, "error", err)
		writeError(ctx, w, err)
		return
	}
	if err := h.persistRoster(ctx); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(ctx, edited))
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	h.mutatePlayer(w, r, "httpapi.Handler.DeletePlayer", h.rosterService.DeletePerson)
}

func (h *Handler) AssignCaptain(w http.ResponseWriter, r *http.Request) {
	h.mutatePlayer(w, r, "httpapi.Handler.AssignCaptain", h.rosterService.AssignCaptain)
}

func (h *Handler) StripCaptain(w http.ResponseWriter, r *http.Request) {
	h.mutatePlayer(w, r, "httpapi.Handler.StripCaptain", h.rosterService.StripCaptain)
}

func (h *Handler) ClearInjuries(w http.ResponseWriter, r *http.Request) {
	h.mutatePlayer(w, r, "httpapi.Handler.ClearInjuries", h.rosterService.ClearInjuries)
}

func (h *Handler) AssignInjury(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AssignInjury")
	defer span.End()

	var req assignInjuryRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	injury := player.Injury(strings.TrimSpace(req.Injury))
	h.mutatePlayer(w, r.WithContext(ctx), "httpapi.Handler.AssignInjury.apply",
		func(ctx context.Context, name player.Name) (player.Person, error) {
			return h.rosterService.AssignInjury(ctx, name, injury)
		})
}

func (h *Handler) AssignPosition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AssignPosition")
	defer span.End()

	var req assignPositionRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	pos := position.Name(strings.TrimSpace(req.Position))
	h.mutatePlayer(w, r.WithContext(ctx), "httpapi.Handler.AssignPosition.apply",
		func(ctx context.Context, name player.Name) (player.Person, error) {
			return h.rosterService.AssignPosition(ctx, name, pos)
		})
}

// mutatePlayer runs op against the player named in the path, persists the
// roster and responds with the resulting player.
func (h *Handler) mutatePlayer(
	w http.ResponseWriter,
	r *http.Request,
	spanName string,
	op func(ctx context.Context, name player.Name) (player.Person, error),
) {
	ctx, span := startSpan(r.Context(), spanName)
	defer span.End()

	name := player.Name(strings.TrimSpace(r.PathValue("name")))
	p, err := op(ctx, name)
	if err != nil {
		h.logger.WarnContext(ctx, "player operation failed", "operation", spanName, "player", name, "error", err)
		writeError(ctx, w, err)
		return
	}
	if err := h.persistRoster(ctx); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(ctx, p))
}

func (req addPlayerRequest) toPerson() (player.Person, error) {
	name, err := player.NewName(req.Name)
	if err != nil {
		return player.Person{}, invalidInput(err)
	}
	phone, err := player.NewPhone(req.Phone)
	if err != nil {
		return player.Person{}, invalidInput(err)
	}
	email, err := player.NewEmail(req.Email)
	if err != nil {
		return player.Person{}, invalidInput(err)
	}
	address, err := player.NewAddress(req.Address)
	if err != nil {
		return player.Person{}, invalidInput(err)
	}
	teamName, err := team.NewName(req.Team)
	if err != nil {
		return player.Person{}, invalidInput(err)
	}
	tags, err := parseTags(req.Tags)
	if err != nil {
		return player.Person{}, err
	}

	pos := position.NameNone
	if strings.TrimSpace(req.Position) != "" && !position.Name(strings.TrimSpace(req.Position)).IsNone() {
		pos, err = position.NewName(req.Position)
		if err != nil {
			return player.Person{}, invalidInput(err)
		}
	}

	return player.Person{
		Name:     name,
		Phone:    phone,
		Email:    email,
		Address:  address,
		Team:     teamName,
		Position: pos,
		Tags:     tags,
	}, nil
}

func (req editPlayerRequest) toInput() (usecase.EditPersonInput, error) {
	var in usecase.EditPersonInput
	if req.Name != nil {
		name, err := player.NewName(*req.Name)
		if err != nil {
			return in, invalidInput(err)
		}
		in.Name = &name
	}
	if req.Phone != nil {
		phone, err := player.NewPhone(*req.Phone)
		if err != nil {
			return in, invalidInput(err)
		}
		in.Phone = &phone
	}
	if req.Email != nil {
		email, err := player.NewEmail(*req.Email)
		if err != nil {
			return in, invalidInput(err)
		}
		in.Email = &email
	}
	if req.Address != nil {
		address, err := player.NewAddress(*req.Address)
		if err != nil {
			return in, invalidInput(err)
		}
		in.Address = &address
	}
	if req.Team != nil {
		teamName, err := team.NewName(*req.Team)
		if err != nil {
			return in, invalidInput(err)
		}
		in.Team = &teamName
	}
	if req.Tags != nil {
		tags := make([]player.Tag, 0, len(*req.Tags))
		for _, raw := range *req.Tags {
			tag, err := player.NewTag(raw)
			if err != nil {
				return in, invalidInput(err)
			}
			tags = append(tags, tag)
		}
		in.Tags = &tags
	}
	return in, nil
}

func parseTags(raw []string) (player.TagSet, error) {
	tags := make([]player.Tag, 0, len(raw))
	for _, item := range raw {
		tag, err := player.NewTag(item)
		if err != nil {
			return player.TagSet{}, invalidInput(err)
		}
		tags = append(tags, tag)
	}
	set, err := player.NewTagSet(tags...)
	if err != nil {
		return player.TagSet{}, invalidInput(err)
	}
	return set, nil
}

package httpapi

import (
	"net/http"

	"github.com/riskibarqy/club-roster/internal/domain/prefs"
)

type updatePreferencesRequest struct {
	GUISettings struct {
		WindowWidth  float64 `json:"windowWidth" validate:"gt=0"`
		WindowHeight float64 `json:"windowHeight" validate:"gt=0"`
		X            *int    `json:"x"`
		Y            *int    `json:"y"`
	} `json:"guiSettings"`
	RosterFilePath string `json:"rosterFilePath" validate:"required"`
}

func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRoster")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(ctx, h.rosterService.Snapshot(ctx)))
}

func (h *Handler) ClearRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClearRoster")
	defer span.End()

	if err := h.rosterService.ClearRoster(ctx); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.persistRoster(ctx); err != nil {
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPreferences")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, preferencesToDTO(h.rosterService.UserPrefs(ctx)))
}

// UpdatePreferences replaces the stored preferences. A new roster file path
// takes effect on the next start.
func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePreferences")
	defer span.End()

	var req updatePreferencesRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	next := prefs.UserPrefs{
		GUI: prefs.GUISettings{
			WindowWidth:  req.GUISettings.WindowWidth,
			WindowHeight: req.GUISettings.WindowHeight,
			X:            req.GUISettings.X,
			Y:            req.GUISettings.Y,
		},
		RosterFilePath: req.RosterFilePath,
	}
	if err := h.rosterService.SetUserPrefs(ctx, next); err != nil {
		writeError(ctx, w, err)
		return
	}
	if h.persistenceService != nil {
		if err := h.persistenceService.SaveCurrentUserPrefs(ctx, h.rosterService.UserPrefs); err != nil {
			writeError(ctx, w, err)
			return
		}
	}

	writeSuccess(ctx, w, http.StatusOK, preferencesToDTO(h.rosterService.UserPrefs(ctx)))
}

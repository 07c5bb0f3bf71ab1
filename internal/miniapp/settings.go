package miniapp

import (
	"encoding/json"
	"net/http"

	"github.com/iron-woodman/NailBot/internal/model"
)

type settingsResponse struct {
	ID                  int64  `json:"id"`
	AdminID             int64  `json:"admin_id"`
	PlanningHorizonDays int    `json:"planning_horizon_days"`
	Timezone            string `json:"timezone"`
}

func toSettingsResponse(s *model.Settings) settingsResponse {
	return settingsResponse{
		ID:                  s.ID,
		AdminID:             s.AdminID,
		PlanningHorizonDays: s.PlanningHorizonDays,
		Timezone:            s.Timezone,
	}
}

type settingsUpdateRequest struct {
	PlanningHorizonDays *int    `json:"planning_horizon_days"`
	Timezone            *string `json:"timezone"`
}

func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settings.Get(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsResponse(settings))
}

// updateSettings — частичное обновление, отсутствующие поля не меняются
func (s *Server) updateSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	current, err := s.settings.Get(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	horizonDays := current.PlanningHorizonDays
	if req.PlanningHorizonDays != nil {
		horizonDays = *req.PlanningHorizonDays
	}
	timezone := current.Timezone
	if req.Timezone != nil {
		timezone = *req.Timezone
	}

	updated, err := s.settings.Update(r.Context(), horizonDays, timezone)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsResponse(updated))
}

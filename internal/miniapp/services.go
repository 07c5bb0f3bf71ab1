package miniapp

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/iron-woodman/NailBot/internal/model"
	"github.com/iron-woodman/NailBot/internal/service"
)

type serviceResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
	Price           int    `json:"price"`
	Description     string `json:"description"`
	Active          bool   `json:"active"`
}

func toServiceResponse(s *model.Service) serviceResponse {
	return serviceResponse{
		ID:              s.ID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		Description:     s.Description,
		Active:          s.Active,
	}
}

type serviceCreateRequest struct {
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
	Price           int    `json:"price"`
	Description     string `json:"description"`
}

type serviceUpdateRequest struct {
	Name            *string `json:"name"`
	DurationMinutes *int    `json:"duration_minutes"`
	Price           *int    `json:"price"`
	Description     *string `json:"description"`
	Active          *bool   `json:"active"`
}

func (s *Server) listServices(w http.ResponseWriter, r *http.Request) {
	services, err := s.catalog.Services(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]serviceResponse, 0, len(services))
	for _, item := range services {
		out = append(out, toServiceResponse(item))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createService(w http.ResponseWriter, r *http.Request) {
	var req serviceCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := s.catalog.Create(r.Context(), req.Name, req.DurationMinutes, req.Price, req.Description)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toServiceResponse(created))
}

func (s *Server) updateService(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid service id")
		return
	}

	var req serviceUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := s.catalog.Update(r.Context(), id, service.ServiceUpdate{
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Description:     req.Description,
		Active:          req.Active,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toServiceResponse(updated))
}

// deleteService — мягкое удаление, услуга деактивируется
func (s *Server) deleteService(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid service id")
		return
	}

	if _, err := s.catalog.Deactivate(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "Услуга деактивирована"})
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

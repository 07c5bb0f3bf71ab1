package miniapp

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/iron-woodman/NailBot/internal/model"
	"github.com/iron-woodman/NailBot/internal/repository"
)

type appointmentResponse struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	UserName     string    `json:"user_name"`
	UserUsername string    `json:"user_username"`
	ServiceID    int64     `json:"service_id"`
	ServiceName  string    `json:"service_name"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

func toAppointmentResponse(a *model.Appointment) appointmentResponse {
	resp := appointmentResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		ServiceID: a.ServiceID,
		StartTime: a.StartTime,
		EndTime:   a.EndTime,
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt,
	}
	if a.User != nil {
		resp.UserName = a.User.FullName
		resp.UserUsername = a.User.Username
	}
	if a.Service != nil {
		resp.ServiceName = a.Service.Name
	}
	return resp
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

// listAppointments — список записей с фильтрами status, date_from, date_to
func (s *Server) listAppointments(w http.ResponseWriter, r *http.Request) {
	filter := repository.AppointmentFilter{
		Status: model.AppointmentStatus(r.URL.Query().Get("status")),
	}

	if raw := r.URL.Query().Get("date_from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeDetail(w, http.StatusBadRequest, "invalid date_from, expected YYYY-MM-DD")
			return
		}
		filter.DateFrom = &from
	}
	if raw := r.URL.Query().Get("date_to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeDetail(w, http.StatusBadRequest, "invalid date_to, expected YYYY-MM-DD")
			return
		}
		// включительно: фильтр по началу записи до конца дня
		end := to.AddDate(0, 0, 1)
		filter.DateTo = &end
	}

	appointments, err := s.booking.Appointments(r.Context(), filter)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]appointmentResponse, 0, len(appointments))
	for _, appointment := range appointments {
		out = append(out, toAppointmentResponse(appointment))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) updateAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid appointment id")
		return
	}

	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := s.booking.SetStatus(r.Context(), id, model.AppointmentStatus(req.Status))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAppointmentResponse(updated))
}

// cancelAppointment отменяет запись; сама строка остаётся в истории
func (s *Server) cancelAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid appointment id")
		return
	}

	if _, err := s.booking.Cancel(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "Запись отменена"})
}

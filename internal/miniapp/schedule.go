package miniapp

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iron-woodman/NailBot/internal/model"
	"github.com/iron-woodman/NailBot/internal/schedule"
)

type workDayResponse struct {
	ID        int64  `json:"id"`
	Weekday   int    `json:"weekday"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsWorking bool   `json:"is_working"`
}

func toWorkDayResponse(d *model.WorkDay) workDayResponse {
	return workDayResponse{
		ID:        d.ID,
		Weekday:   d.Weekday,
		StartTime: schedule.FormatClock(d.StartMinute),
		EndTime:   schedule.FormatClock(d.EndMinute),
		IsWorking: d.IsWorking,
	}
}

type workDayUpdateRequest struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsWorking bool   `json:"is_working"`
}

type holidayResponse struct {
	ID     int64  `json:"id"`
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

type holidayCreateRequest struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

func (s *Server) getWorkSchedule(w http.ResponseWriter, r *http.Request) {
	days, err := s.scheduleSvc.WorkDays(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]workDayResponse, 0, len(days))
	for _, day := range days {
		out = append(out, toWorkDayResponse(day))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) updateWorkSchedule(w http.ResponseWriter, r *http.Request) {
	weekday, err := strconv.Atoi(chi.URLParam(r, "weekday"))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid weekday")
		return
	}

	var req workDayUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	day, err := s.scheduleSvc.UpdateWorkDay(r.Context(), weekday, req.StartTime, req.EndTime, req.IsWorking)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toWorkDayResponse(day))
}

func (s *Server) listHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := s.scheduleSvc.Holidays(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]holidayResponse, 0, len(holidays))
	for _, holiday := range holidays {
		out = append(out, holidayResponse{
			ID:     holiday.ID,
			Date:   schedule.DateKey(holiday.Date),
			Reason: holiday.Reason,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createHoliday(w http.ResponseWriter, r *http.Request) {
	var req holidayCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	holiday, err := s.scheduleSvc.AddHoliday(r.Context(), date, req.Reason)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, holidayResponse{
		ID:     holiday.ID,
		Date:   schedule.DateKey(holiday.Date),
		Reason: holiday.Reason,
	})
}

func (s *Server) deleteHoliday(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid holiday id")
		return
	}

	if err := s.scheduleSvc.RemoveHoliday(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "Выходной день удален"})
}

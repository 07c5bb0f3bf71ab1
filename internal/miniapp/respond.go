package miniapp

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/iron-woodman/NailBot/internal/schedule"
)

type detailResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, detailResponse{Detail: detail})
}

// writeError переводит ошибку доменного слоя в HTTP-статус по её типу
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch schedule.KindOf(err) {
	case schedule.KindValidation:
		writeDetail(w, http.StatusBadRequest, err.Error())
	case schedule.KindNotFound:
		writeDetail(w, http.StatusNotFound, err.Error())
	case schedule.KindConflict:
		writeDetail(w, http.StatusConflict, err.Error())
	case schedule.KindPolicy:
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
	default:
		s.logger.Error("Request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeDetail(w, http.StatusInternalServerError, "internal error")
	}
}

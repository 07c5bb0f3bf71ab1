package miniapp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iron-woodman/NailBot/internal/model"
)

func decodeJSON[T any](t *testing.T, body []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestServicesEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/api/services/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())

	rec = env.request(t, http.MethodPost, "/api/services/",
		`{"name":"Маникюр","duration_minutes":60,"price":250000,"description":"Классический"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeJSON[serviceResponse](t, rec.Body.Bytes())
	assert.True(t, created.Active)
	assert.Equal(t, 250000, created.Price)

	// дубликат имени
	rec = env.request(t, http.MethodPost, "/api/services/",
		`{"name":"Маникюр","duration_minutes":90,"price":300000}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "detail")

	// невалидная длительность
	rec = env.request(t, http.MethodPost, "/api/services/",
		`{"name":"Педикюр","duration_minutes":0,"price":300000}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// частичное обновление
	rec = env.request(t, http.MethodPut, fmt.Sprintf("/api/services/%d", created.ID),
		`{"price":300000}`)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeJSON[serviceResponse](t, rec.Body.Bytes())
	assert.Equal(t, 300000, updated.Price)
	assert.Equal(t, "Маникюр", updated.Name)

	rec = env.request(t, http.MethodPut, "/api/services/999", `{"price":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// мягкое удаление
	rec = env.request(t, http.MethodDelete, fmt.Sprintf("/api/services/%d", created.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.request(t, http.MethodGet, "/api/services/", "")
	services := decodeJSON[[]serviceResponse](t, rec.Body.Bytes())
	require.Len(t, services, 1)
	assert.False(t, services[0].Active)
}

func TestWorkScheduleEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/api/work-schedule", "")
	require.Equal(t, http.StatusOK, rec.Code)
	days := decodeJSON[[]workDayResponse](t, rec.Body.Bytes())
	require.Len(t, days, 7)
	assert.Equal(t, "09:00", days[0].StartTime)

	rec = env.request(t, http.MethodPut, "/api/work-schedule/0",
		`{"start_time":"10:00","end_time":"19:30","is_working":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	day := decodeJSON[workDayResponse](t, rec.Body.Bytes())
	assert.Equal(t, "10:00", day.StartTime)
	assert.Equal(t, "19:30", day.EndTime)

	rec = env.request(t, http.MethodPut, "/api/work-schedule/7",
		`{"start_time":"10:00","end_time":"19:00","is_working":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.request(t, http.MethodPut, "/api/work-schedule/0",
		`{"start_time":"19:00","end_time":"10:00","is_working":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHolidayEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/holidays/",
		`{"date":"2026-09-15","reason":"отпуск"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeJSON[holidayResponse](t, rec.Body.Bytes())
	assert.Equal(t, "2026-09-15", created.Date)

	// календарь закрылся на этот день
	assert.False(t, env.cal.IsOpen(time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC)))

	rec = env.request(t, http.MethodPost, "/api/holidays/",
		`{"date":"2026-09-15"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.request(t, http.MethodPost, "/api/holidays/", `{"date":"15.09.2026"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.request(t, http.MethodGet, "/api/holidays/", "")
	holidays := decodeJSON[[]holidayResponse](t, rec.Body.Bytes())
	require.Len(t, holidays, 1)

	rec = env.request(t, http.MethodDelete, fmt.Sprintf("/api/holidays/%d", created.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.cal.IsOpen(time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC)))

	rec = env.request(t, http.MethodDelete, fmt.Sprintf("/api/holidays/%d", created.ID), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// seedAppointment кладёт запись сразу в хранилище, минуя календарь
func seedAppointment(t *testing.T, env *testEnv, start time.Time, status model.AppointmentStatus) *model.Appointment {
	t.Helper()

	appointment := &model.Appointment{
		UserID:    1,
		ServiceID: 1,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Status:    status,
	}
	require.NoError(t, env.stores.Appointments.Create(context.Background(), appointment))
	return appointment
}

func TestAppointmentsEndpoints(t *testing.T) {
	env := newTestEnv(t)

	first := seedAppointment(t, env,
		time.Date(2026, time.September, 7, 10, 0, 0, 0, time.UTC), model.AppointmentStatusScheduled)
	seedAppointment(t, env,
		time.Date(2026, time.September, 8, 10, 0, 0, 0, time.UTC), model.AppointmentStatusCancelled)

	rec := env.request(t, http.MethodGet, "/api/appointments/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	all := decodeJSON[[]appointmentResponse](t, rec.Body.Bytes())
	assert.Len(t, all, 2)

	rec = env.request(t, http.MethodGet, "/api/appointments/?status=scheduled", "")
	scheduled := decodeJSON[[]appointmentResponse](t, rec.Body.Bytes())
	require.Len(t, scheduled, 1)
	assert.Equal(t, first.ID, scheduled[0].ID)

	rec = env.request(t, http.MethodGet, "/api/appointments/?status=bogus", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.request(t, http.MethodGet, "/api/appointments/?date_from=2026-09-08", "")
	later := decodeJSON[[]appointmentResponse](t, rec.Body.Bytes())
	assert.Len(t, later, 1)

	rec = env.request(t, http.MethodGet, "/api/appointments/?date_to=2026-09-07", "")
	earlier := decodeJSON[[]appointmentResponse](t, rec.Body.Bytes())
	assert.Len(t, earlier, 1)

	rec = env.request(t, http.MethodGet, "/api/appointments/?date_from=07.09.2026", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// смена статуса
	rec = env.request(t, http.MethodPut, fmt.Sprintf("/api/appointments/%d/status", first.ID),
		`{"status":"completed"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	completed := decodeJSON[appointmentResponse](t, rec.Body.Bytes())
	assert.Equal(t, "completed", completed.Status)

	rec = env.request(t, http.MethodPut, fmt.Sprintf("/api/appointments/%d/status", first.ID),
		`{"status":"bogus"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAppointmentCancelEndpoint(t *testing.T) {
	env := newTestEnv(t)

	appointment := seedAppointment(t, env,
		time.Date(2026, time.September, 7, 10, 0, 0, 0, time.UTC), model.AppointmentStatusScheduled)

	rec := env.request(t, http.MethodDelete, fmt.Sprintf("/api/appointments/%d", appointment.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "success")

	// повторная отмена — конфликт
	rec = env.request(t, http.MethodDelete, fmt.Sprintf("/api/appointments/%d", appointment.ID), "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.request(t, http.MethodDelete, "/api/appointments/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSettingsEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/api/settings/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	settings := decodeJSON[settingsResponse](t, rec.Body.Bytes())
	assert.Equal(t, 30, settings.PlanningHorizonDays)

	// частичное обновление: только горизонт
	rec = env.request(t, http.MethodPut, "/api/settings/", `{"planning_horizon_days":14}`)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeJSON[settingsResponse](t, rec.Body.Bytes())
	assert.Equal(t, 14, updated.PlanningHorizonDays)
	assert.Equal(t, "UTC", updated.Timezone)

	rec = env.request(t, http.MethodPut, "/api/settings/", `{"timezone":"Mars/Olympus"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.request(t, http.MethodPut, "/api/settings/", `{"planning_horizon_days":-1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)

	// без авторизации
	rec := doRequest(env, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	open := httptest.NewRecorder()
	env.handler.ServeHTTP(open, req)
	assert.Equal(t, http.StatusOK, open.Code)
}

package miniapp

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iron-woodman/NailBot/internal/model"
	"github.com/iron-woodman/NailBot/internal/schedule"
	"github.com/iron-woodman/NailBot/internal/service"
	"github.com/iron-woodman/NailBot/internal/service/servicetest"
)

const (
	testBotToken = "12345:test-token"
	testAdminID  = int64(1000)
)

type testEnv struct {
	server  *Server
	handler http.Handler
	stores  *servicetest.Stores
	cal     *schedule.Calendar
	auth    string // заголовок Authorization с действующим токеном
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	stores := servicetest.New()
	logger := zap.NewNop()

	cal := schedule.NewCalendar(time.UTC)
	for weekday := 0; weekday < 5; weekday++ {
		require.NoError(t, cal.SetWorkDay(model.WorkDay{
			Weekday:     weekday,
			StartMinute: 9 * 60,
			EndMinute:   18 * 60,
			IsWorking:   true,
		}))
	}

	server := NewServer(Config{
		Catalog:  service.NewCatalogService(stores.Services, logger),
		Schedule: service.NewScheduleService(stores.WorkDays, stores.Holidays, cal, logger),
		Booking:  service.NewBookingService(stores.Users, stores.Services, stores.Appointments, stores.Settings, cal, logger),
		Settings: service.NewSettingsService(stores.Settings, cal, logger),
		BotToken: testBotToken,
		AdminID:  testAdminID,
		Logger:   logger,
	})

	return &testEnv{
		server:  server,
		handler: server.Routes(),
		stores:  stores,
		cal:     cal,
		auth:    "Bearer " + server.Tokens().Issue(),
	}
}

func (e *testEnv) request(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", e.auth)

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// signInitData подписывает initData так же, как это делает Telegram
func signInitData(userJSON string) string {
	values := url.Values{}
	values.Set("user", userJSON)
	values.Set("auth_date", "1700000000")

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+values.Get(key))
	}

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(testBotToken))
	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(strings.Join(pairs, "\n")))

	values.Set("hash", hex.EncodeToString(mac.Sum(nil)))
	return values.Encode()
}

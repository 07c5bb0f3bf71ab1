package miniapp

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

// Проверка подписи Telegram WebApp initData. Telegram подписывает строку
// "k=v\nk=v..." (пары отсортированы по ключу, hash исключён) ключом
// HMAC-SHA256("WebAppData", botToken).

var (
	errHashMissing = errors.New("hash not found in init data")
	errInvalidHash = errors.New("invalid init data hash")
)

// WebAppUser — поле user из initData
type WebAppUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

// ParseInitData проверяет подпись initData и возвращает пользователя
func ParseInitData(initData, botToken string) (*WebAppUser, error) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, fmt.Errorf("parse init data: %w", err)
	}

	receivedHash := values.Get("hash")
	if receivedHash == "" {
		return nil, errHashMissing
	}
	values.Del("hash")

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+values.Get(key))
	}
	checkString := strings.Join(pairs, "\n")

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))

	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(checkString))
	calculated := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(calculated), []byte(receivedHash)) {
		return nil, errInvalidHash
	}

	rawUser := values.Get("user")
	if rawUser == "" {
		return nil, errors.New("user not found in init data")
	}

	var user WebAppUser
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		return nil, fmt.Errorf("parse user: %w", err)
	}
	return &user, nil
}

// requireAdmin пропускает запрос, только если Authorization содержит
// "tma <initData>" с валидной подписью и ID администратора, либо
// "Bearer <token>" с действующим одноразовым токеном, выданным ботом.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authorization := r.Header.Get("Authorization")
		if authorization == "" {
			writeDetail(w, http.StatusUnauthorized, "Authorization header missing")
			return
		}

		switch {
		case strings.HasPrefix(authorization, "tma "):
			user, err := ParseInitData(strings.TrimPrefix(authorization, "tma "), s.botToken)
			if err != nil {
				writeDetail(w, http.StatusForbidden, "Verification failed")
				return
			}
			if user.ID != s.adminID {
				writeDetail(w, http.StatusForbidden, "Access denied")
				return
			}
		case strings.HasPrefix(authorization, "Bearer "):
			if !s.tokens.Validate(strings.TrimPrefix(authorization, "Bearer ")) {
				writeDetail(w, http.StatusForbidden, "Access denied")
				return
			}
		default:
			writeDetail(w, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		next.ServeHTTP(w, r)
	})
}

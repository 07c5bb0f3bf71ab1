package miniapp

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// AccessTokens — короткоживущие токены доступа к админке. Бот выдаёт токен
// по команде администратора и вшивает его в ссылку на панель; токен
// действует до истечения TTL.
type AccessTokens struct {
	mu     sync.Mutex
	tokens map[string]time.Time
	ttl    time.Duration
	now    func() time.Time
}

func NewAccessTokens(ttl time.Duration) *AccessTokens {
	return &AccessTokens{
		tokens: make(map[string]time.Time),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue выдаёт новый токен
func (t *AccessTokens) Issue() string {
	token := uuid.NewString()
	t.mu.Lock()
	t.tokens[token] = t.now().Add(t.ttl)
	t.mu.Unlock()
	return token
}

// Validate проверяет, что токен существует и не истёк.
// Истёкшие токены удаляются.
func (t *AccessTokens) Validate(token string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	expiresAt, ok := t.tokens[token]
	if !ok {
		return false
	}
	if !t.now().Before(expiresAt) {
		delete(t.tokens, token)
		return false
	}
	return true
}

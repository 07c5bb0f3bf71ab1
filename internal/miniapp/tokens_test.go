package miniapp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccessTokens(t *testing.T) {
	tokens := NewAccessTokens(time.Hour)

	token := tokens.Issue()
	assert.NotEmpty(t, token)
	assert.True(t, tokens.Validate(token))
	// повторная проверка не гасит токен
	assert.True(t, tokens.Validate(token))

	assert.False(t, tokens.Validate("no-such-token"))
}

func TestAccessTokensExpiry(t *testing.T) {
	tokens := NewAccessTokens(time.Hour)

	current := time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)
	tokens.now = func() time.Time { return current }

	token := tokens.Issue()
	assert.True(t, tokens.Validate(token))

	current = current.Add(2 * time.Hour)
	assert.False(t, tokens.Validate(token))

	// истёкший токен удалён, второй раз тоже не проходит
	current = current.Add(-2 * time.Hour)
	assert.False(t, tokens.Validate(token))
}

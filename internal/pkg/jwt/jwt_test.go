package jwt

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JUST9N1/Security-Backend/internal/core/domain"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := NewManager("super-secret", DefaultTTL, WithClock(clock.Now))

	tok, err := m.Issue("acc-1", "worker")
	require.NoError(t, err)

	claims, err := m.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.AccountID)
	assert.Equal(t, "worker", claims.Role)

	// verifying twice yields the same identity
	again, err := m.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, claims.AccountID, again.AccountID)
	assert.Equal(t, claims.Role, again.Role)

	clock.t = clock.t.Add(DefaultTTL - time.Minute)
	_, err = m.Verify(tok)
	assert.NoError(t, err)
}

func TestVerify_ExpiredAfterFifteenDays(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := NewManager("secret", 0, WithClock(clock.Now))
	assert.Equal(t, 15*24*time.Hour, m.TTL())

	tok, err := m.Issue("acc-1", "patient")
	require.NoError(t, err)

	clock.t = clock.t.Add(15*24*time.Hour + time.Second)
	_, err = m.Verify(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestVerify_WrongSecret(t *testing.T) {
	tok, err := NewManager("right-secret", time.Hour).Issue("u2", "admin")
	require.NoError(t, err)

	_, err = NewManager("wrong-secret", time.Hour).Verify(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerify_Tampered(t *testing.T) {
	m := NewManager("k", time.Hour)
	tok, err := m.Issue("u3", "patient")
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	parts[1] = parts[1] + "x"

	_, err = m.Verify(strings.Join(parts, "."))
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerify_Malformed(t *testing.T) {
	m := NewManager("k", time.Hour)

	_, err := m.Verify("not.a.jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = m.Verify("")
	assert.ErrorIs(t, err, ErrTokenMissing)
	assert.ErrorIs(t, err, domain.ErrTokenMissing)
}

func TestExtractBearer(t *testing.T) {
	tok, err := ExtractBearer("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)

	for _, h := range []string{"", "abc.def.ghi", "Basic dXNlcjpwYXNz", "Bearer ", "bearer abc"} {
		_, err := ExtractBearer(h)
		assert.ErrorIs(t, err, ErrTokenMissing, "header=%q", h)
	}
}

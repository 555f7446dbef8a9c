package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestManager_CreateResolveRevoke(t *testing.T) {
	m := NewManager(time.Hour, false)

	token := m.Create("alice")
	require.NotEmpty(t, token)
	require.Equal(t, "alice", m.Resolve(token))

	m.Revoke(token)
	require.Empty(t, m.Resolve(token))
}

func TestManager_ExpiredSession(t *testing.T) {
	m := NewManager(10*time.Millisecond, false)

	token := m.Create("alice")
	time.Sleep(20 * time.Millisecond)

	require.Empty(t, m.Resolve(token))
}

func TestManager_UnknownToken(t *testing.T) {
	m := NewManager(time.Hour, false)
	require.Empty(t, m.Resolve("not-a-token"))
}

func TestManager_CookieRoundTrip(t *testing.T) {
	m := NewManager(time.Hour, false)
	token := m.Create("alice")

	rec := httptest.NewRecorder()
	m.SetCookie(rec, token)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, CookieName, cookies[0].Name)
	require.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	require.Equal(t, "alice", m.FromRequest(req))
}

func TestManager_FromRequestWithoutCookie(t *testing.T) {
	m := NewManager(time.Hour, false)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	require.Empty(t, m.FromRequest(req))
}

package rest_test

import (
	"net/http"
	"testing"

	"github.com/sawara-dev/ashiato/testutil"
	"github.com/stretchr/testify/assert"
)

func TestLoginLogoutFlow(t *testing.T) {
	srv := newTestServer(t)
	testutil.CreateUser(t, srv.db, "alice", "alice@example.com", "pw")

	token := srv.login(t, "alice@example.com", "pw")

	w := srv.do(t, http.MethodGet, "/", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = srv.do(t, http.MethodPost, "/logout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// The token still parses, but its session key is gone.
	w = srv.do(t, http.MethodGet, "/", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginBadCredentials(t *testing.T) {
	srv := newTestServer(t)
	testutil.CreateUser(t, srv.db, "alice", "alice@example.com", "pw")

	w := srv.do(t, http.MethodPost, "/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = srv.do(t, http.MethodPost, "/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "pw",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginMissingFields(t *testing.T) {
	srv := newTestServer(t)
	w := srv.do(t, http.MethodPost, "/login", "", map[string]string{"email": "a@b.c"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	srv := newTestServer(t)
	for _, path := range []string{"/", "/footprints", "/friends", "/diary/entry/1"} {
		w := srv.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "GET %s", path)
	}
}

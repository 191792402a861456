package rest_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sawara-dev/ashiato/api/rest"
	"github.com/sawara-dev/ashiato/cache"
	"github.com/sawara-dev/ashiato/config"
	"github.com/sawara-dev/ashiato/diary"
	"github.com/sawara-dev/ashiato/footprint"
	"github.com/sawara-dev/ashiato/friendship"
	mw "github.com/sawara-dev/ashiato/middleware"
	"github.com/sawara-dev/ashiato/testutil"
	"github.com/sawara-dev/ashiato/timeline"
	"github.com/sawara-dev/ashiato/user"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testServer struct {
	router  *gin.Engine
	db      *gorm.DB
	cache   cache.Cache
	friends *friendship.Service
}

// newTestServer wires the full handler stack against an in-memory database
// and a local cache, with the same route layout the binary serves.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.SetupTestDB(t)
	c := testutil.SetupTestCache(t)
	logger := zap.NewNop()

	sec := config.SecurityConfig{JWTSecret: "test-secret", SessionTTL: time.Hour}
	feed := config.FeedConfig{WindowSize: 1000, MaxItems: 10}

	users := user.New(db, logger)
	friends := friendship.New(db, c, logger)
	diaries := diary.New(db, friends, logger)
	agg := timeline.New(db, friends, feed, logger)
	footprints := footprint.New(db, logger)

	authH := rest.NewAuthHandler(users, c, sec, logger)
	homeH := rest.NewHomeHandler(users, diaries, agg, footprints, logger)
	profileH := rest.NewProfileHandler(users, diaries, friends, footprints, logger)
	diaryH := rest.NewDiaryHandler(users, diaries, footprints, logger)
	friendsH := rest.NewFriendsHandler(db, users, friends, agg, logger)
	footprintsH := rest.NewFootprintsHandler(users, footprints, logger)
	adminH := rest.NewAdminHandler(db, friends, logger)

	r := gin.New()
	r.POST("/login", authH.Login)
	r.GET("/initialize", adminH.Initialize)

	authed := r.Group("/", mw.Auth(sec, c))
	authed.GET("/", homeH.View)
	authed.POST("/logout", authH.Logout)
	authed.GET("/profile/:account_name", profileH.Show)
	authed.POST("/profile/:account_name", profileH.Update)
	authed.GET("/diary/entries/:account_name", diaryH.List)
	authed.GET("/diary/entry/:entry_id", diaryH.Show)
	authed.POST("/diary/entry", diaryH.Create)
	authed.POST("/diary/comment/:entry_id", diaryH.Comment)
	authed.GET("/footprints", footprintsH.List)
	authed.GET("/friends", friendsH.List)
	authed.POST("/friends/:account_name", friendsH.Add)

	return &testServer{router: r, db: db, cache: c, friends: friends}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/login", "", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusOK, w.Code, "login: %s", w.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	out := make(map[string]json.RawMessage)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

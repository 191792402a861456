package rest_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/sawara-dev/ashiato/model"
	"github.com/sawara-dev/ashiato/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiaryListHidesPrivateFromStrangers(t *testing.T) {
	srv := newTestServer(t)
	alice := testutil.CreateUser(t, srv.db, "alice", "alice@example.com", "pw")
	testutil.CreateUser(t, srv.db, "bob", "bob@example.com", "pw")
	testutil.CreateEntry(t, srv.db, alice.ID, false, "public\n.", 2*time.Minute)
	testutil.CreateEntry(t, srv.db, alice.ID, true, "private\n.", time.Minute)

	token := srv.login(t, "bob@example.com", "pw")
	w := srv.do(t, http.MethodGet, "/diary/entries/alice", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Entries []struct {
			Title string `json:"title"`
		} `json:"entries"`
		Myself bool `json:"myself"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "public", resp.Entries[0].Title)
	assert.False(t, resp.Myself)
}

func TestEntryShowWithComments(t *testing.T) {
	srv := newTestServer(t)
	alice := testutil.CreateUser(t, srv.db, "alice", "alice@example.com", "pw")
	token := srv.login(t, "alice@example.com", "pw")

	e := testutil.CreateEntry(t, srv.db, alice.ID, false, "hello\nworld", time.Minute)
	testutil.CreateComment(t, srv.db, e.ID, alice.ID, "nice", time.Second)

	w := srv.do(t, http.MethodGet, fmt.Sprintf("/diary/entry/%d", e.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Contains(t, string(body["entry"]), `"title":"hello"`)
	assert.Contains(t, string(body["comments"]), `"comment":"nice"`)
}

func TestEntryShowErrors(t *testing.T) {
	srv := newTestServer(t)
	testutil.CreateUser(t, srv.db, "alice", "alice@example.com", "pw")
	token := srv.login(t, "alice@example.com", "pw")

	w := srv.do(t, http.MethodGet, "/diary/entry/4242", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = srv.do(t, http.MethodGet, "/diary/entry/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostEntryDefaultsTitle(t *testing.T) {
	srv := newTestServer(t)
	testutil.CreateUser(t, srv.db, "alice", "alice@example.com", "pw")
	token := srv.login(t, "alice@example.com", "pw")

	w := srv.do(t, http.MethodPost, "/diary/entry", token, map[string]any{
		"content": "no title given",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = srv.do(t, http.MethodGet, fmt.Sprintf("/diary/entry/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "タイトルなし")
}

func TestPostEntryRequiresContent(t *testing.T) {
	srv := newTestServer(t)
	testutil.CreateUser(t, srv.db, "alice", "alice@example.com", "pw")
	token := srv.login(t, "alice@example.com", "pw")

	w := srv.do(t, http.MethodPost, "/diary/entry", token, map[string]any{"title": "only"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostCommentOnPrivateEntry(t *testing.T) {
	srv := newTestServer(t)
	alice := testutil.CreateUser(t, srv.db, "alice", "alice@example.com", "pw")
	testutil.CreateUser(t, srv.db, "bob", "bob@example.com", "pw")
	e := testutil.CreateEntry(t, srv.db, alice.ID, true, "secret\n.", time.Minute)

	token := srv.login(t, "bob@example.com", "pw")
	path := fmt.Sprintf("/diary/comment/%d", e.ID)

	w := srv.do(t, http.MethodPost, path, token, map[string]string{"comment": "hi"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = srv.do(t, http.MethodPost, "/friends/alice", token, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = srv.do(t, http.MethodPost, path, token, map[string]string{"comment": "hi"})
	assert.Equal(t, http.StatusCreated, w.Code)

	var count int64
	require.NoError(t, srv.db.Model(&model.Comment{}).Where("entry_id = ?", e.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDiaryViewsLeaveFootprints(t *testing.T) {
	srv := newTestServer(t)
	alice := testutil.CreateUser(t, srv.db, "alice", "alice@example.com", "pw")
	bob := testutil.CreateUser(t, srv.db, "bob", "bob@example.com", "pw")
	e := testutil.CreateEntry(t, srv.db, alice.ID, false, "post\n.", time.Minute)

	token := srv.login(t, "bob@example.com", "pw")
	w := srv.do(t, http.MethodGet, fmt.Sprintf("/diary/entry/%d", e.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var rows []model.Footprint
	require.NoError(t, srv.db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, alice.ID, rows[0].ProfileOwnerID)
	assert.Equal(t, bob.ID, rows[0].ViewerID)
}

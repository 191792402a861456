package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sawara-dev/ashiato/cache"
	dbsqlite "github.com/sawara-dev/ashiato/db/sqlite"
	"github.com/sawara-dev/ashiato/model"
	"github.com/sawara-dev/ashiato/user"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// SetupTestDB creates an in-memory SQLite DB and runs AutoMigrate. Each call
// gets its own named memory database, so parallel tests do not interfere.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := dbsqlite.Open(dsn)
	require.NoError(t, err, "SetupTestDB: Open")
	require.NoError(t, model.AutoMigrate(db), "SetupTestDB: AutoMigrate")
	return db
}

// SetupTestCache creates a LocalCache (no Redis required).
func SetupTestCache(t *testing.T) cache.Cache {
	t.Helper()
	c := cache.NewLocalCache(time.Hour)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// CreateUser inserts a user with a salt row and the legacy passhash for the
// given password, and returns the row.
func CreateUser(t *testing.T, db *gorm.DB, accountName, email, password string) *model.User {
	t.Helper()
	salt := uuid.NewString()[:8]
	u := &model.User{
		AccountName: accountName,
		NickName:    accountName,
		Email:       email,
		Passhash:    user.HashPassword(password, salt),
	}
	require.NoError(t, db.Create(u).Error, "CreateUser: user")
	require.NoError(t, db.Create(&model.Salt{UserID: u.ID, Salt: salt}).Error, "CreateUser: salt")
	return u
}

// CreateEntry inserts a diary entry with the given body and age. Older rows
// get earlier created_at values so recency ordering is deterministic.
func CreateEntry(t *testing.T, db *gorm.DB, userID int64, private bool, body string, age time.Duration) *model.Entry {
	t.Helper()
	e := &model.Entry{
		UserID:    userID,
		Private:   private,
		Body:      body,
		CreatedAt: time.Now().Add(-age),
	}
	require.NoError(t, db.Create(e).Error, "CreateEntry")
	return e
}

// CreateComment inserts a comment with the given age.
func CreateComment(t *testing.T, db *gorm.DB, entryID, userID int64, text string, age time.Duration) *model.Comment {
	t.Helper()
	c := &model.Comment{
		EntryID:   entryID,
		UserID:    userID,
		Comment:   text,
		CreatedAt: time.Now().Add(-age),
	}
	require.NoError(t, db.Create(c).Error, "CreateComment")
	return c
}

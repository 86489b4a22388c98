package repository

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"forumapi/internal/database"
	"forumapi/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB returns an isolated in-memory SQLite database with the forum schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A second connection would see a different in-memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), database.GormConfig())
	require.NoError(t, err)
	return gormDB, mock
}

// sequentialIDs yields "<prefix>-1", "<prefix>-2", ...
func sequentialIDs() IDGenerator {
	var n atomic.Int64
	return IDGeneratorFunc(func(prefix string) string {
		return fmt.Sprintf("%s-%d", prefix, n.Add(1))
	})
}

var baseTime = time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

func insertUser(t *testing.T, db *gorm.DB, id, username string) {
	t.Helper()
	require.NoError(t, db.Create(&models.User{ID: id, Username: username}).Error)
}

func insertThread(t *testing.T, db *gorm.DB, id, owner string) {
	t.Helper()
	require.NoError(t, db.Create(&models.Thread{
		ID: id, Title: "a thread", Body: "a body", Owner: owner, Date: baseTime,
	}).Error)
}

func insertComment(t *testing.T, db *gorm.DB, c models.Comment) {
	t.Helper()
	if c.Content == "" {
		c.Content = "a comment"
	}
	require.NoError(t, db.Create(&c).Error)
}

func insertReply(t *testing.T, db *gorm.DB, r models.Reply) {
	t.Helper()
	if r.Content == "" {
		r.Content = "a reply"
	}
	require.NoError(t, db.Create(&r).Error)
}

package service

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/multiblog/internal/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:service-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(db.SQLite(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err, "open test database")
	require.NoError(t, db.Migrate(gdb), "migrate test database")

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

func createUser(t *testing.T, gdb *gorm.DB, name string) db.User {
	t.Helper()
	user := db.User{Username: name, Password: "x"}
	require.NoError(t, gdb.Create(&user).Error)
	return user
}

func createCategory(t *testing.T, gdb *gorm.DB, name string, isNav bool, status db.Status) db.Category {
	t.Helper()
	category := db.Category{Name: name, IsNav: isNav, Status: status}
	require.NoError(t, gdb.Create(&category).Error)
	return category
}

func createTag(t *testing.T, gdb *gorm.DB, name string) db.Tag {
	t.Helper()
	tag := db.Tag{Name: name, Status: db.StatusNormal}
	require.NoError(t, gdb.Create(&tag).Error)
	return tag
}

type postFixture struct {
	Title      string
	Summary    string
	Status     db.Status
	CategoryID uint
	OwnerID    uint
	PV         uint
	Tags       []db.Tag
}

func createPost(t *testing.T, gdb *gorm.DB, f postFixture) db.Post {
	t.Helper()
	post := db.Post{
		Title:      f.Title,
		Summary:    f.Summary,
		Status:     f.Status,
		CategoryID: f.CategoryID,
		OwnerID:    f.OwnerID,
		PV:         f.PV,
		Tags:       f.Tags,
	}
	require.NoError(t, gdb.Omit("Category", "Owner").Create(&post).Error)
	return post
}

func postIDs(posts []db.Post) []uint {
	ids := make([]uint, 0, len(posts))
	for _, post := range posts {
		ids = append(ids, post.ID)
	}
	return ids
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

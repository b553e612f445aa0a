package db

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:db-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(SQLite(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, Migrate(gdb))

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

func TestIsVisible(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusNormal, true},
		{StatusDeleted, false},
		{StatusDraft, false},
		{Status(7), false},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, IsVisible(tt.status))
		})
	}
}

func TestParseStatusRoundTrip(t *testing.T) {
	for _, s := range []Status{StatusDeleted, StatusNormal, StatusDraft} {
		parsed, ok := ParseStatus(s.String())
		require.True(t, ok)
		assert.Equal(t, s, parsed)
	}

	_, ok := ParseStatus("archived")
	assert.False(t, ok)
}

func TestPostCountersStartAtOne(t *testing.T) {
	gdb := openTestDB(t)

	post := Post{Title: "hello", Status: StatusNormal}
	require.NoError(t, gdb.Create(&post).Error)

	var stored Post
	require.NoError(t, gdb.First(&stored, post.ID).Error)
	assert.Equal(t, uint(1), stored.PV)
	assert.Equal(t, uint(1), stored.UV)
}

func TestVisibleScopeFiltersStatuses(t *testing.T) {
	gdb := openTestDB(t)

	posts := []Post{
		{Title: "normal", Status: StatusNormal},
		{Title: "deleted", Status: StatusDeleted},
		{Title: "draft", Status: StatusDraft},
	}
	require.NoError(t, gdb.Create(&posts).Error)

	var visible []Post
	require.NoError(t, gdb.Scopes(Visible("posts")).Find(&visible).Error)
	require.Len(t, visible, 1)
	assert.Equal(t, "normal", visible[0].Title)
}

func TestEnsureUserCreatesOnce(t *testing.T) {
	gdb := openTestDB(t)

	require.NoError(t, EnsureUser(gdb, "admin", "secret"))
	require.NoError(t, EnsureUser(gdb, "admin", "other"))

	var count int64
	require.NoError(t, gdb.Model(&User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	user, err := Authenticate(gdb, "admin", "secret")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)

	_, err = Authenticate(gdb, "admin", "other")
	assert.Error(t, err)
}

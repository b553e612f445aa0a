package service

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/multiblog/internal/cache"
	"github.com/multiblog/internal/db"
	"github.com/multiblog/internal/metrics"
	"github.com/multiblog/internal/visitor"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type failingStore struct{}

func (failingStore) Add(context.Context, string, string, time.Duration) (bool, error) {
	return false, errors.New("cache down")
}
func (failingStore) Ping(context.Context) error { return errors.New("cache down") }
func (failingStore) Close() error               { return nil }

func loadCounters(t *testing.T, gdb *gorm.DB, id uint) (uint, uint) {
	t.Helper()
	var post db.Post
	require.NoError(t, gdb.First(&post, id).Error)
	return post.PV, post.UV
}

func TestRecordViewConcurrentVisitorsKeepEveryIncrement(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engagement.db") + "?_busy_timeout=10000&_journal_mode=WAL"
	gdb, err := db.Open(db.Options{Driver: "sqlite", Path: path})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	category := createCategory(t, gdb, "C", false, db.StatusNormal)
	post := createPost(t, gdb, postFixture{Title: "busy", Status: db.StatusNormal, CategoryID: category.ID})

	store := cache.NewMemoryStore()
	defer store.Close()
	svc := NewEngagementService(gdb, store, nil)

	const visitors = 50
	today := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	var failures int32
	var wg sync.WaitGroup
	for i := 0; i < visitors; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			delta, err := svc.RecordView(context.Background(), visitor.NewToken(), "/post/1/", post.ID, today)
			if err != nil || !delta.PV || !delta.UV {
				atomic.AddInt32(&failures, 1)
			}
		}()
	}
	wg.Wait()

	require.Zero(t, atomic.LoadInt32(&failures))
	pv, uv := loadCounters(t, gdb, post.ID)
	assert.EqualValues(t, visitors+1, pv)
	assert.EqualValues(t, visitors+1, uv)
}

func TestEngagementKeys(t *testing.T) {
	day := time.Date(2024, 5, 1, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "pv:abc:/post/1/", PVKey("abc", "/post/1/"))
	assert.Equal(t, "uv:abc:2024-05-01:/post/1/", UVKey("abc", day, "/post/1/"))
}

func TestRecordViewWindows(t *testing.T) {
	gdb := setupServiceTestDB(t)
	category := createCategory(t, gdb, "C", false, db.StatusNormal)
	post := createPost(t, gdb, postFixture{Title: "counted", Status: db.StatusNormal, CategoryID: category.ID})

	pv, uv := loadCounters(t, gdb, post.ID)
	require.EqualValues(t, 1, pv)
	require.EqualValues(t, 1, uv)

	clock := &fakeClock{now: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
	store := cache.NewMemoryStore(cache.WithClock(clock.Now))
	defer store.Close()

	m := metrics.New()
	svc := NewEngagementService(gdb, store, m)
	ctx := context.Background()
	v := visitor.Token("0123456789abcdef0123456789abcdef")
	path := "/post/1/"

	delta, err := svc.RecordView(ctx, v, path, post.ID, clock.Now())
	require.NoError(t, err)
	assert.Equal(t, CounterDelta{PV: true, UV: true}, delta)
	pv, uv = loadCounters(t, gdb, post.ID)
	assert.EqualValues(t, 2, pv)
	assert.EqualValues(t, 2, uv)

	clock.Advance(10 * time.Second)
	delta, err = svc.RecordView(ctx, v, path, post.ID, clock.Now())
	require.NoError(t, err)
	assert.Equal(t, CounterDelta{}, delta)
	pv, uv = loadCounters(t, gdb, post.ID)
	assert.EqualValues(t, 2, pv)
	assert.EqualValues(t, 2, uv)

	clock.Advance(65 * time.Second)
	delta, err = svc.RecordView(ctx, v, path, post.ID, clock.Now())
	require.NoError(t, err)
	assert.Equal(t, CounterDelta{PV: true}, delta)
	pv, uv = loadCounters(t, gdb, post.ID)
	assert.EqualValues(t, 3, pv)
	assert.EqualValues(t, 2, uv)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ViewsCounted.WithLabelValues("pv")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ViewsCounted.WithLabelValues("uv")))
}

func TestRecordViewCountsUVOncePerDay(t *testing.T) {
	gdb := setupServiceTestDB(t)
	category := createCategory(t, gdb, "C", false, db.StatusNormal)
	post := createPost(t, gdb, postFixture{Title: "daily", Status: db.StatusNormal, CategoryID: category.ID})

	clock := &fakeClock{now: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)}
	store := cache.NewMemoryStore(cache.WithClock(clock.Now))
	defer store.Close()

	svc := NewEngagementService(gdb, store, nil)
	ctx := context.Background()
	v := visitor.Token("ffffffffffffffffffffffffffffffff")

	for i := 0; i < 5; i++ {
		_, err := svc.RecordView(ctx, v, "/post/9/", post.ID, clock.Now())
		require.NoError(t, err)
		clock.Advance(2 * time.Minute)
	}
	_, uv := loadCounters(t, gdb, post.ID)
	assert.EqualValues(t, 2, uv, "one UV for the whole day")

	clock.Advance(24 * time.Hour)
	_, err := svc.RecordView(ctx, v, "/post/9/", post.ID, clock.Now())
	require.NoError(t, err)
	_, uv = loadCounters(t, gdb, post.ID)
	assert.EqualValues(t, 3, uv, "next day counts again")
}

func TestRecordViewSeparatesVisitorsAndPaths(t *testing.T) {
	gdb := setupServiceTestDB(t)
	category := createCategory(t, gdb, "C", false, db.StatusNormal)
	post := createPost(t, gdb, postFixture{Title: "shared", Status: db.StatusNormal, CategoryID: category.ID})

	store := cache.NewMemoryStore()
	defer store.Close()

	svc := NewEngagementService(gdb, store, nil)
	ctx := context.Background()
	now := time.Now()

	_, err := svc.RecordView(ctx, "visitor-a", "/post/1/", post.ID, now)
	require.NoError(t, err)
	_, err = svc.RecordView(ctx, "visitor-b", "/post/1/", post.ID, now)
	require.NoError(t, err)
	_, err = svc.RecordView(ctx, "visitor-a", "/post/1/?page=2", post.ID, now)
	require.NoError(t, err)

	pv, uv := loadCounters(t, gdb, post.ID)
	assert.EqualValues(t, 4, pv)
	assert.EqualValues(t, 4, uv)
}

func TestRecordViewFailsOpenOnCacheErrors(t *testing.T) {
	gdb := setupServiceTestDB(t)
	category := createCategory(t, gdb, "C", false, db.StatusNormal)
	post := createPost(t, gdb, postFixture{Title: "fail open", Status: db.StatusNormal, CategoryID: category.ID})

	m := metrics.New()
	svc := NewEngagementService(gdb, failingStore{}, m)

	for i := 0; i < 2; i++ {
		delta, err := svc.RecordView(context.Background(), "v", "/post/1/", post.ID, time.Now())
		require.NoError(t, err)
		assert.Equal(t, CounterDelta{PV: true, UV: true}, delta)
	}

	pv, uv := loadCounters(t, gdb, post.ID)
	assert.EqualValues(t, 3, pv)
	assert.EqualValues(t, 3, uv)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheErrors.WithLabelValues("pv")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheErrors.WithLabelValues("uv")))
}

func TestRecordViewMissingPost(t *testing.T) {
	gdb := setupServiceTestDB(t)
	store := cache.NewMemoryStore()
	defer store.Close()

	m := metrics.New()
	svc := NewEngagementService(gdb, store, m)

	_, err := svc.RecordView(context.Background(), "v", "/post/404/", 404, time.Now())
	assert.ErrorIs(t, err, ErrPostNotFound)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterUpdateFailures))
}

func TestEngagementTotals(t *testing.T) {
	gdb := setupServiceTestDB(t)
	category := createCategory(t, gdb, "C", false, db.StatusNormal)
	createPost(t, gdb, postFixture{Title: "a", Status: db.StatusNormal, CategoryID: category.ID, PV: 10})
	createPost(t, gdb, postFixture{Title: "b", Status: db.StatusDraft, CategoryID: category.ID, PV: 5})

	store := cache.NewMemoryStore()
	defer store.Close()

	totals, err := NewEngagementService(gdb, store, nil).Totals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Totals{Posts: 2, PV: 15, UV: 2}, totals)
}

package service

import (
	"context"
	"time"

	"github.com/multiblog/internal/cache"
	"github.com/multiblog/internal/db"
	"github.com/multiblog/internal/metrics"
	"github.com/multiblog/internal/visitor"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	// PVWindow 同一访客在此时间内重复访问同一路径不再计入 PV。
	PVWindow = 60 * time.Second
	// UVWindow 保证同一访客同一天对同一路径只计一次 UV。
	UVWindow = 24 * time.Hour
)

// CounterDelta describes which counters a single view incremented.
type CounterDelta struct {
	PV bool
	UV bool
}

// EngagementService 负责文章 PV/UV 的去重与计数。
type EngagementService struct {
	db      *gorm.DB
	store   cache.Store
	metrics *metrics.Metrics
}

// NewEngagementService creates an EngagementService. m may be nil.
func NewEngagementService(gdb *gorm.DB, store cache.Store, m *metrics.Metrics) *EngagementService {
	return &EngagementService{db: gdb, store: store, metrics: m}
}

// PVKey is the dedup marker for page views.
func PVKey(v visitor.Token, path string) string {
	return "pv:" + v.String() + ":" + path
}

// UVKey is the dedup marker for unique visitors on a calendar day.
func UVKey(v visitor.Token, day time.Time, path string) string {
	return "uv:" + v.String() + ":" + day.Format("2006-01-02") + ":" + path
}

// RecordView counts a view of post postID reached through path. A counter is
// incremented only when its marker was absent; the marker is set in the same
// step. Cache failures count the view anyway. The returned error reports a
// failed counter update and callers are expected to log it and carry on.
func (s *EngagementService) RecordView(ctx context.Context, v visitor.Token, path string, postID uint, today time.Time) (CounterDelta, error) {
	var delta CounterDelta
	delta.PV = s.mark(ctx, "pv", PVKey(v, path), PVWindow)
	delta.UV = s.mark(ctx, "uv", UVKey(v, today, path), UVWindow)

	if !delta.PV && !delta.UV {
		return delta, nil
	}

	updates := make(map[string]interface{}, 2)
	if delta.PV {
		updates["pv"] = gorm.Expr("pv + ?", 1)
	}
	if delta.UV {
		updates["uv"] = gorm.Expr("uv + ?", 1)
	}

	res := s.db.WithContext(ctx).Model(&db.Post{}).Where("id = ?", postID).UpdateColumns(updates)
	if res.Error != nil {
		s.updateFailed()
		return CounterDelta{}, res.Error
	}
	if res.RowsAffected == 0 {
		s.updateFailed()
		return CounterDelta{}, ErrPostNotFound
	}

	if s.metrics != nil {
		if delta.PV {
			s.metrics.ViewsCounted.WithLabelValues("pv").Inc()
		}
		if delta.UV {
			s.metrics.ViewsCounted.WithLabelValues("uv").Inc()
		}
	}
	return delta, nil
}

// mark reports whether the view should be counted for key.
func (s *EngagementService) mark(ctx context.Context, kind, key string, ttl time.Duration) bool {
	added, err := s.store.Add(ctx, key, "1", ttl)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"kind": kind,
			"key":  key,
		}).Warn("engagement cache unavailable, counting view")
		if s.metrics != nil {
			s.metrics.CacheErrors.WithLabelValues(kind).Inc()
		}
		return true
	}
	return added
}

func (s *EngagementService) updateFailed() {
	if s.metrics != nil {
		s.metrics.CounterUpdateFailures.Inc()
	}
}

// Totals 汇总所有文章的访问量，供后台概览使用。
type Totals struct {
	Posts int64
	PV    int64
	UV    int64
}

// Totals sums counters across every post regardless of status.
func (s *EngagementService) Totals(ctx context.Context) (Totals, error) {
	var row struct {
		Posts int64
		PV    int64
		UV    int64
	}
	err := s.db.WithContext(ctx).Model(&db.Post{}).
		Select("COUNT(*) AS posts, COALESCE(SUM(pv), 0) AS pv, COALESCE(SUM(uv), 0) AS uv").
		Scan(&row).Error
	if err != nil {
		return Totals{}, err
	}
	return Totals{Posts: row.Posts, PV: row.PV, UV: row.UV}, nil
}

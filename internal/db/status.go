package db

import (
	"fmt"

	"gorm.io/gorm"
)

// Status 是文章、分类、标签、评论与友链共用的可见性状态。
type Status int

const (
	StatusDeleted Status = 0
	StatusNormal  Status = 1
	StatusDraft   Status = 2
)

// String returns the admin-facing label.
func (s Status) String() string {
	switch s {
	case StatusDeleted:
		return "deleted"
	case StatusNormal:
		return "normal"
	case StatusDraft:
		return "draft"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// ParseStatus maps an admin label back to a Status.
func ParseStatus(label string) (Status, bool) {
	switch label {
	case "deleted":
		return StatusDeleted, true
	case "normal":
		return StatusNormal, true
	case "draft":
		return StatusDraft, true
	}
	return 0, false
}

// IsVisible reports whether content with the given status may be served publicly.
func IsVisible(status Status) bool {
	return status == StatusNormal
}

// Visible returns a scope restricting table to publicly visible rows.
// Every public listing, search and detail lookup goes through it.
func Visible(table string) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where(fmt.Sprintf("%s.status = ?", table), StatusNormal)
	}
}

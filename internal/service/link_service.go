package service

import (
	"strings"

	"github.com/multiblog/internal/db"
	"gorm.io/gorm"
)

// LinkService 管理友情链接。
type LinkService struct {
	db *gorm.DB
}

// LinkInput represents fields accepted when creating a link.
type LinkInput struct {
	Title   string
	Href    string
	Weight  int
	OwnerID uint
}

// NewLinkService creates a LinkService instance.
func NewLinkService(gdb *gorm.DB) *LinkService {
	return &LinkService{db: gdb}
}

// ListVisible returns visible links, heaviest first.
func (s *LinkService) ListVisible() ([]db.Link, error) {
	var links []db.Link
	if err := s.db.Scopes(db.Visible("links")).Order("weight desc").Order("id desc").Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// Create inserts a visible link.
func (s *LinkService) Create(input LinkInput) (*db.Link, error) {
	title := strings.TrimSpace(input.Title)
	href := strings.TrimSpace(input.Href)
	if title == "" || href == "" {
		return nil, ErrNameRequired
	}
	link := db.Link{Title: title, Href: href, Weight: input.Weight, Status: db.StatusNormal, OwnerID: input.OwnerID}
	if err := s.db.Create(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// SetStatus hides or restores a link.
func (s *LinkService) SetStatus(id uint, status db.Status) error {
	res := s.db.Model(&db.Link{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrLinkNotFound
	}
	return nil
}

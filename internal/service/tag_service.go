package service

import (
	"errors"
	"strings"

	"github.com/multiblog/internal/db"
	"gorm.io/gorm"
)

// TagService wraps tag related operations.
type TagService struct {
	db *gorm.DB
}

// TagUsage 描述标签在公开文章中的使用次数
type TagUsage struct {
	ID    uint
	Name  string
	Count int64
}

// NewTagService creates a TagService instance.
func NewTagService(gdb *gorm.DB) *TagService {
	return &TagService{db: gdb}
}

// List returns all tags ordered by name.
func (s *TagService) List() ([]db.Tag, error) {
	var tags []db.Tag
	if err := s.db.Order("name asc").Order("id asc").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// VisibleUsage counts visible posts per visible tag, skipping unused tags.
func (s *TagService) VisibleUsage() ([]TagUsage, error) {
	var usages []TagUsage
	err := s.db.Table("tags").
		Select("tags.id, tags.name, COUNT(DISTINCT posts.id) AS count").
		Joins("JOIN post_tags ON post_tags.tag_id = tags.id").
		Joins("JOIN posts ON posts.id = post_tags.post_id").
		Where("tags.status = ? AND posts.status = ?", db.StatusNormal, db.StatusNormal).
		Where("tags.deleted_at IS NULL AND posts.deleted_at IS NULL").
		Group("tags.id, tags.name").
		Order("tags.name asc").
		Scan(&usages).Error
	if err != nil {
		return nil, err
	}
	return usages, nil
}

// Create inserts a new tag with unique name.
func (s *TagService) Create(name string, ownerID uint) (*db.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	var existing db.Tag
	if err := s.db.Where("name = ?", name).First(&existing).Error; err == nil {
		return nil, ErrTagExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag := db.Tag{Name: name, OwnerID: ownerID, Status: db.StatusNormal}
	if err := s.db.Create(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// Update changes the tag name while keeping uniqueness, and optionally its status.
func (s *TagService) Update(id uint, name string, status *db.Status) (*db.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	var tag db.Tag
	if err := s.db.First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}

	var existing db.Tag
	if err := s.db.Where("name = ? AND id <> ?", name, id).First(&existing).Error; err == nil {
		return nil, ErrTagExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag.Name = name
	if status != nil {
		tag.Status = *status
	}
	if err := s.db.Save(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

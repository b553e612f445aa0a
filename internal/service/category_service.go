package service

import (
	"errors"
	"strings"

	"github.com/multiblog/internal/db"
	"gorm.io/gorm"
)

// CategoryService wraps category related operations.
type CategoryService struct {
	db *gorm.DB
}

// CategoryInput represents fields accepted when creating or updating a category.
type CategoryInput struct {
	Name    string
	IsNav   bool
	Status  *db.Status
	OwnerID uint
}

// NewCategoryService creates a CategoryService instance.
func NewCategoryService(gdb *gorm.DB) *CategoryService {
	return &CategoryService{db: gdb}
}

// Navigation 是导航栏分类与普通分类的划分结果。
type Navigation struct {
	Navs       []db.Category
	Categories []db.Category
}

// NavsAndCategories splits categories into navigation entries and the rest.
// Both groups keep the input order.
func NavsAndCategories(categories []db.Category) Navigation {
	nav := Navigation{
		Navs:       make([]db.Category, 0, len(categories)),
		Categories: make([]db.Category, 0, len(categories)),
	}
	for _, category := range categories {
		if category.IsNav {
			nav.Navs = append(nav.Navs, category)
		} else {
			nav.Categories = append(nav.Categories, category)
		}
	}
	return nav
}

// Navs loads visible categories ordered by id and partitions them.
func (s *CategoryService) Navs() (Navigation, error) {
	var categories []db.Category
	if err := s.db.Scopes(db.Visible("categories")).Order("id asc").Find(&categories).Error; err != nil {
		return Navigation{}, err
	}
	return NavsAndCategories(categories), nil
}

// List returns every category for the admin.
func (s *CategoryService) List() ([]db.Category, error) {
	var categories []db.Category
	if err := s.db.Order("id asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Get fetches a category by id regardless of status.
func (s *CategoryService) Get(id uint) (*db.Category, error) {
	var category db.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// Create inserts a category. Status defaults to normal.
func (s *CategoryService) Create(input CategoryInput) (*db.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	category := db.Category{Name: name, IsNav: input.IsNav, Status: db.StatusNormal, OwnerID: input.OwnerID}
	if input.Status != nil {
		category.Status = *input.Status
	}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// Update changes name, navigation flag and optionally status.
func (s *CategoryService) Update(id uint, input CategoryInput) (*db.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	category, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	category.Name = name
	category.IsNav = input.IsNav
	if input.Status != nil {
		category.Status = *input.Status
	}
	if err := s.db.Save(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

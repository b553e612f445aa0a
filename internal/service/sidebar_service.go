package service

import (
	"errors"
	"html/template"
	"strings"

	"github.com/multiblog/internal/db"
	"gorm.io/gorm"
)

const sidebarCommentLimit = 5

// SidebarBlock is a sidebar resolved to the data it displays.
type SidebarBlock struct {
	Title    string
	Type     db.SidebarType
	HTML     template.HTML
	Posts    []db.Post
	Comments []db.Comment
}

// SidebarInput represents fields accepted when creating a sidebar.
type SidebarInput struct {
	Title       string
	DisplayType db.SidebarType
	Content     string
	OwnerID     uint
}

// SidebarService 根据配置组装侧边栏内容。
type SidebarService struct {
	db       *gorm.DB
	posts    *PostService
	comments *CommentService
}

// NewSidebarService creates a SidebarService instance.
func NewSidebarService(gdb *gorm.DB, posts *PostService, comments *CommentService) *SidebarService {
	return &SidebarService{db: gdb, posts: posts, comments: comments}
}

// Blocks returns every shown sidebar in id order with its data loaded.
func (s *SidebarService) Blocks() ([]SidebarBlock, error) {
	var sidebars []db.Sidebar
	if err := s.db.Where("status = ?", db.SidebarShown).Order("id asc").Find(&sidebars).Error; err != nil {
		return nil, err
	}

	blocks := make([]SidebarBlock, 0, len(sidebars))
	for _, sidebar := range sidebars {
		block := SidebarBlock{Title: sidebar.Title, Type: sidebar.DisplayType}
		switch sidebar.DisplayType {
		case db.SidebarHTML:
			block.HTML = template.HTML(SanitizeHTML(sidebar.Content))
		case db.SidebarLatest:
			page, err := s.posts.Latest(1)
			if err != nil {
				return nil, err
			}
			block.Posts = page.Posts
		case db.SidebarHottest:
			page, err := s.posts.Hottest(1)
			if err != nil {
				return nil, err
			}
			block.Posts = page.Posts
		case db.SidebarComments:
			comments, err := s.comments.Recent(sidebarCommentLimit)
			if err != nil {
				return nil, err
			}
			block.Comments = comments
		default:
			continue
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}

// Create inserts a shown sidebar.
func (s *SidebarService) Create(input SidebarInput) (*db.Sidebar, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	switch input.DisplayType {
	case db.SidebarHTML, db.SidebarLatest, db.SidebarHottest, db.SidebarComments:
	default:
		return nil, ErrInvalidArgument
	}

	sidebar := db.Sidebar{
		Title:       title,
		DisplayType: input.DisplayType,
		Content:     input.Content,
		Status:      db.SidebarShown,
		OwnerID:     input.OwnerID,
	}
	if err := s.db.Create(&sidebar).Error; err != nil {
		return nil, err
	}
	return &sidebar, nil
}

// SetShown hides or shows a sidebar.
func (s *SidebarService) SetShown(id uint, shown bool) error {
	status := db.SidebarHidden
	if shown {
		status = db.SidebarShown
	}
	res := s.db.Model(&db.Sidebar{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrSidebarNotFound
	}
	return nil
}

// Get fetches a sidebar by id.
func (s *SidebarService) Get(id uint) (*db.Sidebar, error) {
	var sidebar db.Sidebar
	if err := s.db.First(&sidebar, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSidebarNotFound
		}
		return nil, err
	}
	return &sidebar, nil
}

package service

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/multiblog/internal/db"
	"gorm.io/gorm"
)

const minCommentRunes = 10

// CommentInput is a visitor submitted comment.
type CommentInput struct {
	Target   string `validate:"required,max=255"`
	Nickname string `validate:"required,max=50"`
	Email    string `validate:"required,email,max=50"`
	Website  string `validate:"omitempty,url,max=100"`
	Content  string `validate:"required,max=2000"`
}

// CommentService 负责评论的创建、审核与查询。
type CommentService struct {
	db       *gorm.DB
	validate *validator.Validate
}

// NewCommentService creates a CommentService instance.
func NewCommentService(gdb *gorm.DB) *CommentService {
	return &CommentService{db: gdb, validate: validator.New()}
}

// Create validates input, renders the Markdown body and stores a visible comment.
func (s *CommentService) Create(input CommentInput) (*db.Comment, error) {
	input.Target = strings.TrimSpace(input.Target)
	input.Nickname = strings.TrimSpace(input.Nickname)
	input.Email = strings.TrimSpace(input.Email)
	input.Website = strings.TrimSpace(input.Website)
	input.Content = strings.TrimSpace(input.Content)

	if utf8.RuneCountInString(input.Content) < minCommentRunes {
		return nil, ErrCommentTooShort
	}
	if err := s.validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, fmt.Errorf("%w: %s", ErrInvalidComment, verrs[0].Field())
		}
		return nil, err
	}
	if !isLocalPath(input.Target) {
		return nil, fmt.Errorf("%w: Target", ErrInvalidComment)
	}

	html, err := RenderMarkdown(input.Content)
	if err != nil {
		return nil, fmt.Errorf("render comment: %w", err)
	}

	comment := db.Comment{
		Target:   input.Target,
		Nickname: input.Nickname,
		Email:    input.Email,
		Website:  input.Website,
		Content:  html,
		Status:   db.StatusNormal,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByTarget returns visible comments for a page path, newest first.
func (s *CommentService) ListByTarget(target string) ([]db.Comment, error) {
	var comments []db.Comment
	if err := s.db.Scopes(db.Visible("comments")).
		Where("target = ?", target).
		Order("id desc").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// Recent returns the newest visible comments.
func (s *CommentService) Recent(limit int) ([]db.Comment, error) {
	if limit <= 0 {
		limit = 10
	}
	var comments []db.Comment
	if err := s.db.Scopes(db.Visible("comments")).Order("id desc").Limit(limit).Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// List returns comments of every status for moderation, newest first.
func (s *CommentService) List(limit int) ([]db.Comment, error) {
	if limit <= 0 {
		limit = 50
	}
	var comments []db.Comment
	if err := s.db.Order("id desc").Limit(limit).Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// SetStatus moderates a comment. Comments are either normal or deleted.
func (s *CommentService) SetStatus(id uint, status db.Status) error {
	if status != db.StatusNormal && status != db.StatusDeleted {
		return ErrInvalidStatus
	}
	res := s.db.Model(&db.Comment{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}

// isLocalPath accepts site-relative paths only, so redirects stay on the site.
// Browsers drop tabs and newlines from URLs, so "/\t/host" would become "//host".
func isLocalPath(target string) bool {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.Contains(target, "\\") {
		return false
	}
	if strings.IndexFunc(target, func(r rune) bool { return r < 0x20 || r == 0x7f }) != -1 {
		return false
	}
	u, err := url.Parse(target)
	return err == nil && u.Scheme == "" && u.Host == ""
}

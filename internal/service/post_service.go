package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/multiblog/internal/db"
	"gorm.io/gorm"
)

// PageSize is the number of posts on every public listing page.
const PageSize = 5

// PostService wraps post related database operations.
type PostService struct {
	db *gorm.DB
}

// PostPage 是一页公开文章列表。
type PostPage struct {
	Posts      []db.Post
	Page       int
	PerPage    int
	Total      int64
	TotalPages int
}

// HasPrev reports whether a previous page exists.
func (p *PostPage) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a further page exists.
func (p *PostPage) HasNext() bool { return p.Page < p.TotalPages }

// PrevPage returns the previous page number.
func (p *PostPage) PrevPage() int { return p.Page - 1 }

// NextPage returns the next page number.
func (p *PostPage) NextPage() int { return p.Page + 1 }

// PostInput represents fields accepted when creating or updating a post.
type PostInput struct {
	Title      string
	Summary    string
	Content    string
	Status     *db.Status
	CategoryID uint
	TagIDs     []uint
	OwnerID    uint
}

// PostFilter describes filters for the admin listing.
type PostFilter struct {
	Search  string
	Status  *db.Status
	Page    int
	PerPage int
}

// PostListResult aggregates the admin listing.
type PostListResult struct {
	Posts      []db.Post
	Total      int64
	TotalPages int
	Page       int
	PerPage    int
}

// NewPostService creates a PostService instance.
func NewPostService(gdb *gorm.DB) *PostService {
	return &PostService{db: gdb}
}

// ParsePage converts the raw ?page= value. An absent value means page 1.
func ParsePage(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, ErrInvalidPage
	}
	return page, nil
}

// ParseID converts a path id segment.
func ParseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidID
	}
	return uint(id), nil
}

// Latest lists visible posts, newest first.
func (s *PostService) Latest(page int) (*PostPage, error) {
	return s.paginate(page, "posts.id desc")
}

// Hottest lists visible posts by page views.
func (s *PostService) Hottest(page int) (*PostPage, error) {
	return s.paginate(page, "posts.pv desc, posts.id desc")
}

// ByCategory lists visible posts of a category. The category itself only has
// to exist; its own status is not checked.
func (s *PostService) ByCategory(categoryID uint, page int) (*PostPage, *db.Category, error) {
	var category db.Category
	if err := s.db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrCategoryNotFound
		}
		return nil, nil, err
	}

	result, err := s.paginate(page, "posts.id desc", func(tx *gorm.DB) *gorm.DB {
		return tx.Where("posts.category_id = ?", categoryID)
	})
	if err != nil {
		return nil, nil, err
	}
	return result, &category, nil
}

// ByTag lists visible posts carrying a tag.
func (s *PostService) ByTag(tagID uint, page int) (*PostPage, *db.Tag, error) {
	var tag db.Tag
	if err := s.db.First(&tag, tagID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrTagNotFound
		}
		return nil, nil, err
	}

	result, err := s.paginate(page, "posts.id desc", func(tx *gorm.DB) *gorm.DB {
		return tx.Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Where("post_tags.tag_id = ?", tagID)
	})
	if err != nil {
		return nil, nil, err
	}
	return result, &tag, nil
}

// ByAuthor lists visible posts of an owner. An unknown owner yields an empty page.
func (s *PostService) ByAuthor(ownerID uint, page int) (*PostPage, error) {
	return s.paginate(page, "posts.id desc", func(tx *gorm.DB) *gorm.DB {
		return tx.Where("posts.owner_id = ?", ownerID)
	})
}

// Search matches keyword case-insensitively against title and summary.
// An empty keyword behaves exactly like Latest.
func (s *PostService) Search(keyword string, page int) (*PostPage, error) {
	if keyword == "" {
		return s.Latest(page)
	}

	pattern := "%" + escapeLike(keyword) + "%"
	return s.paginate(page, "posts.id desc", func(tx *gorm.DB) *gorm.DB {
		return tx.Where(s.containsClause("posts.title", "posts.summary"), pattern, pattern)
	})
}

// containsClause ORs a case-insensitive LIKE over columns, one placeholder each.
// Postgres folds Unicode with ILIKE; sqlite uses the driver-registered db.UnicodeLower.
func (s *PostService) containsClause(columns ...string) string {
	parts := make([]string, 0, len(columns))
	for _, column := range columns {
		if s.db.Dialector.Name() == "postgres" {
			parts = append(parts, column+" ILIKE ? ESCAPE '\\'")
		} else {
			parts = append(parts, db.UnicodeLower+"("+column+") LIKE "+db.UnicodeLower+"(?) ESCAPE '\\'")
		}
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

// GetVisible fetches a single post that may be shown publicly.
func (s *PostService) GetVisible(id uint) (*db.Post, error) {
	var post db.Post
	err := s.db.Scopes(db.Visible("posts")).
		Preload("Category").Preload("Owner").Preload("Tags").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (s *PostService) paginate(page int, order string, filters ...func(*gorm.DB) *gorm.DB) (*PostPage, error) {
	if page < 1 {
		return nil, ErrInvalidPage
	}

	scopes := append([]func(*gorm.DB) *gorm.DB{db.Visible("posts")}, filters...)
	result := &PostPage{Page: page, PerPage: PageSize}

	if err := s.db.Model(&db.Post{}).Scopes(scopes...).Count(&result.Total).Error; err != nil {
		return nil, err
	}
	result.TotalPages = totalPages(result.Total, PageSize)

	posts := make([]db.Post, 0, PageSize)
	if err := s.db.Model(&db.Post{}).Scopes(scopes...).
		Preload("Category").Preload("Owner").Preload("Tags").
		Order(order).
		Limit(PageSize).
		Offset((page - 1) * PageSize).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	result.Posts = posts
	return result, nil
}

// Get fetches a post by id regardless of status.
func (s *PostService) Get(id uint) (*db.Post, error) {
	var post db.Post
	if err := s.db.Preload("Category").Preload("Tags").Preload("Owner").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// List provides the paginated admin listing across all statuses.
func (s *PostService) List(filter PostFilter) (*PostListResult, error) {
	result := &PostListResult{Page: filter.Page, PerPage: filter.PerPage}
	if result.Page <= 0 {
		result.Page = 1
	}
	if result.PerPage <= 0 {
		result.PerPage = 20
	}

	apply := func(tx *gorm.DB) *gorm.DB {
		if filter.Status != nil {
			tx = tx.Where("posts.status = ?", *filter.Status)
		}
		if search := strings.TrimSpace(filter.Search); search != "" {
			pattern := "%" + escapeLike(search) + "%"
			tx = tx.Where(s.containsClause("posts.title"), pattern)
		}
		return tx
	}

	if err := s.db.Model(&db.Post{}).Scopes(apply).Count(&result.Total).Error; err != nil {
		return nil, err
	}
	result.TotalPages = totalPages(result.Total, result.PerPage)

	if err := s.db.Model(&db.Post{}).Scopes(apply).
		Preload("Category").Preload("Tags").Preload("Owner").
		Order("posts.id desc").
		Limit(result.PerPage).
		Offset((result.Page - 1) * result.PerPage).
		Find(&result.Posts).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// Create persists a post and associates tags in a transaction.
func (s *PostService) Create(input PostInput) (*db.Post, error) {
	post := db.Post{Status: db.StatusNormal, OwnerID: input.OwnerID}
	if err := s.apply(&post, input); err != nil {
		return nil, err
	}
	return s.saveWithTags(&post, input.TagIDs)
}

// Update applies updates to an existing post. Counters are left untouched.
func (s *PostService) Update(id uint, input PostInput) (*db.Post, error) {
	var existing db.Post
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if err := s.apply(&existing, input); err != nil {
		return nil, err
	}
	return s.saveWithTags(&existing, input.TagIDs)
}

// SetStatus changes only the status of a post.
func (s *PostService) SetStatus(id uint, status db.Status) error {
	if _, ok := db.ParseStatus(status.String()); !ok {
		return ErrInvalidStatus
	}
	res := s.db.Model(&db.Post{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

// Delete soft-deletes a post by moving it to StatusDeleted.
func (s *PostService) Delete(id uint) error {
	return s.SetStatus(id, db.StatusDeleted)
}

func (s *PostService) apply(post *db.Post, input PostInput) error {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return ErrTitleRequired
	}

	var count int64
	if err := s.db.Model(&db.Category{}).Where("id = ?", input.CategoryID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrCategoryNotFound
	}

	html, err := RenderMarkdown(input.Content)
	if err != nil {
		return fmt.Errorf("render post content: %w", err)
	}

	post.Title = title
	post.Summary = strings.TrimSpace(input.Summary)
	post.Content = input.Content
	post.ContentHTML = html
	post.CategoryID = input.CategoryID
	if input.Status != nil {
		post.Status = *input.Status
	}
	return nil
}

func (s *PostService) saveWithTags(post *db.Post, tagIDs []uint) (*db.Post, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var tags []db.Tag
		if len(tagIDs) > 0 {
			if err := tx.Where("id IN ?", tagIDs).Find(&tags).Error; err != nil {
				return err
			}
			if len(tags) != len(uniqueIDs(tagIDs)) {
				return ErrTagNotFound
			}
		}

		if err := tx.Omit("Tags", "Category", "Owner").Save(post).Error; err != nil {
			return err
		}
		if len(tags) == 0 {
			return tx.Model(post).Association("Tags").Clear()
		}
		return tx.Model(post).Association("Tags").Replace(tags)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(post.ID)
}

func uniqueIDs(ids []uint) map[uint]struct{} {
	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func totalPages(total int64, perPage int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// escapeLike escapes LIKE wildcards so a keyword matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

package service

import (
	"errors"
	"fmt"
)

// Error kinds. Concrete errors wrap one of these so the HTTP boundary can map
// them with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

var (
	ErrPostNotFound     = fmt.Errorf("post %w", ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("category %w", ErrNotFound)
	ErrTagNotFound      = fmt.Errorf("tag %w", ErrNotFound)
	ErrCommentNotFound  = fmt.Errorf("comment %w", ErrNotFound)
	ErrLinkNotFound     = fmt.Errorf("link %w", ErrNotFound)
	ErrSidebarNotFound  = fmt.Errorf("sidebar %w", ErrNotFound)

	ErrInvalidPage     = fmt.Errorf("%w: page must be a positive integer", ErrInvalidArgument)
	ErrInvalidID       = fmt.Errorf("%w: id must be a positive integer", ErrInvalidArgument)
	ErrInvalidStatus   = fmt.Errorf("%w: unknown status", ErrInvalidArgument)
	ErrTitleRequired   = fmt.Errorf("%w: title is required", ErrInvalidArgument)
	ErrNameRequired    = fmt.Errorf("%w: name is required", ErrInvalidArgument)
	ErrTagExists       = fmt.Errorf("%w: tag already exists", ErrInvalidArgument)
	ErrCommentTooShort = fmt.Errorf("%w: comment must be at least %d characters", ErrInvalidArgument, minCommentRunes)
	ErrInvalidComment  = fmt.Errorf("%w: comment fields are invalid", ErrInvalidArgument)
)

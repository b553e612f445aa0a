package service

import (
	"testing"

	"github.com/multiblog/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func categoryNames(categories []db.Category) []string {
	names := make([]string, 0, len(categories))
	for _, category := range categories {
		names = append(names, category.Name)
	}
	return names
}

func TestNavsAndCategoriesPartitionsInOrder(t *testing.T) {
	input := []db.Category{
		{Name: "a", IsNav: true},
		{Name: "b"},
		{Name: "c", IsNav: true},
		{Name: "d"},
	}

	nav := NavsAndCategories(input)
	assert.Equal(t, []string{"a", "c"}, categoryNames(nav.Navs))
	assert.Equal(t, []string{"b", "d"}, categoryNames(nav.Categories))

	empty := NavsAndCategories(nil)
	assert.Empty(t, empty.Navs)
	assert.Empty(t, empty.Categories)
}

func TestCategoryServiceNavsSkipsHidden(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewCategoryService(gdb)

	createCategory(t, gdb, "Home", true, db.StatusNormal)
	createCategory(t, gdb, "Drafts", true, db.StatusDraft)
	createCategory(t, gdb, "Go", false, db.StatusNormal)
	createCategory(t, gdb, "About", true, db.StatusNormal)
	createCategory(t, gdb, "Old", false, db.StatusDeleted)

	nav, err := svc.Navs()
	require.NoError(t, err)
	assert.Equal(t, []string{"Home", "About"}, categoryNames(nav.Navs))
	assert.Equal(t, []string{"Go"}, categoryNames(nav.Categories))
}

func TestCategoryServiceCreateUpdate(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewCategoryService(gdb)

	_, err := svc.Create(CategoryInput{Name: "  "})
	assert.ErrorIs(t, err, ErrNameRequired)

	category, err := svc.Create(CategoryInput{Name: "Go", IsNav: true})
	require.NoError(t, err)
	assert.Equal(t, db.StatusNormal, category.Status)

	draft := db.StatusDraft
	updated, err := svc.Update(category.ID, CategoryInput{Name: "Golang", Status: &draft})
	require.NoError(t, err)
	assert.Equal(t, "Golang", updated.Name)
	assert.False(t, updated.IsNav)
	assert.Equal(t, db.StatusDraft, updated.Status)

	_, err = svc.Update(999, CategoryInput{Name: "x"})
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	all, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

package service

import (
	"testing"

	"github.com/multiblog/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkServiceListVisibleOrdering(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewLinkService(gdb)

	light, err := svc.Create(LinkInput{Title: "light", Href: "https://light.example", Weight: 1})
	require.NoError(t, err)
	heavy, err := svc.Create(LinkInput{Title: "heavy", Href: "https://heavy.example", Weight: 10})
	require.NoError(t, err)
	tie, err := svc.Create(LinkInput{Title: "tie", Href: "https://tie.example", Weight: 10})
	require.NoError(t, err)
	hidden, err := svc.Create(LinkInput{Title: "hidden", Href: "https://hidden.example", Weight: 99})
	require.NoError(t, err)
	require.NoError(t, svc.SetStatus(hidden.ID, db.StatusDeleted))

	links, err := svc.ListVisible()
	require.NoError(t, err)

	ids := make([]uint, 0, len(links))
	for _, link := range links {
		ids = append(ids, link.ID)
	}
	assert.Equal(t, []uint{tie.ID, heavy.ID, light.ID}, ids)

	_, err = svc.Create(LinkInput{Title: "", Href: "https://x.example"})
	assert.ErrorIs(t, err, ErrNameRequired)
	assert.ErrorIs(t, svc.SetStatus(999, db.StatusNormal), ErrLinkNotFound)
}

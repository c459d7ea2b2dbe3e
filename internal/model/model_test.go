package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSortByRecency(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rs := []Recipient{
		{Name: "old", LastActivity: now.Add(-time.Hour)},
		{Name: "bob", LastActivity: now},
		{Name: "Alice", LastActivity: now},
		{Name: "never"},
	}

	SortByRecency(rs)

	var names []string
	for _, r := range rs {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"Alice", "bob", "old", "never"}, names)
}

func TestRecipientViews(t *testing.T) {
	c := Contact{ID: "c1", Number: "+15550002"}
	assert.Equal(t, "+15550002", c.Recipient().Name, "number stands in for a missing name")
	assert.Equal(t, KindContact, c.Recipient().Kind)

	g := Group{ID: "g1", Name: "climbing", Members: []string{"a", "b"}}
	assert.Equal(t, KindGroup, g.Recipient().Kind)
	assert.Len(t, g.Recipient().Members, 2)

	assert.Equal(t, "Work (+1555)", Account{Number: "+1555", Name: "Work"}.Label())
	assert.Equal(t, "+1555", Account{Number: "+1555"}.Label())
}

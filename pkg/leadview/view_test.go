package leadview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Keerthan22-sys/Instigar/pkg/models"
	"github.com/Keerthan22-sys/Instigar/pkg/testdata"
)

func generated(t *testing.T, count int) []models.Lead {
	t.Helper()
	cfg := testdata.DefaultConfig(count)
	cfg.Seed = 42
	records := testdata.GenerateLeads(cfg)
	leads := make([]models.Lead, 0, len(records))
	for _, r := range records {
		leads = append(leads, r.ToLead())
	}
	return leads
}

func TestApply_DefaultStateOverGeneratedCollection(t *testing.T) {
	leads := generated(t, 120)

	page, total := Apply(leads, DefaultViewState())

	assert.Equal(t, 120, total)
	require.Len(t, page.Items, DefaultPageSize)
	assert.Equal(t, 6, page.TotalPages)
	assert.Equal(t, []int{1, 2, 3, 4, Ellipsis, 6}, page.PageNumbers)

	for i := 1; i < len(page.Items); i++ {
		prev, cur := page.Items[i-1], page.Items[i]
		assert.False(t, prev.DateAdded.Before(cur.DateAdded), "most recent first")
	}
}

func TestApply_FilterThenPaginateConsistency(t *testing.T) {
	leads := generated(t, 120)

	state := DefaultViewState()
	state.Filter.Filters = map[Category][]string{
		CategoryStage: {"Qualified"},
	}

	_, total := Apply(leads, state)

	manual := 0
	for _, l := range leads {
		if l.Stage == models.StageQualified {
			manual++
		}
	}
	assert.Equal(t, manual, total)

	// Walk every page; together they cover exactly the filtered set.
	seen := 0
	for p := 1; ; p++ {
		state.Page = p
		page, _ := Apply(leads, state)
		if len(page.Items) == 0 {
			break
		}
		seen += len(page.Items)
	}
	assert.Equal(t, total, seen)
}

package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleSearchURL(t *testing.T) {
	q, err := NewSimpleSearch()
	require.NoError(t, err)

	require.NoError(t, q.Apply(map[string]any{
		"what":       "python",
		"where":      "New York City, New York",
		"job_type":   "fulltime",
		"experience": "mid_level",
	}))

	u, err := q.URL()
	require.NoError(t, err)

	assert.Contains(t, u, "q=python")
	assert.Contains(t, u, "l=New+York+City%2C+New+York")
	assert.Contains(t, u, "jt=fulltime")
	assert.Contains(t, u, "explvl=mid_level")
	assert.NotContains(t, u, "start=", "start is omitted until the walker assigns it")
}

func TestSimpleSearchSalaryFoldsIntoQuery(t *testing.T) {
	q, err := NewSimpleSearch()
	require.NoError(t, err)

	require.NoError(t, q.Set("what", "python"))
	require.NoError(t, q.Set("where", "Remote"))
	require.NoError(t, q.Set("min_salary", 90000))

	u, err := q.URL()
	require.NoError(t, err)
	assert.Contains(t, u, "q=python+%2490000")
}

func TestSimpleSearchRequiresWhere(t *testing.T) {
	q, err := NewSimpleSearch()
	require.NoError(t, err)
	require.NoError(t, q.Set("what", "python"))

	_, err = q.URL()
	var me *MissingFieldError
	require.ErrorAs(t, err, &me)
}

func TestAdvancedSearchURL(t *testing.T) {
	q, err := NewAdvancedSearch()
	require.NoError(t, err)

	require.NoError(t, q.Apply(map[string]any{
		"title_words": "python",
		"none_words":  "C# .NET VBA",
		"where":       "New York City, New York",
		"job_type":    "fulltime",
		"experience":  "mid_level",
	}))

	u, err := q.URL()
	require.NoError(t, err)

	assert.Contains(t, u, "as_ttl=python")
	assert.Contains(t, u, "as_not=C%23+.NET+VBA")
	assert.Contains(t, u, "psf=advsrch")
	assert.Contains(t, u, "from=advancedsearch")
}

func TestAdvancedSearchMarkersAlwaysPresent(t *testing.T) {
	q, err := NewAdvancedSearch()
	require.NoError(t, err)
	require.NoError(t, q.Set("where", "Remote"))

	// Never explicitly set, yet always serialized.
	u, err := q.URL()
	require.NoError(t, err)
	assert.Contains(t, u, "psf=advsrch")
	assert.Contains(t, u, "from=advancedsearch")

	// And they reject reassignment.
	var ve *ValueError
	require.ErrorAs(t, q.Set("psf", "other"), &ve)
}

func TestAdvancedSearchChoiceFields(t *testing.T) {
	q, err := NewAdvancedSearch()
	require.NoError(t, err)

	assert.NoError(t, q.Set("sort_by", "date"))
	assert.Error(t, q.Set("sort_by", "salary"))

	assert.NoError(t, q.Set("limit", 50))
	assert.Error(t, q.Set("limit", 25))

	assert.NoError(t, q.Set("age", "last"))
	assert.NoError(t, q.Set("age", 15))
	assert.Error(t, q.Set("age", 4))
}

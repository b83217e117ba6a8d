package query

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQuery(t *testing.T) *Query {
	t.Helper()
	q, err := New("https://example.com/jobs",
		&Field{Name: "what", WireKey: "q", Kind: String},
		&Field{Name: "where", WireKey: "l", Kind: String, Required: true},
		&Field{Name: "min_salary", WireKey: "q", Kind: Int, Format: "$%d"},
		&Field{Name: "company", WireKey: "rbc", Kind: String, Requires: "company_id"},
		&Field{Name: "company_id", WireKey: "jcid", Kind: String, Requires: "company"},
		&Field{Name: "job_type", WireKey: "jt", Kind: String, Choices: []any{"fulltime", "parttime"}},
		&Field{Name: "start", WireKey: "start", Kind: Int},
	)
	require.NoError(t, err)
	return q
}

func TestSetGetRoundTrip(t *testing.T) {
	q := newTestQuery(t)

	require.NoError(t, q.Set("what", "python"))
	require.NoError(t, q.Set("job_type", "fulltime"))

	v, ok := q.Get("what")
	require.True(t, ok)
	assert.Equal(t, "python", v)

	v, ok = q.Get("job_type")
	require.True(t, ok)
	assert.Equal(t, "fulltime", v)

	_, ok = q.Get("where")
	assert.False(t, ok, "unset field reports absent")

	_, ok = q.Get("nonexistent")
	assert.False(t, ok, "unknown name reports absent, never fails")
}

func TestSetRejectionLeavesStateUnchanged(t *testing.T) {
	q := newTestQuery(t)
	require.NoError(t, q.Set("job_type", "fulltime"))

	var ve *ValueError
	require.ErrorAs(t, q.Set("job_type", "freelance"), &ve)

	v, ok := q.Get("job_type")
	require.True(t, ok)
	assert.Equal(t, "fulltime", v, "failed set must not clobber the prior value")
}

func TestRequiresPair(t *testing.T) {
	q := newTestQuery(t)

	var ve *ValueError
	require.ErrorAs(t, q.Set("company", "Initech"), &ve,
		"setting one half of a requires pair alone fails")
	_, ok := q.Get("company")
	assert.False(t, ok, "rejected set leaves the field unset")

	// The pair can only be established as a batch; order of the map is
	// irrelevant since the check runs against the post-batch state.
	require.NoError(t, q.Apply(map[string]any{
		"company":    "Initech",
		"company_id": "a1b2c3",
	}))

	// Once the partner holds a value, individual reassignment works.
	require.NoError(t, q.Set("company", "Initrode"))
}

func TestApplyIsAtomic(t *testing.T) {
	q := newTestQuery(t)

	err := q.Apply(map[string]any{
		"what":     "python",
		"job_type": "freelance", // not a valid choice
	})
	require.Error(t, err)

	_, ok := q.Get("what")
	assert.False(t, ok, "nothing from a failed batch may be committed")
}

func TestURLSharedKeySpaceJoin(t *testing.T) {
	q := newTestQuery(t)
	require.NoError(t, q.Set("where", "Austin, Texas"))
	require.NoError(t, q.Set("what", "python"))
	require.NoError(t, q.Set("min_salary", 50000))

	u, err := q.URL()
	require.NoError(t, err)

	// what and min_salary share the q wire key: joined with a space in
	// declaration order, encoded as one group.
	assert.Contains(t, u, "q=python+%2450000")
	assert.NotContains(t, u, "q=%2450000", "later value must not overwrite the earlier one")
}

func TestURLMissingRequired(t *testing.T) {
	q := newTestQuery(t)
	require.NoError(t, q.Set("what", "python"))

	_, err := q.URL()
	var me *MissingFieldError
	require.ErrorAs(t, err, &me)
	assert.Contains(t, me.Fields, "where")
}

func TestURLEmptyRequiredCountsMissing(t *testing.T) {
	q := newTestQuery(t)
	require.NoError(t, q.Set("where", ""))

	_, err := q.URL()
	var me *MissingFieldError
	require.ErrorAs(t, err, &me)
}

func TestURLOmitsEmptyOptionalGroups(t *testing.T) {
	q := newTestQuery(t)
	require.NoError(t, q.Set("where", "Austin, Texas"))
	require.NoError(t, q.Set("what", ""))

	u, err := q.URL()
	require.NoError(t, err)
	assert.NotContains(t, u, "q=")
}

func TestURLIdempotent(t *testing.T) {
	q := newTestQuery(t)
	require.NoError(t, q.Set("where", "Austin, Texas"))
	require.NoError(t, q.Set("what", "golang"))

	first, err := q.URL()
	require.NoError(t, err)
	second, err := q.URL()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestURLRoundTrip(t *testing.T) {
	q := newTestQuery(t)
	require.NoError(t, q.Set("where", "New York City, New York"))
	require.NoError(t, q.Set("what", "python"))
	require.NoError(t, q.Set("min_salary", 60000))
	require.NoError(t, q.Set("job_type", "parttime"))

	raw, err := q.URL()
	require.NoError(t, err)

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	values, err := url.ParseQuery(parsed.RawQuery)
	require.NoError(t, err)

	assert.Equal(t, "python $60000", values.Get("q"))
	assert.Equal(t, "New York City, New York", values.Get("l"))
	assert.Equal(t, "parttime", values.Get("jt"))
}

func TestURLBaseWithExistingQuery(t *testing.T) {
	q, err := New("https://example.com/jobs?vjk=abc",
		&Field{Name: "what", WireKey: "q", Kind: String},
	)
	require.NoError(t, err)
	require.NoError(t, q.Set("what", "golang"))

	u, err := q.URL()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u, "https://example.com/jobs?vjk=abc&"))
}

func TestSetUnknownField(t *testing.T) {
	q := newTestQuery(t)
	var ve *ValueError
	require.ErrorAs(t, q.Set("salary_max", 10), &ve)
}

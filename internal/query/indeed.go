package query

// BaseURL is the job-search endpoint both presets are bound to.
const BaseURL = "https://indeed.com/jobs"

// jobTypes and experienceLevels are the enumerations the site accepts.
var (
	jobTypes         = []any{"fulltime", "parttime", "contract", "internship", "temporary", "commission"}
	experienceLevels = []any{"entry_level", "mid_level", "senior_level"}
	radiusMiles      = []any{0, 5, 10, 15, 25, 50, 100}
)

// simpleFields returns fresh descriptors for the simple search form. A new
// slice is built per call so two queries never share mutable state.
func simpleFields() []*Field {
	return []*Field{
		{Name: "what", WireKey: "q", Kind: String, DisplayName: "What"},
		{Name: "where", WireKey: "l", Kind: String, Required: true, DisplayName: "Where"},
		{Name: "radius", WireKey: "radius", Kind: Int, Choices: radiusMiles, DisplayName: "Miles away"},
		// Shares the q wire key with what; the site folds the salary filter
		// into the free-text parameter, so the two are space-joined.
		{Name: "min_salary", WireKey: "q", Kind: Int, Format: "$%d", DisplayName: "Minimum Salary"},
		{Name: "company", WireKey: "rbc", Kind: String, Requires: "company_id", DisplayName: "Company Name"},
		{Name: "company_id", WireKey: "jcid", Kind: String, Requires: "company", DisplayName: "Company id"},
		{Name: "job_type", WireKey: "jt", Kind: String, Choices: jobTypes, DisplayName: "Job Type"},
		{Name: "experience", WireKey: "explvl", Kind: String, Choices: experienceLevels, DisplayName: "Experience Level"},
		{Name: "start", WireKey: "start", Kind: Int, DisplayName: "start"},
	}
}

// NewSimpleSearch builds a query for the plain search form.
func NewSimpleSearch() (*Query, error) {
	return New(BaseURL, simpleFields()...)
}

// NewAdvancedSearch builds a query for the advanced search form. It carries
// the as_* text filters, ad-origin and paging controls, and two immutable
// fields (psf, searched_from) that mark the query as having originated from
// the advanced form; the site rejects advanced parameters without them.
func NewAdvancedSearch() (*Query, error) {
	fields := []*Field{
		{Name: "where", WireKey: "l", Kind: String, Required: true, DisplayName: "Where"},
		{Name: "radius", WireKey: "radius", Kind: Int, Choices: radiusMiles, DisplayName: "Miles away"},
		{Name: "min_salary", WireKey: "q", Kind: Int, Format: "$%d", DisplayName: "Minimum Salary"},
		{Name: "job_type", WireKey: "jt", Kind: String, Choices: jobTypes, DisplayName: "Job Type"},
		{Name: "experience", WireKey: "explvl", Kind: String, Choices: experienceLevels, DisplayName: "Experience Level"},
		{Name: "start", WireKey: "start", Kind: Int, DisplayName: "start"},

		// Search strings.
		{Name: "all_words", WireKey: "as_and", Kind: String, DisplayName: "All of these words"},
		{Name: "exact_phrase", WireKey: "as_phr", Kind: String, DisplayName: "Exact phrase"},
		{Name: "any_words", WireKey: "as_any", Kind: String, DisplayName: "Any of these words"},
		{Name: "none_words", WireKey: "as_not", Kind: String, DisplayName: "None of these words"},
		{Name: "title_words", WireKey: "as_ttl", Kind: String, DisplayName: "These words in title"},
		{Name: "from_company", WireKey: "as_cmp", Kind: String, DisplayName: "From this company"},
		{Name: "from_job_site", WireKey: "as_src", Kind: String, DisplayName: "From this job site"},

		// Ad origin.
		{Name: "posted_to", WireKey: "st", Kind: String, Choices: []any{"jobsite", "employer"}, DisplayName: "Posted to"},
		{Name: "hired_by", WireKey: "sr", Kind: String, Choices: []any{"directhire"}, DisplayName: "Who handles hiring"},

		// Sort and paging.
		{Name: "sort_by", WireKey: "sort", Kind: String, Choices: []any{"date"}, DisplayName: "Sort by"},
		{Name: "limit", WireKey: "limit", Kind: Int, Choices: []any{10, 20, 30, 50}, DisplayName: "Per Page"},
		{Name: "age", WireKey: "fromage", Kind: Any, Choices: []any{"last", 1, 3, 7, 15, "any"}, DisplayName: "Max days old"},

		// Advanced-form markers, fixed by the site.
		{Name: "psf", WireKey: "psf", Kind: String, Required: true, Immutable: true, FixedValue: "advsrch", Requires: "searched_from"},
		{Name: "searched_from", WireKey: "from", Kind: String, Required: true, Immutable: true, FixedValue: "advancedsearch", Requires: "psf"},
	}
	return New(BaseURL, fields...)
}

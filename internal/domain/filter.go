package domain

const (
	// DefaultLimit caps the number of articles returned by a list call.
	DefaultLimit = 50
	// DefaultSkip is the default list offset.
	DefaultSkip = 0
)

// ArticleFilter enumerates every recognised list option.
// Empty strings and a nil Featured impose no constraint.
type ArticleFilter struct {
	Category string
	Status   Status
	Search   string
	Featured *bool
	Limit    int
	Skip     int
}

// NewArticleFilter returns a filter with default paging and no constraints.
func NewArticleFilter() ArticleFilter {
	return ArticleFilter{Limit: DefaultLimit, Skip: DefaultSkip}
}

// HasCategory reports whether the category constraint is active.
// The "all" sentinel disables it.
func (f ArticleFilter) HasCategory() bool {
	return f.Category != "" && f.Category != CategoryAll
}

// EffectiveLimit returns Limit, falling back to DefaultLimit when unset.
func (f ArticleFilter) EffectiveLimit() int {
	if f.Limit <= 0 {
		return DefaultLimit
	}
	return f.Limit
}

// EffectiveSkip returns Skip, never negative.
func (f ArticleFilter) EffectiveSkip() int {
	if f.Skip < 0 {
		return 0
	}
	return f.Skip
}

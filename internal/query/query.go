// Package query turns list parameters into a typed article filter and renders
// that filter for each supported store.
package query

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"newsroom/internal/domain"
)

// Recognised query parameter names.
const (
	ParamCategory = "category"
	ParamStatus   = "status"
	ParamSearch   = "search"
	ParamFeatured = "featured"
	ParamLimit    = "limit"
	ParamSkip     = "skip"
)

var knownParams = map[string]struct{}{
	ParamCategory: {},
	ParamStatus:   {},
	ParamSearch:   {},
	ParamFeatured: {},
	ParamLimit:    {},
	ParamSkip:     {},
}

// textParams are matched against stored text and may not carry NUL bytes,
// which BSON regexes and Postgres text both reject.
var textParams = []string{ParamCategory, ParamStatus, ParamSearch}

// Parse builds an ArticleFilter from raw query parameters.
// Unknown keys and malformed values are reported as a *domain.ValidationError.
func Parse(values url.Values) (domain.ArticleFilter, error) {
	f := domain.NewArticleFilter()
	fields := map[string]string{}

	for key := range values {
		if _, ok := knownParams[key]; !ok {
			fields[key] = "unknown_parameter"
		}
	}

	for _, key := range textParams {
		if strings.ContainsRune(values.Get(key), 0) {
			fields[key] = "invalid_character"
		}
	}

	f.Category = strings.TrimSpace(values.Get(ParamCategory))
	f.Status = domain.Status(strings.TrimSpace(values.Get(ParamStatus)))
	f.Search = strings.TrimSpace(values.Get(ParamSearch))

	// Any featured value other than "true", including an empty one, selects
	// non-featured articles.
	if _, ok := values[ParamFeatured]; ok {
		featured := strings.TrimSpace(values.Get(ParamFeatured)) == "true"
		f.Featured = &featured
	}

	if raw := strings.TrimSpace(values.Get(ParamLimit)); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			fields[ParamLimit] = "must_be_positive_integer"
		} else {
			f.Limit = limit
		}
	}

	if raw := strings.TrimSpace(values.Get(ParamSkip)); raw != "" {
		skip, err := strconv.Atoi(raw)
		if err != nil || skip < 0 {
			fields[ParamSkip] = "must_be_non_negative_integer"
		} else {
			f.Skip = skip
		}
	}

	if len(fields) > 0 {
		return f, &domain.ValidationError{Message: "invalid query parameters", Fields: fields}
	}
	return f, nil
}

// Match returns the filter as an in-process predicate.
func Match(f domain.ArticleFilter) func(domain.Article) bool {
	category := strings.ToLower(f.Category)
	search := strings.ToLower(f.Search)

	return func(a domain.Article) bool {
		if f.HasCategory() && !strings.Contains(strings.ToLower(a.Category), category) {
			return false
		}
		if f.Status != "" && a.Status != f.Status {
			return false
		}
		if f.Featured != nil && a.Featured != *f.Featured {
			return false
		}
		if search != "" && !matchesSearch(a, search) {
			return false
		}
		return true
	}
}

func matchesSearch(a domain.Article, needle string) bool {
	if strings.Contains(strings.ToLower(a.Title), needle) ||
		strings.Contains(strings.ToLower(a.Excerpt), needle) ||
		strings.Contains(strings.ToLower(a.Author), needle) {
		return true
	}
	for _, tag := range a.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// Apply filters, orders and pages an in-memory slice of articles.
// The input slice is not modified.
func Apply(f domain.ArticleFilter, articles []domain.Article) []domain.Article {
	match := Match(f)
	out := make([]domain.Article, 0, len(articles))
	for _, a := range articles {
		if match(a) {
			out = append(out, a)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return Less(out[i], out[j])
	})

	skip := f.EffectiveSkip()
	if skip >= len(out) {
		return []domain.Article{}
	}
	out = out[skip:]

	if limit := f.EffectiveLimit(); len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Less orders articles newest first, breaking publishedAt ties by id descending.
func Less(a, b domain.Article) bool {
	if !a.PublishedAt.Equal(b.PublishedAt) {
		return a.PublishedAt.After(b.PublishedAt)
	}
	return a.ID > b.ID
}

// Package feed arranges an ordered article list into the buckets the reader
// front page displays.
package feed

import "newsroom/internal/domain"

// SubFeaturedSize is the maximum number of articles shown under the headline.
const SubFeaturedSize = 3

// Feed holds the display buckets. Slices are never nil.
type Feed struct {
	Headline    *domain.Article  `json:"headline"`
	SubFeatured []domain.Article `json:"subFeatured"`
	Regular     []domain.Article `json:"regular"`
	Picks       []domain.Article `json:"picks"`
}

// Partition splits articles, already in display order, into buckets.
// Picks-for-you articles go to Picks; of the rest the first is the headline,
// the next SubFeaturedSize are sub-featured and everything else is regular.
func Partition(articles []domain.Article) Feed {
	f := Feed{
		SubFeatured: []domain.Article{},
		Regular:     []domain.Article{},
		Picks:       []domain.Article{},
	}

	rest := make([]domain.Article, 0, len(articles))
	for _, a := range articles {
		if a.PicksForYou {
			f.Picks = append(f.Picks, a)
			continue
		}
		rest = append(rest, a)
	}

	if len(rest) == 0 {
		return f
	}

	headline := rest[0]
	f.Headline = &headline
	rest = rest[1:]

	n := min(SubFeaturedSize, len(rest))
	f.SubFeatured = append(f.SubFeatured, rest[:n]...)
	f.Regular = append(f.Regular, rest[n:]...)

	return f
}

// Secondary returns the list shown beside the headline. It falls back to the
// first regular articles only when SubFeatured is empty; a partially filled
// SubFeatured is returned as is.
// TODO: confirm with product whether an under-filled SubFeatured should be topped up from Regular.
func (f Feed) Secondary() []domain.Article {
	if len(f.SubFeatured) > 0 {
		return f.SubFeatured
	}
	n := min(SubFeaturedSize, len(f.Regular))
	return f.Regular[:n]
}

// Total returns the number of articles across all buckets.
func (f Feed) Total() int {
	n := len(f.SubFeatured) + len(f.Regular) + len(f.Picks)
	if f.Headline != nil {
		n++
	}
	return n
}

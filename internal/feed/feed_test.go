package feed

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"newsroom/internal/domain"
)

func article(id string) domain.Article {
	return domain.Article{ID: id, Title: "Article " + id}
}

func pick(id string) domain.Article {
	a := article(id)
	a.PicksForYou = true
	return a
}

func articles(n int) []domain.Article {
	out := make([]domain.Article, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, article(fmt.Sprint(i)))
	}
	return out
}

func idsOf(as []domain.Article) []string {
	out := []string{}
	for _, a := range as {
		out = append(out, a.ID)
	}
	return out
}

type shape struct {
	Headline    string
	SubFeatured []string
	Regular     []string
	Picks       []string
	Secondary   []string
}

func shapeOf(f Feed) shape {
	s := shape{
		SubFeatured: idsOf(f.SubFeatured),
		Regular:     idsOf(f.Regular),
		Picks:       idsOf(f.Picks),
		Secondary:   idsOf(f.Secondary()),
	}
	if f.Headline != nil {
		s.Headline = f.Headline.ID
	}
	return s
}

func TestPartition(t *testing.T) {
	empty := []string{}

	tests := []struct {
		name  string
		input []domain.Article
		want  shape
	}{
		{
			name:  "no articles",
			input: nil,
			want:  shape{SubFeatured: empty, Regular: empty, Picks: empty, Secondary: empty},
		},
		{
			name:  "single article becomes headline",
			input: articles(1),
			want:  shape{Headline: "1", SubFeatured: empty, Regular: empty, Picks: empty, Secondary: empty},
		},
		{
			name:  "two articles leave a single sub-featured entry",
			input: articles(2),
			want:  shape{Headline: "1", SubFeatured: []string{"2"}, Regular: empty, Picks: empty, Secondary: []string{"2"}},
		},
		{
			name:  "sub-featured caps at three",
			input: articles(7),
			want: shape{
				Headline:    "1",
				SubFeatured: []string{"2", "3", "4"},
				Regular:     []string{"5", "6", "7"},
				Picks:       empty,
				Secondary:   []string{"2", "3", "4"},
			},
		},
		{
			name:  "picks are pulled out before the headline is chosen",
			input: []domain.Article{pick("p1"), article("1"), pick("p2"), article("2"), article("3")},
			want: shape{
				Headline:    "1",
				SubFeatured: []string{"2", "3"},
				Regular:     empty,
				Picks:       []string{"p1", "p2"},
				Secondary:   []string{"2", "3"},
			},
		},
		{
			name:  "only picks",
			input: []domain.Article{pick("p1"), pick("p2")},
			want:  shape{SubFeatured: empty, Regular: empty, Picks: []string{"p1", "p2"}, Secondary: empty},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shapeOf(Partition(tt.input))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Partition() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSecondary_FallbackOnlyWhenEmpty(t *testing.T) {
	// A single sub-featured entry with spare regular articles is not topped up.
	f := Feed{
		SubFeatured: articles(1),
		Regular:     []domain.Article{article("r1"), article("r2"), article("r3"), article("r4")},
	}
	if diff := cmp.Diff([]string{"1"}, idsOf(f.Secondary())); diff != "" {
		t.Errorf("Secondary() mismatch (-want +got):\n%s", diff)
	}

	f.SubFeatured = []domain.Article{}
	if diff := cmp.Diff([]string{"r1", "r2", "r3"}, idsOf(f.Secondary())); diff != "" {
		t.Errorf("Secondary() fallback mismatch (-want +got):\n%s", diff)
	}
}

func TestPartition_PreservesEveryArticle(t *testing.T) {
	for n := 0; n <= 10; n++ {
		input := articles(n)
		if n > 2 {
			input[n-1].PicksForYou = true
		}
		f := Partition(input)
		if f.Total() != n {
			t.Errorf("Partition(%d articles).Total() = %d", n, f.Total())
		}
	}
}

func TestPartition_DoesNotAliasInput(t *testing.T) {
	input := articles(2)
	f := Partition(input)
	input[0].Title = "changed"
	if f.Headline.Title != "Article 1" {
		t.Errorf("headline title = %q, want it unaffected by caller mutation", f.Headline.Title)
	}
}

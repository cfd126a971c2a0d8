// Package ingest turns RSS and Atom feeds into draft article inputs.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"newsroom/internal/domain"
)

const (
	// WordsPerMinute is the reading speed used to estimate readTime.
	WordsPerMinute = 200
	// ExcerptLength caps the generated excerpt, in runes.
	ExcerptLength = 280
)

// ErrEmptyFeed is returned when a feed parses but has no items.
var ErrEmptyFeed = errors.New("feed contains no items")

// Options control how feed items are mapped onto articles.
type Options struct {
	// Category is assigned to every imported article.
	Category string
	// Author is used when neither the item nor the feed names one.
	Author string
	// Status defaults to draft.
	Status domain.Status
	// Limit caps the number of items taken from the feed; 0 means all.
	Limit int
}

// FeedImporter fetches and parses syndication feeds.
type FeedImporter struct {
	parser *gofeed.Parser
}

// NewFeedImporter creates a FeedImporter. A nil client gets a 20s timeout.
func NewFeedImporter(client *http.Client) *FeedImporter {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	p := gofeed.NewParser()
	p.Client = client
	p.UserAgent = "newsroom-import/1.0"
	return &FeedImporter{parser: p}
}

// FetchURL downloads the feed at feedURL and converts its items.
func (f *FeedImporter) FetchURL(ctx context.Context, feedURL string, opts Options) ([]domain.ArticleInput, error) {
	feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", feedURL, err)
	}
	return Convert(feed, opts)
}

// Parse reads a feed document from r and converts its items.
func (f *FeedImporter) Parse(r io.Reader, opts Options) ([]domain.ArticleInput, error) {
	feed, err := f.parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}
	return Convert(feed, opts)
}

// Convert maps feed items onto article inputs in feed order.
// Items are not validated here; the article service rejects incomplete ones.
func Convert(feed *gofeed.Feed, opts Options) ([]domain.ArticleInput, error) {
	if feed == nil || len(feed.Items) == 0 {
		return nil, ErrEmptyFeed
	}

	status := opts.Status
	if status == "" {
		status = domain.StatusDraft
	}

	items := feed.Items
	if opts.Limit > 0 && len(items) > opts.Limit {
		items = items[:opts.Limit]
	}

	out := make([]domain.ArticleInput, 0, len(items))
	for _, item := range items {
		out = append(out, convertItem(feed, item, opts, status))
	}
	return out, nil
}

func convertItem(feed *gofeed.Feed, item *gofeed.Item, opts Options, status domain.Status) domain.ArticleInput {
	body := item.Content
	if strings.TrimSpace(body) == "" {
		body = item.Description
	}

	summary := PlainText(item.Description)
	if summary == "" {
		summary = PlainText(body)
	}

	in := domain.ArticleInput{
		Title:    strings.TrimSpace(item.Title),
		Excerpt:  Truncate(summary, ExcerptLength),
		Content:  body,
		Author:   itemAuthor(feed, item, opts.Author),
		ImageURL: itemImage(feed, item, body),
		Category: opts.Category,
		Tags:     append([]string{}, item.Categories...),
		Status:   status,
		ReadTime: ReadTime(PlainText(body)),
	}

	switch {
	case item.PublishedParsed != nil:
		ts := item.PublishedParsed.UTC()
		in.PublishedAt = &ts
	case item.UpdatedParsed != nil:
		ts := item.UpdatedParsed.UTC()
		in.PublishedAt = &ts
	}
	return in
}

func itemAuthor(feed *gofeed.Feed, item *gofeed.Item, fallback string) string {
	for _, p := range item.Authors {
		if p != nil && strings.TrimSpace(p.Name) != "" {
			return strings.TrimSpace(p.Name)
		}
	}
	for _, p := range feed.Authors {
		if p != nil && strings.TrimSpace(p.Name) != "" {
			return strings.TrimSpace(p.Name)
		}
	}
	return fallback
}

// itemImage prefers the item image, then an image enclosure, then the first
// <img> in the body, then the feed's own image.
func itemImage(feed *gofeed.Feed, item *gofeed.Item, body string) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	for _, enc := range item.Enclosures {
		if enc != nil && enc.URL != "" && strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}
	if src := FirstImage(body); src != "" {
		return src
	}
	if feed.Image != nil {
		return feed.Image.URL
	}
	return ""
}

// PlainText strips markup and collapses whitespace.
func PlainText(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.Join(strings.Fields(html), " ")
	}
	doc.Find("script, style").Remove()
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// FirstImage returns the src of the first <img> element, or "".
func FirstImage(html string) string {
	if !strings.Contains(html, "<img") {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img[src]").First().Attr("src")
	return strings.TrimSpace(src)
}

// ReadTime estimates minutes to read text. It is never less than one.
func ReadTime(text string) int {
	words := len(strings.Fields(text))
	minutes := int(math.Ceil(float64(words) / WordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}

// Truncate cuts s down to n runes, backing up to a word boundary when
// one exists and appending "...".
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	cut := string(runes[:n])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "..."
}

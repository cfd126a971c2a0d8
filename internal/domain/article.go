package domain

import (
	"strings"
	"time"
)

// Status represents the visibility status of an article.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Article represents a news article document.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Excerpt     string    `json:"excerpt"`
	Content     string    `json:"content"`
	Author      string    `json:"author"`
	PublishedAt time.Time `json:"publishedAt"`
	ImageURL    string    `json:"imageUrl"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	Status      Status    `json:"status"`
	ReadTime    int       `json:"readTime"`
	Featured    bool      `json:"featured"`
	PicksForYou bool      `json:"picksForYou"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ArticleInput carries every caller-writable field of an article.
// It is used for both create and full-replace update.
type ArticleInput struct {
	Title       string     `json:"title" yaml:"title"`
	Excerpt     string     `json:"excerpt" yaml:"excerpt"`
	Content     string     `json:"content" yaml:"content"`
	Author      string     `json:"author" yaml:"author"`
	PublishedAt *time.Time `json:"publishedAt,omitempty" yaml:"publishedAt,omitempty"`
	ImageURL    string     `json:"imageUrl" yaml:"imageUrl"`
	Category    string     `json:"category" yaml:"category"`
	Tags        []string   `json:"tags" yaml:"tags"`
	Status      Status     `json:"status" yaml:"status"`
	ReadTime    int        `json:"readTime" yaml:"readTime"`
	Featured    bool       `json:"featured" yaml:"featured"`
	PicksForYou bool       `json:"picksForYou" yaml:"picksForYou"`
}

// ValidStatuses contains all valid article statuses.
var ValidStatuses = []Status{StatusPublished, StatusDraft}

// IsValidStatus checks if a status is valid.
func IsValidStatus(status Status) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Normalize trims text fields and fills in write-time defaults.
// A missing publishedAt becomes now and an empty status becomes draft.
func (in ArticleInput) Normalize(now time.Time) ArticleInput {
	out := in
	out.Title = strings.TrimSpace(in.Title)
	out.Excerpt = strings.TrimSpace(in.Excerpt)
	out.Author = strings.TrimSpace(in.Author)
	out.Category = strings.TrimSpace(in.Category)
	out.ImageURL = strings.TrimSpace(in.ImageURL)

	out.Tags = make([]string, 0, len(in.Tags))
	for _, tag := range in.Tags {
		out.Tags = append(out.Tags, strings.TrimSpace(tag))
	}

	if out.Status == "" {
		out.Status = StatusDraft
	}
	if out.PublishedAt == nil || out.PublishedAt.IsZero() {
		ts := now.UTC()
		out.PublishedAt = &ts
	}
	return out
}

// ToArticle builds an Article from the input. ID and timestamps are left
// for the store to assign.
func (in ArticleInput) ToArticle() Article {
	a := Article{
		Title:       in.Title,
		Excerpt:     in.Excerpt,
		Content:     in.Content,
		Author:      in.Author,
		ImageURL:    in.ImageURL,
		Category:    in.Category,
		Tags:        in.Tags,
		Status:      in.Status,
		ReadTime:    in.ReadTime,
		Featured:    in.Featured,
		PicksForYou: in.PicksForYou,
	}
	if in.PublishedAt != nil {
		a.PublishedAt = *in.PublishedAt
	}
	if a.Tags == nil {
		a.Tags = []string{}
	}
	return a
}

// ArticleStats summarises the collection for the CMS dashboard.
type ArticleStats struct {
	Total     int `json:"total"`
	Published int `json:"published"`
	Drafts    int `json:"drafts"`
}

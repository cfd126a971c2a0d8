package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"time"

	"github.com/gin-gonic/gin"

	"newsroom/internal/domain"
	"newsroom/internal/feed"
	"newsroom/internal/middleware"
	"newsroom/internal/query"
	"newsroom/internal/service"
)

// ArticleHandler handles article-related HTTP requests.
type ArticleHandler struct {
	articleService service.ArticleServiceInterface
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(articleService service.ArticleServiceInterface) *ArticleHandler {
	return &ArticleHandler{
		articleService: articleService,
	}
}

// ArticleResponse represents an article in the API response.
type ArticleResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Excerpt     string   `json:"excerpt"`
	Content     string   `json:"content"`
	Author      string   `json:"author"`
	PublishedAt string   `json:"publishedAt"`
	ImageURL    string   `json:"imageUrl"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Status      string   `json:"status"`
	ReadTime    int      `json:"readTime"`
	Featured    bool     `json:"featured"`
	PicksForYou bool     `json:"picksForYou"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
}

// FeedResponse is the reader front page.
type FeedResponse struct {
	Headline    *ArticleResponse  `json:"headline"`
	SubFeatured []ArticleResponse `json:"subFeatured"`
	Regular     []ArticleResponse `json:"regular"`
	Picks       []ArticleResponse `json:"picks"`
	Secondary   []ArticleResponse `json:"secondary"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(TimeFormat)
}

// toArticleResponse converts a domain.Article to an ArticleResponse.
func toArticleResponse(a domain.Article) ArticleResponse {
	tags := a.Tags
	if tags == nil {
		tags = []string{}
	}
	return ArticleResponse{
		ID:          a.ID,
		Title:       a.Title,
		Excerpt:     a.Excerpt,
		Content:     a.Content,
		Author:      a.Author,
		PublishedAt: formatTime(a.PublishedAt),
		ImageURL:    a.ImageURL,
		Category:    a.Category,
		Tags:        tags,
		Status:      string(a.Status),
		ReadTime:    a.ReadTime,
		Featured:    a.Featured,
		PicksForYou: a.PicksForYou,
		CreatedAt:   formatTime(a.CreatedAt),
		UpdatedAt:   formatTime(a.UpdatedAt),
	}
}

func toArticleResponses(articles []domain.Article) []ArticleResponse {
	out := make([]ArticleResponse, 0, len(articles))
	for _, a := range articles {
		out = append(out, toArticleResponse(a))
	}
	return out
}

func toFeedResponse(f *feed.Feed) FeedResponse {
	resp := FeedResponse{
		SubFeatured: toArticleResponses(f.SubFeatured),
		Regular:     toArticleResponses(f.Regular),
		Picks:       toArticleResponses(f.Picks),
		Secondary:   toArticleResponses(f.Secondary()),
	}
	if f.Headline != nil {
		headline := toArticleResponse(*f.Headline)
		resp.Headline = &headline
	}
	return resp
}

// ListArticles handles GET /api/articles
func (h *ArticleHandler) ListArticles(c *gin.Context) {
	filter, err := query.Parse(c.Request.URL.Query())
	if err != nil {
		respondError(c, err)
		return
	}

	articles, err := h.articleService.ListArticles(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toArticleResponses(articles))
}

// GetArticle handles GET /api/articles/:id
func (h *ArticleHandler) GetArticle(c *gin.Context) {
	article, err := h.articleService.GetArticle(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toArticleResponse(*article))
}

// CreateArticle handles POST /api/articles
func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	var input domain.ArticleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, bindError(err))
		return
	}

	article, err := h.articleService.CreateArticle(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toArticleResponse(*article))
}

// UpdateArticle handles PUT /api/articles/:id
func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	var input domain.ArticleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, bindError(err))
		return
	}

	article, err := h.articleService.UpdateArticle(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toArticleResponse(*article))
}

// DeleteArticle handles DELETE /api/articles/:id
func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	if err := h.articleService.DeleteArticle(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msgArticleDeleted})
}

// Feed handles GET /api/feed
func (h *ArticleHandler) Feed(c *gin.Context) {
	filter, err := query.Parse(c.Request.URL.Query())
	if err != nil {
		respondError(c, err)
		return
	}

	f, err := h.articleService.Feed(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toFeedResponse(f))
}

// Stats handles GET /api/stats
func (h *ArticleHandler) Stats(c *gin.Context) {
	stats, err := h.articleService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// bindError turns a JSON decoding failure into a ValidationError naming the
// offending field where the decoder reports one.
func bindError(err error) error {
	var typeErr *json.UnmarshalTypeError
	var timeErr *time.ParseError

	switch {
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return domain.NewValidationError(typeErr.Field, typeReason(typeErr.Type.Kind()))
	case errors.As(err, &timeErr):
		return domain.NewValidationError("publishedAt", "invalid_date")
	default:
		ve := domain.NewValidationError("body", "malformed_json")
		ve.Message = msgInvalidBody
		return ve
	}
}

func typeReason(kind reflect.Kind) string {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "must_be_number"
	case reflect.Bool:
		return "must_be_boolean"
	case reflect.String:
		return "must_be_string"
	case reflect.Slice, reflect.Array:
		return "must_be_array"
	default:
		return "invalid_type"
	}
}

// respondError maps service errors to HTTP responses.
func respondError(c *gin.Context, err error) {
	var ve *domain.ValidationError

	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message, "details": ve.Fields})
	case errors.Is(err, domain.ErrNotFound):
		middleware.Logger(c).Debug("Article not found", slog.String("path", c.Request.URL.Path))
		c.JSON(http.StatusNotFound, gin.H{"error": msgArticleNotFound})
	default:
		middleware.Logger(c).Error("Request failed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternalError})
	}
}

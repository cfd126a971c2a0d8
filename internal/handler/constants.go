package handler

// TimeFormat is the time format for API responses: RFC 3339 in UTC with
// millisecond precision.
const TimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Error messages returned in response bodies.
const (
	msgArticleNotFound  = "Article not found"
	msgArticleDeleted   = "Article deleted successfully"
	msgInvalidBody      = "invalid request body"
	msgInternalError    = "Internal server error"
	msgMethodNotAllowed = "Method not allowed"
	msgRouteNotFound    = "Not found"
)

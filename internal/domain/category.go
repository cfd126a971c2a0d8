package domain

// Category represents a section of the site.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CategoryAll is the sentinel slug that disables category filtering.
const CategoryAll = "all"

// DefaultCategories is the fixed category set served by the API.
var DefaultCategories = []Category{
	{ID: "1", Name: "All", Slug: CategoryAll},
	{ID: "2", Name: "Technology", Slug: "technology"},
	{ID: "3", Name: "Business", Slug: "business"},
	{ID: "4", Name: "Sports", Slug: "sports"},
	{ID: "5", Name: "Entertainment", Slug: "entertainment"},
	{ID: "6", Name: "Science", Slug: "science"},
}

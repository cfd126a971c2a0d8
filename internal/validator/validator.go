package validator

import (
	"errors"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"newsroom/internal/domain"
)

var validStatus = []interface{}{domain.StatusPublished, domain.StatusDraft}

// Validator provides validation methods for domain entities.
type Validator struct{}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateArticle validates a normalized ArticleInput.
// Violations are returned as a *domain.ValidationError.
func (v *Validator) ValidateArticle(a *domain.ArticleInput) error {
	err := validation.ValidateStruct(a,
		validation.Field(&a.Title,
			validation.Required.Error("title_required"),
		),
		validation.Field(&a.Excerpt,
			validation.Required.Error("excerpt_required"),
		),
		validation.Field(&a.Content,
			validation.Required.Error("content_required"),
		),
		validation.Field(&a.Author,
			validation.Required.Error("author_required"),
		),
		validation.Field(&a.ImageURL,
			validation.Required.Error("image_url_required"),
		),
		validation.Field(&a.Category,
			validation.Required.Error("category_required"),
		),
		validation.Field(&a.Status,
			validation.Required.Error("status_required"),
			validation.In(validStatus...).Error("invalid_status"),
		),
		validation.Field(&a.ReadTime,
			validation.Required.Error("read_time_required"),
			validation.Min(1).Error("read_time_must_be_positive"),
		),
	)
	return ToDomainError(err)
}

// ToDomainError converts ozzo validation errors to a *domain.ValidationError.
// Other errors are returned unchanged.
func ToDomainError(err error) error {
	if err == nil {
		return nil
	}

	var ve validation.Errors
	if !errors.As(err, &ve) {
		return err
	}

	fields := make(map[string]string, len(ve))
	for field, fieldErr := range ve {
		fields[field] = fieldErr.Error()
	}
	return &domain.ValidationError{Message: "article validation failed", Fields: fields}
}

// ConvertValidationErrors converts a validation error to per-row RecordErrors.
func ConvertValidationErrors(rowNum int, err error) []domain.RecordError {
	var errs []domain.RecordError

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		fields := make([]string, 0, len(ve.Fields))
		for field := range ve.Fields {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		for _, field := range fields {
			errs = append(errs, domain.RecordError{
				Row:    rowNum,
				Field:  field,
				Reason: ve.Fields[field],
			})
		}
	} else if err != nil {
		errs = append(errs, domain.RecordError{
			Row:    rowNum,
			Field:  "unknown",
			Reason: err.Error(),
		})
	}

	return errs
}

package query

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"newsroom/internal/domain"
)

// Mongo renders the filter as a MongoDB find filter and options.
// User text is quoted so it matches literally, case-insensitively.
func Mongo(f domain.ArticleFilter) (bson.D, *options.FindOptions) {
	filter := bson.D{}

	if f.HasCategory() {
		filter = append(filter, bson.E{Key: "category", Value: containsRegex(f.Category)})
	}
	if f.Status != "" {
		filter = append(filter, bson.E{Key: "status", Value: string(f.Status)})
	}
	if f.Featured != nil {
		filter = append(filter, bson.E{Key: "featured", Value: *f.Featured})
	}
	if f.Search != "" {
		re := containsRegex(f.Search)
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "title", Value: re}},
			bson.D{{Key: "excerpt", Value: re}},
			bson.D{{Key: "author", Value: re}},
			// A regex against an array field matches when any element matches.
			bson.D{{Key: "tags", Value: re}},
		}})
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "publishedAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(f.EffectiveSkip())).
		SetLimit(int64(f.EffectiveLimit()))

	return filter, opts
}

func containsRegex(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

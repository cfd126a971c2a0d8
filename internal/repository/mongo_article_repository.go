package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"newsroom/internal/domain"
	"newsroom/internal/infrastructure/database"
	"newsroom/internal/query"
)

// ArticlesCollection is the MongoDB collection holding article documents.
const ArticlesCollection = "articles"

// articleDocument is the BSON shape of an article.
type articleDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Excerpt     string             `bson:"excerpt"`
	Content     string             `bson:"content"`
	Author      string             `bson:"author"`
	PublishedAt time.Time          `bson:"publishedAt"`
	ImageURL    string             `bson:"imageUrl"`
	Category    string             `bson:"category"`
	Tags        []string           `bson:"tags"`
	Status      string             `bson:"status"`
	ReadTime    int                `bson:"readTime"`
	Featured    bool               `bson:"featured"`
	PicksForYou bool               `bson:"picksForYou"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func toDocument(a domain.Article) articleDocument {
	tags := a.Tags
	if tags == nil {
		tags = []string{}
	}
	return articleDocument{
		Title:       a.Title,
		Excerpt:     a.Excerpt,
		Content:     a.Content,
		Author:      a.Author,
		PublishedAt: a.PublishedAt.UTC(),
		ImageURL:    a.ImageURL,
		Category:    a.Category,
		Tags:        tags,
		Status:      string(a.Status),
		ReadTime:    a.ReadTime,
		Featured:    a.Featured,
		PicksForYou: a.PicksForYou,
		CreatedAt:   a.CreatedAt.UTC(),
		UpdatedAt:   a.UpdatedAt.UTC(),
	}
}

func (d articleDocument) toDomain() domain.Article {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return domain.Article{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Excerpt:     d.Excerpt,
		Content:     d.Content,
		Author:      d.Author,
		PublishedAt: d.PublishedAt.UTC(),
		ImageURL:    d.ImageURL,
		Category:    d.Category,
		Tags:        tags,
		Status:      domain.Status(d.Status),
		ReadTime:    d.ReadTime,
		Featured:    d.Featured,
		PicksForYou: d.PicksForYou,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

// MongoArticleRepository implements ArticleRepository using MongoDB.
type MongoArticleRepository struct {
	handle *database.Mongo
	now    func() time.Time
}

// NewMongoArticleRepository creates a new MongoArticleRepository.
func NewMongoArticleRepository(handle *database.Mongo) *MongoArticleRepository {
	return &MongoArticleRepository{handle: handle, now: time.Now}
}

// EnsureArticleIndexes creates the indexes used by article queries.
// It is meant to be passed to database.NewMongo as a setup function.
func EnsureArticleIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(ArticlesCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "publishedAt", Value: -1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "featured", Value: 1}}},
		{Keys: bson.D{{Key: "title", Value: "text"}, {Key: "excerpt", Value: "text"}, {Key: "content", Value: "text"}}},
	})
	if err != nil {
		return fmt.Errorf("create article indexes: %w", err)
	}
	return nil
}

func (r *MongoArticleRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	coll, err := r.handle.Collection(ctx, ArticlesCollection)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return coll, nil
}

// List returns articles matching the filter, newest first.
func (r *MongoArticleRepository) List(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	f, opts := query.Mongo(filter)
	cursor, err := coll.Find(ctx, f, opts)
	if err != nil {
		return nil, mongoError("find articles", err)
	}
	defer cursor.Close(ctx)

	articles := make([]domain.Article, 0)
	for cursor.Next(ctx) {
		var doc articleDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode article: %w", err)
		}
		articles = append(articles, doc.toDomain())
	}

	if err := cursor.Err(); err != nil {
		return nil, mongoError("cursor", err)
	}

	return articles, nil
}

// Get returns an article by its hex ObjectID.
func (r *MongoArticleRepository) Get(ctx context.Context, id string) (*domain.Article, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	var doc articleDocument
	if err := coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		return nil, mongoError("find article", err)
	}

	a := doc.toDomain()
	return &a, nil
}

// Create inserts a new article document.
func (r *MongoArticleRepository) Create(ctx context.Context, article domain.Article) (*domain.Article, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	now := r.now().UTC().Truncate(time.Millisecond)
	article.CreatedAt = now
	article.UpdatedAt = now
	article.PublishedAt = article.PublishedAt.UTC().Truncate(time.Millisecond)

	doc := toDocument(article)
	doc.ID = primitive.NewObjectID()

	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return nil, mongoError("insert article", err)
	}

	out := doc.toDomain()
	return &out, nil
}

// Replace sets every mutable field of an existing article and returns the result.
func (r *MongoArticleRepository) Replace(ctx context.Context, id string, article domain.Article) (*domain.Article, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	article.UpdatedAt = r.now().UTC().Truncate(time.Millisecond)
	article.PublishedAt = article.PublishedAt.UTC().Truncate(time.Millisecond)
	doc := toDocument(article)

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "title", Value: doc.Title},
		{Key: "excerpt", Value: doc.Excerpt},
		{Key: "content", Value: doc.Content},
		{Key: "author", Value: doc.Author},
		{Key: "publishedAt", Value: doc.PublishedAt},
		{Key: "imageUrl", Value: doc.ImageURL},
		{Key: "category", Value: doc.Category},
		{Key: "tags", Value: doc.Tags},
		{Key: "status", Value: doc.Status},
		{Key: "readTime", Value: doc.ReadTime},
		{Key: "featured", Value: doc.Featured},
		{Key: "picksForYou", Value: doc.PicksForYou},
		{Key: "updatedAt", Value: doc.UpdatedAt},
	}}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated articleDocument
	if err := coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, update, opts).Decode(&updated); err != nil {
		return nil, mongoError("update article", err)
	}

	out := updated.toDomain()
	return &out, nil
}

// Delete removes an article document.
func (r *MongoArticleRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}

	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	res, err := coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return mongoError("delete article", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByStatus groups articles by status.
func (r *MongoArticleRepository) CountByStatus(ctx context.Context) (map[domain.Status]int, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, mongoError("count articles", err)
	}
	defer cursor.Close(ctx)

	counts := make(map[domain.Status]int)
	for cursor.Next(ctx) {
		var row struct {
			Status string `bson:"_id"`
			Count  int    `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode status count: %w", err)
		}
		counts[domain.Status(row.Status)] = row.Count
	}

	if err := cursor.Err(); err != nil {
		return nil, mongoError("cursor", err)
	}
	return counts, nil
}

// Ping checks MongoDB connectivity.
func (r *MongoArticleRepository) Ping(ctx context.Context) error {
	if err := r.handle.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// mongoError maps driver errors onto the domain error taxonomy.
func mongoError(op string, err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return domain.ErrNotFound
	case mongo.IsNetworkError(err), mongo.IsTimeout(err),
		errors.Is(err, context.DeadlineExceeded), errors.Is(err, mongo.ErrClientDisconnected):
		return fmt.Errorf("%w: %s: %v", domain.ErrStoreUnavailable, op, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

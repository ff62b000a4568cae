package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/socialdash/dashboard-api/internal/core/domain"
)

type MongoPostRepository struct {
	coll *mongo.Collection
}

func NewPostRepository(db *mongo.Database, collection string) *MongoPostRepository {
	return &MongoPostRepository{coll: db.Collection(collection)}
}

type mongoPost struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Username  string             `bson:"username"`
	ImageURL  string             `bson:"imageUrl"`
	Text      string             `bson:"text"`
	CreatedAt time.Time          `bson:"createdAt"`
	Likes     []string           `bson:"likes"`
}

func (r *MongoPostRepository) Insert(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	doc := mongoPost{
		Username:  post.Username,
		ImageURL:  post.ImageURL,
		Text:      post.Text,
		CreatedAt: post.CreatedAt,
		Likes:     post.Likes,
	}
	if doc.Likes == nil {
		doc.Likes = []string{}
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return toDomainPost(doc), nil
}

func (r *MongoPostRepository) FindByUsername(ctx context.Context, username string) ([]domain.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.findMany(ctx, bson.M{"username": username}, opts)
}

func (r *MongoPostRepository) FindRecent(ctx context.Context, excludeUsername string, skip, limit int) ([]domain.Post, int64, error) {
	filter := bson.M{}
	if excludeUsername != "" {
		filter["username"] = bson.M{"$ne": excludeUsername}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	posts, err := r.findMany(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}
	return posts, total, nil
}

func (r *MongoPostRepository) findMany(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Post, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Post
	for cur.Next(ctx) {
		var mp mongoPost
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode post: %w", err)
		}
		out = append(out, *toDomainPost(mp))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	return out, nil
}

func toDomainPost(mp mongoPost) *domain.Post {
	likes := mp.Likes
	if likes == nil {
		likes = []string{}
	}
	return &domain.Post{
		ID:        mp.ID.Hex(),
		Username:  mp.Username,
		ImageURL:  mp.ImageURL,
		Text:      mp.Text,
		CreatedAt: mp.CreatedAt,
		Likes:     likes,
	}
}

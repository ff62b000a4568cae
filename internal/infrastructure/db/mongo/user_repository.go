package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/socialdash/dashboard-api/internal/core/domain"
)

type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database, collection string) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(collection)}
}

type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"passwordHash,omitempty"`
	GoogleID     string             `bson:"googleId,omitempty"`
	Role         string             `bson:"role"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

func (r *MongoUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc := mongoUser{
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		GoogleID:     user.GoogleID,
		Role:         user.Role,
		CreatedAt:    time.Now().UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return toDomainUser(doc), nil
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *MongoUserRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"$or": bson.A{
		bson.M{"email": email},
		bson.M{"username": username},
	}})
}

func (r *MongoUserRepository) LinkGoogleID(ctx context.Context, id, googleID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"googleId": googleID}})
	if err != nil {
		return fmt.Errorf("link google id: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *MongoUserRepository) List(ctx context.Context) ([]domain.User, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.User
	for cur.Next(ctx) {
		var mu mongoUser
		if err := cur.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		out = append(out, *toDomainUser(mu))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return toDomainUser(mu), nil
}

func toDomainUser(mu mongoUser) *domain.User {
	return &domain.User{
		ID:           mu.ID.Hex(),
		Username:     mu.Username,
		Email:        mu.Email,
		PasswordHash: mu.PasswordHash,
		GoogleID:     mu.GoogleID,
		Role:         mu.Role,
		CreatedAt:    mu.CreatedAt,
	}
}

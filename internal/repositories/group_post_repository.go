package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/emberloop/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GroupPostRepository defines the interface for group post data operations
type GroupPostRepository interface {
	CreateGroupPost(ctx context.Context, post *models.GroupPost) error
	GetGroupPostByID(ctx context.Context, id string) (*models.GroupPost, error)
	ListSince(ctx context.Context, authorIDs []uint, since time.Time, limit int) ([]models.GroupPost, error)
}

// MongoGroupPostRepository implements GroupPostRepository for MongoDB
type MongoGroupPostRepository struct {
	collection *mongo.Collection
}

// NewMongoGroupPostRepository creates a new MongoGroupPostRepository
func NewMongoGroupPostRepository(db *mongo.Database) *MongoGroupPostRepository {
	return &MongoGroupPostRepository{collection: db.Collection("group_posts")}
}

// CreateGroupPost creates a new group post in MongoDB
func (r *MongoGroupPostRepository) CreateGroupPost(ctx context.Context, post *models.GroupPost) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetGroupPostByID retrieves a group post by ID from MongoDB
func (r *MongoGroupPostRepository) GetGroupPostByID(ctx context.Context, id string) (*models.GroupPost, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID format: %w", err)
	}

	var post models.GroupPost
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("post not found")
		}
		return nil, err
	}
	return &post, nil
}

// ListSince returns group posts created at or after since, newest first. A
// nil authorIDs slice means no author restriction.
func (r *MongoGroupPostRepository) ListSince(ctx context.Context, authorIDs []uint, since time.Time, limit int) ([]models.GroupPost, error) {
	filter := bson.M{}
	if !since.IsZero() {
		filter["created_at"] = bson.M{"$gte": since}
	}
	if authorIDs != nil {
		filter["author_id"] = bson.M{"$in": authorIDs}
	}

	findOptions := options.Find().
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.GroupPost
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

package repositories

import (
	"context"
	"time"

	"github.com/emberloop/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// GroupRepository defines the interface for group metadata operations
type GroupRepository interface {
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroupsByIDs(ctx context.Context, ids []string) (map[string]models.Group, error)
}

// MongoGroupRepository implements GroupRepository for MongoDB
type MongoGroupRepository struct {
	collection *mongo.Collection
}

// NewMongoGroupRepository creates a new MongoGroupRepository
func NewMongoGroupRepository(db *mongo.Database) *MongoGroupRepository {
	return &MongoGroupRepository{collection: db.Collection("groups")}
}

// CreateGroup creates a new group in MongoDB
func (r *MongoGroupRepository) CreateGroup(ctx context.Context, group *models.Group) error {
	group.ID = primitive.NewObjectID()
	group.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, group)
	return err
}

// GetGroupsByIDs retrieves groups for a set of hex IDs in a single query,
// keyed by hex ID. Unknown or malformed IDs are simply absent from the map.
func (r *MongoGroupRepository) GetGroupsByIDs(ctx context.Context, ids []string) (map[string]models.Group, error) {
	result := make(map[string]models.Group, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	objIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if objID, err := primitive.ObjectIDFromHex(id); err == nil {
			objIDs = append(objIDs, objID)
		}
	}
	if len(objIDs) == 0 {
		return result, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": objIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var groups []models.Group
	if err = cursor.All(ctx, &groups); err != nil {
		return nil, err
	}
	for _, g := range groups {
		result[g.ID.Hex()] = g
	}
	return result, nil
}

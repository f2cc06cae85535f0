package repository

import (
	"context"
	"fmt"

	bookingserrors "bonzai/internal/bookings/errors"
	"bonzai/pkg/config"
	"bonzai/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	RoomCollectionName = "Rooms"
)

type mongoRoomRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
}

type RoomRepository interface {
	FindAvailableByType(ctx context.Context, roomType model.RoomType) ([]model.Room, error)
	FindByIDs(ctx context.Context, roomIDs []string) ([]model.Room, error)
	FindAll(ctx context.Context) ([]model.Room, error)
	SetAvailability(ctx context.Context, roomID string, available bool) error
}

func NewMongoRoomRepository(cfg *config.Config) RoomRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoRoomRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(RoomCollectionName, strongCollectionOptions()),
	}
}

// FindAvailableByType returns free rooms of one type sorted by id, so two
// concurrent allocations walk the inventory in the same order.
func (r *mongoRoomRepository) FindAvailableByType(ctx context.Context, roomType model.RoomType) ([]model.Room, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"room_type": roomType,
		"available": true,
	}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find available rooms: %w", err)
	}
	defer cursor.Close(ctx)

	var rooms []model.Room
	if err = cursor.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("failed to decode rooms: %w", err)
	}

	return rooms, nil
}

func (r *mongoRoomRepository) FindByIDs(ctx context.Context, roomIDs []string) ([]model.Room, error) {
	if len(roomIDs) == 0 {
		return nil, nil
	}

	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"_id": bson.M{"$in": roomIDs}}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find rooms by id: %w", err)
	}
	defer cursor.Close(ctx)

	var rooms []model.Room
	if err = cursor.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("failed to decode rooms: %w", err)
	}

	return rooms, nil
}

func (r *mongoRoomRepository) FindAll(ctx context.Context) ([]model.Room, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find rooms: %w", err)
	}
	defer cursor.Close(ctx)

	var rooms []model.Room
	if err = cursor.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("failed to decode rooms: %w", err)
	}

	return rooms, nil
}

func (r *mongoRoomRepository) SetAvailability(ctx context.Context, roomID string, available bool) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{"_id": roomID}
	update := bson.M{"$set": bson.M{"available": available}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update room %s: %w", roomID, err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", bookingserrors.ErrRoomNotFound, roomID)
	}

	return nil
}

package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bonzai/internal/migrations/mongo/validators"
	"bonzai/pkg/model"
)

var (
	BookingsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "check_in", Value: 1}}},
		{Keys: bson.D{{Key: "email", Value: 1}}},
		{Keys: bson.D{{Key: "room_ids", Value: 1}}},
	}

	RoomsIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "room_type", Value: 1},
			{Key: "available", Value: 1},
		}},
	}
)

func RunMigration(ctx context.Context, client *mongo.Client, dbName string) error {
	db := client.Database(dbName)
	fmt.Printf("Running Mongo migrations on database: %s\n", dbName)

	collections := map[string]struct {
		Indexes   []mongo.IndexModel
		Validator bson.M
	}{
		"Bookings": {
			Indexes:   BookingsIndexes,
			Validator: validators.BookingValidator,
		},
		"Rooms": {
			Indexes:   RoomsIndexes,
			Validator: validators.RoomValidator,
		},
	}

	for name, def := range collections {
		if err := ensureCollection(ctx, db, name, def.Validator); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
		if err := ensureIndexes(ctx, db, name, def.Indexes); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
		}
	}

	fmt.Println("All migrations applied successfully.")
	return nil
}

// SeedRooms provisions the starting inventory: 8 singles, 8 doubles and
// 4 suites. Seeding is idempotent; rooms that already exist keep their
// current availability flag.
func SeedRooms(ctx context.Context, client *mongo.Client, dbName string) error {
	coll := client.Database(dbName).Collection("Rooms")

	var seeded int
	for _, room := range seedInventory() {
		filter := bson.M{"_id": room.RoomID}
		update := bson.M{
			"$setOnInsert": bson.M{
				"room_type": room.Type,
				"available": room.Available,
			},
		}
		result, err := coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
		if err != nil {
			return fmt.Errorf("failed to seed room %s: %w", room.RoomID, err)
		}
		if result.UpsertedCount > 0 {
			seeded++
		}
	}

	fmt.Printf("Seeded %d new rooms.\n", seeded)
	return nil
}

func seedInventory() []model.Room {
	var rooms []model.Room
	for i := 1; i <= 8; i++ {
		rooms = append(rooms, model.Room{
			RoomID:    fmt.Sprintf("1%02d", i),
			Type:      model.Single,
			Available: true,
		})
	}
	for i := 1; i <= 8; i++ {
		rooms = append(rooms, model.Room{
			RoomID:    fmt.Sprintf("2%02d", i),
			Type:      model.Double,
			Available: true,
		})
	}
	for i := 1; i <= 4; i++ {
		rooms = append(rooms, model.Room{
			RoomID:    fmt.Sprintf("3%02d", i),
			Type:      model.Suite,
			Available: true,
		})
	}
	return rooms
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		fmt.Printf("Creating collection: %s\n", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
	} else {
		fmt.Printf("Collection %s already exists, updating validator if needed\n", name)
		command := bson.D{
			{Key: "collMod", Value: name},
			{Key: "validator", Value: validator},
		}
		if err := db.RunCommand(ctx, command).Err(); err != nil {
			fmt.Printf("Warning: failed updating validator for %s: %v\n", name, err)
		}
	}

	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel) error {
	coll := db.Collection(name)
	_, err := coll.Indexes().CreateMany(ctx, models)
	if err != nil {
		return err
	}
	fmt.Printf("Ensured indexes for %s\n", name)
	return nil
}

package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.vocdoni.io/dvote/log"
)

// initCollections creates the collections in the MongoDB database if they
// don't exist yet and stores the handles on the storage struct.
func (ms *MongoStorage) initCollections(database string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	// get the current collections names to create only the missing ones
	currentCollections, err := ms.collectionNames(ctx, database)
	if err != nil {
		return err
	}
	// aux method to get a collection if it exists, or create it if it doesn't
	getCollection := func(name string) (*mongo.Collection, error) {
		alreadyCreated := false
		for _, c := range currentCollections {
			if c == name {
				alreadyCreated = true
				break
			}
		}
		if !alreadyCreated {
			if err := ms.client.Database(database).CreateCollection(ctx, name); err != nil {
				return nil, err
			}
		}
		return ms.client.Database(database).Collection(name), nil
	}
	// admins collection
	if ms.admins, err = getCollection("admins"); err != nil {
		return err
	}
	// users collection
	if ms.users, err = getCollection("users"); err != nil {
		return err
	}
	// migrations bookkeeping collection
	if ms.migrations, err = getCollection("migrations"); err != nil {
		return err
	}
	return nil
}

// collectionNames returns the names of the collections in the given database.
// It uses the ListCollections method of the MongoDB client to get the
// collections info and decode the names from the result.
func (ms *MongoStorage) collectionNames(ctx context.Context, database string) ([]string, error) {
	collectionsCursor, err := ms.client.Database(database).ListCollections(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := collectionsCursor.Close(ctx); err != nil {
			log.Warnw("failed to close collections cursor", "error", err)
		}
	}()
	collections := []bson.D{}
	if err := collectionsCursor.All(ctx, &collections); err != nil {
		return nil, err
	}
	names := []string{}
	for _, col := range collections {
		for _, v := range col {
			if v.Key == "name" {
				names = append(names, v.Value.(string))
			}
		}
	}
	return names, nil
}

// paginatedDocuments runs a paginated find over a collection and returns the
// total number of pages for the given limit alongside the requested page of
// documents. Pages are 1-based; with zero matching documents the number of
// pages is zero and the result set is empty.
func paginatedDocuments[T any](ctx context.Context, col *mongo.Collection,
	page, limit int64, filter bson.M, findOpts *options.FindOptions,
) (int64, []T, error) {
	if page < 1 || limit < 1 {
		return 0, nil, ErrInvalidData
	}
	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, nil, err
	}
	totalPages := (total + limit - 1) / limit
	findOpts = findOpts.SetSkip((page - 1) * limit).SetLimit(limit)
	cursor, err := col.Find(ctx, filter, findOpts)
	if err != nil {
		return 0, nil, err
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			log.Warnw("error closing cursor", "error", err)
		}
	}()
	documents := []T{}
	if err := cursor.All(ctx, &documents); err != nil {
		return 0, nil, err
	}
	return totalPages, documents, nil
}

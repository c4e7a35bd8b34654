// Package db provides the MongoDB storage layer for admins and festival
// attendees (users). It owns the uniqueness constraints of both collections
// and translates driver errors into the package's typed errors.
package db

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.vocdoni.io/dvote/log"
)

// defaultTimeout is the timeout applied to every single database operation.
const defaultTimeout = 10 * time.Second

// MongoStorage uses an external MongoDB service for storing the admin accounts
// and the festival attendee records.
type MongoStorage struct {
	client   *mongo.Client
	database string
	keysLock sync.RWMutex

	admins     *mongo.Collection
	users      *mongo.Collection
	migrations *mongo.Collection
}

// New connects to MongoDB, initializes the collections and applies any pending
// migrations. If the FESTIVAL_MONGO_RESET_DB environment variable is set, the
// database documents are dropped and the migrations reapplied from scratch.
func New(url, database string) (*MongoStorage, error) {
	ms := &MongoStorage{}
	if url == "" {
		return nil, fmt.Errorf("mongo URL is not defined")
	}
	if database == "" {
		return nil, fmt.Errorf("mongo database is not defined")
	}
	log.Infow("connecting to mongodb", "url", url, "database", database)
	// preparing connection
	opts := options.Client()
	opts.ApplyURI(url)
	opts.SetMaxConnecting(200)
	timeout := time.Second * 10
	opts.ConnectTimeout = &timeout
	// create a new client with the connection options
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to mongodb: %w", err)
	}
	// check if the connection is successful
	ctx, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("cannot connect to mongodb: %w", err)
	}
	// init the collections
	ms.client = client
	ms.database = database
	if err := ms.initCollections(database); err != nil {
		return nil, err
	}
	// if the reset flag is enabled, drop the database documents and reapply
	// the migrations, otherwise just apply any pending migration
	if reset := os.Getenv("FESTIVAL_MONGO_RESET_DB"); reset != "" {
		if err := ms.Reset(); err != nil {
			return nil, err
		}
	} else {
		if err := ms.RunMigrationsUp(); err != nil {
			return nil, err
		}
	}
	return ms, nil
}

// Close disconnects the client from the database.
func (ms *MongoStorage) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := ms.client.Disconnect(ctx); err != nil {
		log.Warn(err)
	}
}

// Reset drops the documents of every collection and reapplies the migrations
// from scratch.
func (ms *MongoStorage) Reset() error {
	log.Infof("resetting database")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, col := range []*mongo.Collection{ms.admins, ms.users, ms.migrations} {
		if err := col.Drop(ctx); err != nil {
			return err
		}
	}
	if err := ms.initCollections(ms.database); err != nil {
		return err
	}
	return ms.RunMigrationsUp()
}

// Ping checks the database connectivity. It is used by the health endpoint to
// report the connection state.
func (ms *MongoStorage) Ping(ctx context.Context) error {
	return ms.client.Ping(ctx, readpref.Primary())
}

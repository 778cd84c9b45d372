// Package database owns the MongoDB connection for Vastra.
//
// Connect once at boot (internal/server), then grab collections anywhere:
//
//	col := database.Collection("products")
//	col.FindOne(ctx, bson.M{"_id": id})
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/shashiranjanraj/vastra/config"
)

var (
	Client *mongo.Client
	DB     *mongo.Database
)

// Connect opens the MongoDB connection and verifies it with a ping.
// Returns an error instead of calling log.Fatal so the caller can
// shut down gracefully.
func Connect() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(config.MongoURI()).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(25).
		SetMinPoolSize(5).
		SetMaxConnIdleTime(2 * time.Minute)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return fmt.Errorf("database: connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("database: ping: %w", err)
	}

	Client = client
	DB = client.Database(config.MongoDB())
	return nil
}

// Collection returns a handle to the named collection on the app database.
// Panics if Connect has not been called; a nil DB here is always a boot bug.
func Collection(name string) *mongo.Collection {
	if DB == nil {
		panic("database: Collection called before Connect")
	}
	return DB.Collection(name)
}

// Disconnect closes the client. Safe to call when Connect never ran.
func Disconnect() error {
	if Client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return Client.Disconnect(ctx)
}

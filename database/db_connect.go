package database

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Connect builds the Mongo client and verifies it with a ping. The caller
// owns the handle and is responsible for Disconnect on shutdown; there is no
// package-level cached client.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		log.Println(err)
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Println(err)
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return client, nil
}

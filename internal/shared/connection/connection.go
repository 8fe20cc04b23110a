package connection

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func ConnectMongoWithRetry(uri string, maxRetries int) (*mongo.Client, error) {
	var lastErr error

	for i := 1; i <= maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)

		client, err := mongo.Connect(ctx, options.Client().
			ApplyURI(uri).
			SetMaxPoolSize(25))
		if err != nil {
			cancel()
			lastErr = err
			log.Printf("⚠️ Mongo connect failed (%d/%d): %v", i, maxRetries, err)
			time.Sleep(5 * time.Second)
			continue
		}

		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			cancel()
			lastErr = err
			log.Printf("⚠️ Mongo ping failed (%d/%d): %v", i, maxRetries, err)
			time.Sleep(5 * time.Second)
			continue
		}

		cancel()
		log.Println("✅ Connected to MongoDB")
		return client, nil
	}

	return nil, fmt.Errorf("mongodb connection failed after %d retries: %w", maxRetries, lastErr)
}

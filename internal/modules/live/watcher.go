package live

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// RunWatcher tails the orders change stream and pokes the feed
// whenever another process writes to the collection. In-process writes
// already notify the feed directly; the stream only covers external
// writers, so losing it degrades freshness rather than correctness.
//
// Blocks until ctx is cancelled. Requires the store to run as a
// replica set; when change streams are unavailable the watcher logs
// once and keeps retrying with backoff.
func RunWatcher(ctx context.Context, db *mongo.Database, feed *Feed) {
	const retryDelay = 10 * time.Second

	for {
		if ctx.Err() != nil {
			return
		}

		stream, err := db.Collection("orders").Watch(ctx, mongo.Pipeline{})
		if err != nil {
			log.Printf("live: change stream unavailable, retrying in %s: %v", retryDelay, err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(retryDelay):
			}
			continue
		}

		for stream.Next(ctx) {
			feed.Notify()
		}
		if err := stream.Err(); err != nil && ctx.Err() == nil {
			log.Printf("live: change stream ended: %v", err)
		}
		stream.Close(context.Background())
	}
}

package connection

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/redis/go-redis/v9"
	"google.golang.org/api/option"
)

// ConnectFirestoreWithRetry membuka koneksi Firestore; retry karena emulator
// atau jaringan bisa belum siap saat container start.
func ConnectFirestoreWithRetry(
	ctx context.Context,
	projectID, credentialsFile string,
	maxRetries int,
) (*firestore.Client, error) {

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	var lastErr error

	for i := 1; i <= maxRetries; i++ {
		client, err := firestore.NewClient(ctx, projectID, opts...)
		if err != nil {
			lastErr = err
			log.Printf("⚠️ Firestore open failed (%d/%d): %v", i, maxRetries, err)
			time.Sleep(5 * time.Second)
			continue
		}

		log.Println("✅ Connected to Firestore")
		return client, nil
	}

	return nil, fmt.Errorf("firestore connection failed after %d retries: %w", maxRetries, lastErr)
}

func ConnectRedisWithRetry(addr string, maxRetries int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	for i := 1; i <= maxRetries; i++ {
		ctx := context.Background()
		if err := rdb.Ping(ctx).Err(); err == nil {
			log.Println("✅ Connected to Redis")
			return rdb, nil
		}

		log.Printf("⚠️ Redis retry %d/%d failed", i, maxRetries)
		time.Sleep(5 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect redis")
}

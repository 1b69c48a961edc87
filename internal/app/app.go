package app

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/leanh1541989-hash/taphoa39/internal/cache"
	"github.com/leanh1541989-hash/taphoa39/internal/docstore"
	"github.com/leanh1541989-hash/taphoa39/internal/messaging/kafka"
	"github.com/leanh1541989-hash/taphoa39/internal/shared/connection"

	"github.com/gin-gonic/gin"
)

func BuildApp(ctx context.Context, router *gin.Engine) error {
	// 1. Setup Infrastructure
	client, err := connection.ConnectFirestoreWithRetry(
		ctx,
		os.Getenv("FIRESTORE_PROJECT_ID"),
		os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		5,
	)
	if err != nil {
		return err
	}
	log.Println("✅ Firestore connection established")

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	log.Println("✅ Redis connection established")

	// Broadcast opsional: tanpa broker, event perubahan hanya di-skip
	var broadcaster kafka.Broadcaster
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		broadcaster = kafka.NewBroadcaster(strings.Split(brokers, ","))
		log.Println("✅ Kafka broadcaster configured")
	}

	store := docstore.NewFirestoreStore(client)
	snapshots := cache.New(cache.SnapshotTTL)

	// Register Modules & Routes
	registerModules(router, store, snapshots, redisClient, broadcaster)

	return nil
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"viralshorts/api"
	"viralshorts/config"
	"viralshorts/media"
	"viralshorts/publish"
	"viralshorts/queue"
	"viralshorts/status"
	"viralshorts/storage"
	"viralshorts/subtitle"
	"viralshorts/topics"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg := config.FromEnv()
	ctx := context.Background()

	fetcher := media.NewFetcher(&http.Client{Timeout: config.DownloadTimeout})
	muxer := media.NewFFmpegMuxer(subtitle.DefaultStyle())
	pipeline := media.NewPipeline(fetcher, muxer, config.WordsPerCue)

	statuses := status.NewStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, config.StatusTTL)
	if statuses != nil {
		defer statuses.Close()
		log.Printf("Export status tracking enabled (redis: %s)", cfg.RedisAddr)
	} else {
		log.Println("Export status tracking disabled (REDIS_ADDR not set)")
	}

	archive := initializeArchive(ctx, cfg)
	publisher := initializePublisher(ctx, cfg)

	topicSvc := topics.NewService(nil, resolveFeeds(cfg.TopicFeeds))

	server := api.NewServer(pipeline, statuses, archive, topicSvc, cfg.TopicCount)

	if len(cfg.KafkaBrokers) > 0 {
		worker := queue.NewWorker(pipeline, archive, publisher, cfg.OutputDir)
		consumer, err := queue.NewConsumer(queue.ConsumerConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
			GroupID: cfg.KafkaGroupID,
			Process: worker.Process,
		})
		if err != nil {
			log.Fatalf("Failed to create Kafka consumer: %v", err)
		}

		consumerCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		if err := consumer.Start(consumerCtx); err != nil {
			log.Fatalf("Failed to start Kafka consumer: %v", err)
		}
		defer consumer.Close()
	} else {
		log.Println("Kafka intake disabled (KAFKA_BOOTSTRAP_SERVERS not set)")
	}

	addr := ":" + cfg.Port
	httpServer := &http.Server{Addr: addr, Handler: server.Router()}

	go func() {
		log.Printf("Starting API server on %s", addr)
		log.Println("API endpoints available:")
		log.Println("  GET  /api/health")
		log.Println("  POST /api/merge-video")
		log.Println("  GET  /api/exports/:id/status")
		log.Println("  GET  /api/topics")

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	sigterm := make(chan os.Signal, 1)
	signal.Notify(sigterm, syscall.SIGINT, syscall.SIGTERM)
	<-sigterm
	log.Println("Received termination signal")

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}

// initializeArchive returns an S3-backed archive if configured, else nil.
func initializeArchive(ctx context.Context, cfg config.Config) *storage.Archive {
	if cfg.S3Bucket == "" {
		log.Println("S3 archival disabled (S3_BUCKET not set)")
		return nil
	}

	client, err := storage.NewS3(ctx, storage.S3Config{
		Region:       cfg.S3Region,
		Profile:      cfg.S3Profile,
		UsePathStyle: cfg.S3UsePathStyle,
	})
	if err != nil {
		log.Printf("Warning: failed to init S3 client: %v (archival disabled)", err)
		return nil
	}

	log.Printf("S3 archival enabled (bucket %q, prefix %q)", cfg.S3Bucket, cfg.S3Prefix)
	return storage.NewArchive(client, cfg.S3Bucket, cfg.S3Prefix)
}

// initializePublisher returns a YouTube publisher if configured, else nil.
func initializePublisher(ctx context.Context, cfg config.Config) *publish.YouTube {
	if cfg.YouTubeServiceAccount == "" {
		log.Println("YouTube publishing disabled (YOUTUBE_SERVICE_ACCOUNT_FILE not set)")
		return nil
	}

	publisher, err := publish.NewYouTube(ctx, cfg.YouTubeServiceAccount)
	if err != nil {
		log.Printf("YouTube publisher not initialized: %v", err)
		return nil
	}

	log.Println("YouTube client initialized")
	return publisher
}

func resolveFeeds(feeds []string) []string {
	urls := make([]string, 0, len(feeds))
	for _, f := range feeds {
		urls = append(urls, config.ResolveFeedURL(f))
	}
	return urls
}

package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Fixed output profile for short-form vertical video.
const (
	VideoWidth   = 1080
	VideoHeight  = 1920
	VideoCodec   = "libx264"
	AudioCodec   = "aac"
	AudioBitrate = "192k"
	VideoPreset  = "fast"

	// Filename used for the attachment returned by the merge endpoint.
	OutputFilename = "viralshorts-merged.mp4"

	// One word per caption is the viral-style default.
	WordsPerCue = 1

	DownloadTimeout = 2 * time.Minute

	// Export progress entries expire after this; nothing is replayed from them.
	StatusTTL = 24 * time.Hour
)

// FeedPresets maps friendly names to RSS feed URLs used for topic suggestions.
var FeedPresets = map[string]string{
	"cna": "https://www.channelnewsasia.com/api/v1/rss-outbound-feed?_format=xml",
	"st":  "https://www.straitstimes.com/news/singapore/rss.xml",
	"hn":  "https://hnrss.org/newest",
	"tr":  "https://www.technologyreview.com/feed/",
}

// ResolveFeedURL resolves a feed identifier to a URL.
// Preset names map to their URL; anything else is assumed to be a direct URL.
func ResolveFeedURL(feedInput string) string {
	if url, exists := FeedPresets[feedInput]; exists {
		return url
	}
	return feedInput
}

// Config carries everything main wires into the API server, the export façade
// and the optional collaborators. It is assembled once from the environment and
// passed down explicitly; packages below main never read env vars themselves.
type Config struct {
	Port      string
	OutputDir string

	// MergeEndpoint is the remote merge URL the export façade posts to.
	MergeEndpoint string

	// Redis-backed export status registry (optional; empty addr disables it).
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// S3 archival of merged outputs (optional; empty bucket disables it).
	S3Bucket       string
	S3Region       string
	S3Profile      string
	S3Prefix       string
	S3UsePathStyle bool

	// Kafka intake for batch merge requests (optional; no brokers disables it).
	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroupID string

	// YouTube publishing (optional; empty path disables it).
	YouTubeServiceAccount string

	// Feed identifiers (preset names or URLs) for topic suggestions.
	TopicFeeds []string
	TopicCount int
}

// FromEnv builds a Config from environment variables, applying defaults for
// anything unset. Call godotenv.Load before this if a .env file should apply.
func FromEnv() Config {
	cfg := Config{
		Port:                  getenv("PORT", "8080"),
		OutputDir:             getenv("OUTPUT_DIR", "output"),
		MergeEndpoint:         getenv("MERGE_ENDPOINT", "http://localhost:8080/api/merge-video"),
		RedisAddr:             os.Getenv("REDIS_ADDR"),
		RedisPassword:         os.Getenv("REDIS_PASSWORD"),
		S3Bucket:              strings.TrimSpace(os.Getenv("S3_BUCKET")),
		S3Region:              strings.TrimSpace(os.Getenv("S3_REGION")),
		S3Profile:             strings.TrimSpace(os.Getenv("S3_PROFILE")),
		S3UsePathStyle:        strings.EqualFold(strings.TrimSpace(os.Getenv("S3_USE_PATH_STYLE")), "true"),
		KafkaTopic:            getenv("KAFKA_TOPIC_MERGE_REQUESTS", "video-merge-requests"),
		KafkaGroupID:          getenv("KAFKA_CONSUMER_GROUP_ID", "merge-service-consumer-group"),
		YouTubeServiceAccount: os.Getenv("YOUTUBE_SERVICE_ACCOUNT_FILE"),
		TopicCount:            10,
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.RedisDB = db
		}
	}

	if prefix := strings.TrimSpace(os.Getenv("S3_PREFIX")); prefix != "" {
		cfg.S3Prefix = strings.Trim(prefix, "/") + "/"
	}

	if brokers := os.Getenv("KAFKA_BOOTSTRAP_SERVERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	feeds := getenv("TOPIC_FEEDS", "hn")
	for _, f := range strings.Split(feeds, ",") {
		if f = strings.TrimSpace(f); f != "" {
			cfg.TopicFeeds = append(cfg.TopicFeeds, f)
		}
	}

	if v := os.Getenv("TOPIC_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TopicCount = n
		}
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

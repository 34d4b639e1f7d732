package topics

import (
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"
)

// Topic is a trending headline offered to the dashboard's topic picker.
type Topic struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"publishedAt"`
}

// FeedParser is the slice of gofeed the service uses; tests substitute it.
type FeedParser interface {
	ParseURL(url string) (*gofeed.Feed, error)
}

// Service pulls trending headlines from configured RSS/Atom feeds.
type Service struct {
	parser   FeedParser
	feedURLs []string
}

func NewService(parser FeedParser, feedURLs []string) *Service {
	if parser == nil {
		parser = gofeed.NewParser()
	}
	return &Service{parser: parser, feedURLs: feedURLs}
}

// Trending fetches up to maxCount headlines across all configured feeds,
// preserving feed order. A feed that fails to parse fails the whole call; the
// caller decides how to surface it.
func (s *Service) Trending(maxCount int) ([]Topic, error) {
	if maxCount < 1 {
		return nil, nil
	}

	topics := make([]Topic, 0, maxCount)

	for _, feedURL := range s.feedURLs {
		feed, err := s.parser.ParseURL(feedURL)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch feed %s: %w", feedURL, err)
		}

		for _, item := range feed.Items {
			if len(topics) >= maxCount {
				return topics, nil
			}

			var publishedAt time.Time
			if item.PublishedParsed != nil {
				publishedAt = *item.PublishedParsed
			} else if item.UpdatedParsed != nil {
				publishedAt = *item.UpdatedParsed
			}

			topics = append(topics, Topic{
				Title:       item.Title,
				URL:         item.Link,
				Source:      feed.Title,
				PublishedAt: publishedAt,
			})
		}
	}

	return topics, nil
}

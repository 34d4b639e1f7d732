package topics

import (
	"errors"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
)

type fakeParser struct {
	feeds map[string]*gofeed.Feed
	err   error
}

func (p *fakeParser) ParseURL(url string) (*gofeed.Feed, error) {
	if p.err != nil {
		return nil, p.err
	}
	feed, ok := p.feeds[url]
	if !ok {
		return nil, errors.New("unknown feed")
	}
	return feed, nil
}

func TestTrending(t *testing.T) {
	published := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	parser := &fakeParser{feeds: map[string]*gofeed.Feed{
		"http://feeds.test/a": {
			Title: "Feed A",
			Items: []*gofeed.Item{
				{Title: "First story", Link: "http://a/1", PublishedParsed: &published},
				{Title: "Second story", Link: "http://a/2"},
			},
		},
		"http://feeds.test/b": {
			Title: "Feed B",
			Items: []*gofeed.Item{
				{Title: "Third story", Link: "http://b/1", UpdatedParsed: &published},
			},
		},
	}}

	svc := NewService(parser, []string{"http://feeds.test/a", "http://feeds.test/b"})

	got, err := svc.Trending(10)
	if err != nil {
		t.Fatalf("Trending error: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("got %d topics; want 3", len(got))
	}
	if got[0].Title != "First story" || got[0].Source != "Feed A" {
		t.Fatalf("first topic = %+v", got[0])
	}
	if !got[0].PublishedAt.Equal(published) {
		t.Fatalf("first topic time = %v; want %v", got[0].PublishedAt, published)
	}
	if !got[2].PublishedAt.Equal(published) {
		t.Fatalf("updated time not used as fallback: %+v", got[2])
	}
}

func TestTrendingTruncates(t *testing.T) {
	parser := &fakeParser{feeds: map[string]*gofeed.Feed{
		"http://feeds.test/a": {
			Title: "Feed A",
			Items: []*gofeed.Item{
				{Title: "one"}, {Title: "two"}, {Title: "three"},
			},
		},
	}}

	svc := NewService(parser, []string{"http://feeds.test/a"})

	got, err := svc.Trending(2)
	if err != nil {
		t.Fatalf("Trending error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d topics; want 2", len(got))
	}
}

func TestTrendingFeedFailure(t *testing.T) {
	svc := NewService(&fakeParser{err: errors.New("connection refused")}, []string{"http://feeds.test/a"})

	if _, err := svc.Trending(5); err == nil {
		t.Fatal("Trending succeeded; want feed error")
	}
}

func TestTrendingZeroCount(t *testing.T) {
	svc := NewService(&fakeParser{}, []string{"http://feeds.test/a"})

	got, err := svc.Trending(0)
	if err != nil || got != nil {
		t.Fatalf("Trending(0) = %v, %v; want nil, nil", got, err)
	}
}

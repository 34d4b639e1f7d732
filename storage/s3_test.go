package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
)

type fakePutter struct {
	bucket      string
	key         string
	contentType string
	body        []byte
	err         error
}

func (p *fakePutter) Put(ctx context.Context, bucket, key string, body io.Reader, contentType string) error {
	if p.err != nil {
		return p.err
	}
	p.bucket = bucket
	p.key = key
	p.contentType = contentType
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	p.body = b
	return nil
}

func TestArchiveStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "merged.mp4")
	if err := os.WriteFile(path, []byte("MERGED"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	putter := &fakePutter{}
	archive := NewArchive(putter, "shorts-bucket", "vs/")

	key, err := archive.Store(context.Background(), "abc123", path)
	if err != nil {
		t.Fatalf("Store error: %v", err)
	}

	if key != "vs/exports/abc123.mp4" {
		t.Fatalf("key = %q", key)
	}
	if putter.bucket != "shorts-bucket" {
		t.Fatalf("bucket = %q", putter.bucket)
	}
	if putter.contentType != "video/mp4" {
		t.Fatalf("content type = %q", putter.contentType)
	}
	if string(putter.body) != "MERGED" {
		t.Fatalf("body = %q", putter.body)
	}
}

func TestArchiveStoreMissingFile(t *testing.T) {
	archive := NewArchive(&fakePutter{}, "shorts-bucket", "")

	if _, err := archive.Store(context.Background(), "abc123", filepath.Join(t.TempDir(), "nope.mp4")); err == nil {
		t.Fatal("Store succeeded on a missing file")
	}
}

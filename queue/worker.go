package queue

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"viralshorts/media"
	"viralshorts/publish"
	"viralshorts/storage"
)

// Worker processes queued merge requests end to end: merge, persist the output
// locally, then optionally archive it to S3 and publish it to YouTube. Archive
// and publisher may be nil; those steps are skipped.
type Worker struct {
	pipeline  *media.Pipeline
	archive   *storage.Archive
	publisher *publish.YouTube
	outDir    string
}

func NewWorker(pipeline *media.Pipeline, archive *storage.Archive, publisher *publish.YouTube, outDir string) *Worker {
	return &Worker{pipeline: pipeline, archive: archive, publisher: publisher, outDir: outDir}
}

// Process runs one queued merge. The merged file is kept under the output
// directory; all pipeline temp assets are gone by the time Process returns.
func (w *Worker) Process(ctx context.Context, req media.MergeRequest) error {
	out, err := w.pipeline.Merge(ctx, req, nil)
	if err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}
	defer out.Remove()

	exportID := fmt.Sprintf("%d", time.Now().UnixMilli())
	localPath := filepath.Join(w.outDir, "viralshorts-"+exportID+".mp4")
	if err := copyFile(out.Path, localPath); err != nil {
		return fmt.Errorf("failed to persist merged video: %w", err)
	}
	log.Printf("Merged video saved: %s", localPath)

	if w.archive != nil {
		key, err := w.archive.Store(ctx, exportID, localPath)
		if err != nil {
			log.Printf("S3 archive failed for %s: %v", exportID, err)
		} else {
			log.Printf("Archived to S3: %s", key)
		}
	}

	if w.publisher != nil {
		videoID, err := w.publisher.Upload(localPath, publish.MetadataFromCaption(req.Text))
		if err != nil {
			log.Printf("YouTube upload failed for %s: %v", exportID, err)
		} else {
			log.Printf("Published: %s", videoID)
		}
	}

	return nil
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}

	return out.Close()
}

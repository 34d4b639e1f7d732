package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"viralshorts/config"
	"viralshorts/media"
	"viralshorts/status"
)

// registerMergeRoutes registers the merge endpoint and export status lookups.
func (s *Server) registerMergeRoutes(r *gin.Engine) {
	g := r.Group("/api")
	g.POST("/merge-video", s.handleMergeVideo)
	g.GET("/exports/:id/status", s.handleExportStatus)
}

// handleMergeVideo merges one video+audio+captions request and streams the
// result back as an MP4 attachment. Errors come back as {error, details} JSON
// with the engine's diagnostic text preserved in details.
// POST /api/merge-video
func (s *Server) handleMergeVideo(c *gin.Context) {
	var req media.MergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON payload", "details": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields", "details": err.Error()})
		return
	}

	// Callers may supply their own export id to poll status with; otherwise
	// one is minted and echoed back.
	exportID := c.GetHeader("X-Export-Id")
	if exportID == "" {
		exportID = uuid.NewString()
	}
	c.Header("X-Export-Id", exportID)

	ctx := c.Request.Context()
	log.Printf("Starting merge %s: video=%s audio=%s", exportID, req.VideoURL, req.AudioURL)

	out, err := s.pipeline.Merge(ctx, req, func(stage string) {
		s.statuses.Set(ctx, exportID, stage)
	})
	if err != nil {
		s.statuses.Set(ctx, exportID, "failed")
		log.Printf("Merge %s failed: %v", exportID, err)

		statusCode := http.StatusInternalServerError
		var dlErr *media.DownloadError
		if errors.As(err, &dlErr) {
			statusCode = http.StatusBadGateway
		}
		c.JSON(statusCode, gin.H{"error": "Failed to merge video", "details": err.Error()})
		return
	}
	defer out.Remove()

	if s.archive != nil {
		if key, err := s.archive.Store(ctx, exportID, out.Path); err != nil {
			log.Printf("S3 archive failed for %s: %v", exportID, err)
		} else {
			log.Printf("Archived merge %s to %s", exportID, key)
		}
	}

	s.statuses.Set(ctx, exportID, "done")
	log.Printf("Merge %s complete", exportID)
	c.FileAttachment(out.Path, config.OutputFilename)
}

// handleExportStatus reports the last recorded stage for an export id.
// GET /api/exports/:id/status
func (s *Server) handleExportStatus(c *gin.Context) {
	id := c.Param("id")

	stage, err := s.statuses.Get(c.Request.Context(), id)
	if errors.Is(err, status.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown export id"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read export status", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "stage": stage})
}

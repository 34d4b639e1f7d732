package api

import (
	"github.com/gin-gonic/gin"

	"viralshorts/media"
	"viralshorts/status"
	"viralshorts/storage"
	"viralshorts/topics"
)

// Server holds the collaborators the HTTP handlers need. Statuses and archive
// may be nil (status tracking and S3 archival are optional).
type Server struct {
	pipeline   *media.Pipeline
	statuses   *status.Store
	archive    *storage.Archive
	topics     *topics.Service
	topicCount int
}

func NewServer(pipeline *media.Pipeline, statuses *status.Store, archive *storage.Archive, topicSvc *topics.Service, topicCount int) *Server {
	return &Server{
		pipeline:   pipeline,
		statuses:   statuses,
		archive:    archive,
		topics:     topicSvc,
		topicCount: topicCount,
	}
}

// Router constructs a Gin engine with registered routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	s.registerHealthRoutes(r)
	s.registerMergeRoutes(r)
	s.registerTopicRoutes(r)
	return r
}

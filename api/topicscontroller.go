package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) registerTopicRoutes(r *gin.Engine) {
	r.GET("/api/topics", s.handleTopics)
}

// handleTopics returns trending headline suggestions for the topic picker.
// GET /api/topics
func (s *Server) handleTopics(c *gin.Context) {
	list, err := s.topics.Trending(s.topicCount)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch topics", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"topics": list})
}

package controller

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/josiahtayi/whatjosiahwatched/store"
)

type HealthStore interface {
	Stats(ctx context.Context) (*store.Stats, error)
}

type HealthController struct {
	store HealthStore
}

func NewHealthController(store HealthStore) *HealthController {
	return &HealthController{store: store}
}

// DBTest pings the database and reports which collections exist and how many
// movies are stored. Handy when the homepage comes up empty.
func (hc *HealthController) DBTest(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	stats, err := hc.store.Stats(ctx)
	if err != nil {
		log.Println("Database connection test failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":                   "connected",
		"database":                 stats.Database,
		"collections":              stats.Collections,
		"movies_collection_exists": stats.MoviesCollection,
		"document_count":           stats.DocumentCount,
	})
}

package controller

import (
	"context"
	"errors"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/josiahtayi/whatjosiahwatched/models"
	"github.com/josiahtayi/whatjosiahwatched/store"
	"github.com/josiahtayi/whatjosiahwatched/tmdb"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const requestTimeout = 20 * time.Second

// MovieStore is the slice of the storage layer the movie handlers need.
type MovieStore interface {
	All(ctx context.Context) ([]models.Movie, error)
	ByID(ctx context.Context, id bson.ObjectID) (*models.Movie, error)
	ByTmdbID(ctx context.Context, tmdbID int) (*models.Movie, error)
	Insert(ctx context.Context, movie *models.Movie) (bson.ObjectID, error)
	SetFeatured(ctx context.Context, id bson.ObjectID) error
	Featured(ctx context.Context) (*models.Movie, error)
	AddComment(ctx context.Context, id bson.ObjectID, comment models.Comment) error
	SetRating(ctx context.Context, id bson.ObjectID, rating int) error
	Delete(ctx context.Context, id bson.ObjectID) error
}

// Catalogue is the external movie catalogue (TMDB in production).
type Catalogue interface {
	SearchMovies(ctx context.Context, query string) (*tmdb.SearchResponse, error)
	MovieDetails(ctx context.Context, movieID int) (*tmdb.MovieDetails, error)
}

type MovieController struct {
	store     MovieStore
	catalogue Catalogue
	validate  *validator.Validate
}

func NewMovieController(store MovieStore, catalogue Catalogue) *MovieController {
	return &MovieController{
		store:     store,
		catalogue: catalogue,
		validate:  validator.New(),
	}
}

func (mc *MovieController) GetMovies(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	movies, err := mc.store.All(ctx)
	if err != nil {
		log.Println("Find error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch movies"})
		return
	}

	c.JSON(http.StatusOK, movies)
}

func (mc *MovieController) GetMovie(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid movie ID format"})
		return
	}

	movie, err := mc.store.ByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Movie not found"})
		return
	}
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch movie details"})
		return
	}

	c.JSON(http.StatusOK, movie)
}

type importRequest struct {
	TmdbID int `json:"tmdb_id" validate:"required,gt=0"`
}

// ImportMovie pulls details for one TMDB id and stores them as a new
// catalogue entry. Import is idempotent on tmdb_id: a second call answers 409
// with the id of the record already present and inserts nothing.
func (mc *MovieController) ImportMovie(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := mc.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tmdb_id must be a positive integer"})
		return
	}

	existing, err := mc.store.ByTmdbID(ctx, req.TmdbID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing movie"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{
			"success":  false,
			"message":  "Movie already exists in database",
			"movie_id": existing.ID.Hex(),
		})
		return
	}

	details, err := mc.catalogue.MovieDetails(ctx, req.TmdbID)
	if err != nil {
		log.Println("TMDB fetch error:", err)
		var statusErr *tmdb.StatusError
		if errors.As(err, &statusErr) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":           "Failed to fetch movie details from TMDB",
				"upstream_status": statusErr.Status,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch movie details from TMDB"})
		return
	}

	movie := &models.Movie{
		TmdbID:       details.ID,
		Title:        details.Title,
		Overview:     details.Overview,
		ReleaseDate:  details.ReleaseDate,
		PosterPath:   details.PosterPath,
		BackdropPath: details.BackdropPath,
		Genres:       details.GenreNames(),
		Director:     details.Director(),
		Cast:         details.TopCast(5),
		VoteAverage:  details.VoteAverage,
		Comments:     []models.Comment{},
		AddedAt:      time.Now(),
	}

	insertedID, err := mc.store.Insert(ctx, movie)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add movie"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Movie added successfully",
		"movie_id": insertedID.Hex(),
	})
}

// SearchCatalogue proxies a title search to TMDB for the admin page.
func (mc *MovieController) SearchCatalogue(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
		return
	}

	results, err := mc.catalogue.SearchMovies(ctx, query)
	if err != nil {
		log.Println("TMDB search error:", err)
		var statusErr *tmdb.StatusError
		if errors.As(err, &statusErr) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":           "Failed to search TMDB",
				"upstream_status": statusErr.Status,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search TMDB"})
		return
	}

	c.JSON(http.StatusOK, results)
}

type featureRequest struct {
	MovieID string `json:"movie_id" validate:"required"`
}

func (mc *MovieController) SetFeatured(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	var req featureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Movie ID is required"})
		return
	}
	if err := mc.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Movie ID is required"})
		return
	}

	id, err := bson.ObjectIDFromHex(req.MovieID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid movie ID format"})
		return
	}

	err = mc.store.SetFeatured(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Movie not found"})
		return
	}
	if err != nil {
		log.Println("Error setting featured movie:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set featured movie"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Featured movie updated successfully",
	})
}

func (mc *MovieController) GetFeatured(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	movie, err := mc.store.Featured(ctx)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No featured movie found"})
		return
	}
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch featured movie"})
		return
	}

	c.JSON(http.StatusOK, movie)
}

type patchRequest struct {
	Author  string   `json:"author"`
	Content string   `json:"content"`
	Rating  *float64 `json:"rating"`
}

// PatchMovie applies exactly one of two mutations: append a comment (author
// and content both present) or overwrite the owner rating (integer 0-5).
// A rating of 0 is a valid rating, not an absent one.
func (mc *MovieController) PatchMovie(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid movie ID format"})
		return
	}

	var req patchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.Rating != nil {
		r := *req.Rating
		if r < 0 || r > 5 || r != math.Trunc(r) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be an integer between 0 and 5"})
			return
		}
	}

	switch {
	case req.Author != "" && req.Content != "":
		comment := models.Comment{
			Author:    req.Author,
			Content:   req.Content,
			CreatedAt: time.Now(),
		}
		err = mc.store.AddComment(ctx, id, comment)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Movie not found"})
			return
		}
		if err != nil {
			log.Println("Error adding comment:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Comment added successfully",
			"comment": comment,
		})

	case req.Rating != nil:
		rating := int(*req.Rating)
		err = mc.store.SetRating(ctx, id, rating)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Movie not found"})
			return
		}
		if err != nil {
			log.Println("Error setting rating:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set rating"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Rating added successfully",
			"rating":  rating,
		})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Author name and comment content, or a rating, are required"})
	}
}

func (mc *MovieController) DeleteMovie(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid movie ID format"})
		return
	}

	err = mc.store.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Movie not found"})
		return
	}
	if err != nil {
		log.Println("Error deleting movie:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete movie"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Movie deleted successfully"})
}

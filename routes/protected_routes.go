package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/josiahtayi/whatjosiahwatched/controller"
	mw "github.com/josiahtayi/whatjosiahwatched/middlewares"
)

// Protected registers the admin surface: catalogue search, import, featuring
// and deletion all sit behind the JWT cookie with the ADMIN role.
func Protected(router *gin.Engine, mc *controller.MovieController, secretKey string) {
	protected := router.Group("/")
	protected.Use(mw.JWT(secretKey), mw.AdminOnly())

	protected.GET("/admin/search", mc.SearchCatalogue)
	protected.POST("/movies", mc.ImportMovie)
	protected.PUT("/movies/feature", mc.SetFeatured)
	protected.DELETE("/movies/:id", mc.DeleteMovie)
}

package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/josiahtayi/whatjosiahwatched/controller"
)

func Unprotected(router *gin.Engine, mc *controller.MovieController, uc *controller.UserController, hc *controller.HealthController) {
	router.GET("/health", hc.DBTest)

	router.GET("/movies", mc.GetMovies)
	router.GET("/movies/feature", mc.GetFeatured)
	router.GET("/movies/:id", mc.GetMovie)
	router.PATCH("/movies/:id", mc.PatchMovie)

	router.POST("/register", uc.RegisterUser)
	router.POST("/login", uc.LoginUser)
	router.POST("/logout", uc.Logout)
}

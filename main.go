package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/josiahtayi/whatjosiahwatched/controller"
	"github.com/josiahtayi/whatjosiahwatched/database"
	"github.com/josiahtayi/whatjosiahwatched/routes"
	"github.com/josiahtayi/whatjosiahwatched/store"
	"github.com/josiahtayi/whatjosiahwatched/tmdb"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded:", err)
	}

	mongoURI := os.Getenv("MONGO_URI")
	dbName := os.Getenv("DATABASE_NAME")
	tmdbKey := os.Getenv("TMDB_API_KEY")
	secretKey := os.Getenv("SECRET_KEY")
	refreshSecretKey := os.Getenv("SECRET_REFRESH_KEY")
	port := os.Getenv("PORT")
	if port == "" {
		port = "8007"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := database.Connect(ctx, mongoURI)
	cancel()
	if err != nil {
		log.Println(err)
		return
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Println(err)
		}
	}()
	log.Println("Connected to mongoDB")

	movies := store.NewMovieStore(client, dbName, "movies")
	users := store.NewUserStore(client, dbName, "users")
	catalogue := tmdb.NewClient(tmdb.DefaultBaseURL, tmdbKey)

	mc := controller.NewMovieController(movies, catalogue)
	uc := controller.NewUserController(users, secretKey, refreshSecretKey)
	hc := controller.NewHealthController(movies)

	router := gin.Default()
	routes.Unprotected(router, mc, uc, hc)
	routes.Protected(router, mc, secretKey)

	if err := router.Run(":" + port); err != nil {
		log.Println(err)
	}
}

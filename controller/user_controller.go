package controller

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/josiahtayi/whatjosiahwatched/models"
	"github.com/josiahtayi/whatjosiahwatched/store"
	"github.com/josiahtayi/whatjosiahwatched/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// UserStore is the slice of the storage layer the auth handlers need.
type UserStore interface {
	ByEmail(ctx context.Context, email string) (*models.User, error)
	CountByEmail(ctx context.Context, email string) (int64, error)
	Insert(ctx context.Context, user *models.User) error
	UpdateTokens(ctx context.Context, userID, token, refreshToken string) error
}

type UserController struct {
	users            UserStore
	secretKey        string
	refreshSecretKey string
	validate         *validator.Validate
}

func NewUserController(users UserStore, secretKey, refreshSecretKey string) *UserController {
	return &UserController{
		users:            users,
		secretKey:        secretKey,
		refreshSecretKey: refreshSecretKey,
		validate:         validator.New(),
	}
}

func (uc *UserController) RegisterUser(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		log.Println(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data"})
		return
	}
	if err := uc.validate.Struct(user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
		return
	}

	count, err := uc.users.CountByEmail(ctx, user.Email)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing user"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
		return
	}

	hashed, err := utils.HashPassword(user.Password)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to hash password"})
		return
	}

	user.UserID = bson.NewObjectID().Hex()
	user.Password = hashed
	if user.Role == "" {
		user.Role = "USER"
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	if err := uc.users.Insert(ctx, &user); err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "user_id": user.UserID})
}

func (uc *UserController) LoginUser(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	var login models.UserLogin
	if err := c.ShouldBindJSON(&login); err != nil {
		log.Println(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := uc.validate.Struct(login); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
		return
	}

	user, err := uc.users.ByEmail(ctx, login.Email)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up user"})
		return
	}

	if err := utils.VerifyPassword(login.Password, user.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, refreshToken, err := utils.GenerateAllTokens(uc.secretKey, uc.refreshSecretKey,
		user.Email, user.FirstName, user.LastName, user.Role, user.UserID)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token not created properly"})
		return
	}

	if err := uc.users.UpdateTokens(ctx, user.UserID, token, refreshToken); err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating tokens"})
		return
	}

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     "Bearer",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(24 * time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	c.JSON(http.StatusOK, gin.H{"status": "Login successful", "token": token})
}

func (uc *UserController) Logout(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     "Bearer",
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

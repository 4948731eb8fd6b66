package store

import (
	"context"
	"errors"
	"time"

	"github.com/josiahtayi/whatjosiahwatched/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type UserStore struct {
	coll *mongo.Collection
}

func NewUserStore(client *mongo.Client, dbName, collName string) *UserStore {
	return &UserStore{coll: client.Database(dbName).Collection(collName)}
}

func (s *UserStore) ByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) CountByEmail(ctx context.Context, email string) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{"email": email})
}

func (s *UserStore) Insert(ctx context.Context, user *models.User) error {
	_, err := s.coll.InsertOne(ctx, user)
	return err
}

// UpdateTokens stores the freshly minted token pair on the user document.
func (s *UserStore) UpdateTokens(ctx context.Context, userID, token, refreshToken string) error {
	update := bson.M{
		"$set": bson.M{
			"token":         token,
			"refresh_token": refreshToken,
			"updated_at":    time.Now(),
		},
	}
	result, err := s.coll.UpdateOne(ctx, bson.M{"user_id": userID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

package store

import (
	"context"
	"errors"

	"github.com/josiahtayi/whatjosiahwatched/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// ErrNotFound reports that no document matched the given id or filter.
var ErrNotFound = errors.New("store: document not found")

// MovieStore wraps the movies collection. It keeps the client around because
// SetFeatured needs a session for its transaction.
type MovieStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func NewMovieStore(client *mongo.Client, dbName, collName string) *MovieStore {
	return &MovieStore{
		client: client,
		coll:   client.Database(dbName).Collection(collName),
	}
}

// All returns every movie, newest first. Never returns a nil slice.
func (s *MovieStore) All(ctx context.Context) ([]models.Movie, error) {
	opts := options.Find().SetSort(bson.D{{Key: "added_at", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	movies := []models.Movie{}
	if err := cursor.All(ctx, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

func (s *MovieStore) ByID(ctx context.Context, id bson.ObjectID) (*models.Movie, error) {
	var movie models.Movie
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&movie)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

func (s *MovieStore) ByTmdbID(ctx context.Context, tmdbID int) (*models.Movie, error) {
	var movie models.Movie
	err := s.coll.FindOne(ctx, bson.M{"tmdb_id": tmdbID}).Decode(&movie)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

func (s *MovieStore) Insert(ctx context.Context, movie *models.Movie) (bson.ObjectID, error) {
	result, err := s.coll.InsertOne(ctx, movie)
	if err != nil {
		return bson.ObjectID{}, err
	}
	id, _ := result.InsertedID.(bson.ObjectID)
	return id, nil
}

// SetFeatured clears the flag everywhere and raises it on the target, inside
// one transaction so the collection never settles with two featured movies
// and a missing target leaves the previous pick in place.
func (s *MovieStore) SetFeatured(ctx context.Context, id bson.ObjectID) error {
	sess, err := s.client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(ctx context.Context) (interface{}, error) {
		_, err := s.coll.UpdateMany(ctx,
			bson.M{"featured": true},
			bson.M{"$set": bson.M{"featured": false}})
		if err != nil {
			return nil, err
		}

		result, err := s.coll.UpdateOne(ctx,
			bson.M{"_id": id},
			bson.M{"$set": bson.M{"featured": true}})
		if err != nil {
			return nil, err
		}
		if result.MatchedCount == 0 {
			return nil, ErrNotFound
		}
		return nil, nil
	})
	return err
}

func (s *MovieStore) Featured(ctx context.Context) (*models.Movie, error) {
	var movie models.Movie
	err := s.coll.FindOne(ctx, bson.M{"featured": true}).Decode(&movie)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

// AddComment appends to the movie's comments array in a single atomic update.
func (s *MovieStore) AddComment(ctx context.Context, id bson.ObjectID, comment models.Comment) error {
	result, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$push": bson.M{"comments": comment}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetRating overwrites the owner rating; the previous value is not kept.
func (s *MovieStore) SetRating(ctx context.Context, id bson.ObjectID, rating int) error {
	result, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"rating": rating}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MovieStore) Delete(ctx context.Context, id bson.ObjectID) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats is the diagnostics payload for the health endpoint.
type Stats struct {
	Database         string   `json:"database"`
	Collections      []string `json:"collections"`
	MoviesCollection bool     `json:"movies_collection_exists"`
	DocumentCount    int64    `json:"document_count"`
}

func (s *MovieStore) Stats(ctx context.Context) (*Stats, error) {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}

	db := s.coll.Database()
	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	stats := &Stats{Database: db.Name(), Collections: names}
	for _, name := range names {
		if name == s.coll.Name() {
			stats.MoviesCollection = true
			break
		}
	}
	if stats.MoviesCollection {
		count, err := s.coll.CountDocuments(ctx, bson.M{})
		if err != nil {
			return nil, err
		}
		stats.DocumentCount = count
	}
	return stats, nil
}

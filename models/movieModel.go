package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Comment lives embedded in its movie document and is never addressable on
// its own. CreatedAt is set server-side when the comment is appended.
type Comment struct {
	Author    string    `json:"author" bson:"author" validate:"required,min=1,max=100"`
	Content   string    `json:"content" bson:"content" validate:"required,min=1,max=2000"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Movie is one catalogue entry. TmdbID is the external catalogue id and is
// unique across the collection (checked before insert, not an index).
// VoteAverage is TMDB's score captured at import; Rating is the journal
// owner's own 0-5 score and the two never mix.
type Movie struct {
	ID           bson.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	TmdbID       int           `json:"tmdb_id" bson:"tmdb_id" validate:"required,gt=0"`
	Title        string        `json:"title" bson:"title" validate:"required,min=1,max=400"`
	Overview     string        `json:"overview" bson:"overview"`
	ReleaseDate  string        `json:"release_date,omitempty" bson:"release_date,omitempty"`
	PosterPath   string        `json:"poster_path,omitempty" bson:"poster_path,omitempty"`
	BackdropPath string        `json:"backdrop_path,omitempty" bson:"backdrop_path,omitempty"`
	Genres       []string      `json:"genres" bson:"genres"`
	Director     string        `json:"director,omitempty" bson:"director,omitempty"`
	Cast         []string      `json:"cast" bson:"cast" validate:"max=5"`
	VoteAverage  float64       `json:"vote_average,omitempty" bson:"vote_average,omitempty"`
	Featured     bool          `json:"featured" bson:"featured"`
	Rating       *int          `json:"rating,omitempty" bson:"rating,omitempty"`
	Comments     []Comment     `json:"comments" bson:"comments"`
	AddedAt      time.Time     `json:"added_at" bson:"added_at"`
}

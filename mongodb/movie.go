package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErolGelbul/imbd-tracker/movie"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MoviesCollection is the collection holding one document per movie.
const MoviesCollection = "movies"

// movieDocument is the persisted layout. The business id lives in "id";
// MongoDB's own _id is never exposed.
type movieDocument struct {
	ID          string `bson:"id"`
	Title       string `bson:"title"`
	Description string `bson:"description"`
	ReleaseYear int    `bson:"release_year"`
	Watched     bool   `bson:"watched"`
}

func (d movieDocument) toMovie() movie.Movie {
	return movie.Movie{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		ReleaseYear: d.ReleaseYear,
		Watched:     d.Watched,
	}
}

// MovieRepository implements movie.Repository on a MongoDB collection.
type MovieRepository struct {
	movies *mongo.Collection
}

// NewMovieRepository creates a repository backed by db's movies collection.
func NewMovieRepository(db *mongo.Database) *MovieRepository {
	return &MovieRepository{movies: db.Collection(MoviesCollection)}
}

// EnsureIndexes creates the unique business id index and the title index.
func (r *MovieRepository) EnsureIndexes(ctx context.Context) error {
	if err := validateCollection(r.movies); err != nil {
		return err
	}

	_, err := r.movies.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "title", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("mongodb: create movie indexes: %w", err)
	}
	return nil
}

func (r *MovieRepository) Create(ctx context.Context, m movie.Movie) error {
	if err := validateCollection(r.movies); err != nil {
		return err
	}

	doc := movieDocument{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		ReleaseYear: m.ReleaseYear,
		Watched:     m.Watched,
	}
	_, err := r.movies.UpdateOne(ctx,
		bson.D{{Key: "id", Value: m.ID}},
		bson.D{{Key: "$set", Value: doc}},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("mongodb: upsert movie: %w", err)
	}
	return nil
}

func (r *MovieRepository) GetByID(ctx context.Context, id string) (*movie.Movie, error) {
	if err := validateCollection(r.movies); err != nil {
		return nil, err
	}

	var doc movieDocument
	err := r.movies.FindOne(ctx, bson.D{{Key: "id", Value: id}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mongodb: find movie: %w", err)
	}

	m := doc.toMovie()
	return &m, nil
}

// GetByTitle pushes skip and limit down to the server. A limit of 0 is
// unlimited for MongoDB as well. Results come back in insertion order.
func (r *MovieRepository) GetByTitle(ctx context.Context, title string, skip, limit int) ([]movie.Movie, error) {
	if err := validateCollection(r.movies); err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))
	cursor, err := r.movies.Find(ctx, bson.D{{Key: "title", Value: title}}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb: find movies by title: %w", err)
	}

	var docs []movieDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongodb: decode movies: %w", err)
	}

	movies := make([]movie.Movie, len(docs))
	for i, doc := range docs {
		movies[i] = doc.toMovie()
	}
	return movies, nil
}

// Update issues a field-level $set. A document that matches but already holds
// the new values counts as a successful update.
func (r *MovieRepository) Update(ctx context.Context, id string, changes movie.Changes) error {
	if err := validateCollection(r.movies); err != nil {
		return err
	}
	if err := changes.Validate(); err != nil {
		return err
	}

	filter := bson.D{{Key: "id", Value: id}}
	known := changes.Known()
	if len(known) == 0 {
		return r.ensureExists(ctx, id)
	}

	set := bson.M{}
	for field, value := range known {
		set[string(field)] = value
	}

	result, err := r.movies.UpdateOne(ctx, filter, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return fmt.Errorf("mongodb: update movie: %w", err)
	}
	if result.MatchedCount == 0 {
		return movie.ErrMovieNotFound(id)
	}
	return nil
}

func (r *MovieRepository) Delete(ctx context.Context, id string) error {
	if err := validateCollection(r.movies); err != nil {
		return err
	}

	if _, err := r.movies.DeleteOne(ctx, bson.D{{Key: "id", Value: id}}); err != nil {
		return fmt.Errorf("mongodb: delete movie: %w", err)
	}
	return nil
}

func (r *MovieRepository) ensureExists(ctx context.Context, id string) error {
	n, err := r.movies.CountDocuments(ctx, bson.D{{Key: "id", Value: id}}, options.Count().SetLimit(1))
	if err != nil {
		return fmt.Errorf("mongodb: count movies: %w", err)
	}
	if n == 0 {
		return movie.ErrMovieNotFound(id)
	}
	return nil
}

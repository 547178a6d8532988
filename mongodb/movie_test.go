package mongodb_test

import (
	"context"
	"strings"
	"testing"

	"github.com/ErolGelbul/imbd-tracker/mongodb"
	"github.com/ErolGelbul/imbd-tracker/movie"
	"github.com/ErolGelbul/imbd-tracker/movie/movietest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	mongocontainer "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

func TestMovieRepository(t *testing.T) {
	client := CreateClient(t)

	movietest.RunRepositoryContract(t, func(t *testing.T) movie.Repository {
		repo := mongodb.NewMovieRepository(randomDatabase(t, client))
		require.NoError(t, repo.EnsureIndexes(context.Background()))
		return repo
	})
}

func TestMovieRepository_PersistedLayout(t *testing.T) {
	client := CreateClient(t)
	db := randomDatabase(t, client)
	repo := mongodb.NewMovieRepository(db)
	ctx := context.Background()

	err := repo.Create(ctx, movie.Movie{
		ID:          "first",
		Title:       "My Movie",
		Description: "My Movie Description",
		ReleaseYear: 2022,
		Watched:     true,
	})
	require.NoError(t, err)

	var doc bson.M
	err = db.Collection(mongodb.MoviesCollection).FindOne(ctx, bson.D{{Key: "id", Value: "first"}}).Decode(&doc)
	require.NoError(t, err)
	assert.Equal(t, "first", doc["id"])
	assert.Equal(t, "My Movie", doc["title"])
	assert.Equal(t, "My Movie Description", doc["description"])
	assert.EqualValues(t, 2022, doc["release_year"])
	assert.Equal(t, true, doc["watched"])
}

func TestMovieRepository_UpsertKeepsSingleDocument(t *testing.T) {
	client := CreateClient(t)
	db := randomDatabase(t, client)
	repo := mongodb.NewMovieRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, movie.Movie{ID: "first", Title: "Old"}))
	require.NoError(t, repo.Create(ctx, movie.Movie{ID: "first", Title: "New"}))

	n, err := db.Collection(mongodb.MoviesCollection).CountDocuments(ctx, bson.D{{Key: "id", Value: "first"}})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestMovieRepository_CanceledContext(t *testing.T) {
	client := CreateClient(t)
	repo := mongodb.NewMovieRepository(randomDatabase(t, client))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.GetByID(ctx, "first")

	assert.Error(t, err)
	assert.False(t, movie.IsRepositoryError(err))
}

func TestNewClient_Error(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := mongodb.NewClient(ctx, mongodb.Options{URI: "mongodb://invalidhost:27017"})

	assert.Error(t, err)
}

func CreateClient(t testing.TB) *mongo.Client {
	t.Helper()
	cont := SetupMongoContainer(t)
	uri, err := cont.ConnectionString(context.Background())
	require.NoError(t, err)

	client, err := mongodb.NewClient(context.Background(), mongodb.Options{URI: uri})
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, client.Disconnect(context.Background()))
	})

	return client
}

func SetupMongoContainer(t testing.TB) *mongocontainer.MongoDBContainer {
	t.Helper()
	ctx := context.Background()
	cont, err := mongocontainer.RunContainer(ctx,
		testcontainers.WithImage("docker.io/mongo:6"),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, cont.Terminate(ctx))
	})

	return cont
}

func randomDatabase(t testing.TB, client *mongo.Client) *mongo.Database {
	t.Helper()
	name := "movies_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
	db := mongodb.Database(client, name)
	t.Cleanup(func() {
		assert.NoError(t, db.Drop(context.Background()))
	})
	return db
}

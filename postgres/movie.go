package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErolGelbul/imbd-tracker/movie"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MovieModel represents the database model for movies.
// Listing orders by the table's seq column, a BIGSERIAL the database fills in.
type MovieModel struct {
	ID          string `gorm:"column:id;primaryKey"`
	Title       string `gorm:"column:title;not null"`
	Description string `gorm:"column:description;not null"`
	ReleaseYear int    `gorm:"column:release_year;not null"`
	Watched     bool   `gorm:"column:watched;not null"`
}

// TableName specifies the table name for GORM
func (MovieModel) TableName() string {
	return "movies"
}

func (m MovieModel) toMovie() movie.Movie {
	return movie.Movie{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		ReleaseYear: m.ReleaseYear,
		Watched:     m.Watched,
	}
}

// MovieRepository implements movie.Repository interface on PostgreSQL.
type MovieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

func (r *MovieRepository) Create(ctx context.Context, m movie.Movie) error {
	model := MovieModel{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		ReleaseYear: m.ReleaseYear,
		Watched:     m.Watched,
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "description", "release_year", "watched"}),
		}).
		Create(&model).Error
	if err != nil {
		return fmt.Errorf("postgres: upsert movie: %w", err)
	}
	return nil
}

func (r *MovieRepository) GetByID(ctx context.Context, id string) (*movie.Movie, error) {
	var model MovieModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: get movie: %w", err)
	}

	m := model.toMovie()
	return &m, nil
}

func (r *MovieRepository) GetByTitle(ctx context.Context, title string, skip, limit int) ([]movie.Movie, error) {
	query := r.db.WithContext(ctx).
		Where("title = ?", title).
		Order("seq").
		Offset(skip)
	if limit > 0 {
		query = query.Limit(limit)
	}

	var models []MovieModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("postgres: find movies by title: %w", err)
	}

	movies := make([]movie.Movie, len(models))
	for i, model := range models {
		movies[i] = model.toMovie()
	}
	return movies, nil
}

// Update relies on PostgreSQL reporting matched rows, so rewriting a field
// with its current value still counts as found.
func (r *MovieRepository) Update(ctx context.Context, id string, changes movie.Changes) error {
	if err := changes.Validate(); err != nil {
		return err
	}

	known := changes.Known()
	if len(known) == 0 {
		return r.ensureExists(ctx, id)
	}

	columns := make(map[string]interface{}, len(known))
	for field, value := range known {
		columns[string(field)] = value
	}

	result := r.db.WithContext(ctx).Model(&MovieModel{}).Where("id = ?", id).Updates(columns)
	if result.Error != nil {
		return fmt.Errorf("postgres: update movie: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return movie.ErrMovieNotFound(id)
	}
	return nil
}

func (r *MovieRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&MovieModel{}).Error; err != nil {
		return fmt.Errorf("postgres: delete movie: %w", err)
	}
	return nil
}

func (r *MovieRepository) ensureExists(ctx context.Context, id string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&MovieModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("postgres: count movies: %w", err)
	}
	if count == 0 {
		return movie.ErrMovieNotFound(id)
	}
	return nil
}

package memory

import (
	"context"
	"sort"

	"cinema-manager/internal/apperror"
	"cinema-manager/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type movieRepository struct {
	store *Store
	log   *zap.Logger
}

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	if err := ready(ctx, "create movie"); err != nil {
		return err
	}
	if movie.ID == uuid.Nil {
		movie.ID = uuid.New()
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.movies[movie.ID] = *movie
	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	if err := ready(ctx, "find movie"); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	movie, ok := r.store.movies[id]
	if !ok {
		return nil, nil
	}
	return &movie, nil
}

func (r *movieRepository) FindAll(ctx context.Context) ([]*entity.Movie, error) {
	if err := ready(ctx, "find movies"); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	movies := make([]*entity.Movie, 0, len(r.store.movies))
	for _, movie := range r.store.movies {
		movies = append(movies, &movie)
	}
	r.store.mu.RUnlock()

	sort.Slice(movies, func(i, j int) bool {
		if movies[i].Title != movies[j].Title {
			return movies[i].Title < movies[j].Title
		}
		return movies[i].ID.String() < movies[j].ID.String()
	})
	return movies, nil
}

func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	if err := ready(ctx, "update movie"); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.movies[movie.ID]; !ok {
		return apperror.NotFound("movie", movie.ID)
	}
	r.store.movies[movie.ID] = *movie
	return nil
}

func (r *movieRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ready(ctx, "delete movie"); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.movies[id]; !ok {
		return apperror.NotFound("movie", id)
	}
	for _, screening := range r.store.screenings {
		if screening.MovieID == id {
			return apperror.InUse("movie", id, "screenings")
		}
	}

	delete(r.store.movies, id)
	r.log.Info("Movie deleted", zap.String("movie_id", id.String()))
	return nil
}

package dogs

import (
	"context"

	"github.com/alanyang/dogs/internal/domain/breed"
	"github.com/alanyang/dogs/internal/domain/result"
)

// DataSource talks to the remote dog API.
// Fetch outcomes are reported through result.Result, never as Go errors.
type DataSource interface {
	FetchBreedList(ctx context.Context) result.Result[[]breed.Summary]
	FetchBreedDetail(ctx context.Context, breedID string, imageCount int) result.Result[breed.Detail]
}

// Repository is what screen controllers depend on.
// [DIP] Controllers never see the remote data source directly.
type Repository interface {
	FetchBreedList(ctx context.Context) result.Result[[]breed.Summary]
	FetchBreedDetail(ctx context.Context, breedID string) result.Result[breed.Detail]
}

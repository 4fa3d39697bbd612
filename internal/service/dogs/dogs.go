package dogs

import (
	"context"

	"github.com/alanyang/dogs/internal/domain/breed"
	"github.com/alanyang/dogs/internal/domain/result"
	portdogs "github.com/alanyang/dogs/internal/port/dogs"
)

const DefaultImageCount = 10

var _ portdogs.Repository = (*Service)(nil)

// Service is the repository facade over a data source. It adds no behaviour
// beyond fixing the photo count; it exists so a local source can sit next to the
// remote one later.
type Service struct {
	source     portdogs.DataSource
	imageCount int
}

func NewService(source portdogs.DataSource, imageCount int) *Service {
	if imageCount <= 0 {
		imageCount = DefaultImageCount
	}
	return &Service{source: source, imageCount: imageCount}
}

func (s *Service) FetchBreedList(ctx context.Context) result.Result[[]breed.Summary] {
	return s.source.FetchBreedList(ctx)
}

func (s *Service) FetchBreedDetail(ctx context.Context, breedID string) result.Result[breed.Detail] {
	return s.source.FetchBreedDetail(ctx, breedID, s.imageCount)
}

// FetchBreedDetailN fetches an explicit number of photos, bypassing the default.
func (s *Service) FetchBreedDetailN(ctx context.Context, breedID string, imageCount int) result.Result[breed.Detail] {
	if imageCount <= 0 {
		imageCount = s.imageCount
	}
	return s.source.FetchBreedDetail(ctx, breedID, imageCount)
}

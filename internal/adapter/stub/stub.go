package stub

import (
	"context"

	"github.com/alanyang/dogs/internal/domain/breed"
	"github.com/alanyang/dogs/internal/domain/result"
	portdogs "github.com/alanyang/dogs/internal/port/dogs"
)

var _ portdogs.DataSource = DataSource{}

// DataSource answers every request with an empty success. It backs offline
// previews and lets the server run without reaching the network.
type DataSource struct{}

func (DataSource) FetchBreedList(context.Context) result.Result[[]breed.Summary] {
	return result.Success([]breed.Summary{})
}

func (DataSource) FetchBreedDetail(_ context.Context, breedID string, _ int) result.Result[breed.Detail] {
	return result.Success(breed.Detail{ID: breedID, Images: []string{}})
}

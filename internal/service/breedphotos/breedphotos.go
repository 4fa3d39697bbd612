package breedphotos

import (
	"context"
	"fmt"

	"github.com/alanyang/dogs/internal/domain/breed"
	"github.com/alanyang/dogs/internal/domain/result"
	"github.com/alanyang/dogs/internal/domain/route"
	domainscreen "github.com/alanyang/dogs/internal/domain/screen"
	portdogs "github.com/alanyang/dogs/internal/port/dogs"
	"github.com/alanyang/dogs/internal/service/screen"
)

const screenName = "breed_photos"

// ViewState is what the UI renders. PhotoURLs is nil while loading.
type ViewState struct {
	Status       domainscreen.Status `json:"status"`
	BreedID      string              `json:"breed_id"`
	PhotoURLs    []string            `json:"photo_urls"`
	IsRefreshing bool                `json:"is_refreshing"`
	Error        *screen.ErrorView   `json:"error,omitempty"`
}

type Event interface{ breedPhotosEvent() }

type TriggerRefresh struct{}

func (TriggerRefresh) breedPhotosEvent() {}

var _ screen.Screen = (*Controller)(nil)

type Controller struct {
	*screen.Controller[string, ViewState]
	breedID string
}

// New starts loading photos of breedID right away.
func New(ctx context.Context, repo portdogs.Repository, breedID string) *Controller {
	fetch := func(ctx context.Context) result.Result[[]string] {
		return result.Map(repo.FetchBreedDetail(ctx, breedID), func(d breed.Detail) []string {
			return d.Images
		})
	}
	project := func(s domainscreen.State[string]) ViewState {
		v := ViewState{
			Status:       s.Status,
			BreedID:      breedID,
			IsRefreshing: s.IsRefreshing,
			Error:        screen.ToErrorView(s.Error),
		}
		if s.Loaded() {
			v.PhotoURLs = s.Items
		}
		return v
	}
	return &Controller{
		Controller: screen.NewController(ctx, screenName, fetch, project),
		breedID:    breedID,
	}
}

func (c *Controller) Route() route.Route { return route.BreedPhotos(c.breedID) }

func (c *Controller) Handle(_ context.Context, e Event) error {
	switch e.(type) {
	case TriggerRefresh:
		return c.Refresh()
	default:
		return fmt.Errorf("handle %T: %w", e, screen.ErrUnknownEvent)
	}
}

func (c *Controller) HandleRaw(ctx context.Context, e screen.RawEvent) error {
	if e.Type != screen.EventRefresh {
		return fmt.Errorf("handle %q: %w", e.Type, screen.ErrUnknownEvent)
	}
	return c.Handle(ctx, TriggerRefresh{})
}

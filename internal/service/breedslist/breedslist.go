package breedslist

import (
	"context"
	"fmt"

	"github.com/alanyang/dogs/internal/domain/breed"
	"github.com/alanyang/dogs/internal/domain/route"
	domainscreen "github.com/alanyang/dogs/internal/domain/screen"
	portdogs "github.com/alanyang/dogs/internal/port/dogs"
	portnav "github.com/alanyang/dogs/internal/port/navigator"
	"github.com/alanyang/dogs/internal/service/screen"
)

const screenName = "breeds_list"

type BreedItem struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name"`
	PhotoURL    *string `json:"photo_url"`
}

// ViewState is what the UI renders. Breeds is nil while loading.
type ViewState struct {
	Status       domainscreen.Status `json:"status"`
	Breeds       []BreedItem         `json:"breeds"`
	IsRefreshing bool                `json:"is_refreshing"`
	Error        *screen.ErrorView   `json:"error,omitempty"`
}

// Event is one of BreedSelected or TriggerRefreshList.
type Event interface{ breedsListEvent() }

type BreedSelected struct{ ID string }

type TriggerRefreshList struct{}

func (BreedSelected) breedsListEvent()      {}
func (TriggerRefreshList) breedsListEvent() {}

var _ screen.Screen = (*Controller)(nil)

type Controller struct {
	*screen.Controller[breed.Summary, ViewState]
	navigator portnav.Navigator
}

// New starts loading the breed list right away.
func New(ctx context.Context, repo portdogs.Repository, navigator portnav.Navigator) *Controller {
	return &Controller{
		Controller: screen.NewController(ctx, screenName, repo.FetchBreedList, project),
		navigator:  navigator,
	}
}

func (c *Controller) Route() route.Route { return route.BreedsList() }

func (c *Controller) Handle(ctx context.Context, e Event) error {
	switch e := e.(type) {
	case BreedSelected:
		if e.ID == "" {
			return fmt.Errorf("select breed: %w", screen.ErrInvalidEvent)
		}
		c.navigator.NavigateTo(ctx, route.BreedPhotos(e.ID))
		return nil
	case TriggerRefreshList:
		return c.Refresh()
	default:
		return fmt.Errorf("handle %T: %w", e, screen.ErrUnknownEvent)
	}
}

func (c *Controller) HandleRaw(ctx context.Context, e screen.RawEvent) error {
	switch e.Type {
	case screen.EventBreedSelected:
		return c.Handle(ctx, BreedSelected{ID: e.BreedID})
	case screen.EventRefresh:
		return c.Handle(ctx, TriggerRefreshList{})
	default:
		return fmt.Errorf("handle %q: %w", e.Type, screen.ErrUnknownEvent)
	}
}

func project(s domainscreen.State[breed.Summary]) ViewState {
	v := ViewState{
		Status:       s.Status,
		IsRefreshing: s.IsRefreshing,
		Error:        screen.ToErrorView(s.Error),
	}
	if !s.Loaded() {
		return v
	}
	v.Breeds = make([]BreedItem, 0, len(s.Items))
	for _, b := range s.Items {
		v.Breeds = append(v.Breeds, BreedItem{
			ID:          b.ID,
			DisplayName: breed.DisplayName(b.ID),
			PhotoURL:    b.PhotoURL,
		})
	}
	return v
}

package route

import (
	"fmt"
	"strings"
)

type Kind string

const (
	KindBack        Kind = "Back"
	KindBreedsList  Kind = "BreedsList"
	KindBreedPhotos Kind = "BreedPhotos"
)

// Route is a navigation destination. BreedID is only set for KindBreedPhotos.
type Route struct {
	Kind    Kind   `json:"kind"`
	BreedID string `json:"breed_id,omitempty"`
}

func Back() Route { return Route{Kind: KindBack} }

func BreedsList() Route { return Route{Kind: KindBreedsList} }

func BreedPhotos(breedID string) Route {
	return Route{Kind: KindBreedPhotos, BreedID: breedID}
}

// ID is the stable route identifier, e.g. "BreedsList" or "BreedPhotos/hound".
func (r Route) ID() string {
	if r.Kind == KindBreedPhotos {
		return string(KindBreedPhotos) + "/" + r.BreedID
	}
	return string(r.Kind)
}

func (r Route) String() string { return r.ID() }

// Parse is the inverse of ID.
func Parse(id string) (Route, error) {
	kind, arg, hasArg := strings.Cut(id, "/")
	switch Kind(kind) {
	case KindBack, KindBreedsList:
		if hasArg {
			return Route{}, fmt.Errorf("route %q takes no argument", kind)
		}
		return Route{Kind: Kind(kind)}, nil
	case KindBreedPhotos:
		if arg == "" {
			return Route{}, fmt.Errorf("route %q requires a breed id", kind)
		}
		return BreedPhotos(arg), nil
	}
	return Route{}, fmt.Errorf("unknown route %q", id)
}

package navigator

import (
	"context"

	"github.com/alanyang/dogs/internal/domain/route"
)

// Navigator accepts navigation requests from screen controllers.
// [DIP] Controllers depend on this sink, not on the session host that listens to it.
type Navigator interface {
	NavigateTo(ctx context.Context, r route.Route)
}

package screen

import "github.com/alanyang/dogs/internal/domain/result"

type Status string

const (
	StatusLoading Status = "loading"
	StatusLoaded  Status = "loaded"
)

type ErrorKind string

const (
	ErrorEmptyResponse ErrorKind = "empty_response"
	ErrorNetwork       ErrorKind = "network_error"
)

// ErrorState describes why the last fetch produced no new items. Code is set only
// for ErrorNetwork.
type ErrorState struct {
	Kind ErrorKind
	Code string
}

func EmptyResponse() *ErrorState {
	return &ErrorState{Kind: ErrorEmptyResponse}
}

func NetworkError(code string) *ErrorState {
	return &ErrorState{Kind: ErrorNetwork, Code: code}
}

// State is the view state of one screen. It starts Loading and becomes Loaded on
// the first completed fetch; it never goes back to Loading.
type State[T any] struct {
	Status       Status
	Items        []T
	IsRefreshing bool
	Error        *ErrorState
}

func Initial[T any]() State[T] {
	return State[T]{Status: StatusLoading}
}

func (s State[T]) Loaded() bool { return s.Status == StatusLoaded }

// BeginRefresh marks a loaded state as refreshing and clears its error. Items are
// kept so the screen does not flash empty while the new fetch runs. Loading states
// are returned unchanged.
func (s State[T]) BeginRefresh() State[T] {
	if !s.Loaded() {
		return s
	}
	s.IsRefreshing = true
	s.Error = nil
	return s
}

// Apply folds a completed fetch into the state. From Loading the base is an empty
// loaded state; otherwise the previous items are the base so Empty and Failure
// results keep what was already on screen.
func (s State[T]) Apply(r result.Result[[]T]) State[T] {
	next := s
	if !s.Loaded() {
		next = State[T]{Status: StatusLoaded, Items: []T{}}
	}
	next.IsRefreshing = false

	switch r.Kind {
	case result.KindSuccess:
		next.Items = r.Data
		if next.Items == nil {
			next.Items = []T{}
		}
		next.Error = nil
	case result.KindFailure:
		next.Error = NetworkError(r.Error)
	default:
		next.Error = EmptyResponse()
	}
	return next
}

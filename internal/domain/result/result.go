package result

type Kind string

const (
	KindSuccess Kind = "success"
	KindEmpty   Kind = "empty"
	KindFailure Kind = "failure"
)

// Result is the outcome of one remote call. Data is only meaningful for
// KindSuccess and Error only for KindFailure, where it holds either the HTTP
// status code or a transport exception description.
type Result[T any] struct {
	Kind  Kind   `json:"kind"`
	Data  T      `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

func Success[T any](data T) Result[T] {
	return Result[T]{Kind: KindSuccess, Data: data}
}

func Empty[T any]() Result[T] {
	return Result[T]{Kind: KindEmpty}
}

func Failure[T any](descriptor string) Result[T] {
	return Result[T]{Kind: KindFailure, Error: descriptor}
}

func (r Result[T]) IsSuccess() bool { return r.Kind == KindSuccess }

// Map converts the payload of a successful result, carrying Empty and Failure over
// unchanged.
func Map[T, S any](r Result[T], fn func(T) S) Result[S] {
	switch r.Kind {
	case KindSuccess:
		return Success(fn(r.Data))
	case KindFailure:
		return Failure[S](r.Error)
	default:
		return Empty[S]()
	}
}

package handler

import "github.com/iliyamo/cinema-room-booking/internal/booking"

// ResultState tags a Result. The vocabulary mirrors the lifecycle a
// client walks through when rendering a fetch: idle before the first
// request, loading while in flight, then exactly one of success,
// empty or error. The server only ever emits the last three; idle and
// loading exist so clients can reuse the same vocabulary end to end.
type ResultState string

const (
	StateIdle    ResultState = "idle"
	StateLoading ResultState = "loading"
	StateSuccess ResultState = "success"
	StateError   ResultState = "error"
	StateEmpty   ResultState = "empty"
)

// Result is a tagged fetch outcome. Data is only meaningful in the
// success state and Message only in the error state; consumers should
// switch on State rather than probing fields.
type Result[T any] struct {
	State   ResultState `json:"state"`
	Data    T           `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Success wraps data in a success result.
func Success[T any](data T) Result[T] {
	return Result[T]{State: StateSuccess, Data: data}
}

// Empty marks a query that ran fine but matched nothing.
func Empty[T any]() Result[T] {
	return Result[T]{State: StateEmpty}
}

// Failure carries an error message without data.
func Failure[T any](msg string) Result[T] {
	return Result[T]{State: StateError, Message: msg}
}

// Match dispatches on the result state, calling exactly one callback.
// Unknown states fall through to onError so a decoding bug cannot
// silently render as success.
func (r Result[T]) Match(
	onIdle func(),
	onLoading func(),
	onSuccess func(T),
	onEmpty func(),
	onError func(string),
) {
	switch r.State {
	case StateIdle:
		onIdle()
	case StateLoading:
		onLoading()
	case StateSuccess:
		onSuccess(r.Data)
	case StateEmpty:
		onEmpty()
	default:
		onError(r.Message)
	}
}

// listPayload is one page of items plus pagination facts, the Data of
// every list endpoint's Result.
type listPayload[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
	TotalItems int `json:"totalItems"`
}

// pageResult converts a pagination window into a Result: empty when
// the source list matched nothing, success otherwise.
func pageResult[T any](p booking.Page[T]) Result[listPayload[T]] {
	if p.TotalItems == 0 {
		return Empty[listPayload[T]]()
	}
	return Success(listPayload[T]{
		Items:      p.Items,
		Page:       p.Current,
		TotalPages: p.TotalPages,
		TotalItems: p.TotalItems,
	})
}

package domain

// Status tags a Result.
type Status int

const (
	StatusAbsent Status = iota
	StatusSuccess
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	default:
		return "absent"
	}
}

// Result is the outcome of one provider call. Absent and Failed are both
// non-fatal; only Success carries a Value.
type Result[T any] struct {
	Status Status
	Value  T
	Reason string
}

func Success[T any](v T) Result[T] {
	return Result[T]{Status: StatusSuccess, Value: v}
}

func Absent[T any]() Result[T] {
	return Result[T]{Status: StatusAbsent}
}

func Failed[T any](reason string) Result[T] {
	return Result[T]{Status: StatusFailed, Reason: reason}
}

func (r Result[T]) Ok() bool {
	return r.Status == StatusSuccess
}

// Ptr returns the value when the result succeeded, nil otherwise.
func (r Result[T]) Ptr() *T {
	if !r.Ok() {
		return nil
	}
	v := r.Value
	return &v
}

package gateway

// Result is what every gateway hands back: the live value, or the documented fallback plus the reason.
type Result[T any] struct {
	Value  T     `json:"value"`
	Live   bool  `json:"live"`
	Reason error `json:"-"`
}

// NewLive wraps a value that came from the upstream.
func NewLive[T any](v T) Result[T] {
	return Result[T]{Value: v, Live: true}
}

// NewFallback wraps a documented fallback value and why it was used.
func NewFallback[T any](v T, reason error) Result[T] {
	return Result[T]{Value: v, Reason: reason}
}

// ReasonText is the failure reason for display, empty for live values.
func (r Result[T]) ReasonText() string {
	if r.Reason == nil {
		return ""
	}
	return r.Reason.Error()
}

// Package screens holds the per-screen view-state machines.
//
// A screen starts in Loading, runs one fetch and settles in Success or
// Failure. Retry starts another attempt. Every failure is turned into a
// user-facing message here; nothing escapes to the renderer.
package screens

type Status string

const (
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// State is closed: only Loading, Success and Failure implement it.
type State[T any] interface {
	Status() Status
	sealed()
}

type Loading[T any] struct{}

type Success[T any] struct {
	Data T
}

type Failure[T any] struct {
	Message string
}

func (Loading[T]) Status() Status { return StatusLoading }
func (Success[T]) Status() Status { return StatusSuccess }
func (Failure[T]) Status() Status { return StatusError }

func (Loading[T]) sealed() {}
func (Success[T]) sealed() {}
func (Failure[T]) sealed() {}

package jobs

// Noop is a job that does nothing. Useful as a placeholder and in tests.
type Noop struct{}

func (n Noop) Run() {}

func (n Noop) Schedule() string {
	return "@every 1h"
}

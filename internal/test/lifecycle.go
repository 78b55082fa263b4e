package test

import (
	"go.uber.org/fx"
)

// LifecycleRecorder captures hooks appended during tests so they can be
// invoked manually.
type LifecycleRecorder struct {
	Hooks []fx.Hook
}

// Append stores the hook for later invocation.
func (l *LifecycleRecorder) Append(h fx.Hook) {
	l.Hooks = append(l.Hooks, h)
}

// ShutdownerStub signals shutdown requests over a channel.
type ShutdownerStub struct {
	Called chan struct{}
}

// Shutdown notifies the test about a graceful termination request.
func (s *ShutdownerStub) Shutdown(...fx.ShutdownOption) error {
	if s.Called != nil {
		select {
		case s.Called <- struct{}{}:
		default:
		}
	}
	return nil
}

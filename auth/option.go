package auth

import (
	"github.com/reown-com/appkit-go/auth/session"
	"github.com/rs/zerolog"
)

type Option func(*Service)

// WithState injects an externally owned session state, letting several
// components observe one instance.
func WithState(state *session.State) Option {
	return func(s *Service) {
		s.state = state
	}
}

// WithLogger sets the service logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

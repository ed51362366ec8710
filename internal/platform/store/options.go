package store

import "chatter/internal/platform/logger"

// Option adjusts a Store during Open
type Option func(*Store) error

// WithLogger sets the logger handed to the SQL tracer
func WithLogger(l logger.Logger) Option {
	return func(s *Store) error {
		s.Log = l
		return nil
	}
}

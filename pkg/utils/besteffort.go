package utils

import "github.com/rs/zerolog/log"

// BestEffort runs a fire-and-forget side effect. Failures are logged and
// discarded so they can never affect the caller's outcome.
func BestEffort(component string, fn func() error) {
	if err := fn(); err != nil {
		log.Error().Err(err).Str("component", component).Msg("best-effort call failed")
	}
}

// Package ragretry implements the fixed-step retry/backoff loop the LLM
// driver wraps every provider call in.
package ragretry

import (
	"fmt"
	"strings"
	"time"

	"github.com/lucas-reyes/ragtime-go/internal/ragconfig"
)

// Config controls a Do call. Defaults to a fixed 3s
// step, up to 3 retries.
type Config struct {
	MaxRetries int
	Step       time.Duration
}

// Default is the standard retry policy for rate-limited calls.
var Default = Config{MaxRetries: 3, Step: 3 * time.Second}

// Do executes operation, retrying with a fixed delay when shouldRetry(err)
// is true, up to cfg.MaxRetries times. Any other error, or exhausting the
// retry budget, returns the last error unwrapped so the caller can tell a
// terminal model error from a transient one.
func Do(operation func() (interface{}, error), shouldRetry func(error) bool, cfg Config) (interface{}, error) {
	var result interface{}
	var err error

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		result, err = operation()
		if err == nil || !shouldRetry(err) {
			return result, err
		}
		if attempt == cfg.MaxRetries {
			return nil, err
		}

		wait := cfg.Step
		if t := extractRetryTime(err.Error()); t > 0 {
			wait = t
		}
		ragconfig.DebugLog("[Retry] rate-limited: %v. Retrying in %v (attempt %d/%d)", err, wait, attempt+1, cfg.MaxRetries)
		time.Sleep(wait)
	}
	return nil, fmt.Errorf("operation failed after %d retries: %w", cfg.MaxRetries, err)
}

// IsRateLimit reports whether err looks like a 429/rate-limit response.
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "rate_limit") ||
		strings.Contains(msg, "quota exceeded") ||
		strings.Contains(msg, "too many requests")
}

// extractRetryTime pulls a "retry in Ns" / "retry after N seconds" style
// hint out of a provider error message, returning 0 if none is found.
func extractRetryTime(errMsg string) time.Duration {
	patterns := []string{"retry in ", "retry after ", "try again in ", "try again after "}
	lower := strings.ToLower(errMsg)
	for _, p := range patterns {
		idx := strings.Index(lower, p)
		if idx < 0 {
			continue
		}
		rest := errMsg[idx+len(p):]
		var seconds int
		if _, err := fmt.Sscanf(rest, "%ds", &seconds); err == nil {
			return time.Duration(seconds) * time.Second
		}
		if _, err := fmt.Sscanf(rest, "%d seconds", &seconds); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return 0
}

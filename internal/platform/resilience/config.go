package resilience

import "time"

type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

// DefaultCircuitBreakerConfig is disabled; a batch run prefers slow
// answers over short-circuited empty ones.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          false,
		FailureThreshold: 20,
		OpenTimeout:      30 * time.Second,
		HalfOpenMaxReq:   2,
	}
}

func NormalizeCircuitBreakerConfig(cfg CircuitBreakerConfig) CircuitBreakerConfig {
	defaults := DefaultCircuitBreakerConfig()
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = defaults.FailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaults.OpenTimeout
	}
	if cfg.HalfOpenMaxReq < 1 {
		cfg.HalfOpenMaxReq = defaults.HalfOpenMaxReq
	}
	return cfg
}

type RetryConfig struct {
	// Attempts is the total number of tries, including the first.
	Attempts int
	// Step is the linear backoff unit: the wait after the n-th failure is n*Step.
	Step time.Duration
	// Throttle is slept before every attempt.
	Throttle time.Duration
	// Constant waits Step after every failure instead of growing linearly.
	Constant bool
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		Attempts: 3,
		Step:     time.Second,
		Throttle: 20 * time.Millisecond,
	}
}

func NormalizeRetryConfig(cfg RetryConfig) RetryConfig {
	defaults := DefaultRetryConfig()
	if cfg.Attempts < 1 {
		cfg.Attempts = defaults.Attempts
	}
	if cfg.Step < 0 {
		cfg.Step = defaults.Step
	}
	if cfg.Throttle < 0 {
		cfg.Throttle = 0
	}
	return cfg
}

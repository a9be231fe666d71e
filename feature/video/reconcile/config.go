package reconcile

import "time"

// Config holds configuration for the sweep reconciler.
type Config struct {
	// IntervalMinutes is how often the background sweep runs. Zero disables
	// the periodic sweep; manual triggers keep working.
	IntervalMinutes int `mapstructure:"interval_minutes" default:"30"`
	// StalenessMinutes is how long a record may sit in a transient status
	// before a sweep considers it stuck.
	StalenessMinutes int `mapstructure:"staleness_minutes" default:"10"`
	// Concurrency bounds the number of records reconciled in parallel.
	Concurrency int `mapstructure:"concurrency" default:"8"`
	// CallTimeoutSeconds bounds each per-record provider call.
	CallTimeoutSeconds int `mapstructure:"call_timeout_seconds" default:"30"`
}

// Interval returns the background sweep interval, zero when disabled.
func (c Config) Interval() time.Duration {
	if c.IntervalMinutes <= 0 {
		return 0
	}
	return time.Duration(c.IntervalMinutes) * time.Minute
}

// Options converts the configuration into sweeper options.
func (c Config) Options() Options {
	return Options{
		Staleness:   time.Duration(c.StalenessMinutes) * time.Minute,
		Concurrency: c.Concurrency,
		CallTimeout: time.Duration(c.CallTimeoutSeconds) * time.Second,
	}
}

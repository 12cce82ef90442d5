package conversions

import "time"

// DefaultConverters returns the built-in converter set covering the common
// temporal representations: RFC 3339 strings and millisecond epochs for
// instants, string and nanosecond forms for durations. The slice is freshly
// allocated; callers own it. Individual pairs can be suppressed through
// Config.SkipDefaults.
func DefaultConverters() []Candidate {
	return []Candidate{
		Writing(func(t time.Time) (string, error) {
			return t.UTC().Format(time.RFC3339Nano), nil
		}),
		Reading(func(s string) (time.Time, error) {
			return time.Parse(time.RFC3339Nano, s)
		}),
		Writing(func(t time.Time) (int64, error) {
			return t.UnixMilli(), nil
		}),
		Reading(func(ms int64) (time.Time, error) {
			return time.UnixMilli(ms).UTC(), nil
		}),
		Writing(func(d time.Duration) (string, error) {
			return d.String(), nil
		}),
		Reading(func(s string) (time.Duration, error) {
			return time.ParseDuration(s)
		}),
		Writing(func(d time.Duration) (int64, error) {
			return int64(d), nil
		}),
		Reading(func(v int64) (time.Duration, error) {
			return time.Duration(v), nil
		}),
	}
}

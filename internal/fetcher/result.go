package fetcher

// Result represents the outcome of processing one entity.
// The coordinator collects one Result per entity, in processing order.
type Result struct {
	// Key is the entity identifier (country code or ticker symbol)
	Key string

	// Error contains any error that aborted this entity.
	// A nil Error means the entity contributed to the combined output.
	Error error
}

// OK reports whether the entity was processed without error.
func (r Result) OK() bool {
	return r.Error == nil
}

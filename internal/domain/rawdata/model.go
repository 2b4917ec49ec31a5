package rawdata

import "time"

// Payload is one archived upstream response body, kept for provider
// schema-drift debugging. EntityKey identifies the fetch (season+week,
// slate date, or event id) within a source.
type Payload struct {
	Source      string
	EntityType  string
	EntityKey   string
	PayloadBody string
	PayloadHash string
	FetchedAt   time.Time
}

package cache

import "time"

// Default expiry per key type.
const (
	TTLArtifact = 24 * time.Hour
	TTLDiagram  = 7 * 24 * time.Hour
)

package searcher

import "time"

const (
	// UnitOfWork is how many node steps run between clock checks.
	UnitOfWork = 100

	MinThinkingTime = 1000 * time.Millisecond
	MaxThinkingTime = 5000 * time.Millisecond
)

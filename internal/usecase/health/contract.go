package health

import "context"

// CachePinger checks Redis availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// StorageChecker checks object-store availability.
type StorageChecker interface {
	HealthCheck(ctx context.Context) error
}

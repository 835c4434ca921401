package health

import (
	"context"
	"time"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Status is the liveness payload.
type Status struct {
	OK             bool   `json:"ok"`
	Database       string `json:"database"`
	CatalogVersion string `json:"catalogVersion,omitempty"`
}

// Service encapsulates health-related checks.
type Service struct {
	DB             Pinger
	CatalogVersion func() string
}

// NewService constructs a new health service. A nil db means in-memory storage.
func NewService(db Pinger, catalogVersion func() string) *Service {
	return &Service{DB: db, CatalogVersion: catalogVersion}
}

// Status reports whether the API can serve requests.
func (s *Service) Status(ctx context.Context) Status {
	out := Status{OK: true, Database: "memory"}
	if s.CatalogVersion != nil {
		out.CatalogVersion = s.CatalogVersion()
	}
	if s.DB == nil {
		return out
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.DB.PingContext(ctx); err != nil {
		out.OK = false
		out.Database = "unavailable"
		return out
	}
	out.Database = "ok"
	return out
}

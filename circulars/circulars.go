package circulars

import (
	"context"
	"time"
)

// Circular is a published GCN Circular.
type Circular struct {
	CircularID int       `json:"circularId"`
	CreatedOn  time.Time `json:"createdOn"`
	Submitter  string    `json:"submitter"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	Email      string    `json:"email,omitempty"`
}

// FormatDateISO formats t as YYYY-MM-DD in UTC.
func FormatDateISO(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

// Registrar registers a persistent identifier for a Circular.
type Registrar interface {
	Register(ctx context.Context, circular Circular) error
}

type Repo interface {
	// NextID reserves the next circular number
	NextID(ctx context.Context) (int, error)

	// Put stores a circular, replacing any with the same ID
	Put(ctx context.Context, circular Circular) error

	// Get retrieves a circular by ID
	Get(ctx context.Context, circularID int) (Circular, error)

	// List returns circulars newest first
	List(ctx context.Context, offset, limit int) ([]Circular, error)
}

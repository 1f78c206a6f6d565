package export

import (
	"context"
	"io"
)

// WriteResult describes where a written report landed.
type WriteResult struct {
	Key      string
	Location string
}

// Writer persists generated report files. Implementations decide where
// a key materializes: a local directory, object storage, and so on.
type Writer interface {
	Write(ctx context.Context, key string, contentType string, reader io.Reader) (*WriteResult, error)

	Remove(ctx context.Context, key string) error
}

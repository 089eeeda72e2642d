package storage

import (
	"context"
	"errors"
	"io"
)

/*
The storage provider interface describes the operations the service needs from
the place recordings are kept. These must be supported by any popular object
storage implementation.
*/

////////////////////////////////////////////////////////////////////////////////

// ErrObjectNotFound is returned when an object is not found.
var ErrObjectNotFound = errors.New("object not found")

// ErrInvalidObjectID is returned for object IDs a provider cannot store.
var ErrInvalidObjectID = errors.New("invalid object ID")

// Provider is the interface for a storage provider.
type Provider interface {
	Put(ctx context.Context, id string, data []byte) error
	Get(ctx context.Context, id string) (io.ReadSeekCloser, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]string, error)
	String() string
}

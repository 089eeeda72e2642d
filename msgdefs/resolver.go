package msgdefs

import (
	"context"
	"fmt"
	"io"

	"github.com/wkalt/msgdef/util"
	"github.com/wkalt/msgdef/util/log"
	"github.com/wkalt/msgdef/util/ros1msg"
	"github.com/wkalt/msgdef/util/schema"
	"golang.org/x/sync/errgroup"
)

/*
The Resolver turns the connections of a recording into resolved field lists.
Recordings commonly repeat the same message type on many topics, so resolved
definitions are cached by a hash of the type name and definition text. Cached
field lists are shared between callers and must not be modified.
*/

////////////////////////////////////////////////////////////////////////////////

// Resolved is a connection with its resolved fields.
type Resolved struct {
	Connection
	Fields    []schema.FieldDescriptor `json:"fields"`
	FixedSize int                      `json:"fixedSize"`
	Static    bool                     `json:"static"`
}

type resolvedDefinition struct {
	fields    []schema.FieldDescriptor
	fixedSize int
	static    bool
}

// Resolver resolves message definitions with a shared cache. It is safe for
// concurrent use.
type Resolver struct {
	cache   *util.LRU[string, resolvedDefinition]
	workers int
}

// NewResolver returns a new Resolver.
func NewResolver(opts ...Option) *Resolver {
	c := defaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return &Resolver{
		cache:   util.NewLRU[string, resolvedDefinition](c.cacheSize),
		workers: c.workers,
	}
}

// Stats returns the resolver's cache counters.
func (r *Resolver) Stats() util.CacheStats {
	return r.cache.Stats()
}

// Reset empties the cache and zeroes its counters.
func (r *Resolver) Reset() {
	r.cache.Reset()
}

// Resolve parses the message definition of a single connection. Unqualified
// type names in the main definition are looked up in the package of the
// connection's type first.
func (r *Resolver) Resolve(ctx context.Context, conn Connection) (Resolved, error) {
	key := util.Fingerprint([]byte(conn.Type), conn.MessageDefinition)
	def, ok := r.cache.Get(key)
	if !ok {
		fields, err := ros1msg.ParseMessageDefinition(
			conn.MessageDefinition,
			ros1msg.WithPackage(ros1msg.PackageOf(conn.Type)),
		)
		if err != nil {
			return Resolved{}, err
		}
		size, static := schema.FixedSize(fields)
		def = resolvedDefinition{fields: fields, fixedSize: size, static: static}
		r.cache.Put(key, def)
		log.Debugw(ctx, "resolved message definition", "type", conn.Type, "fields", len(fields))
	}
	return Resolved{
		Connection: conn,
		Fields:     def.fields,
		FixedSize:  def.fixedSize,
		Static:     def.static,
	}, nil
}

// ResolveAll resolves every connection, returning results in input order. The
// first failure cancels outstanding work and is returned.
func (r *Resolver) ResolveAll(ctx context.Context, conns []Connection) ([]Resolved, error) {
	results := make([]Resolved, len(conns))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, conn := range conns {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			resolved, err := r.Resolve(ctx, conn)
			if err != nil {
				return fmt.Errorf("failed to resolve %s (%s): %w", conn.Topic, conn.Type, err)
			}
			results[i] = resolved
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ResolveRecording reads the connections of a bag or MCAP file and resolves
// them all.
func (r *Resolver) ResolveRecording(ctx context.Context, rs io.ReadSeeker) ([]Resolved, error) {
	conns, err := ReadConnections(rs)
	if err != nil {
		return nil, err
	}
	results, err := r.ResolveAll(ctx, conns)
	if err != nil {
		return nil, err
	}
	log.Infow(ctx, "resolved recording", "connections", len(results))
	return results, nil
}

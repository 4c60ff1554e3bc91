package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/officegraph/internal/ctxlog"
	"github.com/vk/officegraph/internal/model"
	"github.com/vk/officegraph/internal/resolver"
)

// ErrNotEmpty is returned when retrieving into an office that already holds
// nodes.
var ErrNotEmpty = errors.New("office is not empty")

// ConfigurationItem is a source and destination of persisted bytes.
type ConfigurationItem interface {
	// Location identifies the item in messages, e.g. a file path.
	Location() string
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

// Codec converts between persisted bytes and office nodes. Decode adds the
// nodes to an empty office with every connection held by its owner but not
// yet connected. Encode writes each connection's persisted reference.
type Codec interface {
	Decode(ctx context.Context, data []byte, location string, o *model.Office) error
	Encode(ctx context.Context, o *model.Office) ([]byte, error)
}

// Repository retrieves and stores offices through a Codec.
type Repository struct {
	codec    Codec
	resolver *resolver.Resolver
}

// NewRepository returns a repository using codec. r may be nil, in which case
// a resolver without metrics is used.
func NewRepository(codec Codec, r *resolver.Resolver) *Repository {
	if r == nil {
		r = resolver.New(nil)
	}
	return &Repository{codec: codec, resolver: r}
}

// Retrieve decodes item into the empty office o and resolves its
// connections. Connections that do not resolve are dropped and listed in the
// returned report.
func (r *Repository) Retrieve(ctx context.Context, o *model.Office, item ConfigurationItem) (resolver.Report, error) {
	logger := ctxlog.FromContext(ctx)
	if !o.IsEmpty() {
		return resolver.Report{}, fmt.Errorf("retrieve %s: %w", item.Location(), ErrNotEmpty)
	}

	data, err := item.Read(ctx)
	if err != nil {
		return resolver.Report{}, fmt.Errorf("failed to read %s: %w", item.Location(), err)
	}
	if err := r.codec.Decode(ctx, data, item.Location(), o); err != nil {
		return resolver.Report{}, fmt.Errorf("failed to decode %s: %w", item.Location(), err)
	}

	report := r.resolver.Connect(ctx, o)
	logger.Debug("Persist: Office retrieved.", "location", item.Location(),
		"connected", report.Connected, "dropped", len(report.Dropped))
	return report, nil
}

// Store captures the live names of o's connections and writes the encoded
// office to item.
func (r *Repository) Store(ctx context.Context, o *model.Office, item ConfigurationItem) error {
	r.resolver.Capture(ctx, o)

	data, err := r.codec.Encode(ctx, o)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", item.Location(), err)
	}
	if err := item.Write(ctx, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", item.Location(), err)
	}
	ctxlog.FromContext(ctx).Debug("Persist: Office stored.", "location", item.Location(), "bytes", len(data))
	return nil
}

package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/officegraph/internal/ctxlog"
	"github.com/vk/officegraph/internal/model"
	"github.com/vk/officegraph/internal/persist"
	"github.com/vk/officegraph/internal/schema"
)

// Extension is the file extension of office files.
const Extension = ".office.hcl"

// Codec is the HCL implementation of persist.Codec.
type Codec struct{}

var _ persist.Codec = (*Codec)(nil)

// NewCodec creates a new HCL codec.
func NewCodec() *Codec {
	return &Codec{}
}

// Decode parses data and adds the office it describes to o. On error o is
// left untouched.
func (c *Codec) Decode(ctx context.Context, data []byte, location string, o *model.Office) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL: Decoding office.", "location", location, "bytes", len(data))

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, location)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL file %s: %w", location, diags)
	}

	var root schema.Office
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL file %s: %w", location, diags)
	}

	decoded, err := translateOffice(&root)
	if err != nil {
		return fmt.Errorf("invalid office %s: %w", location, err)
	}
	decoded.Names = o.Names
	if decoded.Names == nil {
		decoded.Names = model.NewNameAllocator()
	}
	*o = *decoded

	logger.Debug("HCL: Office decoded.", "location", location,
		"sections", len(o.Sections), "managed_objects", len(o.ManagedObjects))
	return nil
}

// Encode writes o in canonical HCL.
func (c *Codec) Encode(ctx context.Context, o *model.Office) ([]byte, error) {
	out := encodeOffice(o)
	ctxlog.FromContext(ctx).Debug("HCL: Office encoded.", "bytes", len(out))
	return out, nil
}

// Format rewrites an office file in canonical layout without resolving its
// connections, so links to missing nodes are kept as written.
func (c *Codec) Format(ctx context.Context, data []byte, location string) ([]byte, error) {
	o := model.NewOffice()
	if err := c.Decode(ctx, data, location, o); err != nil {
		return nil, err
	}
	return c.Encode(ctx, o)
}

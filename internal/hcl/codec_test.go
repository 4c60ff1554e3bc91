package hcl_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/officegraph/internal/hcl"
	"github.com/vk/officegraph/internal/model"
	"github.com/vk/officegraph/internal/resolver"
	"github.com/vk/officegraph/internal/testutil"
)

const orders = `
team "workers" {}

section "orders" {
  source_class = "OrderSection"
  x            = 10
  y            = 20
  property "mode" {
    value = "strict"
  }
  input "place" {
    parameter_type = "Order"
  }
  sub_section "validate" {
    function "check" {
      link "function_to_team" {
        to = "workers"
      }
    }
  }
}

start "Start1" {
  link "start_to_section_input" {
    section = "orders"
    to      = "place"
  }
}
`

func decode(t *testing.T, src string) *model.Office {
	t.Helper()
	o := model.NewOffice()
	require.NoError(t, hcl.NewCodec().Decode(context.Background(), []byte(src), "test.office.hcl", o))
	return o
}

// owned drops incoming-connection lines, whose order depends on how the
// connections were made.
func owned(lines []string) []string {
	var out []string
	for _, l := range lines {
		if !strings.Contains(l, " <- ") {
			out = append(out, l)
		}
	}
	return out
}

func TestDecode(t *testing.T) {
	t.Parallel()
	o := decode(t, orders)

	require.Len(t, o.Sections, 1)
	s := o.Sections[0]
	assert.Equal(t, "OrderSection", s.SourceClassName)
	assert.Equal(t, 10, s.X)
	assert.Equal(t, 20, s.Y)
	assert.Equal(t, model.PropertyList{{Name: "mode", Value: "strict"}}, s.Properties)
	require.NotNil(t, s.SubSection)
	fn, ok := model.FunctionPath{SubSections: []string{"validate"}, Function: "check"}.Resolve(s)
	require.True(t, ok)

	// Connections are held by their owner but not yet live.
	require.Len(t, fn.Links, 1)
	assert.False(t, fn.Links[0].IsConnected())
	assert.Equal(t, model.Ref{Name: "workers"}, fn.Links[0].To)
	assert.Equal(t, model.Ref{Parent: "orders", Name: "place"}, o.Starts[0].Links[0].To)

	report := resolver.New(nil).Connect(context.Background(), o)
	assert.Equal(t, 2, report.Connected)
	assert.Same(t, o.Teams[0], fn.Links[0].Target())
}

func TestDecode_SortsSiblings(t *testing.T) {
	t.Parallel()
	o := decode(t, `
team "zeta" {}
team "alpha" {}
section "s" {
  source_class = "S"
  output "b" {}
  output "a" {}
}
`)
	assert.Equal(t, []string{"alpha", "zeta"}, model.Names(o.Teams))
	assert.Equal(t, []string{"a", "b"}, model.Names(o.Sections[0].Outputs))
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"syntax", `team "a" {`, "failed to parse HCL file"},
		{"unknown block", `widget "a" {}`, "failed to decode HCL file"},
		{"unknown kind", `team "a" {
  link "nope" {
    to = "x"
  }
}`, `unknown connection kind "nope"`},
		{"wrong owner", `team "a" {
  link "start_to_section_input" {
    to = "x"
  }
}`, `team "a": connection kind "start_to_section_input" does not start at a team`},
		{"duplicate", "team \"a\" {}\nteam \"a\" {}", `duplicate team "a"`},
		{"scope", `managed_object "m" {
  scope = "REQUEST"
}`, "unknown managed object scope"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			o := model.NewOffice()
			err := hcl.NewCodec().Decode(context.Background(), []byte(tc.src), "bad.office.hcl", o)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
			assert.True(t, o.IsEmpty(), "a failed decode leaves the office untouched")
		})
	}
}

func TestEncode_RoundTrips(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	codec := hcl.NewCodec()
	s := testutil.NewSample(t)

	first, err := codec.Encode(ctx, s.Office)
	require.NoError(t, err)

	decoded := model.NewOffice()
	require.NoError(t, codec.Decode(ctx, first, "sample.office.hcl", decoded))
	report := resolver.New(nil).Connect(ctx, decoded)
	assert.Equal(t, 15, report.Connected)
	assert.Empty(t, report.Dropped)
	assert.Empty(t, cmp.Diff(owned(testutil.Snapshot(s.Office)), owned(testutil.Snapshot(decoded))))

	second, err := codec.Encode(ctx, decoded)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second), "encoding is canonical")
}

func TestEncode_OmitsUnsetAttributes(t *testing.T) {
	t.Parallel()
	o := model.NewOffice()
	o.Teams = []*model.Team{{Name: "workers"}}
	o.Administrations = []*model.Administration{{Name: "audit", SourceClassName: "Audit"}}

	out, err := hcl.NewCodec().Encode(context.Background(), o)
	require.NoError(t, err)

	assert.Equal(t, `team "workers" {
}

administration "audit" {
  source_class = "Audit"
}
`, string(out))
}

func TestFormat_KeepsUnresolvedLinks(t *testing.T) {
	t.Parallel()
	src := `start "Start1" {
  link "start_to_section_input" {
  section="missing"
  to="nowhere"
  }
}`

	out, err := hcl.NewCodec().Format(context.Background(), []byte(src), "fmt.office.hcl")
	require.NoError(t, err)

	assert.Equal(t, `start "Start1" {
  link "start_to_section_input" {
    section = "missing"
    to      = "nowhere"
  }
}
`, string(out))
}

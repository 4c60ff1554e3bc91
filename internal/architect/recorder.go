package architect

import (
	"fmt"
	"strconv"

	"github.com/vk/officegraph/internal/metrics"
	"github.com/vk/officegraph/internal/model"
	"gopkg.in/yaml.v3"
)

// Call is one recorded Architect call.
type Call struct {
	Op     string            `yaml:"op"`
	Handle string            `yaml:"handle,omitempty"`
	Args   map[string]string `yaml:"args,omitempty"`
}

type handle string

func (h handle) Path() string { return string(h) }

func child(parent Handle, kind, name string) handle {
	if parent == nil {
		return handle(kind + ":" + name)
	}
	return handle(parent.Path() + "/" + kind + ":" + name)
}

func path(h Handle) string {
	if h == nil {
		return ""
	}
	return h.Path()
}

// Recorder is an Architect that records every call in order. It is not safe
// for concurrent use.
type Recorder struct {
	Calls  []Call   `yaml:"calls"`
	Issues []string `yaml:"issues,omitempty"`

	metrics *metrics.Metrics
}

var _ Architect = (*Recorder)(nil)

// NewRecorder returns an empty Recorder counting calls into m, which may be
// nil.
func NewRecorder(m *metrics.Metrics) *Recorder {
	return &Recorder{metrics: m}
}

func (r *Recorder) record(op string, h Handle, args ...string) {
	call := Call{Op: op, Handle: path(h)}
	if len(args) > 0 {
		call.Args = make(map[string]string, len(args)/2)
		for i := 0; i+1 < len(args); i += 2 {
			call.Args[args[i]] = args[i+1]
		}
	}
	r.Calls = append(r.Calls, call)
	r.metrics.ObserveCall(op)
}

func (r *Recorder) add(op string, h handle, args ...string) Handle {
	r.record(op, h, args...)
	return h
}

func props(p model.PropertyList) string {
	out := ""
	for i, prop := range p {
		if i > 0 {
			out += ","
		}
		out += prop.Name + "=" + prop.Value
	}
	return out
}

func (r *Recorder) AddTeam(name string) Handle {
	return r.add("add_team", child(nil, "team", name))
}

func (r *Recorder) AddTypeQualification(target Handle, qualifier, typ string) {
	r.record("add_type_qualification", target, "qualifier", qualifier, "type", typ)
}

func (r *Recorder) AddGovernance(name, sourceClassName string, p model.PropertyList, autoWire bool) Handle {
	return r.add("add_governance", child(nil, "governance", name),
		"class", sourceClassName, "properties", props(p), "auto_wire", strconv.FormatBool(autoWire))
}

func (r *Recorder) AddAdministration(name, sourceClassName string, p model.PropertyList, autoWire bool) Handle {
	return r.add("add_administration", child(nil, "administration", name),
		"class", sourceClassName, "properties", props(p), "auto_wire", strconv.FormatBool(autoWire))
}

func (r *Recorder) AddExternalManagedObject(name, objectType string) Handle {
	return r.add("add_external_managed_object", child(nil, "external_managed_object", name), "type", objectType)
}

func (r *Recorder) AddManagedObjectSource(name, sourceClassName string, p model.PropertyList, timeout int64) Handle {
	return r.add("add_managed_object_source", child(nil, "managed_object_source", name),
		"class", sourceClassName, "properties", props(p), "timeout", strconv.FormatInt(timeout, 10))
}

func (r *Recorder) AddManagedObjectSourceFlow(source Handle, name, argumentType string) Handle {
	return r.add("add_managed_object_source_flow", child(source, "flow", name), "type", argumentType)
}

func (r *Recorder) AddManagedObjectSourceTeam(source Handle, name string) Handle {
	return r.add("add_managed_object_source_team", child(source, "team", name))
}

func (r *Recorder) AddManagedObject(source Handle, name string, scope model.Scope) Handle {
	return r.add("add_managed_object", child(nil, "managed_object", name), "source", path(source), "scope", string(scope))
}

func (r *Recorder) AddManagedObjectDependency(mo Handle, name, objectType, typeQualifier string) Handle {
	return r.add("add_managed_object_dependency", child(mo, "dependency", name), "type", objectType, "qualifier", typeQualifier)
}

func (r *Recorder) AddSection(name, sourceClassName, location string, p model.PropertyList) Handle {
	return r.add("add_section", child(nil, "section", name), "class", sourceClassName, "location", location, "properties", props(p))
}

func (r *Recorder) AddSectionInput(section Handle, name, parameterType string) Handle {
	return r.add("add_section_input", child(section, "input", name), "type", parameterType)
}

func (r *Recorder) AddSectionOutput(section Handle, name, argumentType string, escalationOnly bool) Handle {
	return r.add("add_section_output", child(section, "output", name),
		"type", argumentType, "escalation_only", strconv.FormatBool(escalationOnly))
}

func (r *Recorder) AddSectionObject(section Handle, name, objectType, typeQualifier string) Handle {
	return r.add("add_section_object", child(section, "object", name), "type", objectType, "qualifier", typeQualifier)
}

func (r *Recorder) AddSubSection(parent Handle, name string) Handle {
	return r.add("add_sub_section", child(parent, "sub", name))
}

func (r *Recorder) AddFunction(parent Handle, name string) Handle {
	return r.add("add_function", child(parent, "function", name))
}

func (r *Recorder) AddEscalation(escalationType string) Handle {
	return r.add("add_escalation", child(nil, "escalation", escalationType))
}

func (r *Recorder) AddStart(name string) Handle {
	return r.add("add_start", child(nil, "start", name))
}

func (r *Recorder) Link(kind model.EdgeKind, source, target Handle) {
	r.record("link", nil, "kind", kind.String(), "source", path(source), "target", path(target))
}

func (r *Recorder) Govern(governance, section Handle) {
	r.record("govern", nil, "governance", path(governance), "section", path(section))
}

func (r *Recorder) AddIssue(message string) {
	r.Issues = append(r.Issues, message)
	r.metrics.ObserveIssue()
}

// Ops returns the operation of every recorded call in order.
func (r *Recorder) Ops() []string {
	ops := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		ops[i] = c.Op
	}
	return ops
}

// Find returns the recorded calls of the given operation.
func (r *Recorder) Find(op string) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// YAML renders the recorded calls and issues.
func (r *Recorder) YAML() ([]byte, error) {
	out, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to encode architect calls: %w", err)
	}
	return out, nil
}

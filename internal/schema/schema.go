// Package schema declares the HCL block structure of a persisted office. The
// structs carry gohcl tags and are decoded and encoded by package hcl.
package schema

// --- Shared Blocks ---

// Link is a persisted connection owned by the enclosing block. Kind names the
// connection kind; Section scopes To for section input targets.
type Link struct {
	Kind    string `hcl:"kind,label"`
	Section string `hcl:"section,optional"`
	To      string `hcl:"to"`
	Order   string `hcl:"order,optional"`
}

// Property is a single named configuration value.
type Property struct {
	Name  string `hcl:"name,label"`
	Value string `hcl:"value"`
}

// TypeQualification qualifies the type served by a team or managed object.
type TypeQualification struct {
	Qualifier string `hcl:"qualifier,optional"`
	Type      string `hcl:"type"`
}

// --- Office Root ---

// Office is the top-level structure of an office file.
type Office struct {
	Teams                  []*Team                  `hcl:"team,block"`
	Administrations        []*Administration        `hcl:"administration,block"`
	Governances            []*Governance            `hcl:"governance,block"`
	ExternalManagedObjects []*ExternalManagedObject `hcl:"external_managed_object,block"`
	ManagedObjectSources   []*ManagedObjectSource   `hcl:"managed_object_source,block"`
	ManagedObjects         []*ManagedObject         `hcl:"managed_object,block"`
	Sections               []*Section               `hcl:"section,block"`
	Escalations            []*Escalation            `hcl:"escalation,block"`
	Starts                 []*Start                 `hcl:"start,block"`
}

// --- Concerns ---

type Team struct {
	Name               string               `hcl:"name,label"`
	TypeQualifications []*TypeQualification `hcl:"type_qualification,block"`
	Links              []*Link              `hcl:"link,block"`
}

type Administration struct {
	Name        string      `hcl:"name,label"`
	SourceClass string      `hcl:"source_class"`
	AutoWire    bool        `hcl:"auto_wire,optional"`
	Properties  []*Property `hcl:"property,block"`
	Links       []*Link     `hcl:"link,block"`
}

type Governance struct {
	Name        string      `hcl:"name,label"`
	SourceClass string      `hcl:"source_class"`
	AutoWire    bool        `hcl:"auto_wire,optional"`
	Properties  []*Property `hcl:"property,block"`
	Areas       []*Area     `hcl:"area,block"`
	Links       []*Link     `hcl:"link,block"`
}

// Area is a rectangle of the office plane a governance applies to.
type Area struct {
	X      int `hcl:"x"`
	Y      int `hcl:"y"`
	Width  int `hcl:"width"`
	Height int `hcl:"height"`
}

// --- Managed Objects ---

type ExternalManagedObject struct {
	Name  string  `hcl:"name,label"`
	Type  string  `hcl:"type"`
	Links []*Link `hcl:"link,block"`
}

type ManagedObjectSource struct {
	Name        string        `hcl:"name,label"`
	SourceClass string        `hcl:"source_class"`
	Timeout     string        `hcl:"timeout,optional"`
	Properties  []*Property   `hcl:"property,block"`
	Flows       []*Flow       `hcl:"flow,block"`
	Teams       []*SourceTeam `hcl:"team,block"`
}

type Flow struct {
	Name         string  `hcl:"name,label"`
	ArgumentType string  `hcl:"argument_type,optional"`
	Links        []*Link `hcl:"link,block"`
}

type SourceTeam struct {
	Name  string  `hcl:"name,label"`
	Links []*Link `hcl:"link,block"`
}

type ManagedObject struct {
	Name               string               `hcl:"name,label"`
	Scope              string               `hcl:"scope"`
	TypeQualifications []*TypeQualification `hcl:"type_qualification,block"`
	Dependencies       []*Dependency        `hcl:"dependency,block"`
	Links              []*Link              `hcl:"link,block"`
}

type Dependency struct {
	Name      string  `hcl:"name,label"`
	Type      string  `hcl:"type,optional"`
	Qualifier string  `hcl:"qualifier,optional"`
	Links     []*Link `hcl:"link,block"`
}

// --- Sections ---

// Section is a top-level section. Its sub_section and function blocks form
// the contents of the section's root sub-section.
type Section struct {
	Name        string        `hcl:"name,label"`
	SourceClass string        `hcl:"source_class"`
	Location    string        `hcl:"location,optional"`
	X           int           `hcl:"x,optional"`
	Y           int           `hcl:"y,optional"`
	Properties  []*Property   `hcl:"property,block"`
	Inputs      []*Input      `hcl:"input,block"`
	Outputs     []*Output     `hcl:"output,block"`
	Objects     []*Object     `hcl:"object,block"`
	SubSections []*SubSection `hcl:"sub_section,block"`
	Functions   []*Function   `hcl:"function,block"`
}

type Input struct {
	Name          string `hcl:"name,label"`
	ParameterType string `hcl:"parameter_type,optional"`
}

type Output struct {
	Name           string  `hcl:"name,label"`
	ArgumentType   string  `hcl:"argument_type,optional"`
	EscalationOnly bool    `hcl:"escalation_only,optional"`
	Links          []*Link `hcl:"link,block"`
}

type Object struct {
	Name      string  `hcl:"name,label"`
	Type      string  `hcl:"type,optional"`
	Qualifier string  `hcl:"qualifier,optional"`
	Links     []*Link `hcl:"link,block"`
}

type SubSection struct {
	Name        string        `hcl:"name,label"`
	SubSections []*SubSection `hcl:"sub_section,block"`
	Functions   []*Function   `hcl:"function,block"`
}

type Function struct {
	Name  string  `hcl:"name,label"`
	Links []*Link `hcl:"link,block"`
}

// --- Entry Points ---

type Escalation struct {
	Type  string  `hcl:"type,label"`
	Links []*Link `hcl:"link,block"`
}

type Start struct {
	Name  string  `hcl:"name,label"`
	Links []*Link `hcl:"link,block"`
}

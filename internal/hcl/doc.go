// Package hcl is the HCL codec for persisted offices. It decodes office files
// with hclparse and gohcl into the block structure declared in package schema,
// translates the blocks into graph nodes, and writes offices back out with
// hclwrite in a canonical layout.
package hcl

// Package registry defines the block-type capability seam.
//
// The editing core asks three questions about block types: whether a
// type is a container, whether a parent type accepts a child type, and
// what properties a freshly created block starts with. The Registry
// interface answers them; the core holds no type knowledge of its own.
//
// Static is the built-in implementation: a fixed catalog populated from
// Go code or from a TOML file (see LoadFile). Host applications with
// dynamic type systems implement Registry directly.
package registry

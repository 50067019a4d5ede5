// Package config builds the per-stage configuration the stacks are created
// from. It maps the literal tables of the workflow package and the shared
// stage table onto the parameter paths and values (ssm.Paths, ssm.Values)
// and onto the stateful and stateless stack props.
//
// Every builder is pure: the same stage and table always produce equal
// results, and nothing here performs I/O.
package config

// Package workflow holds the literal tables of the dragen-wgts-rna workflow:
// versions, pipeline IDs, reference bundles, default inputs and the event
// naming conventions. Nothing in here computes; every value is fixed at
// build time and verified when the package is loaded.
package workflow

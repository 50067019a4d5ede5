/*
Package parampath provides a structured representation of hierarchical
parameter-store names, e.g. `/orcabus/workflows/dragen-wgts-rna/payload-version`.

A path is an absolute, slash-separated sequence of segments. A path rendered
with a trailing slash is a directory (a prefix under which other parameters
live); the root prefix of every workflow is such a directory.

All formatting, joining and ancestry checks go through this package so that
the path set published for a stack can be verified before anything is
synthesized.
*/
package parampath

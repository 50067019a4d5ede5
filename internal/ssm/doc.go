// Package ssm describes the parameter-store surface of the workflow: the set
// of hierarchical paths (Paths), the values stored under them (Values) and
// the registrar that declares one SSM string parameter per scalar value and
// per entry of every version-keyed map.
package ssm

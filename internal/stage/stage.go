// Package stage defines the closed set of deployment stages and the shared
// platform table that resolves each stage to its account, ICAv2 project and
// pipeline cache location.
package stage

import (
	"errors"
	"fmt"
	"strings"
)

// Name is a deployment stage.
type Name string

const (
	Beta  Name = "BETA"
	Gamma Name = "GAMMA"
	Prod  Name = "PROD"
)

// Names is the closed enumeration of stages, in promotion order.
var Names = []Name{Beta, Gamma, Prod}

// ErrUnknownStage is returned for any stage outside Names.
var ErrUnknownStage = errors.New("unknown stage")

// Parse resolves a stage name case-insensitively.
func Parse(text string) (Name, error) {
	candidate := Name(strings.ToUpper(strings.TrimSpace(text)))
	for _, n := range Names {
		if n == candidate {
			return n, nil
		}
	}
	return "", fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownStage, text, joinNames())
}

func joinNames() string {
	parts := make([]string, 0, len(Names))
	for _, n := range Names {
		parts = append(parts, string(n))
	}
	return strings.Join(parts, ", ")
}

// Package lambdas is the registry of the workflow's Lambda functions: which
// functions exist and which platform capabilities each one needs.
package lambdas

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/workflow"
)

// ErrUnknownLambda is returned for names outside the registry.
var ErrUnknownLambda = errors.New("unknown lambda")

// Name identifies a Lambda function.
type Name string

const (
	// Draft data
	CheckNtsmInternal             Name = "checkNtsmInternal"
	GetFastqIDListFromRgidList    Name = "getFastqIdListFromRgidList"
	GetFastqListRowsFromRgidList  Name = "getFastqListRowsFromRgidList"
	GetFastqRgidsFromLibraryID    Name = "getFastqRgidsFromLibraryId"
	GetLibraries                  Name = "getLibraries"
	GetMetadataTags               Name = "getMetadataTags"
	GetQcSummaryStatsFromRgidList Name = "getQcSummaryStatsFromRgidList"

	// Validation
	ValidateDraftCompleteSchema Name = "validateDraftCompleteSchema"

	// READY to ICAv2 WES
	ConvertReadyEventInputsToIcav2WesEventInputs Name = "convertReadyEventInputsToIcav2WesEventInputs"

	// ICAv2 WES to workflow run update
	ConvertIcav2WesEventToWruEvent Name = "convertIcav2WesEventToWruEvent"
)

// Names is every registered function in declaration order.
var Names = []Name{
	CheckNtsmInternal,
	GetFastqIDListFromRgidList,
	GetFastqListRowsFromRgidList,
	GetFastqRgidsFromLibraryID,
	GetLibraries,
	GetMetadataTags,
	GetQcSummaryStatsFromRgidList,
	ValidateDraftCompleteSchema,
	ConvertReadyEventInputsToIcav2WesEventInputs,
	ConvertIcav2WesEventToWruEvent,
}

// Requirements are the capabilities a function needs beyond basic execution.
type Requirements struct {
	NeedsOrcabusAPITools      bool
	NeedsSchemaRegistryAccess bool
	NeedsSSMParametersAccess  bool
}

var requirements = map[Name]Requirements{
	CheckNtsmInternal:             {NeedsOrcabusAPITools: true},
	GetFastqIDListFromRgidList:    {NeedsOrcabusAPITools: true},
	GetFastqListRowsFromRgidList:  {NeedsOrcabusAPITools: true},
	GetFastqRgidsFromLibraryID:    {NeedsOrcabusAPITools: true},
	GetLibraries:                  {NeedsOrcabusAPITools: true},
	GetMetadataTags:               {NeedsOrcabusAPITools: true},
	GetQcSummaryStatsFromRgidList: {NeedsOrcabusAPITools: true},
	ValidateDraftCompleteSchema: {
		NeedsSchemaRegistryAccess: true,
		NeedsSSMParametersAccess:  true,
	},
	ConvertReadyEventInputsToIcav2WesEventInputs: {},
	ConvertIcav2WesEventToWruEvent:               {NeedsOrcabusAPITools: true},
}

func init() {
	if len(requirements) != len(Names) {
		panic(fmt.Sprintf("lambda registry: %d names but %d requirement entries", len(Names), len(requirements)))
	}
	for _, n := range Names {
		if _, ok := requirements[n]; !ok {
			panic(fmt.Sprintf("lambda registry: %s has no requirements entry", n))
		}
	}
}

// RequirementsFor returns the capability flags of a function.
func RequirementsFor(name Name) (Requirements, error) {
	req, ok := requirements[name]
	if !ok {
		return Requirements{}, fmt.Errorf("%w: %q", ErrUnknownLambda, name)
	}
	return req, nil
}

// SnakeCase converts the camel-case name to snake case.
func (n Name) SnakeCase() string {
	var sb strings.Builder
	for i, r := range string(n) {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// AssetDir is the source directory of the function, relative to the
// repository root.
func (n Name) AssetDir() string {
	return "app/lambdas/" + n.SnakeCase() + "_py"
}

// Handler is the Python handler entrypoint.
func (n Name) Handler() string {
	return n.SnakeCase() + ".handler"
}

// CodeKey is the object key of the packaged function code.
func (n Name) CodeKey() string {
	return "assets/" + workflow.Name + "/" + n.SnakeCase() + ".zip"
}

const maxFunctionNameLength = 64

// FunctionName is the deployed function name. Names longer than the Lambda
// limit are truncated and suffixed with a digest of the full name.
func (n Name) FunctionName() string {
	full := workflow.StackPrefix + "--" + strings.ReplaceAll(n.SnakeCase(), "_", "-")
	if len(full) <= maxFunctionNameLength {
		return full
	}
	sum := sha256.Sum256([]byte(full))
	suffix := hex.EncodeToString(sum[:])[:8]
	return strings.TrimRight(full[:maxFunctionNameLength-len(suffix)-1], "-") + "-" + suffix
}

package workflow

// DefaultInputs is the input document merged into every READY payload for a
// given workflow version. Field order is the serialization order.
type DefaultInputs struct {
	AlignmentOptions                    AlignmentOptions                    `json:"alignmentOptions"`
	SnvVariantCallerOptions             SnvVariantCallerOptions             `json:"snvVariantCallerOptions"`
	GeneFusionDetectionOptions          GeneFusionDetectionOptions          `json:"geneFusionDetectionOptions"`
	GeneExpressionQuantificationOptions GeneExpressionQuantificationOptions `json:"geneExpressionQuantificationOptions"`
	SpliceVariantCallerOptions          SpliceVariantCallerOptions          `json:"spliceVariantCallerOptions"`
}

type AlignmentOptions struct {
	RrnaFilterEnable bool `json:"rrnaFilterEnable"`
}

type SnvVariantCallerOptions struct {
	EnableVcfCompression bool `json:"enableVcfCompression"`
	EnableVcfIndexing    bool `json:"enableVcfIndexing"`
}

type GeneFusionDetectionOptions struct {
	EnableRnaGeneFusion bool `json:"enableRnaGeneFusion"`
}

type GeneExpressionQuantificationOptions struct {
	EnableRnaQuantification bool `json:"enableRnaQuantification"`
}

type SpliceVariantCallerOptions struct {
	EnableRnaSpliceVariant bool `json:"enableRnaSpliceVariant"`
}

// DefaultInputsByWorkflowVersion maps workflow versions to default inputs.
var DefaultInputsByWorkflowVersion = map[WorkflowVersion]DefaultInputs{
	V4_4_4: {
		AlignmentOptions: AlignmentOptions{
			RrnaFilterEnable: true,
		},
		SnvVariantCallerOptions: SnvVariantCallerOptions{
			EnableVcfCompression: true,
			EnableVcfIndexing:    true,
		},
		GeneFusionDetectionOptions: GeneFusionDetectionOptions{
			EnableRnaGeneFusion: true,
		},
		GeneExpressionQuantificationOptions: GeneExpressionQuantificationOptions{
			EnableRnaQuantification: true,
		},
		SpliceVariantCallerOptions: SpliceVariantCallerOptions{
			EnableRnaSpliceVariant: true,
		},
	},
}

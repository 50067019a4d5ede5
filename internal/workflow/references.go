package workflow

// Reference describes a DRAGEN hash-table bundle.
type Reference struct {
	Name      string `json:"name"`
	Structure string `json:"structure"`
	Tarball   string `json:"tarball"`
}

// PipelineIDsByWorkflowVersion maps workflow versions to ICAv2 pipeline IDs.
var PipelineIDsByWorkflowVersion = map[WorkflowVersion]string{
	// https://github.com/umccr/cwl-ica/releases/tag/dragen-wgts-rna-pipeline%2F4.4.4__20251005025030
	V4_4_4: "079d5aa9-664c-472d-9baf-1e6a6c542401",
}

// ReferencesByWorkflowVersion maps workflow versions to their default
// reference bundle.
var ReferencesByWorkflowVersion = map[WorkflowVersion]Reference{
	V4_4_4: {
		Name:      "hg38",
		Structure: "linear",
		Tarball:   "s3://reference-data-503977275616-ap-southeast-2/refdata/dragen-hash-tables/v11-r5/hg38-alt_masked-cnv-hla-methyl_cg-methylated_combined/hg38-alt_masked.cnv.hla.methyl_cg.methylated_combined.rna-11-r5.0-1.tar.gz",
	},
}

// OraReferencesByOraVersion maps ORA versions to the ORA reference tarball.
var OraReferencesByOraVersion = map[OraVersion]string{
	Ora2_7_0: "s3://reference-data-503977275616-ap-southeast-2/refdata/dragen-ora/v2/ora_reference_v2.tar.gz",
}

// AnnotationPathsByAnnotationVersion maps annotation versions to GTF files.
var AnnotationPathsByAnnotationVersion = map[AnnotationVersion]string{
	Gencode44: "s3://reference-data-503977275616-ap-southeast-2/refdata/gencode/hg38/v44/gencode.v44.annotation.gtf.gz",
}

// AnnotationVersionsByWorkflowVersion maps workflow versions to the
// annotation release they are run against.
var AnnotationVersionsByWorkflowVersion = map[WorkflowVersion]AnnotationVersion{
	V4_4_4: Gencode44,
}

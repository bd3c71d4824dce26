package types

// ConversionBackend identifies the PDF-to-text tool.
type ConversionBackend string

const (
	// BackendAuto picks the first available backend: host pdftotext,
	// then a container image.
	BackendAuto      ConversionBackend = "auto"
	BackendPdftotext ConversionBackend = "pdftotext"
	BackendContainer ConversionBackend = "container"
)

// ConvertConfig holds settings for the convert stage.
type ConvertConfig struct {
	// Backend selects the conversion tool: auto, pdftotext, or container.
	Backend ConversionBackend `json:"backend" yaml:"backend"`

	// RawDir is the directory holding source codebook PDFs.
	RawDir string `json:"raw_dir" yaml:"raw_dir"`

	// TextDir is the directory for converted plain text.
	TextDir string `json:"text_dir" yaml:"text_dir"`

	// Force reconverts even when the text output already exists.
	Force bool `json:"force" yaml:"force"`
}

// ParseConfig holds settings for the parse stage.
type ParseConfig struct {
	// TextDir is the directory holding converted codebook text.
	TextDir string `json:"text_dir" yaml:"text_dir"`

	// RefDir is the directory holding hand-maintained reference inputs
	// (categorization table, valid ICD-10 subcategory list).
	RefDir string `json:"ref_dir" yaml:"ref_dir"`

	// TablesDir is the output directory for generated lookup tables.
	TablesDir string `json:"tables_dir" yaml:"tables_dir"`

	// SampleLimit caps the flagged-line samples echoed per flag kind
	// (default 10).
	SampleLimit int `json:"sample_limit" yaml:"sample_limit"`
}

// MatchConfig holds settings for the equivalence matching stage.
type MatchConfig struct {
	// TablesDir is the directory holding the part lookup tables and
	// receiving the equivalence output.
	TablesDir string `json:"tables_dir" yaml:"tables_dir"`

	// Scorer names the similarity scorer (default "token_set").
	Scorer string `json:"scorer" yaml:"scorer"`

	// SubcategoryCutoff is the 0-100 acceptance threshold for the
	// subcategory stage (default 80).
	SubcategoryCutoff int `json:"subcategory_cutoff" yaml:"subcategory_cutoff"`

	// DescriptionCutoff is the 0-100 acceptance threshold for the
	// description stages (default 50).
	DescriptionCutoff int `json:"description_cutoff" yaml:"description_cutoff"`

	// CuratedFile optionally points at a YAML file overriding the shipped
	// skip list and manual subcategory map.
	CuratedFile string `json:"curated_file,omitempty" yaml:"curated_file,omitempty"`
}

// MergeConfig holds settings for the override merge stage.
type MergeConfig struct {
	// TablesDir is the directory holding the equivalence table and
	// receiving the merged conversion table.
	TablesDir string `json:"tables_dir" yaml:"tables_dir"`

	// RefDir is the directory holding the manual override table.
	RefDir string `json:"ref_dir" yaml:"ref_dir"`
}

// StoreConfig holds settings for the lookup store.
type StoreConfig struct {
	// TablesDir is the directory the store ingests generated tables from.
	TablesDir string `json:"tables_dir" yaml:"tables_dir"`

	// IndexDir is the directory holding the SQLite database.
	IndexDir string `json:"index_dir" yaml:"index_dir"`

	// MaxResults is the default maximum number of lookup results
	// (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// ValidateConfig holds settings for the table validation pass.
type ValidateConfig struct {
	// TablesDir is the directory holding the generated tables to check.
	TablesDir string `json:"tables_dir" yaml:"tables_dir"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Convert  ConvertConfig  `json:"convert" yaml:"convert"`
	Parse    ParseConfig    `json:"parse" yaml:"parse"`
	Match    MatchConfig    `json:"match" yaml:"match"`
	Merge    MergeConfig    `json:"merge" yaml:"merge"`
	Store    StoreConfig    `json:"store" yaml:"store"`
	Validate ValidateConfig `json:"validate" yaml:"validate"`
}

package job

// Config is the full configuration surface of one cleaning run. Zero
// values mean "use the default"; Default returns the documented
// defaults and file-based config overlays onto it.
type Config struct {
	InputPath string `json:"input_path" yaml:"input_path" toml:"input_path"`
	OutputDir string `json:"output_dir" yaml:"output_dir" toml:"output_dir"`
	// OutputFormat is csv (default), jsonl or parquet.
	OutputFormat string `json:"output_format" yaml:"output_format" toml:"output_format"`
	Delimiter    string `json:"delimiter" yaml:"delimiter" toml:"delimiter"`

	// QualityGate toggles the fatal null-threshold check before the
	// guarded drop. The guard itself always runs.
	QualityGate      bool    `json:"quality_gate" yaml:"quality_gate" toml:"quality_gate"`
	MaxColumnNullPct float64 `json:"max_column_null_pct" yaml:"max_column_null_pct" toml:"max_column_null_pct"`
	// MaxRowNullPct bounds the fraction of rows containing any null
	// (the enforcement gate); DropMaxRowNullPct bounds how sparse a
	// single row may be before the null drop refuses to run.
	MaxRowNullPct     float64 `json:"max_row_null_pct" yaml:"max_row_null_pct" toml:"max_row_null_pct"`
	DropMaxRowNullPct float64 `json:"drop_max_row_null_pct" yaml:"drop_max_row_null_pct" toml:"drop_max_row_null_pct"`
	MaxTotalLossPct   float64 `json:"max_total_loss_pct" yaml:"max_total_loss_pct" toml:"max_total_loss_pct"`

	IDColumn        string   `json:"id_column" yaml:"id_column" toml:"id_column"`
	RatingColumn    string   `json:"rating_column" yaml:"rating_column" toml:"rating_column"`
	RatingSentinels []string `json:"rating_sentinels" yaml:"rating_sentinels" toml:"rating_sentinels"`
	ReviewColumn    string   `json:"review_column" yaml:"review_column" toml:"review_column"`
	LinkColumn      string   `json:"link_column" yaml:"link_column" toml:"link_column"`

	// TextColumns are standardized into <col>_clean variants; the
	// review column's English rendition is always included.
	TextColumns       []string `json:"text_columns" yaml:"text_columns" toml:"text_columns"`
	CurrencyColumns   []string `json:"currency_columns" yaml:"currency_columns" toml:"currency_columns"`
	PercentageColumns []string `json:"percentage_columns" yaml:"percentage_columns" toml:"percentage_columns"`
	DedupeKeys        []string `json:"dedupe_keys" yaml:"dedupe_keys" toml:"dedupe_keys"`
}

// Default returns the documented configuration defaults.
func Default() Config {
	return Config{
		OutputFormat:      "csv",
		QualityGate:       true,
		MaxColumnNullPct:  20.0,
		MaxRowNullPct:     10.0,
		DropMaxRowNullPct: 20.0,
		MaxTotalLossPct:   40.0,
		IDColumn:          "product_id",
		RatingColumn:      "rating",
		RatingSentinels:   []string{"|"},
		ReviewColumn:      "review_content",
		LinkColumn:        "product_link",
		TextColumns:       []string{"review_content_en", "review_title", "about_product"},
		CurrencyColumns:   []string{"actual_price", "discounted_price"},
		PercentageColumns: []string{"discount_percentage"},
		DedupeKeys:        []string{"product_id", "user_id", "review_content_en_clean"},
	}
}

// OutputName is the fixed output file name, per format.
func (c Config) OutputName() string {
	switch c.OutputFormat {
	case "jsonl":
		return "clean_training_dataset.jsonl"
	case "parquet":
		return "clean_training_dataset.parquet"
	default:
		return "clean_training_dataset.csv"
	}
}

// EnglishColumn is the name of the English-only review rendition.
func (c Config) EnglishColumn() string { return c.ReviewColumn + "_en" }

// CleanTextColumn is the final standardized review text column.
func (c Config) CleanTextColumn() string { return c.EnglishColumn() + "_clean" }

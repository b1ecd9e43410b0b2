package config

// Default configuration values.
const (
	DefaultConfigFileName = ".junitmerge.yaml"
	DefaultParallelism    = 4
	DefaultOutputFileName = "merged-test-results.xml"
)

// applyDefaults fills in default values for unset configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.Parallelism == 0 {
		cfg.Parallelism = DefaultParallelism
	}
	if cfg.Defaults == nil {
		cfg.Defaults = &ReportDefaults{}
	}
	for i := range cfg.Reports {
		applyReportDefaults(&cfg.Reports[i], cfg.Defaults)
	}
}

// applyReportDefaults copies every option the report leaves unset from d.
func applyReportDefaults(r *ReportConfig, d *ReportDefaults) {
	if r.Recursive == nil {
		r.Recursive = inheritBool(d.Recursive)
	}
	if r.CreateOutputDir == nil {
		r.CreateOutputDir = inheritBool(d.CreateOutputDir)
	}
	if r.Sort == nil {
		r.Sort = inheritBool(d.Sort)
	}
	if r.Exclude == nil && len(d.Exclude) > 0 {
		r.Exclude = append([]string(nil), d.Exclude...)
	}
}

func inheritBool(b *bool) *bool {
	v := boolValue(b)
	return &v
}

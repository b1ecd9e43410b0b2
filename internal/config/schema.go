package config

// Config represents the .junitmerge.yaml configuration file.
type Config struct {
	Defaults    *ReportDefaults `yaml:"defaults,omitempty"`
	Parallelism int             `yaml:"parallelism,omitempty"`
	Reports     []ReportConfig  `yaml:"reports"`
}

// ReportDefaults holds options inherited by every report that leaves them unset.
type ReportDefaults struct {
	Recursive       *bool    `yaml:"recursive,omitempty"`
	CreateOutputDir *bool    `yaml:"create_output_dir,omitempty"`
	Sort            *bool    `yaml:"sort,omitempty"`
	Exclude         []string `yaml:"exclude,omitempty"`
}

// ReportConfig describes one merge: where its inputs come from and where the
// merged report goes. Inputs are either every report under Dir or the
// explicit Files list.
type ReportConfig struct {
	Name            string   `yaml:"name"`
	Dir             string   `yaml:"dir,omitempty"`
	Files           []string `yaml:"files,omitempty"`
	Output          string   `yaml:"output"`
	Recursive       *bool    `yaml:"recursive,omitempty"`
	CreateOutputDir *bool    `yaml:"create_output_dir,omitempty"`
	Sort            *bool    `yaml:"sort,omitempty"`
	Exclude         []string `yaml:"exclude,omitempty"`
}

// IsRecursive reports whether Dir is walked recursively.
func (r ReportConfig) IsRecursive() bool {
	return boolValue(r.Recursive)
}

// ShouldCreateOutputDir reports whether a missing output directory is created.
func (r ReportConfig) ShouldCreateOutputDir() bool {
	return boolValue(r.CreateOutputDir)
}

// IsSorted reports whether located files are merged in lexical order.
func (r ReportConfig) IsSorted() bool {
	return boolValue(r.Sort)
}

func boolValue(b *bool) bool {
	return b != nil && *b
}

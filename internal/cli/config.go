package cli

// Config stores CLI options for a single generation run.
type Config struct {
	PkgPath      string
	Types        []string
	Filename     string
	IgnoreFields []string
	ConfigFile   string
	ShowVersion  bool
}

// OutputFilename returns destination file path for generator layer.
func (c *Config) OutputFilename() string {
	return c.Filename
}

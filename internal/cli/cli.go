package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ParseArgs parses command line arguments into Config. Values missing from
// the command line are read from the --config file, if any.
func ParseArgs(args []string) (*Config, error) {
	cfg := &Config{}

	fs := pflag.NewFlagSet("gen-meta", pflag.ContinueOnError)
	fs.StringP("path", "p", ".", "package path holding the types")
	fs.StringP("types", "t", "", "comma-separated struct types")
	fs.StringP("filename", "o", "", "output file name")
	fs.String("ignore-fields", "", "comma-separated fields to leave out, as Field or Type.Field")
	fs.StringVarP(&cfg.ConfigFile, "config", "c", "", "YAML config file")
	fs.BoolVarP(&cfg.ShowVersion, "version", "v", false, "show version")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.ShowVersion {
		return cfg, nil
	}

	v := viper.New()
	for key, flag := range map[string]string{
		"path":          "path",
		"types":         "types",
		"filename":      "filename",
		"ignore_fields": "ignore-fields",
	} {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("bind --%s: %w", flag, err)
		}
	}
	if cfg.ConfigFile != "" {
		v.SetConfigFile(cfg.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %q: %w", cfg.ConfigFile, err)
		}
	}

	cfg.PkgPath = strings.TrimSpace(v.GetString("path"))
	cfg.Types = listValue(v, "types")
	cfg.Filename = strings.TrimSpace(v.GetString("filename"))
	cfg.IgnoreFields = listValue(v, "ignore_fields")

	if len(cfg.Types) == 0 {
		return nil, fmt.Errorf("--types is required")
	}
	if cfg.Filename == "" {
		return nil, fmt.Errorf("--filename is required")
	}
	return cfg, nil
}

// listValue reads key as a comma-separated string or as a YAML list.
func listValue(v *viper.Viper, key string) []string {
	switch raw := v.Get(key).(type) {
	case []any:
		out := make([]string, 0, len(raw))
		for _, item := range raw {
			out = append(out, splitCommaList(fmt.Sprint(item))...)
		}
		return out
	case []string:
		return splitCommaList(strings.Join(raw, ","))
	default:
		return splitCommaList(v.GetString(key))
	}
}

func splitCommaList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

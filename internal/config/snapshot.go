package config

import "github.com/spf13/pflag"

// SnapshotConfig holds configuration for the snapshot command.
type SnapshotConfig struct {
	Config
	Out    string
	Errors string
	Pretty bool
}

// LoadSnapshot merges config file, environment variables, and flags into SnapshotConfig.
func LoadSnapshot(cfgFile string, flags *pflag.FlagSet) (SnapshotConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"out":    "",
		"errors": "",
		"pretty": true,
	})
	if err != nil {
		return SnapshotConfig{}, err
	}

	common, err := loadCommon(v)
	if err != nil {
		return SnapshotConfig{}, err
	}

	return SnapshotConfig{
		Config: common,
		Out:    v.GetString("out"),
		Errors: v.GetString("errors"),
		Pretty: v.GetBool("pretty"),
	}, nil
}

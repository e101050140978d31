// Package config holds the CLI's persistent settings and a file watcher
// that reloads them on edit.
package config

// Settings are the CLI's user-adjustable defaults, persisted as YAML.
type Settings struct {
	// AutoPadInput/Output/Feature mirror compiler.Config: whether the
	// `compile` command pads each report stream to a byte boundary by
	// default.
	AutoPadInput   bool `json:"auto_pad_input"`
	AutoPadOutput  bool `json:"auto_pad_output"`
	AutoPadFeature bool `json:"auto_pad_feature"`

	// StrictEncode selects codec.Strict() (true) or codec.Clamp()
	// (false) as the `encode` command's default overflow behavior.
	StrictEncode bool `json:"strict_encode"`

	// CacheDir, when non-empty, enables the badger-backed layout cache
	// at that path for the `analyze` command.
	CacheDir string `json:"cache_dir"`
}

// Default returns the CLI's out-of-the-box settings: pad Input only,
// reject overflow strictly, caching disabled.
func Default() Settings {
	return Settings{AutoPadInput: true, StrictEncode: true}
}

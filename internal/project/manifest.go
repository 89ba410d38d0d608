package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// SourceExt is the extension of risp modules.
const SourceExt = ".risp"

var (
	// ErrPackageSectionMissing indicates that [package] is missing.
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrPackageNameMissing indicates that [package].name is missing.
	ErrPackageNameMissing = errors.New("missing [package].name")
)

// Manifest is a decoded risp.toml together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the sections of risp.toml.
type Config struct {
	Package PackageConfig `toml:"package"`
	Build   BuildConfig   `toml:"build"`
	Parse   ParseConfig   `toml:"parse"`
	Cache   CacheConfig   `toml:"cache"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type BuildConfig struct {
	Main string `toml:"main"` // файл или каталог относительно корня
}

type ParseConfig struct {
	MaxDiagnostics int `toml:"max-diagnostics"`
}

type CacheConfig struct {
	Enabled bool `toml:"enabled"`
}

// DefaultConfig is what `risp init` writes and what missing keys fall back to.
func DefaultConfig(name string) Config {
	return Config{
		Package: PackageConfig{Name: name},
		Build:   BuildConfig{Main: "main" + SourceExt},
		Parse:   ParseConfig{MaxDiagnostics: 100},
		Cache:   CacheConfig{Enabled: true},
	}
}

// LoadManifest finds and decodes the nearest risp.toml. ok is false when
// none exists above startDir.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := DecodeConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}

// DecodeConfig reads one manifest file and applies defaults for keys that
// were left out.
func DecodeConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: %w", path, ErrPackageNameMissing)
	}
	def := DefaultConfig(cfg.Package.Name)
	if !meta.IsDefined("build", "main") || strings.TrimSpace(cfg.Build.Main) == "" {
		cfg.Build.Main = def.Build.Main
	}
	if !meta.IsDefined("parse", "max-diagnostics") {
		cfg.Parse.MaxDiagnostics = def.Parse.MaxDiagnostics
	}
	if !meta.IsDefined("cache", "enabled") {
		cfg.Cache.Enabled = def.Cache.Enabled
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	return cfg, nil
}

// MainPath resolves [build].main against the project root.
func (m *Manifest) MainPath() (string, error) {
	mainPath := filepath.Join(m.Root, filepath.FromSlash(strings.TrimSpace(m.Config.Build.Main)))
	info, err := os.Stat(mainPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: [build].main path does not exist: %s", m.Path, mainPath)
		}
		return "", fmt.Errorf("%s: failed to stat [build].main: %w", m.Path, err)
	}
	if !info.IsDir() && filepath.Ext(mainPath) != SourceExt {
		return "", fmt.Errorf("%s: [build].main must be a %s file or directory", m.Path, SourceExt)
	}
	return mainPath, nil
}

// Encode writes cfg as TOML.
func (c Config) Encode(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

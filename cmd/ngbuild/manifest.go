package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const manifestName = "ngbuild.toml"

const noManifestMessage = "no ngbuild.toml found\nplease specify the source directory explicitly, e.g.:\n  ngbuild build path/to/sources"

// defaultAnnotations is the known set when the manifest does not override it.
var defaultAnnotations = []string{
	"Component", "Directive", "Pipe", "View",
	"Injectable", "Inject", "Optional", "Input", "Output",
}

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package packageConfig `toml:"package"`
	Build   buildConfig   `toml:"build"`
}

type packageConfig struct {
	Name        string   `toml:"name"`
	Src         string   `toml:"src"`
	Annotations []string `toml:"annotations"`
}

type buildConfig struct {
	LogLevel           string `toml:"log_level"`
	ShowInternalTraces bool   `toml:"show_internal_traces"`
	Jobs               int    `toml:"jobs"`
	Cache              bool   `toml:"cache"`
}

func findManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, manifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	cfg := projectConfig{
		Build: buildConfig{LogLevel: "info", Cache: true},
	}
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return projectConfig{}, fmt.Errorf("%s: missing [package] section", path)
	}
	if cfg.Package.Name == "" {
		return projectConfig{}, fmt.Errorf("%s: package.name must not be empty", path)
	}
	if cfg.Package.Src == "" {
		cfg.Package.Src = "lib"
	}
	if len(cfg.Package.Annotations) == 0 {
		cfg.Package.Annotations = defaultAnnotations
	}
	return cfg, nil
}

// sourceDir resolves the directory to build: an explicit argument wins,
// otherwise the manifest's src directory.
func (m *projectManifest) sourceDir() string {
	if m == nil {
		return "."
	}
	if filepath.IsAbs(m.Config.Package.Src) {
		return m.Config.Package.Src
	}
	return filepath.Join(m.Root, m.Config.Package.Src)
}

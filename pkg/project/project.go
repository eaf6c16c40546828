package project

import (
	_ "embed"
	"os"
	"path/filepath"
	"testing/fstest"

	"github.com/pgcarve/pgcarve/pkg/config"
	"github.com/pgcarve/pgcarve/pkg/consts"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	//go:embed embed/pgcarve.yaml
	defaultPGCarve []byte

	image = fstest.MapFS{
		consts.ConfigFile: {Data: defaultPGCarve},
	}
)

type (
	// InitOptions contains options for project initialization
	InitOptions struct {
		// DSN seeds the postgres connection string in the generated
		// configuration. If empty, the generated config leaves it blank and
		// the PGCARVE_DSN environment variable applies at load time.
		DSN string
	}

	Project struct {
		root   string
		config *config.Config
	}
)

// New creates a new Project instance rooted at the given path. The path
// should point to an existing directory that will serve as the project root.
//
// Example:
//
//	p := project.New("/path/to/my/project")
//
//	if err := p.Initialize(project.InitOptions{}); err != nil {
//		log.Fatal(err)
//	}
func New(path string) *Project {
	return &Project{root: path}
}

// Root returns the project root directory.
func (p *Project) Root() string {
	return p.root
}

// Initialize sets up the project directory structure and loads the
// configuration. It is idempotent: only missing files are created, existing
// content is preserved.
//
// Example:
//
//	p := project.New("/path/to/my/project")
//	options := project.InitOptions{DSN: "postgres://localhost/app"}
//	if err := p.Initialize(options); err != nil {
//		log.Fatal("Failed to initialize project:", err)
//	}
func (p *Project) Initialize(options InitOptions) error {
	if err := p.ensureDirectory(); err != nil {
		return err
	}

	for path, entry := range image {
		fullPath := filepath.Join(p.root, path)

		if _, err := os.Stat(fullPath); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return errors.Wrapf(err, "failed to stat %s", fullPath)
		}

		parentDir := filepath.Dir(fullPath)
		if err := os.MkdirAll(parentDir, consts.ModeDir); err != nil {
			return errors.Wrapf(err, "failed to create parent directory %s", parentDir)
		}

		if err := os.WriteFile(fullPath, entry.Data, consts.ModeFile); err != nil {
			return errors.Wrapf(err, "failed to write file %s", fullPath)
		}
	}

	configPath := filepath.Join(p.root, consts.ConfigFile)

	cfg, err := config.LoadConfigFile(configPath)
	if err != nil {
		return errors.Wrapf(err, "failed to load %s", consts.ConfigFile)
	}

	if options.DSN != "" {
		cfg.Postgres.DSN = options.DSN

		configFile, err := os.Create(configPath)
		if err != nil {
			return errors.Wrapf(err, "failed to open config file for writing: %s", configPath)
		}
		defer func() { _ = configFile.Close() }()

		encoder := yaml.NewEncoder(configFile)
		if err := encoder.Encode(cfg); err != nil {
			return errors.Wrap(err, "failed to write updated config")
		}
		if err := encoder.Close(); err != nil {
			return errors.Wrap(err, "failed to close yaml encoder")
		}
	}

	p.config = cfg
	return nil
}

// Config returns the loaded project configuration, reading it from disk on
// first use.
func (p *Project) Config() (*config.Config, error) {
	if p.config != nil {
		return p.config, nil
	}

	cfg, err := config.LoadConfigFile(filepath.Join(p.root, consts.ConfigFile))
	if err != nil {
		return nil, err
	}

	p.config = cfg
	return cfg, nil
}

// IsProject reports whether the directory holds a pgcarve configuration
// file.
func IsProject(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, consts.ConfigFile))
	return err == nil && info.Mode().IsRegular()
}

func (p *Project) ensureDirectory() error {
	dir, err := os.Stat(p.root)
	if err != nil {
		return errors.Wrapf(err, "failed to stat dir: %s", p.root)
	}

	if !dir.IsDir() {
		return errors.Errorf("%s is not a directory", p.root)
	}

	return nil
}

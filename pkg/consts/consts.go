package consts

import "os"

const (
	// ModeDir is the standard file mode for creating directories
	ModeDir = os.FileMode(0o755)

	// ModeFile is the standard file mode for creating files
	ModeFile = os.FileMode(0o644)

	// ConfigFile is the project configuration file name
	ConfigFile = "pgcarve.yaml"

	// EnvDSN is the environment variable consulted for the PostgreSQL DSN
	// when the config file doesn't set one
	EnvDSN = "PGCARVE_DSN"
)

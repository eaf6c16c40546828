// Package project manages pgcarve project directories.
//
// A pgcarve project is a directory holding a pgcarve.yaml configuration file
// describing the PostgreSQL connection and the partitioned tables to
// maintain. The package scaffolds new projects and loads existing ones.
//
// # Usage Example
//
//	p := project.New("/path/to/my/project")
//
//	// Initialize the project structure and configuration
//	if err := p.Initialize(project.InitOptions{}); err != nil {
//		log.Fatal(err)
//	}
//
//	cfg, err := p.Config()
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Initialization is idempotent: existing files are never overwritten.
package project

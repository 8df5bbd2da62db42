// Package config provides configuration management for voicesync.
//
// It uses Viper for loading configuration from struct-tag defaults, an
// optional voicesync.yaml in the project root, a .env file, and
// VOICESYNC_-prefixed environment variables.
//
// # Configuration Structure
//
//   - Paths: database, generated artifacts, sound assets, journal
//   - Java: package and class names of the generated modules
//   - Namespace: asset namespace used in the sound mapping
//   - Log: logging level and format
//
// # Usage
//
//	cfg, err := config.Load(".", "")
//	if err != nil {
//	    return err
//	}
//	res, err := artifact.Sync(ctx, db, cfg.Targets(), artifact.Options{Render: cfg.RenderOptions()})
package config

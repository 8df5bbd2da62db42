package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/voicesync/internal/config"
	"github.com/roach88/voicesync/internal/logging"
	"github.com/roach88/voicesync/internal/voicedb"
)

// Error codes reported by commands. E003-E005 come from voicedb.LoadError.
const (
	ErrCodeGeneric      = "E001"
	ErrCodeConfig       = "E002"
	ErrCodeNotFound     = voicedb.ErrCodeNotFound
	ErrCodeInvalid      = "E006" // database failed validation
	ErrCodeWrite        = "E007" // one or more artifacts could not be written
	ErrCodeUnknownSound = "E008" // --sound-id not defined in the database
	ErrCodeRender       = "E009" // artifact generation failed
	ErrCodeJournal      = "E010" // journal unavailable
	ErrCodeUsage        = "E011" // bad argument value
)

// session is the per-command state shared by every subcommand.
type session struct {
	cfg *config.Config
	out *OutputFormatter
	log *zap.Logger
}

// newSession loads configuration and builds the formatter and logger.
// The formatter is created first so configuration errors are reported in
// the requested format.
func newSession(opts *RootOptions, cmd *cobra.Command) (*session, error) {
	out := NewOutputFormatter(opts.Format, cmd.OutOrStdout(), cmd.ErrOrStderr(), opts.Verbose)

	cfg, err := config.Load(opts.Root, opts.ConfigFile)
	if err != nil {
		_ = out.Error(ErrCodeConfig, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, ErrCodeConfig, err)
	}

	logCfg := cfg.Log
	if opts.Verbose {
		logCfg.Level = "debug"
	}
	log, err := logging.NewWithWriter(logCfg, cmd.ErrOrStderr())
	if err != nil {
		_ = out.Error(ErrCodeConfig, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, ErrCodeConfig, err)
	}

	return &session{cfg: cfg, out: out, log: log}, nil
}

// loadRaw reads the configured database. Load failures are reported and
// returned as command errors (exit 2).
func (s *session) loadRaw() (*voicedb.RawDatabase, error) {
	path := s.cfg.DatabasePath()
	s.out.VerboseLog("Loading %s", path)

	raw, err := voicedb.Load(path)
	if err != nil {
		code := ErrCodeGeneric
		msg := err.Error()
		var loadErr *voicedb.LoadError
		if errors.As(err, &loadErr) {
			code = loadErr.Code
			msg = fmt.Sprintf("%s: %s", loadErr.Path, loadErr.Message)
			if loadErr.Line > 0 {
				msg = fmt.Sprintf("%s:%d: %s", loadErr.Path, loadErr.Line, loadErr.Message)
			}
		}
		_ = s.out.Error(code, msg, nil)
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, msg))
	}
	s.log.Debug("database loaded", zap.String("path", path), zap.Int("categories", len(raw.Categories)))
	return raw, nil
}

// loadValid loads and validates the database. When the database is
// invalid every violation and warning is reported and an exit-1 error is
// returned so no command acts on it. Otherwise warnings are left to the
// caller: commands that report on the database print them with the result,
// the others pass them to logWarnings.
func (s *session) loadValid() (*voicedb.Database, voicedb.Report, error) {
	raw, err := s.loadRaw()
	if err != nil {
		return nil, voicedb.Report{}, err
	}
	db, report := voicedb.Build(raw)
	if db == nil {
		return nil, report, s.reportViolations(report)
	}
	return db, report, nil
}

// reportViolations prints an invalid report and returns the exit-1 error.
func (s *session) reportViolations(report voicedb.Report) error {
	msg := fmt.Sprintf("validation failed with %d error(s)", len(report.Violations))
	if s.out.Format == "json" {
		if err := s.out.Failure(ErrCodeInvalid, msg, validateOutput{
			Valid:      false,
			Violations: report.Violations,
			Warnings:   report.Warnings,
		}); err != nil {
			return err
		}
		return WrapExitError(ExitFailure, msg, report.Err())
	}

	_ = s.out.Failure(ErrCodeInvalid, msg, nil)
	s.out.Printf("\n")
	for _, v := range report.Violations {
		s.out.Printf("  %s\n", v.Error())
	}
	printWarnings(s.out, report.Warnings)
	return WrapExitError(ExitFailure, msg, report.Err())
}

// logWarnings sends validation warnings to the logger, for commands whose
// stdout carries something other than a report.
func (s *session) logWarnings(report voicedb.Report) {
	for _, w := range report.Warnings {
		s.log.Warn(w.Message, zap.String("code", w.Code), zap.String("category", w.Category))
	}
}

func printWarnings(out *OutputFormatter, warnings []voicedb.Violation) {
	for _, w := range warnings {
		out.Warn("%s", w.Error())
	}
}

// usageError reports a bad argument as a command error.
func (s *session) usageError(message string) error {
	_ = s.out.Error(ErrCodeUsage, message, nil)
	return NewExitError(ExitCommandError, message)
}

// Package voicedb loads and validates the voiceline database.
//
// The database is the single source of truth for every generated
// artifact. Loading produces a RawDatabase that keeps document order and
// source lines and can represent malformed shapes. Validate walks it in
// canonical category order and returns every violation at once; Build
// turns a valid RawDatabase into an immutable Database.
//
// # Formats
//
// JSON and CUE files are compiled with CUE, which preserves field order and
// positions. YAML files are decoded as yaml.Node trees for the same reason.
// The format is chosen by file extension.
//
// # Unknown keys
//
// Top-level keys that are not in the category table are reported as W201
// warnings and dropped from the Database. They never block a sync.
package voicedb

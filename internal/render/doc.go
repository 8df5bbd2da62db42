// Package render generates the derived artifacts from a validated voiceline
// database: the line-lookup module, the event-registry module, and the
// sound-mapping resource.
//
// Every generator is a pure function of the database and Options. Output
// is byte-for-byte deterministic: categories appear in canonical order and
// entries in database list order, so regenerating an unchanged database
// yields identical files.
//
// Library mirrors the selection behavior of the generated lookup module and
// backs the sample command.
package render

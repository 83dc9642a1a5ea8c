/*
Package gtfs loads GTFS static tables and resolves service calendars.

The loader is data-source agnostic within the filesystem: it accepts either
an extracted GTFS directory or a zip archive and produces one slice of typed
records per table. Raw rows are positional field arrays; each record type
carries a FromRow constructor that picks the columns it needs, so positional
indexing happens exactly once, at load time.

Tables are loaded fresh per run and are immutable afterwards. Rows too short
for their table, and calendar rows whose dates fail to parse, are excluded
rather than reported: an invalid static row is not an error condition for
the pipeline built on top of this package.
*/
package gtfs

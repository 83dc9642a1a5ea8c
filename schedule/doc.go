/*
Package schedule stitches the static GTFS tables into queryable rows.

The working representation is Row, a flat field map. The generic Join
primitive combines two row sequences on a named key field; the assembler
uses it to build the (stop-time x trip x route) table for a stop set, and
the filters narrow that table by active service, time window and route.

A row that fails to resolve through the join chain is silently dropped:
a stop time referencing a trip or route absent from the static tables is
invalid data, not an error.
*/
package schedule

// Package gtfsrt fetches and indexes GTFS-Realtime feeds.
//
// Feeds arrive as GTFS-realtime-shaped JSON (decoded with protojson into
// the MobilityData FeedMessage bindings); binary protobuf payloads are
// accepted as a fallback. The Feed type turns decoded messages into
// trip-keyed lookups for the merge layer.
package gtfsrt

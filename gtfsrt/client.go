package gtfsrt

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// Client fetches GTFS-RT feed payloads over HTTP. Every request carries a
// deadline; a feed endpoint that never responds must not block a query
// forever.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a client whose requests time out after the given
// duration. Zero means 10 seconds.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{httpClient: &http.Client{Timeout: timeout}}
}

// Fetch fetches one feed and returns the raw payload bytes.
// A non-2xx status is an error; callers decide how failure degrades.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", url, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

// Decode parses a feed payload into a FeedMessage. JSON is tried first
// (the feeds serve GTFS-realtime-shaped JSON with camelCase names), then
// binary protobuf. Nil and empty payloads decode to a nil message.
func Decode(payload []byte) (*gtfsrtpb.FeedMessage, error) {
	if len(payload) == 0 {
		return nil, nil
	}
	var fm gtfsrtpb.FeedMessage
	jsonErr := protojson.UnmarshalOptions{DiscardUnknown: true, AllowPartial: true}.Unmarshal(payload, &fm)
	if jsonErr == nil {
		return &fm, nil
	}
	if pbErr := (proto.UnmarshalOptions{AllowPartial: true, DiscardUnknown: true}).Unmarshal(payload, &fm); pbErr == nil {
		return &fm, nil
	}
	return nil, fmt.Errorf("decode feed: %w", jsonErr)
}

package model

import (
	"context"
	"net/url"
)

// DataEnvelope is the wire shape of a report payload response:
// {"data": {"data": <typed value>}}. Any other shape is a contract
// violation by the remote side.
type DataEnvelope struct {
	Data struct {
		Data any `json:"data"`
	} `json:"data"`
}

// Registry resolves report descriptors by name. A nil descriptor with a
// nil error means the name is unknown.
type Registry interface {
	GetDescByName(ctx context.Context, name string) (*ReportDescriptor, error)
}

// Transport issues report data requests. Implementations do not retry;
// the caller decides whether a late response is still relevant.
type Transport interface {
	Get(ctx context.Context, path string, query url.Values) (*DataEnvelope, error)
}

// Clock supplies wall-clock milliseconds. Implementations must be
// monotonically non-decreasing across calls.
type Clock interface {
	Now() int64
}

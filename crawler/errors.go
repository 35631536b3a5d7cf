package crawler

import "errors"

// ErrUnsupportedSortMode is returned before any network interaction when
// the requested listing sort is not one of hot, new, rising, top.
var ErrUnsupportedSortMode = errors.New("unsupported sort mode")

// ErrMalformedMediaPayload is returned when a post claims to be a video but
// its media payload carries no playback URL. This aborts the run: it means
// the upstream schema changed, not that one post is odd.
var ErrMalformedMediaPayload = errors.New("malformed media payload")

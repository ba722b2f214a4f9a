// Package api provides the tutor backend gateway client.
package api

// GJSON paths for values in backend responses
const (
	PathAnswer  = "answer"
	PathSources = "sources"
	PathPreview = "preview"
)

// HeaderRequestID carries a per-request identifier for log correlation
const HeaderRequestID = "X-Request-ID"

// maxResponseSize bounds how much of a response body is read
const maxResponseSize = 8 * 1024 * 1024

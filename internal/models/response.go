package models

// Answer is a decoded successful response from the chat endpoint
type Answer struct {
	Text    string
	Sources []string
}

// UploadReceipt describes what was observed when a file was submitted.
// Only transport success matters to callers; the remaining fields are
// informational.
type UploadReceipt struct {
	FileName   string
	StatusCode int
	Preview    string // optional text preview returned by the backend
}

// Accepted reports whether the backend answered with a 2xx status
func (r *UploadReceipt) Accepted() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

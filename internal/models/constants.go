// Package models contains data types and constants for the tutor backend.
package models

import "fmt"

// Backend endpoints, relative to the configured API base
const (
	EndpointChat   = "/chat"
	EndpointUpload = "/upload"
)

// Multipart form fields expected by the backend
const (
	FieldMessage = "message"
	FieldFile    = "file"
)

// Fixed user-facing strings
const (
	GreetingText     = "Hi there! How can I help you today?"
	ServerErrorText  = "⚠️ Server error."
	UploadFailedText = "Upload failed"
	SourcesSeparator = ", "
)

// IndexedNotice is the notification shown after a successful upload.
func IndexedNotice(fileName string) string {
	return fmt.Sprintf("%s indexed!", fileName)
}

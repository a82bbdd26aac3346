// Package api exposes the study and card endpoints over HTTP. Handlers
// decode and validate requests, call the review service, and translate
// service errors into safe JSON responses.
package api

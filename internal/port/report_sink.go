package port

import "context"

// ReportSink persists report artifacts (JSON report, CSV, XLSX) produced by
// a comparison run. Implementations write to the local filesystem or to
// object storage; Write returns the artifact's final location.
type ReportSink interface {
	Write(ctx context.Context, name, contentType string, data []byte) (string, error)
}

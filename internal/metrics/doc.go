// Package metrics provides observability hooks for reference generation.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics collection never needs nil checks:
//
//	renderer := reference.NewRenderer(area) // NoopRecorder
//	renderer.WithRecorder(metrics.NewPrometheusRecorder(reg))
//
// PrometheusRecorder registers its collectors on the given registry; the CLI
// writes that registry in textfile-collector format with WriteTextfile.
package metrics

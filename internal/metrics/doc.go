// Package metrics provides observability hooks for validation runs.
//
// Components receive a Recorder through dependency injection. NoopRecorder is
// the default; PrometheusRecorder is swapped in when watch mode serves a
// metrics endpoint:
//
//	reg := prom.NewRegistry()
//	recorder := metrics.NewPrometheusRecorder(reg)
//	http.Handle("/metrics", metrics.HTTPHandler(reg))
package metrics

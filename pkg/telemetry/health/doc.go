// Package health serves the probe endpoints of "bizgate watch".
//
// A watch process that exposes metrics also answers:
//
//   - /healthz: liveness, 200 while the process serves requests
//   - /readyz: readiness, 200 once every registered check passes
//   - /status: the summary of the last gate run
//   - /version: build information
//
// Readiness is driven by a RunTracker. The process is ready after its
// first run loaded its inputs, and stays ready while runs keep loading
// them; a run whose gate fails still counts as healthy, since failing
// dictionaries are reported through the report and the metrics.
//
//	checker := health.New(0)
//	tracker := health.NewRunTracker()
//	checker.RegisterCheck("last_run", tracker.Check)
//	health.Mount(mux, checker, tracker, health.VersionInfo{Version: "0.1.0"})
package health

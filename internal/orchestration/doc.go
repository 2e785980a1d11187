// Package orchestration runs the limb kernel strategies concurrently over a
// shared workload and compares their results. It decouples the runs from
// presentation via the ProgressReporter and ResultPresenter interfaces.
package orchestration

// Package experiment turns configuration documents into simulation jobs
// and runs them as a batch: build, spin-ratio precheck, parallel
// integration, then one artifact directory per job in config order.
package experiment

// Package core implements the CSV validation engine.
//
// The engine turns uploaded bytes into a Table (ingest.go), runs a fixed
// pipeline of checks over it (validator.go), and returns a Result listing
// every violation found instead of halting at the first one. Ingestion
// failures (unreadable bytes, missing header) are hard errors; rule
// violations are the engine's normal output and are never raised as errors.
//
// The engine is stateless and synchronous per call. Concurrency across
// requests is bounded by ValidationLimiter, owned by Service.
package core

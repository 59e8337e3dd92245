// Package server exposes the audit engine over HTTP: POST /audit
// runs one audit, GET /insight-selftest probes the insight model
// chain, and GET /healthz reports liveness. Each request gets its own
// pipeline instance; nothing is shared between concurrent audits.
package server

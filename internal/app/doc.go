// Package app contains the core application logic. It owns the logger and
// the loaded stage table and exposes the operations the entrypoint offers
// (synthesis, parameter listing, the Lambda capability table, publishing),
// decoupled from any specific entrypoint like a CLI.
package app

// Package cli is the command-line surface of the wgtsrna binary. It parses
// flags with urfave/cli, builds an app.App from the global flags and maps
// every configuration or usage problem onto an ExitError with code 2.
package cli

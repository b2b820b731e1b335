// Package main is the single-binary entrypoint for the linkvote backend.
package main

import "github.com/linkvote-app/linkvote/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}

// Command labdex serves research-project search, question answering and
// timeline analytics over HTTP and MCP.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// Command todo serves the to-do list API.
//
// Usage:
//
//	todo [serve] [--port 3000] [--store mongo|postgres|mysql|sqlite]
//	todo migrate
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

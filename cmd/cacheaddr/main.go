// Package main provides the cacheaddr command, which splits 32-bit byte
// addresses into the tag, index and offset fields of a cache geometry.
package main

import (
	"bufio"
	"os"

	"github.com/tebeka/atexit"
)

func main() {
	out := bufio.NewWriter(os.Stdout)
	atexit.Register(func() { _ = out.Flush() })

	cmd := newRootCmd(os.Stdin, out, os.LookupEnv)
	if err := cmd.Execute(); err != nil {
		atexit.Fatalf("Error: %v", err)
	}

	atexit.Exit(0)
}

// Package main provides the entry point for cacheaddr.
// cacheaddr splits 32-bit addresses into cache tag, index and offset fields.
//
// For the full CLI, use: go run ./cmd/cacheaddr
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("cacheaddr - cache address field calculator")
	fmt.Println("")
	fmt.Println("Usage: cacheaddr [options] <address>...")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  --size        Cache size in bytes (default 4096)")
	fmt.Println("  --block-size  Cache block size in bytes (default 32)")
	fmt.Println("  --ways        Number of ways (default 2)")
	fmt.Println("  --config      Path to cache configuration JSON file")
	fmt.Println("  --env-file    Path to a dotenv file")
	fmt.Println("  --verify      Cross-check indices against an Akita directory")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/cacheaddr' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/cacheaddr' instead.")
	}
}

package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// parseAddress accepts decimal or 0x/0o/0b-prefixed 32-bit values.
func parseAddress(tok string) (uint32, error) {
	v, err := strconv.ParseUint(tok, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", tok, err)
	}
	return uint32(v), nil
}

func parseArgs(args []string) ([]uint32, error) {
	addrs := make([]uint32, 0, len(args))
	for _, arg := range args {
		addr, err := parseAddress(arg)
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, addr)
	}
	return addrs, nil
}

// readAddresses reads whitespace-separated addresses from r. Anything after
// a '#' on a line is ignored.
func readAddresses(r io.Reader) ([]uint32, error) {
	var addrs []uint32

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++

		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}

		for _, tok := range strings.Fields(text) {
			addr, err := parseAddress(tok)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			addrs = append(addrs, addr)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read addresses: %w", err)
	}

	return addrs, nil
}

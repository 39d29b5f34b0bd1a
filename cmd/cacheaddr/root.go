package main

import (
	"fmt"
	"io"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sarchlab/cacheaddr/cache/decode"
	"github.com/sarchlab/cacheaddr/cache/geometry"
	"github.com/sarchlab/cacheaddr/report"
)

type options struct {
	size      uint64
	blockSize uint64
	ways      uint64

	configPath string
	envFile    string

	verify   bool
	noHeader bool
}

func newRootCmd(
	stdin io.Reader,
	stdout io.Writer,
	lookup geometry.LookupFunc,
) *cobra.Command {
	opts := &options{}
	defaults := geometry.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "cacheaddr [address...]",
		Short: "Split 32-bit addresses into cache tag, index and offset fields.",
		Long: `cacheaddr derives the tag/index/offset boundaries of a set-associative ` +
			`cache from its size, block size and way count, and prints each address ` +
			`with its fields in binary. Addresses are read from the arguments, or ` +
			`from standard input one per line when no argument is given.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := resolveConfig(cmd, opts, lookup)
			if err != nil {
				return err
			}

			g, err := config.Resolve()
			if err != nil {
				return err
			}

			var addrs []uint32
			if len(args) > 0 {
				addrs, err = parseArgs(args)
			} else {
				addrs, err = readAddresses(stdin)
			}
			if err != nil {
				return err
			}

			if opts.verify {
				if err := verifyPlacement(g, addrs); err != nil {
					return err
				}
			}

			reporter := report.NewReporter(stdout, g)
			if !opts.noHeader {
				if err := reporter.WriteHeader(); err != nil {
					return err
				}
			}

			return reporter.WriteAll(addrs)
		},
	}

	flags := cmd.Flags()
	flags.Uint64Var(&opts.size, "size", defaults.TotalSize, "Cache size in bytes")
	flags.Uint64Var(&opts.blockSize, "block-size", defaults.BlockSize, "Cache block size in bytes")
	flags.Uint64Var(&opts.ways, "ways", defaults.WayCount, "Number of ways")
	flags.StringVar(&opts.configPath, "config", "", "Path to cache configuration JSON file")
	flags.StringVar(&opts.envFile, "env-file", "",
		"Path to a dotenv file providing CACHE_SIZE, CACHE_BLOCK_SIZE and CACHE_WAY_NUM")
	flags.BoolVar(&opts.verify, "verify", false,
		"Cross-check every index against an Akita cache directory")
	flags.BoolVar(&opts.noHeader, "no-header", false, "Do not print the geometry header")

	return cmd
}

// resolveConfig layers the configuration sources. Later sources win:
// defaults, config file, env file, process environment, explicit flags.
func resolveConfig(
	cmd *cobra.Command,
	opts *options,
	lookup geometry.LookupFunc,
) (geometry.Config, error) {
	config := geometry.DefaultConfig()

	if opts.configPath != "" {
		var err error
		config, err = geometry.LoadConfig(opts.configPath)
		if err != nil {
			return geometry.Config{}, err
		}
	}

	fileVars := map[string]string{}
	if opts.envFile != "" {
		var err error
		fileVars, err = godotenv.Read(opts.envFile)
		if err != nil {
			return geometry.Config{}, fmt.Errorf("failed to read env file: %w", err)
		}
	}

	config, err := geometry.ConfigFromEnv(config, func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	})
	if err != nil {
		return geometry.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("size") {
		config.TotalSize = opts.size
	}
	if flags.Changed("block-size") {
		config.BlockSize = opts.blockSize
	}
	if flags.Changed("ways") {
		config.WayCount = opts.ways
	}

	return config, nil
}

func verifyPlacement(g geometry.Geometry, addrs []uint32) error {
	checker, err := decode.NewPlacementChecker(g)
	if err != nil {
		return err
	}

	for _, addr := range addrs {
		if err := checker.Check(decode.Decode(g, addr)); err != nil {
			return err
		}
	}

	return nil
}

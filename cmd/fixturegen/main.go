// Command fixturegen writes hash fixtures: JSON files pairing field element
// inputs with the digest a Poseidon-family hasher computes over them.
package main

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
)

var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "YAML file with the fixture configuration",
	}
	inputFlag = &cli.StringSliceFlag{
		Name:    "input",
		Aliases: []string{"x"},
		Usage:   "decimal field element to hash, repeat in hashing order",
	}
	hasherFlag = &cli.StringFlag{
		Name:  "hasher",
		Usage: "hash function (see the hashers command)",
	}
	arityFlag = &cli.IntFlag{
		Name:  "arity",
		Usage: "number of inputs the hasher is built for (0: number of inputs)",
	}
	outputFlag = &cli.StringFlag{
		Name:    "out",
		Aliases: []string{"o"},
		Usage:   "fixture file to write",
	}
	layoutFlag = &cli.StringFlag{
		Name:  "layout",
		Usage: `JSON member names: "x" ({"x","hash"}) or "values" ({"values","hash_result"})`,
	}
	circuitFlag = &cli.BoolFlag{
		Name:  "circuit",
		Usage: "also solve the hasher circuit gadget over the fixture",
	}
	leafFlag = &cli.StringSliceFlag{
		Name:  "leaf",
		Usage: "census leaf as key=value, repeatable",
	}
	levelsFlag = &cli.IntFlag{
		Name:  "levels",
		Usage: "census tree depth",
	}
	verbosityFlag = &cli.IntFlag{
		Name:  "verbosity",
		Usage: "log level: 0=crit, 1=error, 2=warn, 3=info, 4=debug, 5=trace",
		Value: 3,
	}
)

func newApp() *cli.App {
	generate := &cli.Command{
		Name:   "generate",
		Usage:  "hash the inputs and write the fixture",
		Flags:  []cli.Flag{configFlag, inputFlag, hasherFlag, arityFlag, outputFlag, layoutFlag},
		Action: generateCmd,
	}
	return &cli.App{
		Name:  "fixturegen",
		Usage: "Poseidon hash fixture generator",
		Flags: append([]cli.Flag{verbosityFlag}, generate.Flags...),
		Before: func(ctx *cli.Context) error {
			setupLogger(ctx.Int(verbosityFlag.Name))
			return nil
		},
		Action: generateCmd,
		Commands: []*cli.Command{
			generate,
			{
				Name:      "verify",
				Usage:     "recompute the digest of a fixture file",
				ArgsUsage: "<fixture.json>",
				Flags:     []cli.Flag{hasherFlag, arityFlag, circuitFlag},
				Action:    verifyCmd,
			},
			{
				Name:   "census",
				Usage:  "write a Merkle tree census fixture",
				Flags:  []cli.Flag{leafFlag, hasherFlag, levelsFlag, outputFlag},
				Action: censusCmd,
			},
			{
				Name:   "hashers",
				Usage:  "list the available hash functions",
				Action: hashersCmd,
			},
		},
	}
}

func setupLogger(verbosity int) {
	handler := log.NewTerminalHandlerWithLevel(os.Stderr, log.FromLegacyLevel(verbosity), true)
	log.SetDefault(log.NewLogger(handler))
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
	"github.com/vocdoni/poseidon-fixtures/census"
	"github.com/vocdoni/poseidon-fixtures/config"
	"github.com/vocdoni/poseidon-fixtures/fixture"
	"github.com/vocdoni/poseidon-fixtures/hash/bn254"
)

// flagContext returns the innermost context the named flag was given on.
// Flags shared by the root app and a subcommand may be given on either, the
// subcommand taking precedence.
func flagContext(ctx *cli.Context, name string) (*cli.Context, bool) {
	for _, c := range ctx.Lineage() {
		if c.IsSet(name) {
			return c, true
		}
	}
	return ctx, false
}

func stringFlag(ctx *cli.Context, name string) string {
	c, _ := flagContext(ctx, name)
	return c.String(name)
}

func intFlag(ctx *cli.Context, name string) int {
	c, _ := flagContext(ctx, name)
	return c.Int(name)
}

// loadConfig builds the run configuration: defaults, then the config file,
// then the flags that were set explicitly.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	conf := config.Default()
	if path := stringFlag(ctx, configFlag.Name); path != "" {
		var err error
		if conf, err = config.Load(path); err != nil {
			return nil, err
		}
		log.Debug("Loaded config file", "path", path)
	}
	if c, ok := flagContext(ctx, inputFlag.Name); ok {
		conf.Inputs = c.StringSlice(inputFlag.Name)
	}
	if c, ok := flagContext(ctx, hasherFlag.Name); ok {
		conf.Hasher = c.String(hasherFlag.Name)
	}
	if c, ok := flagContext(ctx, arityFlag.Name); ok {
		conf.Arity = c.Int(arityFlag.Name)
	}
	if c, ok := flagContext(ctx, outputFlag.Name); ok {
		conf.Output = c.String(outputFlag.Name)
	}
	if c, ok := flagContext(ctx, layoutFlag.Name); ok {
		conf.Layout = c.String(layoutFlag.Name)
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func generateCmd(ctx *cli.Context) error {
	if ctx.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", ctx.Args().Slice())
	}
	conf, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	h, err := bn254.New(conf.Hasher, conf.HasherArity())
	if err != nil {
		return fmt.Errorf("%w: %w", fixture.ErrHashFailure, err)
	}
	log.Debug("Hashing inputs", "hasher", h.Name(), "arity", h.Arity(), "inputs", conf.Inputs)
	f, err := fixture.Generate(conf.Inputs, h)
	if err != nil {
		return err
	}
	layout, err := fixture.ParseLayout(conf.Layout)
	if err != nil {
		return err
	}
	if err := fixture.Persist(f, conf.Output, layout); err != nil {
		return err
	}
	log.Info("Fixture written", "path", conf.Output, "hasher", f.Hasher, "hash", f.Hash)
	return nil
}

func verifyCmd(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("expected one fixture file, got %d arguments", ctx.NArg())
	}
	path := ctx.Args().First()
	f, err := fixture.Load(path)
	if err != nil {
		return err
	}
	name := stringFlag(ctx, hasherFlag.Name)
	if name == "" {
		name = bn254.DefaultHasher
	}
	arity := intFlag(ctx, arityFlag.Name)
	if arity == 0 {
		arity = len(f.Inputs)
	}
	h, err := bn254.New(name, arity)
	if err != nil {
		return fmt.Errorf("%w: %w", fixture.ErrHashFailure, err)
	}
	if err := fixture.Verify(f, h); err != nil {
		return err
	}
	if ctx.Bool(circuitFlag.Name) {
		gadget, ok := bn254.Gadget(name)
		if !ok {
			return fmt.Errorf("hasher %s has no circuit gadget", name)
		}
		if err := fixture.VerifyCircuit(f, gadget); err != nil {
			return err
		}
		log.Debug("Circuit gadget agrees", "hasher", name)
	}
	log.Info("Fixture verified", "path", path, "hasher", name, "hash", f.Hash)
	return nil
}

func censusCmd(ctx *cli.Context) error {
	var leaves []census.Leaf
	for _, s := range ctx.StringSlice(leafFlag.Name) {
		l, err := census.ParseLeaf(s)
		if err != nil {
			return err
		}
		leaves = append(leaves, l)
	}
	conf := census.Config{
		MaxLevels: ctx.Int(levelsFlag.Name),
		Hasher:    stringFlag(ctx, hasherFlag.Name),
	}
	f, err := census.Generate(conf, leaves)
	if err != nil {
		return err
	}
	out := stringFlag(ctx, outputFlag.Name)
	if out == "" {
		out = "inputs/census.json"
	}
	if err := census.Persist(f, out); err != nil {
		return err
	}
	log.Info("Census fixture written", "path", out, "hasher", f.Hasher, "leaves", len(f.Proofs), "root", f.Root)
	return nil
}

func hashersCmd(ctx *cli.Context) error {
	for _, name := range bn254.Names() {
		_, gadget := bn254.Gadget(name)
		if gadget {
			fmt.Fprintf(ctx.App.Writer, "%s (circuit)\n", name)
		} else {
			fmt.Fprintln(ctx.App.Writer, name)
		}
	}
	return nil
}

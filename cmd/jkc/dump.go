package main

import (
	"fmt"
	"io"

	"github.com/signadot/jkc/compression"
	"github.com/signadot/jkc/dump"
	"github.com/signadot/jkc/wire"

	"github.com/scott-cotton/cli"
)

func dumpCmd(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		return err
	}
	switch len(args) {
	case 0:
		args = []string{"-"}
	case 1:
	default:
		return fmt.Errorf("%w: dump takes at most one file", cli.ErrUsage)
	}
	in, closeIn, err := openIn(cc, args[0])
	if err != nil {
		return err
	}
	defer closeIn()
	if err := dumpReader(cfg, cc, in); err != nil {
		return fmt.Errorf("error processing %s: %w", args[0], err)
	}
	return nil
}

func dumpReader(cfg *DumpConfig, cc *cli.Context, r io.Reader) error {
	zr, alg, err := compression.NewReader(r)
	if err != nil {
		return err
	}
	defer zr.Close()
	theLog.Debug("dump", "compression", alg)
	s, err := wire.ReadStream(zr)
	if err != nil {
		return err
	}
	if cfg.J {
		return dump.JSON(cc.Out, s)
	}
	return dump.Text(cc.Out, s, cfg.dumpOpts(cc)...)
}

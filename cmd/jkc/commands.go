package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "jkc").
		WithSynopsis("jkc [opts] command [opts]").
		WithDescription("jkc encodes json lines into a compact tagged binary stream.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return jkcMain(cfg, cc, args)
		}).
		WithSubs(
			EncodeCommand(cfg),
			DumpCommand(cfg))
}

func EncodeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &EncodeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Encode, "encode").
		WithAliases("e", "enc").
		WithSynopsis("encode [opts] <in> <out>").
		WithDescription("encode json lines from <in> into <out>; '-' is stdin or stdout").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return encodeCmd(cfg, cc, args)
		})
}

func DumpCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DumpConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Dump, "dump").
		WithAliases("d").
		WithSynopsis("dump [opts] [file]").
		WithDescription("print the records and dictionary of an encoded stream").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return dumpCmd(cfg, cc, args)
		})
}

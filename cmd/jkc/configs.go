package main

import (
	"os"

	"github.com/signadot/jkc/config"
	"github.com/signadot/jkc/dump"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	V    bool `cli:"name=v aliases=verbose desc='log at debug level'"`
	Gops bool `cli:"name=gops desc='run a gops diagnostics agent'"`

	Main *cli.Command
}

type EncodeConfig struct {
	*MainConfig

	Config     string `cli:"name=config desc='yaml settings file'"`
	Strict     bool   `cli:"name=strict desc='fail records holding values of unknown type'"`
	Trailing   bool   `cli:"name=trailing desc='encode a final line without newline'"`
	Comments   bool   `cli:"name=jsonc desc='accept comments and trailing commas'"`
	Order      string `cli:"name=order desc='dictionary order: key or id'"`
	Compress   string `cli:"name=z desc='output compression: none, zstd or lz4'"`
	LineBuffer int    `cli:"name=buf desc='line buffer size in bytes'"`

	Encode *cli.Command
}

// settings loads the config file, if any, and applies the options given
// on the command line over it.
func (cfg *EncodeConfig) settings() (*config.Config, error) {
	res := config.Default()
	if cfg.Config != "" {
		c, err := config.Load(cfg.Config)
		if err != nil {
			return nil, err
		}
		res = c
	}
	if optSet(cfg.Encode, "strict") {
		res.Strict = cfg.Strict
	}
	if optSet(cfg.Encode, "trailing") {
		res.FlushTrailing = cfg.Trailing
	}
	if optSet(cfg.Encode, "jsonc") {
		res.Comments = cfg.Comments
	}
	if optSet(cfg.Encode, "order") {
		res.Order = cfg.Order
	}
	if optSet(cfg.Encode, "z") {
		res.Compression = cfg.Compress
	}
	if optSet(cfg.Encode, "buf") {
		res.LineBuffer = cfg.LineBuffer
	}
	if err := res.Validate(); err != nil {
		return nil, err
	}
	return res, nil
}

type DumpConfig struct {
	*MainConfig

	J     bool `cli:"name=j aliases=json desc='print records as json lines'"`
	Color bool `cli:"name=color desc='print with color'"`

	Dump *cli.Command
}

func (cfg *DumpConfig) dumpOpts(cc *cli.Context) []dump.Option {
	if optSet(cfg.Dump, "color") {
		if cfg.Color {
			return []dump.Option{dump.WithColors(dump.NewColors())}
		}
		return nil
	}
	f, ok := cc.Out.(*os.File)
	if !ok {
		return nil
	}
	if isatty.IsTerminal(f.Fd()) {
		return []dump.Option{dump.WithColors(dump.NewColors())}
	}
	return nil
}

func optSet(cmd *cli.Command, name string) bool {
	for _, opt := range cmd.Opts {
		if opt.Name != name {
			continue
		}
		return opt.Value != nil
	}
	return false
}

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/signadot/jkc/compression"
	"github.com/signadot/jkc/encode"

	"github.com/scott-cotton/cli"
)

func encodeCmd(cfg *EncodeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Encode.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: encode requires <in> and <out>", cli.ErrUsage)
	}
	settings, err := cfg.settings()
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	opts, err := settings.EncodeOptions(theLog)
	if err != nil {
		return err
	}
	alg, err := settings.Algorithm()
	if err != nil {
		return err
	}
	in, closeIn, err := openIn(cc, args[0])
	if err != nil {
		return err
	}
	defer closeIn()
	out, closeOut, err := openOut(cc, args[1])
	if err != nil {
		return err
	}
	stats, err := encodeTo(out, in, alg, opts)
	if cerr := closeOut(); err == nil && cerr != nil {
		err = fmt.Errorf("could not close %q: %w", args[1], cerr)
	}
	if err != nil {
		return fmt.Errorf("error encoding %s: %w", args[0], err)
	}
	theLog.Debug("encoded", "in", args[0], "out", args[1],
		"records", stats.Records, "failed", stats.Failed,
		"keys", stats.Keys, "dropped", stats.Dropped,
		"compression", alg)
	return nil
}

func encodeTo(w io.Writer, r io.Reader, alg compression.Algorithm, opts []encode.Option) (encode.Stats, error) {
	bw := bufio.NewWriter(w)
	zw, err := compression.NewWriter(bw, alg)
	if err != nil {
		return encode.Stats{}, err
	}
	stats, err := encode.EncodeStream(zw, r, opts...)
	if err != nil {
		zw.Close()
		return stats, err
	}
	if err := zw.Close(); err != nil {
		return stats, err
	}
	return stats, bw.Flush()
}

func openIn(cc *cli.Context, path string) (io.Reader, func() error, error) {
	if path == "-" {
		return cc.In, func() error { return nil }, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open %q: %w", path, err)
	}
	return f, f.Close, nil
}

func openOut(cc *cli.Context, path string) (io.Writer, func() error, error) {
	if path == "-" {
		return cc.Out, func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("could not create %q: %w", path, err)
	}
	return f, f.Close, nil
}

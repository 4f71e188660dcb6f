package reformat

import (
	"context"
	"errors"
	"io"
	"iter"
	"log/slog"
	"os"
)

// Config describes one conversion run. Nothing is read from process-wide
// state except the Stdin and Stdout defaults.
type Config struct {
	// Sources are read in order. Empty means Stdin.
	Sources []string
	Input   FormatSpec
	// Output.Delimiter defaults to Input.Delimiter.
	Output FormatSpec
	// Destination is a file name. Empty means Stdout.
	Destination string
	// Transformer defaults to Identity.
	Transformer Transformer
	// Logger defaults to discarding everything.
	Logger *slog.Logger
	// Stdin and Stdout default to os.Stdin and os.Stdout.
	Stdin  io.Reader
	Stdout io.Writer
}

// Pipeline reads sources, decodes, transforms, and encodes to a sink.
type Pipeline struct {
	cfg    Config
	dec    Decoder
	enc    Encoder
	logger *slog.Logger
}

// New validates cfg and builds the decoder and encoder.
func New(cfg Config) (*Pipeline, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Stdin == nil {
		cfg.Stdin = os.Stdin
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Output.Delimiter == 0 {
		cfg.Output.Delimiter = cfg.Input.Delimiter
	}
	dec, err := NewDecoder(cfg.Input, cfg.Logger)
	if err != nil {
		return nil, err
	}
	enc, err := NewEncoder(cfg.Output)
	if err != nil {
		return nil, err
	}
	return &Pipeline{cfg: cfg, dec: dec, enc: enc, logger: cfg.Logger}, nil
}

// Run converts the configured sources. All sources are opened before the
// sink, so an unavailable source fails the run before anything is written.
func (p *Pipeline) Run(ctx context.Context) error {
	srcs, err := OpenSources(p.cfg.Sources, p.cfg.Stdin)
	if err != nil {
		p.logger.Info("open sources failed", "error", err)
		return err
	}
	defer srcs.Close()
	p.logger.Debug("sources opened", "sources", srcs.Names())

	out, err := OpenSink(p.cfg.Destination, p.cfg.Stdout)
	if err != nil {
		return err
	}

	var n int
	records := Transform(p.dec.Decode(srcs.Lines()), p.cfg.Transformer)
	if err := p.enc.Encode(out, counted(ctx, records, &n)); err != nil {
		return errors.Join(err, out.Close())
	}
	if err := out.Close(); err != nil {
		return err
	}
	p.logger.Info("converted",
		"records", n,
		"from", p.cfg.Input.String(),
		"to", p.cfg.Output.String(),
		"destination", destinationName(p.cfg.Destination),
	)
	return nil
}

// counted stops on context cancellation and counts the records that pass.
func counted(ctx context.Context, records iter.Seq2[Record, error], n *int) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		for rec, err := range records {
			if err == nil {
				err = ctx.Err()
			}
			if err != nil {
				yield(nil, err)
				return
			}
			*n++
			if !yield(rec, nil) {
				return
			}
		}
	}
}

func destinationName(name string) string {
	if name == "" {
		return StdoutName
	}
	return name
}

package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/bjaus/reformat"
)

var version = "0.0.1"

type options struct {
	from            string
	to              string
	delimiter       string
	outputDelimiter string
	output          string
	configPath      string
	verbose         bool
	debug           bool
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "reformat [flags] [FILE...]",
		Short: "Convert records between line text, CSV, and JSON Lines",
		Long: `reformat reads line-delimited data from files or standard input and writes
it as plain lines, CSV, or JSON Lines.

Files are read in the order given. With no FILE, or when FILE is -, standard
input is read. JSON lines that do not hold a single object are skipped.`,
		Example: `  reformat file1.csv
  reformat -f csv -t json file1.csv file2.csv
  cat data.psv | reformat -f csv -d '|' -t csv -o out.csv`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && isTerminal(stdin) {
				return cmd.Help()
			}
			cfg, err := opts.config(cmd.Flags().Changed)
			if err != nil {
				return err
			}
			cfg.Sources = args
			cfg.Stdin = stdin
			cfg.Stdout = stdout
			cfg.Logger = newLogger(stderr, opts.level())
			p, err := reformat.New(cfg)
			if err != nil {
				return err
			}
			return p.Run(cmd.Context())
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.StringVarP(&opts.from, "from", "f", string(reformat.Line), "input format: line, csv, or json")
	f.StringVarP(&opts.to, "to", "t", string(reformat.Line), "output format: line, csv, or json")
	f.StringVarP(&opts.delimiter, "delimiter", "d", string(reformat.DefaultDelimiter), `input CSV delimiter ("\t" for tab)`)
	f.StringVar(&opts.outputDelimiter, "output-delimiter", "", "output CSV delimiter (default: same as --delimiter)")
	f.StringVarP(&opts.output, "output", "o", "", "write to file instead of standard output")
	f.StringVarP(&opts.configPath, "config", "c", "", "YAML file with defaults for the flags above")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "be verbose")
	f.BoolVar(&opts.debug, "debug", false, "print lots of debugging statements")
	cmd.MarkFlagsMutuallyExclusive("verbose", "debug")
	return cmd
}

// config overlays flags on the optional config file. A flag wins when it was
// set on the command line or the file leaves the value empty.
func (o options) config(changed func(string) bool) (reformat.Config, error) {
	var fc reformat.FileConfig
	if o.configPath != "" {
		var err error
		if fc, err = reformat.LoadFileConfig(o.configPath); err != nil {
			return reformat.Config{}, err
		}
	}
	overlay := func(name string, dst *string, val string) {
		if changed(name) || *dst == "" {
			*dst = val
		}
	}
	overlay("from", &fc.From, o.from)
	overlay("to", &fc.To, o.to)
	overlay("delimiter", &fc.Delimiter, o.delimiter)
	overlay("output-delimiter", &fc.OutputDelimiter, o.outputDelimiter)
	overlay("output", &fc.Output, o.output)
	return fc.Config()
}

func (o options) level() slog.Level {
	switch {
	case o.debug:
		return slog.LevelDebug
	case o.verbose:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

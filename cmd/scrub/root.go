package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/okpulse/links-scrubber/internal/core"
	"github.com/okpulse/links-scrubber/internal/logger"
)

type options struct {
	jsonOut bool
	explain bool
	summary bool
	noColor bool
	verbose bool
}

// palette holds the colors used for terminal output.
type palette struct {
	ok, warn, removed, dim *color.Color
}

func newPalette(disable bool) palette {
	p := palette{
		ok:      color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		removed: color.New(color.FgRed),
		dim:     color.New(color.Faint),
	}
	if disable {
		for _, c := range []*color.Color{p.ok, p.warn, p.removed, p.dim} {
			c.DisableColor()
		}
	}
	return p
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "scrub [text...]",
		Short: "Strip tracking parameters from URLs",
		Long: `scrub removes analytics and affiliate parameters from URLs while keeping
the parts that address content.

Each argument is cleaned on its own. With no arguments every non-empty line
of stdin is cleaned. Text around a URL (quotes, prose, an HTML anchor) is
ignored; the first http(s) URL found is used.

Example usage:
  scrub 'https://example.com/?utm_source=x&id=5'
  pbpaste | scrub --summary
  scrub --explain 'https://youtu.be/abc123?t=30&si=zz'`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.verbose {
				return logger.InitLogger("debug", "console")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs := args
			if len(inputs) == 0 {
				lines, err := readLines(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				inputs = lines
			}
			return runClean(cmd, opts, inputs)
		},
	}

	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging to stderr")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print one JSON object per input")
	cmd.Flags().BoolVar(&opts.explain, "explain", false, "show the decision taken for every parameter")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "print a summary line per input to stderr")

	cmd.AddCommand(newCheckCmd(opts), newVersionCmd())
	return cmd
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, sc.Err()
}

type jsonResult struct {
	Input string `json:"input"`
	core.CleanResult
	Found bool `json:"found"`
}

func runClean(cmd *cobra.Command, opts *options, inputs []string) error {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	p := newPalette(opts.noColor)
	enc := json.NewEncoder(out)

	for _, in := range inputs {
		res, found := core.CleanText(in)
		logger.Log.Debug("cleaned",
			zap.String("platform", res.Platform.String()),
			zap.Int("removed", res.Removed),
			zap.Bool("found", found),
		)

		switch {
		case opts.jsonOut:
			if err := enc.Encode(jsonResult{Input: in, CleanResult: res, Found: found}); err != nil {
				return err
			}
		case opts.explain:
			if err := printExplain(out, p, in, found); err != nil {
				return err
			}
		default:
			fmt.Fprintln(out, res.URL)
		}

		if opts.summary {
			switch {
			case !found:
				p.warn.Fprintln(errOut, "No URL found")
			case res.Removed == 0:
				p.dim.Fprintln(errOut, res.Summary())
			default:
				p.ok.Fprintln(errOut, res.Summary())
			}
		}
	}
	return nil
}

func printExplain(w io.Writer, p palette, in string, found bool) error {
	u := in
	if found {
		u, _ = core.ExtractURL(in)
	}
	ex, ok := core.Explain(u)
	if !ok {
		p.warn.Fprintf(w, "%s: not a cleanable URL\n", strings.TrimSpace(in))
		return nil
	}
	fmt.Fprintf(w, "%s\n", ex.Result.URL)
	fmt.Fprintf(w, "  platform: %s\n", ex.Result.Platform)
	for _, d := range ex.Decisions {
		c := p.ok
		verb := "keep"
		if d.Rule.Removes() {
			c, verb = p.removed, "drop"
		}
		c.Fprintf(w, "  %s %s=%s", verb, d.Key, d.Value)
		p.dim.Fprintf(w, " (%s)\n", d.Rule)
	}
	if ex.FragmentCleared {
		p.removed.Fprintln(w, "  drop #fragment")
	}
	return nil
}

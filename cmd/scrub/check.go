package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okpulse/links-scrubber/internal/core"
)

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check <url>...",
		Short: "Report whether each argument is a cleanable http(s) URL",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPalette(opts.noColor)
			w := cmd.OutOrStdout()
			invalid := 0
			for _, a := range args {
				if core.IsValidURL(a) {
					p.ok.Fprint(w, "valid")
				} else {
					invalid++
					p.removed.Fprint(w, "invalid")
				}
				fmt.Fprintf(w, "\t%s\n", a)
			}
			if invalid > 0 {
				return fmt.Errorf("%d of %d inputs are not valid URLs", invalid, len(args))
			}
			return nil
		},
	}
}

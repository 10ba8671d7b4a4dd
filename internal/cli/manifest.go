package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newManifestCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "manifest",
		Short: "List the entries of the build manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			helper, err := opts.helper(cmd)
			if err != nil {
				return err
			}

			manifest, err := helper.Manifest()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return writeJSON(out, manifest)
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, name := range manifest.Entries() {
				chunk := manifest[name]
				fmt.Fprintf(tw, "%s\t%s\n", name, chunk.File)
			}
			return tw.Flush()
		},
	}
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTagsCommand(opts *options) *cobra.Command {
	var baseURL string

	cmd := &cobra.Command{
		Use:   "tags <entry>",
		Short: "Print the HTML tags that load an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			helper, err := opts.helper(cmd)
			if err != nil {
				return err
			}

			tags, err := helper.Bind(prefixBuilder(baseURL)).Tags(args[0])
			if err != nil {
				return err
			}

			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"entry": args[0], "html": string(tags)})
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), tags)
			return err
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "Scheme and host prepended to build URLs")

	return cmd
}

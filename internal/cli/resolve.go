package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"viteurl/pkg/viteurl"
)

// resolution is one resolved entry in command output.
type resolution struct {
	Entry string   `json:"entry"`
	URL   string   `json:"url"`
	CSS   []string `json:"css,omitempty"`
}

func newResolveCommand(opts *options) *cobra.Command {
	var (
		baseURL    string
		includeCSS bool
	)

	cmd := &cobra.Command{
		Use:   "resolve <entry>...",
		Short: "Print the URL of one or more entries",
		Example: `  viteurl resolve resources/js/app.js
  viteurl resolve --base-url https://cdn.example.com src/main.js src/admin.js`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			helper, err := opts.helper(cmd, viteurl.WithURLBuilder(prefixBuilder(baseURL)))
			if err != nil {
				return err
			}

			results := make([]resolution, 0, len(args))
			for _, entry := range args {
				url, err := helper.File(entry)
				if err != nil {
					return err
				}
				r := resolution{Entry: entry, URL: url}
				if includeCSS {
					if r.CSS, err = helper.CSS(entry); err != nil {
						return err
					}
				}
				results = append(results, r)
			}

			return printResolutions(cmd, opts, results)
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "Scheme and host prepended to build URLs")
	cmd.Flags().BoolVar(&includeCSS, "css", false, "Also print the stylesheets of each entry")

	return cmd
}

func printResolutions(cmd *cobra.Command, opts *options, results []resolution) error {
	out := cmd.OutOrStdout()

	if opts.jsonOutput {
		return writeJSON(out, results)
	}

	if !isTerminal(out) {
		for _, r := range results {
			fmt.Fprintln(out, r.URL)
			for _, css := range r.CSS {
				fmt.Fprintln(out, css)
			}
		}
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\n", r.Entry, r.URL)
		for _, css := range r.CSS {
			fmt.Fprintf(tw, "\t%s\n", css)
		}
	}
	return tw.Flush()
}

// prefixBuilder prepends base, without its trailing slash, to every path.
func prefixBuilder(base string) viteurl.URLBuilder {
	base = strings.TrimRight(base, "/")
	return viteurl.URLBuilderFunc(func(path string) string {
		return base + path
	})
}

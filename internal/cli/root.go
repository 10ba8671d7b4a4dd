// Package cli implements the cobra commands of the viteurl binary.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/karloscodes/cartridge"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"viteurl/internal/config"
	"viteurl/internal/view"
	"viteurl/pkg/viteurl"
)

// Build information, injected from main.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// options holds the global flags shared by every subcommand.
type options struct {
	configFile string
	envFile    string
	publicDir  string
	buildDir   string
	devServer  string
	jsonOutput bool

	cfg *config.Config
}

// NewRootCommand creates the root command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "viteurl",
		Short: "Resolve Vite entries to dev server or hashed build URLs",
		Long: `viteurl reads the manifest Vite writes into the build directory and
resolves entry names to the URLs a server-rendered page should embed.
When a dev server is configured, or a hot file exists in the public
directory, entries resolve to the dev server instead.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "Config file (default: ./viteurl.yaml if present)")
	flags.StringVar(&opts.envFile, "env-file", ".env", "Environment file loaded before the configuration")
	flags.StringVar(&opts.publicDir, "public-dir", "", "Public directory (overrides config)")
	flags.StringVar(&opts.buildDir, "build-dir", "", "Build directory relative to the public directory (overrides config)")
	flags.StringVar(&opts.devServer, "dev-server", "", "Dev server URL (overrides config)")
	flags.BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	rootCmd.AddCommand(newResolveCommand(opts))
	rootCmd.AddCommand(newTagsCommand(opts))
	rootCmd.AddCommand(newManifestCommand(opts))
	rootCmd.AddCommand(newConfigCommand(opts))
	rootCmd.AddCommand(newServeCommand(opts))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// No configuration is needed to print the version.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "viteurl %s (commit: %s, built: %s)\n", Version, Commit, Date)
		},
	}
}

// Execute runs the root command and exits non-zero on failure.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// load reads the env file and the configuration, then applies flag overrides.
func (o *options) load(cmd *cobra.Command) error {
	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", o.envFile, err)
		}
	}

	cfg, err := config.Load(o.configFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("public-dir") {
		cfg.ViteURL.PublicDir = o.publicDir
	}
	if flags.Changed("build-dir") {
		cfg.ViteURL.BuildDir = o.buildDir
	}
	if flags.Changed("dev-server") {
		cfg.ViteURL.DevServer = o.devServer
	}

	o.cfg = cfg
	return nil
}

// helper builds the view helper from the loaded configuration.
func (o *options) helper(cmd *cobra.Command, opts ...viteurl.Option) (*viteurl.Helper, error) {
	return view.NewHelper(o.cfg, newLogger(cmd.ErrOrStderr(), o.cfg), opts...)
}

// newLogger logs to w at the level cartridge reads from cfg. cartridge's own
// logger always writes to stdout, which carries command output here.
func newLogger(w io.Writer, cfg cartridge.LogConfigProvider) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cartridge.LogConfigFromProvider(cfg).Level)); err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

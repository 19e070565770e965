package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/leodido/featmatrix"
	"github.com/leodido/featmatrix/internal/log"
	"github.com/leodido/structcli"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thediveo/enumflag/v2"
)

// Build metadata injected via ldflags.
// When built without ldflags (e.g., plain `go build`), these remain
// at their zero values and the version command omits them gracefully.
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	root := rootCmd()
	root.AddCommand(listCmd())
	root.AddCommand(versionCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// RunOptions defines flags for the root command, which runs the matrix.
type RunOptions struct {
	File     string   `flag:"file" flagshort:"f" flagdescr:"Load the command and feature groups from a TOML or YAML file"`
	DryRun   bool     `flag:"dry-run" flagshort:"n" flagdescr:"Print each command instead of running it"`
	LogLevel logLevel `flag:"log-level" flagshort:"l" flagdescr:"Diagnostic log level (debug, info, warn, error)" flagcustom:"true"`
}

func (o *RunOptions) Attach(c *cobra.Command) error {
	return structcli.Define(c, o)
}

func (o *RunOptions) DefineLogLevel(name, short, descr string, structField reflect.StructField, fieldValue reflect.Value) (pflag.Value, string) {
	fieldPtr := fieldValue.Addr().Interface().(*logLevel)
	*fieldPtr = logLevel(logrus.InfoLevel)
	return fieldPtr, descr
}

func (o *RunOptions) DecodeLogLevel(input any) (any, error) {
	s, ok := input.(string)
	if !ok {
		return input, nil
	}

	return parseLogLevel(s)
}

func rootCmd() *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "featmatrix",
		Short: "Run tests once per combination of optional features",
		Long: `featmatrix runs a test command once for every combination of optional
build features, in a fixed order, and stops at the first failure.

Without flags it runs "cargo test --verbose --features <features>" over the
vapoursynth-functions, vsscript-functions, and f16-pixel-type features.
Each feature can also be left out, so three features give eight runs.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PreRunE: func(c *cobra.Command, args []string) error {
			return structcli.Unmarshal(c, opts)
		},
		RunE: func(c *cobra.Command, args []string) error {
			log.SetLevel(logrus.Level(opts.LogLevel))

			err := runMatrix(c.Context(), opts, os.Stdout, os.Stderr)
			if code := failureExitCode(err); code != 0 {
				os.Exit(code)
			}
			return err
		},
	}

	if err := opts.Attach(cmd); err != nil {
		panic(err)
	}
	return cmd
}

// failureExitCode returns 1 when err carries a failed combination and 0
// otherwise. The failure line is already on stdout at that point.
func failureExitCode(err error) int {
	var ce *featmatrix.CombinationError
	if !errors.As(err, &ce) {
		return 0
	}
	log.WithFields(log.Fields{"index": ce.Index, "code": ce.Code}).Debug(ce.Error())
	return 1
}

func runMatrix(ctx context.Context, opts *RunOptions, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(opts.File)
	if err != nil {
		return err
	}
	command, err := cfg.ParseCommand()
	if err != nil {
		return err
	}

	m := cfg.Matrix()
	log.WithFields(log.Fields{"command": command.String(), "combinations": m.Len()}).Debug("starting run")

	r := &featmatrix.Runner{
		Command: command,
		Out:     stdout,
		Stdout:  stdout,
		Stderr:  stderr,
		DryRun:  opts.DryRun,
	}
	return r.Run(ctx, m)
}

func loadConfig(path string) (featmatrix.Config, error) {
	if strings.TrimSpace(path) == "" {
		return featmatrix.DefaultConfig(), nil
	}
	log.Debug("loading config from %s", path)
	return featmatrix.LoadConfig(path)
}

// ListOptions defines flags for the list subcommand.
type ListOptions struct {
	File string `flag:"file" flagshort:"f" flagdescr:"Load the command and feature groups from a TOML or YAML file"`
	JSON bool   `flag:"json" flagshort:"j" flagdescr:"Output in JSON format"`
}

func (o *ListOptions) Attach(c *cobra.Command) error {
	return structcli.Define(c, o)
}

func listCmd() *cobra.Command {
	opts := &ListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every feature combination in run order",
		Args:  cobra.NoArgs,
		PreRunE: func(c *cobra.Command, args []string) error {
			return structcli.Unmarshal(c, opts)
		},
		RunE: func(c *cobra.Command, args []string) error {
			return listMatrix(opts, c.OutOrStdout())
		},
	}

	if err := opts.Attach(cmd); err != nil {
		panic(err)
	}
	return cmd
}

func listMatrix(opts *ListOptions, w io.Writer) error {
	cfg, err := loadConfig(opts.File)
	if err != nil {
		return err
	}
	m := cfg.Matrix()

	if opts.JSON {
		combos := make([]string, 0, m.Len())
		for _, c := range m.All() {
			combos = append(combos, c.String())
		}
		return printJSON(w, map[string]any{
			"command":      cfg.Command,
			"groups":       m.Groups(),
			"combinations": combos,
		})
	}

	fmt.Fprintf(w, "Command: %s <features>\n\n", cfg.Command)
	fmt.Fprint(w, m)
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show tool version",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			w := c.OutOrStdout()
			if version != "" {
				fmt.Fprintf(w, "featmatrix %s", version)
				if commit != "" {
					fmt.Fprintf(w, " (%s)", commit)
				}
				if date != "" {
					fmt.Fprintf(w, " built %s", date)
				}
				fmt.Fprintln(w)
			} else {
				fmt.Fprintln(w, "featmatrix (dev)")
			}
			return nil
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// logLevel is a pflag.Value over the logrus levels the CLI exposes.
type logLevel logrus.Level

var logLevelIdentifiers = map[logrus.Level][]string{
	logrus.DebugLevel: {"debug"},
	logrus.InfoLevel:  {"info"},
	logrus.WarnLevel:  {"warn", "warning"},
	logrus.ErrorLevel: {"error"},
}

func (l *logLevel) String() string {
	return logrus.Level(*l).String()
}

func (l *logLevel) Set(input string) error {
	level, err := parseLogLevel(input)
	if err != nil {
		return err
	}

	*l = level
	return nil
}

func (l *logLevel) Type() string {
	return "level"
}

func parseLogLevel(input string) (logLevel, error) {
	name := strings.TrimSpace(input)
	if name == "" {
		return logLevel(logrus.InfoLevel), nil
	}

	var level logrus.Level
	enumValue := enumflag.New(&level, "level", logLevelIdentifiers, enumflag.EnumCaseInsensitive)
	if err := enumValue.Set(name); err != nil {
		return 0, fmt.Errorf("unknown log level: %q (available: debug, info, warn, error)", name)
	}

	return logLevel(level), nil
}

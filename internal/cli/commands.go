// Package cli wires the blocksaver command line.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ib-77/blocksaver/internal/config"
	"github.com/ib-77/blocksaver/internal/logging"
	versionpkg "github.com/ib-77/blocksaver/internal/version"
	"github.com/ib-77/blocksaver/pkg/rop/core"
	"github.com/ib-77/blocksaver/pkg/sanitize"
	"github.com/ib-77/blocksaver/pkg/saver"
	"github.com/ib-77/blocksaver/pkg/snapshot"
	"github.com/ib-77/blocksaver/pkg/tracker"
)

const (
	CmdSave     = "save"
	CmdVersion  = "version"
	FlagConfig  = "config"
	FlagInput   = "input"
	FlagOutput  = "output"
	FlagWorkers = "workers"
	FlagPretty  = "pretty"
)

type saveOptions struct {
	configPath string
	input      string
	output     string
	workers    int
	pretty     bool
}

// NewRootCommand builds the blocksaver command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "blocksaver",
		Short: "Assemble block snapshots into versioned output documents",
		Long: `blocksaver runs a save cycle over a JSON snapshot of editor blocks:
every block is saved and validated concurrently, invalid blocks are dropped,
the batch is sanitized and written as a single versioned document.

  blocksaver save --input blocks.json              # document on stdout
  blocksaver save -i blocks.json -o out.json -w 4  # bounded concurrency`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newSaveCommand(), newVersionCommand())
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   CmdVersion,
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), versionpkg.GetFullVersionInfo())
			return err
		},
	}
}

func newSaveCommand() *cobra.Command {
	opts := &saveOptions{}
	cmd := &cobra.Command{
		Use:   CmdSave,
		Short: "Run one save cycle over a snapshot file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSave(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, FlagConfig, "c", "", "configuration file (YAML)")
	cmd.Flags().StringVarP(&opts.input, FlagInput, "i", "", "snapshot file, - for stdin")
	cmd.Flags().StringVarP(&opts.output, FlagOutput, "o", "", "output file (default stdout)")
	cmd.Flags().IntVarP(&opts.workers, FlagWorkers, "w", -1, "max concurrent extractions, overrides config")
	cmd.Flags().BoolVar(&opts.pretty, FlagPretty, false, "indent the output document")
	_ = cmd.MarkFlagRequired(FlagInput)
	return cmd
}

func runSave(ctx context.Context, cmd *cobra.Command, opts *saveOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	registry, err := cfg.Registry()
	if err != nil {
		return err
	}

	doc, err := readSnapshot(cmd.InOrStdin(), opts.input)
	if err != nil {
		return err
	}

	if opts.workers >= 0 {
		ctx = core.WithWorkerOptions(ctx, opts.workers)
	}

	var sanitizer saver.Sanitizer = sanitize.Passthrough{}
	if cfg.Sanitize.TrimSpace {
		sanitizer = sanitize.TrimSpace()
	}

	s := saver.New(saver.Config{
		Version:    cfg.Version,
		StubTool:   registry.StubTool(),
		MaxWorkers: cfg.MaxWorkers,
	}, sanitizer, tracker.NewObserver(), saver.WithLogger(logger))

	out, err := s.Save(ctx, snapshot.Units(doc, registry))
	if err != nil {
		return eris.Wrapf(err, "save %s", opts.input)
	}

	logger.Debug("document assembled", zap.Int("blocks", len(out.Blocks)), zap.String("version", out.Version))
	return writeDocument(cmd.OutOrStdout(), opts.output, out, opts.pretty)
}

func readSnapshot(stdin io.Reader, path string) (snapshot.Document, error) {
	if path == "-" {
		return snapshot.Decode(stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return snapshot.Document{}, eris.Wrapf(err, "open snapshot %s", path)
	}
	defer f.Close()

	doc, err := snapshot.Decode(f)
	if err != nil {
		return snapshot.Document{}, eris.Wrapf(err, "read snapshot %s", path)
	}
	return doc, nil
}

func writeDocument(stdout io.Writer, path string, doc any, pretty bool) error {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return eris.Wrap(err, "encode document")
	}
	data = append(data, '\n')

	if path == "" {
		_, err = stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "write document %s", path)
	}
	return nil
}

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/satcat/pkg/app"
	"tableflip.dev/satcat/pkg/baseline"
	"tableflip.dev/satcat/pkg/store"
)

// openSession loads the configuration, opens the store and the baseline,
// and restores the editing session. Call the returned func when done.
func openSession(ctx context.Context, errOut io.Writer) (*app.Session, store.Config, func(), error) {
	cfg, err := storeOpts.Config()
	if err != nil {
		return nil, nil, nil, err
	}

	level := slog.LevelWarn
	if storeOpts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level}))

	roots, err := baseline.Resolve(cfg.BaselinePath())
	if err != nil {
		return nil, cfg, nil, err
	}

	kv, err := store.Open(cfg, logger)
	if err != nil {
		return nil, cfg, nil, err
	}
	closer := func() {
		if err := kv.Close(); err != nil {
			logger.Warn("closing store", "error", err)
		}
	}

	s, err := app.Open(ctx, app.Options{
		Baseline:   roots,
		KV:         kv,
		OverlayKey: cfg.OverlayKey(),
		Logger:     logger,
	})
	if err != nil {
		closer()
		return nil, cfg, nil, err
	}

	yellow := color.New(color.FgYellow)
	for _, w := range s.Warnings() {
		_, _ = yellow.Fprintf(errOut, "warning: %v\n", w)
	}
	return s, cfg, closer, nil
}

// withSession runs fn with an open session and maps its error through the
// output options.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, s *app.Session) error) error {
	cmd.SilenceUsage = true
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, _, closer, err := openSession(ctx, cmd.ErrOrStderr())
	if err != nil {
		return output.HandleError(fmt.Errorf("open catalogue: %w", err))
	}
	defer closer()
	return output.HandleError(fn(ctx, s))
}

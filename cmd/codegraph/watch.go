package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/crosslang/codegraph/codegraph"
	"github.com/crosslang/codegraph/examplesink"
	"github.com/crosslang/codegraph/examplesink/formatters"
)

// The watch subcommand is an fsnotify-driven rebuild loop: file events are
// debounced, then the whole pipeline reruns and the graph is re-rendered.
// Rebuilds are never incremental.
const debounceInterval = 300 * time.Millisecond

var watchSkippedDirs = map[string]bool{
	".git": true, "node_modules": true, "build": true, "target": true,
	"dist": true, "out": true, ".gradle": true, ".idea": true, ".vscode": true,
}

type watchOptions struct {
	outputFormat string
	label        string
	output       string
}

var watchCmd = newWatchCommand()

func newWatchCommand() *cobra.Command {
	opts := &watchOptions{outputFormat: formatters.OutputFormatDOT.String()}

	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Watch a source tree and rebuild its code graph on change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return runWatch(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outputFormat, "format", "f", opts.outputFormat, "Output format (dot, mermaid, json)")
	cmd.Flags().StringVarP(&opts.label, "label", "l", "", "Optional title embedded in the rendered graph")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write each rebuild to a file instead of stdout")

	return cmd
}

func runWatch(cmd *cobra.Command, root string, opts *watchOptions) error {
	format, ok := formatters.ParseOutputFormat(opts.outputFormat)
	if !ok {
		return fmt.Errorf("unknown format %q (want dot, mermaid, or json)", opts.outputFormat)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := addWatchDirs(watcher, absRoot); err != nil {
		return fmt.Errorf("watch directories: %w", err)
	}

	rebuild := func() {
		if err := rebuildAndRender(cmd, absRoot, format, opts); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "rebuild error: %v\n", err)
			return
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "rebuilt %s\n", absRoot)
	}
	rebuild()

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (Ctrl+C to stop)\n", absRoot)

	var debounceTimer *time.Timer
	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceInterval, rebuild)
			if event.Has(fsnotify.Create) {
				addIfDirectory(watcher, event.Name)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "watcher error: %v\n", err)
		}
	}
}

func rebuildAndRender(cmd *cobra.Command, root string, format formatters.OutputFormat, opts *watchOptions) error {
	pipeline := codegraph.New(root, codegraph.DefaultOptions())
	result, err := pipeline.AnalyzeDir(context.Background(), root)
	if err != nil {
		return err
	}

	sink := examplesink.New()
	if err := sink.Write(result); err != nil {
		return err
	}

	output, err := formatters.New(format).Format(sink, formatters.RenderOptions{Label: opts.label})
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), output)
		return err
	}
	return os.WriteFile(opts.output, []byte(output+"\n"), 0o644)
}

func addWatchDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if isMissingPath(err) && path != root {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if watchSkippedDirs[d.Name()] {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil && !isMissingPath(err) {
			return err
		}
		return nil
	})
}

func addIfDirectory(watcher *fsnotify.Watcher, path string) {
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		_ = addWatchDirs(watcher, path)
	}
}

func isMissingPath(err error) bool {
	return os.IsNotExist(err) || errors.Is(err, fs.ErrNotExist)
}

// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/sftextfmt/main.go
// Summary: Command-line formatter that aligns the columns of sftext files.
// Usage: sftextfmt [-w|-l|-d] [flags] path...  or  sftextfmt -stdin < file

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/framegrace/sftext/config"
	"github.com/framegrace/sftext/internal/cache"
	"github.com/framegrace/sftext/internal/diffview"
	"github.com/framegrace/sftext/internal/fileset"
	"github.com/framegrace/sftext/internal/version"
	"github.com/framegrace/sftext/internal/watch"
	"github.com/framegrace/sftext/tablefmt"
)

// errFilesFailed reports that at least one file could not be processed.
var errFilesFailed = errors.New("some files could not be formatted")

func main() {
	err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
	case errors.Is(err, errFilesFailed):
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}

// formatter carries the resolved options for one run.
type formatter struct {
	opts        tablefmt.Options
	fingerprint string
	cache       *cache.Cache

	write, list, diff bool
	color             bool

	stdout, stderr io.Writer
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("sftextfmt", flag.ContinueOnError)
	fs.SetOutput(stderr)

	// Output modes
	write := fs.Bool("w", false, "Write result to (source) file instead of stdout")
	list := fs.Bool("l", false, "List files whose formatting differs")
	diff := fs.Bool("d", false, "Print a diff instead of the formatted text")
	fromStdin := fs.Bool("stdin", false, "Read from stdin and write to stdout")
	watchMode := fs.Bool("watch", false, "Keep running and reformat files in place as they change")

	// Formatting
	minimize := fs.Bool("minimize", false, "Remove padding shared by every row of a column (no effect while column widths come from the rows themselves)")
	classifier := fs.String("classifier", "", "Width classifier (charset, runewidth, eastasian)")
	configPath := fs.String("config", "", "Config overlay (default: ./"+config.ProjectConfigName+" when present)")

	noCache := fs.Bool("no-cache", false, "Do not consult or update the formatted-file cache")
	verbose := fs.Bool("v", false, "Log progress to stderr")
	showVersion := fs.Bool("version", false, "Print the formatter version and exit")
	saveConfig := fs.Bool("save-config", false, "Store -classifier and -minimize in the user config file and exit")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *showVersion {
		fmt.Fprintf(stdout, "sftextfmt %s\n", version.Version)
		return nil
	}

	if *verbose {
		log.SetOutput(stderr)
	} else {
		log.SetOutput(io.Discard)
	}

	if err := config.Reload(); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *saveConfig {
		return saveSystem(*classifier, *minimize)
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := config.Resolve(*configPath, wd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := version.Check(cfg.GetString("sftext", "required_version", "")); err != nil {
		return err
	}
	if *classifier != "" {
		setOption(cfg, "width", "classifier", *classifier)
	}
	if *minimize {
		setOption(cfg, "format", "minimize", true)
	}
	opts, err := tablefmt.OptionsFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	f := &formatter{
		opts:        opts,
		fingerprint: fingerprint(cfg, version.Version),
		write:       *write || *watchMode,
		list:        *list,
		diff:        *diff,
		stdout:      stdout,
		stderr:      stderr,
	}
	if out, ok := stdout.(*os.File); ok {
		f.color = diffview.ShouldColor(out)
	}

	if *fromStdin {
		if *write || *watchMode {
			return errors.New("-w and -watch cannot be used with -stdin")
		}
		return f.stdin(stdin)
	}

	roots := fs.Args()
	if len(roots) == 0 {
		fs.Usage()
		return errors.New("no input files (use -stdin to read standard input)")
	}

	if !*noCache && cfg.GetBool("cache", "enabled", true) && (f.write || f.list || f.diff) {
		f.cache = openCache(cfg)
		if f.cache != nil {
			defer f.cache.Close()
		}
	}

	fileOpts := fileset.Options{
		Extensions: cfg.GetStringSlice("files", "extensions", []string{".sftext"}),
		SkipVendor: cfg.GetBool("files", "skip_vendor", true),
	}
	failed := false
	seen := make(map[string]bool)
	for _, root := range roots {
		files, err := fileset.Collect([]string{root}, fileOpts)
		if err != nil {
			fmt.Fprintln(stderr, err)
			failed = true
			continue
		}
		for _, path := range files {
			if seen[path] {
				continue
			}
			seen[path] = true
			if err := f.file(path); err != nil {
				fmt.Fprintln(stderr, err)
				failed = true
			}
		}
	}

	if *watchMode {
		debounce := time.Duration(cfg.GetInt("watch", "debounce_ms", 200)) * time.Millisecond
		if err := f.watch(roots, fileOpts, debounce); err != nil {
			return err
		}
	}
	if failed {
		return errFilesFailed
	}
	return nil
}

// setOption overrides a single config value from a command-line flag.
func setOption(cfg config.Config, section, key string, value interface{}) {
	s := cfg.Section(section)
	if s == nil {
		s = make(config.Section)
		cfg[section] = s
	}
	s[key] = value
}

// saveSystem applies flag overrides to the user config file. The result
// must still produce valid options.
func saveSystem(classifier string, minimize bool) error {
	cfg := config.Clone(config.System())
	if classifier != "" {
		setOption(cfg, "width", "classifier", classifier)
	}
	if minimize {
		setOption(cfg, "format", "minimize", true)
	}
	if _, err := tablefmt.OptionsFromConfig(cfg); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	config.SetSystem(cfg)
	if err := config.SaveSystem(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	log.Printf("Config: Saved system config")
	return nil
}

// fingerprint identifies the formatting-relevant configuration and the
// formatter release, so cached results are discarded when either changes.
func fingerprint(cfg config.Config, release string) string {
	data, err := json.Marshal(map[string]interface{}{
		"format":  cfg.Section("format"),
		"width":   cfg.Section("width"),
		"version": release,
	})
	if err != nil {
		return ""
	}
	return cache.Digest(data)
}

func openCache(cfg config.Config) *cache.Cache {
	path := cfg.GetString("cache", "path", "")
	if path == "" {
		p, err := config.CachePath()
		if err != nil {
			log.Printf("[CACHE] Disabled: %v", err)
			return nil
		}
		path = p
	}
	c, err := cache.Open(path)
	if err != nil {
		log.Printf("[CACHE] Disabled: %v", err)
		return nil
	}
	log.Printf("[CACHE] Using %s", path)
	return c
}

func (f *formatter) stdin(r io.Reader) error {
	in, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	out, changed, err := tablefmt.FormatText(string(in), f.opts)
	if err != nil {
		return err
	}
	switch {
	case f.list:
		if changed {
			fmt.Fprintln(f.stdout, "<standard input>")
		}
		return nil
	case f.diff:
		return f.printDiff("<standard input>", string(in))
	}
	_, err = io.WriteString(f.stdout, out)
	return err
}

// file formats one file according to the selected output mode.
func (f *formatter) file(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	// Printing the formatted text needs it even when the file is clean.
	cacheable := f.cache != nil && (f.write || f.list || f.diff)
	if cacheable {
		hit, err := f.cache.IsFormatted(path, data, f.fingerprint)
		if err != nil {
			log.Printf("[CACHE] Lookup %s: %v", path, err)
		} else if hit {
			log.Printf("[CACHE] %s unchanged, skipping", path)
			return nil
		}
	}

	out, changed, err := tablefmt.FormatText(string(data), f.opts)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if !f.write && !f.list && !f.diff {
		_, err := io.WriteString(f.stdout, out)
		return err
	}

	if changed && f.list {
		fmt.Fprintln(f.stdout, path)
	}
	if changed && f.diff {
		if err := f.printDiff(path, string(data)); err != nil {
			return err
		}
	}
	if changed && f.write {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(out), info.Mode().Perm()); err != nil {
			return err
		}
		log.Printf("[FORMAT] Rewrote %s", path)
	}

	switch {
	case cacheable && (!changed || f.write):
		if err := f.cache.Record(path, []byte(out), f.fingerprint); err != nil {
			log.Printf("[CACHE] Record %s: %v", path, err)
		}
	case cacheable:
		// The file no longer matches what was recorded.
		if err := f.cache.Forget(path); err != nil {
			log.Printf("[CACHE] Forget %s: %v", path, err)
		}
	}
	return nil
}

func (f *formatter) printDiff(name, text string) error {
	lines, _, _ := tablefmt.SplitText(text)
	edits, err := tablefmt.Format(lines, f.opts)
	if err != nil {
		return err
	}
	return diffview.Write(f.stdout, diffview.Unified(name, lines, edits), f.color, "")
}

// watch reformats changed files in place until interrupted.
func (f *formatter) watch(roots []string, fileOpts fileset.Options, debounce time.Duration) error {
	w, err := watch.New(roots, fileOpts.Match, debounce)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("[WATCH] Watching %d root(s)", len(roots))
	return w.Run(ctx, func(path string) {
		if err := f.file(path); err != nil {
			fmt.Fprintln(f.stderr, err)
		}
	})
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/thinglang/thing/thing"
)

const sourceExt = ".thing"

func fmtCommand(args []string) error {
	flags := flag.NewFlagSet("fmt", flag.ContinueOnError)
	flags.SetOutput(new(flagErrorSink))
	write := flags.Bool("w", false, "write result to source files instead of stdout")
	check := flags.Bool("check", false, "fail if any source file needs formatting")
	common := registerCommonFlags(flags)
	if err := flags.Parse(args); err != nil {
		return err
	}

	targets := flags.Args()
	if len(targets) == 0 {
		return errors.New("thing fmt: path required")
	}
	cfg, logger, err := common.resolve()
	if err != nil {
		return err
	}

	files, err := collectSourceFiles(targets)
	if err != nil {
		return err
	}

	changedCount := 0
	for _, path := range files {
		original, err := readSource(path, logger)
		if err != nil {
			return err
		}
		script, err := parseSource(original, cfg, logger)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		formatted := thing.Print(script)
		changed := formatted != original
		if changed {
			changedCount++
		}

		switch {
		case *write && changed:
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("stat %s: %w", path, err)
			}
			if err := os.WriteFile(path, []byte(formatted), info.Mode().Perm()); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
		case *check && changed:
			fmt.Println(path)
		case !*write && !*check:
			fmt.Print(formatted)
		}
	}

	if *check && changedCount > 0 {
		return fmt.Errorf("thing fmt: %d file(s) need formatting", changedCount)
	}
	return nil
}

// collectSourceFiles expands directories to the .thing files beneath them.
// Files named explicitly are kept whatever their extension.
func collectSourceFiles(targets []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	addFile := func(path string) error {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", path, err)
		}
		if _, ok := seen[abs]; ok {
			return nil
		}
		seen[abs] = struct{}{}
		files = append(files, abs)
		return nil
	}

	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", target, err)
		}
		if !info.IsDir() {
			if err := addFile(target); err != nil {
				return nil, err
			}
			continue
		}
		err = filepath.WalkDir(target, func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if entry.IsDir() || filepath.Ext(path) != sourceExt {
				return nil
			}
			return addFile(path)
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", target, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

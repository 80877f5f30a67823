//go:build mage

// Package main contains Mage build targets for weather-extractor developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"

	"github.com/pdiddy/weather-extractor/internal/source"
	"github.com/pdiddy/weather-extractor/internal/weather"
)

// projectDirs lists the working directories the CLI expects.
var projectDirs = []string{
	".weather-extractor",
	"samples",
}

// Init creates the history and sample directories.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "weather-extractor"
	cmdPkg  = "./cmd/weather-extractor"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	ldflags := "-X main.version=" + versionString()
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// versionString returns the git description of HEAD, or "dev" outside a
// repository.
func versionString() string {
	v, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || v == "" {
		return "dev"
	}
	return v
}

// Extract builds the CLI and analyzes every .txt file under samples/.
func Extract() error {
	mg.Deps(Build)

	files, err := filepath.Glob(filepath.Join("samples", "*.txt"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("No samples/*.txt files to analyze.")
		return nil
	}
	bin := filepath.Join(binDir, binName)
	for _, f := range files {
		if err := sh.RunV(bin, "extract", "--file", f); err != nil {
			return fmt.Errorf("extracting %s: %w", f, err)
		}
	}
	return nil
}

// Stats prints project metrics: Go production/test LOC and the weather
// mentions found in samples/.
func Stats() error {
	prodLines, err := countGoLines(".", false)
	if err != nil {
		return err
	}
	testLines, err := countGoLines(".", true)
	if err != nil {
		return err
	}
	files, mentions, err := countSampleMentions("samples")
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	fmt.Printf("Weather mentions (samples):     %d in %d files\n", mentions, files)
	return nil
}

// countGoLines walks the directory tree and counts non-blank lines in Go files.
// If testOnly is true, count only _test.go files; otherwise count non-test .go files.
// Directories starting with "_" or "." are skipped, as the go tool does.
func countGoLines(root string, testOnly bool) (int, error) {
	total := 0
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			name := info.Name()
			if path != root && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		isTest := strings.HasSuffix(path, "_test.go")
		if testOnly != isTest {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			if strings.TrimSpace(line) != "" {
				total++
			}
		}
		return nil
	})
	return total, err
}

// countSampleMentions runs the extractor over every .txt file in root.
func countSampleMentions(root string) (files, mentions int, err error) {
	paths, err := filepath.Glob(filepath.Join(root, "*.txt"))
	if err != nil {
		return 0, 0, err
	}
	extractor := weather.New()
	for _, p := range paths {
		records, err := extractor.AnalyzeFile(p, source.DefaultEncoding)
		if err != nil {
			return files, mentions, err
		}
		files++
		mentions += len(records)
	}
	return files, mentions, nil
}

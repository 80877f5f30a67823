// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package interactive runs the menu-driven analysis session: enter text by
// hand, analyze a file, or exit.
package interactive

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/weather-extractor/internal/report"
	"github.com/pdiddy/weather-extractor/internal/source"
	"github.com/pdiddy/weather-extractor/internal/weather"
	"github.com/pdiddy/weather-extractor/pkg/types"
)

const maxLineSize = 1 << 20

// Recorder stores the outcome of an analysis.
type Recorder interface {
	Save(ctx context.Context, source string, records []types.WeatherRecord) (int64, error)
}

// Session reads menu choices from in and writes prompts and reports to out.
type Session struct {
	in        *bufio.Scanner
	out       io.Writer
	extractor *weather.Extractor
	encoding  string
	recorder  Recorder
	log       *zap.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithEncoding sets the encoding used to read files.
func WithEncoding(name string) Option {
	return func(s *Session) { s.encoding = name }
}

// WithRecorder saves every analysis to r.
func WithRecorder(r Recorder) Option {
	return func(s *Session) { s.recorder = r }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.log = l }
}

// New returns a Session using the given extractor.
func New(in io.Reader, out io.Writer, extractor *weather.Extractor, opts ...Option) *Session {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	s := &Session{
		in:        scanner,
		out:       out,
		extractor: extractor,
		encoding:  source.DefaultEncoding,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run shows the menu until the user exits, input ends, or ctx is done.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "=== Weather data analyzer ===")
	fmt.Fprintln(s.out, "1. Enter text manually")
	fmt.Fprintln(s.out, "2. Load from file")
	fmt.Fprintln(s.out, "3. Exit")

	for {
		if ctx.Err() != nil {
			fmt.Fprintln(s.out, "\nExiting.")
			return nil
		}

		choice, ok := s.prompt("\nChoose an option (1-3): ")
		if !ok {
			fmt.Fprintln(s.out, "\nExiting.")
			return s.in.Err()
		}

		var err error
		switch strings.TrimSpace(choice) {
		case "1":
			err = s.manualInput(ctx)
		case "2":
			err = s.fileInput(ctx)
		case "3":
			fmt.Fprintln(s.out, "Exiting.")
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid choice. Try again.")
		}
		if err != nil {
			fmt.Fprintf(s.out, "An error occurred: %v\n", err)
		}
	}
}

// prompt writes msg and reads one line. It returns false at end of input.
func (s *Session) prompt(msg string) (string, bool) {
	fmt.Fprint(s.out, msg)
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}

func (s *Session) manualInput(ctx context.Context) error {
	fmt.Fprintln(s.out, "\n--- Manual input ---")
	text, ok := s.prompt("Enter text with weather data: ")
	if !ok {
		return nil
	}
	if strings.TrimSpace(text) == "" {
		fmt.Fprintln(s.out, "Text must not be empty.")
		return nil
	}

	records := s.extractor.ExtractAll(text)
	s.log.Debug("analyzed manual input", zap.Int("records", len(records)))
	s.record(ctx, "<manual>", records)
	return report.Write(s.out, report.FormatText, "", records)
}

func (s *Session) fileInput(ctx context.Context) error {
	fmt.Fprintln(s.out, "\n--- Load from file ---")
	name, ok := s.prompt("Enter file name: ")
	if !ok {
		return nil
	}
	name = strings.TrimSpace(name)
	if name == "" {
		fmt.Fprintln(s.out, "File name must not be empty.")
		return nil
	}

	records, err := s.extractor.AnalyzeFile(name, s.encoding)
	switch {
	case errors.Is(err, source.ErrNotFound):
		fmt.Fprintf(s.out, "File %s not found.\n", name)
	case err != nil:
		fmt.Fprintf(s.out, "Error reading file: %v\n", err)
	}
	if err != nil {
		s.log.Warn("file analysis failed", zap.String("file", name), zap.Error(err))
	} else {
		s.record(ctx, name, records)
	}
	return report.Write(s.out, report.FormatText, name, records)
}

func (s *Session) record(ctx context.Context, src string, records []types.WeatherRecord) {
	if s.recorder == nil {
		return
	}
	id, err := s.recorder.Save(ctx, src, records)
	if err != nil {
		s.log.Warn("saving history failed", zap.String("source", src), zap.Error(err))
		return
	}
	s.log.Debug("saved history", zap.Int64("analysis_id", id), zap.String("source", src))
}

// Package scan walks a source tree and runs detector plugins over every
// line, feeding survivors of the filter chain into a baseline collection.
package scan

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/stillwater-labs/secretsift/pkg/baseline"
	"github.com/stillwater-labs/secretsift/pkg/detect"
	"github.com/stillwater-labs/secretsift/pkg/filter"
)

// Options configures a scan.
type Options struct {
	Root      string
	AllFiles  bool
	Workers   int
	Detectors []detect.Detector
	Filters   []filter.Filter
	Excludes  *filter.FileExcludes
	Logger    *slog.Logger
}

// Stats summarizes a completed scan.
type Stats struct {
	FilesScanned int
	SecretsFound int
	Elapsed      time.Duration
}

// Scanner runs scans with a fixed option set.
type Scanner struct {
	opts Options
}

// New creates a Scanner. Zero worker count defaults to GOMAXPROCS.
func New(opts Options) (*Scanner, error) {
	if opts.Root == "" {
		opts.Root = "."
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if len(opts.Detectors) == 0 {
		return nil, fmt.Errorf("no detectors configured")
	}
	return &Scanner{opts: opts}, nil
}

// Scan walks the tree and returns all findings.
func (s *Scanner) Scan(ctx context.Context) (*baseline.Collection, Stats, error) {
	start := time.Now()

	files, err := listFiles(s.opts.Root, s.opts.AllFiles, s.opts.Excludes)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("failed to list files: %w", err)
	}
	s.opts.Logger.Debug("scanning", "files", len(files), "workers", s.opts.Workers)

	results := make(chan *baseline.PotentialSecret, 256)
	paths := make(chan string)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < s.opts.Workers; i++ {
		g.Go(func() error {
			for path := range paths {
				if err := s.scanFile(path, results); err != nil {
					s.opts.Logger.Warn("skipping file", "path", path, "error", err)
				}
				if err := gctx.Err(); err != nil {
					return err
				}
			}
			return nil
		})
	}

	go func() {
		defer close(paths)
		for _, path := range files {
			select {
			case paths <- path:
			case <-gctx.Done():
				return
			}
		}
	}()

	collection := baseline.NewCollection()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for secret := range results {
			collection.Add(secret)
		}
	}()

	err = g.Wait()
	close(results)
	<-done
	if err != nil {
		return nil, Stats{}, err
	}

	stats := Stats{
		FilesScanned: len(files),
		SecretsFound: collection.Len(),
		Elapsed:      time.Since(start),
	}
	return collection, stats, nil
}

func (s *Scanner) scanFile(path string, results chan<- *baseline.PotentialSecret) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	sniff := make([]byte, 8192)
	n, err := f.Read(sniff)
	if err != nil && n == 0 {
		return nil // empty or unreadable
	}
	if isBinary(sniff[:n]) {
		return nil
	}
	if _, err := f.Seek(0, 0); err != nil {
		return err
	}

	relPath := relativeTo(s.opts.Root, path)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	var prevLine string
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		text := scanner.Text()
		line := detect.Line{Filename: relPath, Number: lineNumber, Text: text}

		for _, d := range s.opts.Detectors {
			for _, candidate := range d.Analyze(line) {
				if s.excluded(candidate, relPath, text, prevLine) {
					continue
				}
				results <- baseline.NewPotentialSecret(candidate.Type, relPath, candidate.Raw, lineNumber)
			}
		}
		prevLine = text
	}
	return scanner.Err()
}

func (s *Scanner) excluded(candidate detect.Candidate, filename, line, prevLine string) bool {
	ctx := filter.Context{
		Candidate: candidate,
		Filename:  filename,
		Line:      line,
		PrevLine:  prevLine,
	}
	for _, f := range s.opts.Filters {
		if f.ShouldExclude(ctx) {
			return true
		}
	}
	return false
}

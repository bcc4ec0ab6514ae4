package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ehiller1/dementia/internal/analyze"
	"github.com/ehiller1/dementia/internal/model"
)

// TranscriptAnalyzer defines the interface for analyzing one transcript
type TranscriptAnalyzer interface {
	Analyze(req analyze.Request) (*model.TrainingReport, error)
}

// AnalyzeJob represents one transcript-file analysis job
type AnalyzeJob struct {
	Path     string
	Request  analyze.Request
	Analyzer TranscriptAnalyzer
}

// Execute reads the transcript file and runs the analysis
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return &AnalyzeResult{Path: j.Path, Error: err}
	}

	data, err := os.ReadFile(j.Path)
	if err != nil {
		return &AnalyzeResult{Path: j.Path, Error: fmt.Errorf("read transcript: %w", err)}
	}

	req := j.Request
	req.Transcript = string(data)

	report, err := j.Analyzer.Analyze(req)
	if err != nil {
		return &AnalyzeResult{Path: j.Path, Error: err}
	}

	return &AnalyzeResult{Path: j.Path, Report: report}
}

// AnalyzeResult represents the result of one transcript analysis job
type AnalyzeResult struct {
	Path   string
	Report *model.TrainingReport
	Error  error
}

// GetError returns the error from the analysis result
func (r *AnalyzeResult) GetError() error {
	return r.Error
}

// BatchProcessor analyzes multiple transcript files concurrently
type BatchProcessor struct {
	analyzer    TranscriptAnalyzer
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(analyzer TranscriptAnalyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// ProcessFiles analyzes the given transcript files concurrently. The
// request's names and stage apply to every file; transcripts are read
// per job. Results come back in completion order, keyed by path.
func (b *BatchProcessor) ProcessFiles(ctx context.Context, files []string, req analyze.Request) []*AnalyzeResult {
	if len(files) == 0 {
		return []*AnalyzeResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, path := range files {
		if ctx.Err() != nil {
			break
		}
		pool.Submit(&AnalyzeJob{
			Path:     path,
			Request:  req,
			Analyzer: b.analyzer,
		})
	}

	results := pool.Wait()

	analyzeResults := make([]*AnalyzeResult, len(results))
	for i, result := range results {
		analyzeResults[i] = result.(*AnalyzeResult)
	}

	return analyzeResults
}

// ProcessDir analyzes every transcript file in a directory
func (b *BatchProcessor) ProcessDir(ctx context.Context, dir string, req analyze.Request) ([]*AnalyzeResult, error) {
	files, err := ListTranscriptFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("list transcripts: %w", err)
	}

	return b.ProcessFiles(ctx, files, req), nil
}

// ListTranscriptFiles returns the transcript files (.txt, .html) in a
// directory, sorted by name
func ListTranscriptFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".txt", ".html", ".htm":
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}

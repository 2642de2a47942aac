package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ndexbio/indranet/internal/model"
)

// NetworkInput identifies one network to annotate: a local CX file or a
// network stored on an NDEx server.
type NetworkInput struct {
	ID   string // file base name or UUID, used for caching and output naming
	Path string // set for a local CX file
	UUID string // set for a server-side network
}

// ReadInputs resolves the annotate command's input argument: a path
// ending in .cx names a single network, anything else is read as a text
// file of NDEx network UUIDs, one per line.
func ReadInputs(input string) ([]NetworkInput, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("input must be a CX file or a file of network UUIDs, got directory %s", input)
	}

	if strings.HasSuffix(strings.ToLower(input), ".cx") {
		return []NetworkInput{{ID: filepath.Base(input), Path: input}}, nil
	}

	file, err := os.Open(input)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer func() { _ = file.Close() }()

	var inputs []NetworkInput
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// An NDEx UUID is 36 characters; shorter lines are noise.
		if len(line) < 36 || seen[line] {
			continue
		}
		seen[line] = true
		inputs = append(inputs, NetworkInput{ID: line, UUID: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan input: %w", err)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no network UUIDs found in %s", input)
	}
	return inputs, nil
}

// RunFunc annotates one network input end to end.
type RunFunc func(ctx context.Context, input NetworkInput) *AnnotateResult

// AnnotateResult is the per-network outcome of a batch run.
type AnnotateResult struct {
	Input     NetworkInput
	Summary   *model.AnnotationSummary
	SavedPath string // local CX output, when saving to disk
	SavedUUID string // server-side UUID, when saving to NDEx
	Error     error
}

// Err satisfies the pool Result interface.
func (r *AnnotateResult) Err() error { return r.Error }

// AnnotateJob runs one network through the annotation closure.
type AnnotateJob struct {
	Input NetworkInput
	Run   RunFunc
}

// Execute satisfies the pool Job interface.
func (j *AnnotateJob) Execute(ctx context.Context) Result {
	return j.Run(ctx, j.Input)
}

// ProcessInputs annotates every input with bounded concurrency and
// returns per-network results in input order.
func ProcessInputs(ctx context.Context, inputs []NetworkInput, workers int, run RunFunc) []*AnnotateResult {
	jobs := make([]Job, len(inputs))
	for i, input := range inputs {
		jobs[i] = &AnnotateJob{Input: input, Run: run}
	}
	results := NewPool(workers).Run(ctx, jobs)

	out := make([]*AnnotateResult, len(results))
	for i, r := range results {
		if ar, ok := r.(*AnnotateResult); ok {
			out[i] = ar
			continue
		}
		out[i] = &AnnotateResult{Input: inputs[i], Error: r.Err()}
	}
	return out
}

package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ndexbio/indranet/internal/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestReadInputs_CXFile(t *testing.T) {
	path := writeFile(t, "network.cx", "[]")

	inputs, err := ReadInputs(path)
	if err != nil {
		t.Fatalf("ReadInputs failed: %v", err)
	}

	if len(inputs) != 1 {
		t.Fatalf("expected 1 input, got %d", len(inputs))
	}
	if inputs[0].ID != "network.cx" || inputs[0].Path != path || inputs[0].UUID != "" {
		t.Errorf("unexpected input: %+v", inputs[0])
	}
}

func TestReadInputs_UUIDList(t *testing.T) {
	content := `# networks to annotate
f905b0f9-c0cd-11eb-9e72-0ac135e8bacf

f905b0f9-c0cd-11eb-9e72-0ac135e8bacf
short-line
0ec3e0c4-c0cd-11eb-9e72-0ac135e8bacf
`
	path := writeFile(t, "uuids.txt", content)

	inputs, err := ReadInputs(path)
	if err != nil {
		t.Fatalf("ReadInputs failed: %v", err)
	}

	if len(inputs) != 2 {
		t.Fatalf("expected 2 inputs (comments, blanks, noise, dupes skipped), got %d", len(inputs))
	}
	if inputs[0].UUID != "f905b0f9-c0cd-11eb-9e72-0ac135e8bacf" {
		t.Errorf("unexpected first UUID: %s", inputs[0].UUID)
	}
	if inputs[1].UUID != "0ec3e0c4-c0cd-11eb-9e72-0ac135e8bacf" {
		t.Errorf("unexpected second UUID: %s", inputs[1].UUID)
	}
}

func TestReadInputs_EmptyList(t *testing.T) {
	path := writeFile(t, "uuids.txt", "# nothing here\n")

	if _, err := ReadInputs(path); err == nil {
		t.Error("expected error for a list with no UUIDs")
	}
}

func TestReadInputs_MissingFile(t *testing.T) {
	if _, err := ReadInputs(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReadInputs_Directory(t *testing.T) {
	if _, err := ReadInputs(t.TempDir()); err == nil {
		t.Error("expected error for directory input")
	}
}

func TestProcessInputs(t *testing.T) {
	inputs := []NetworkInput{
		{ID: "a.cx", Path: "/tmp/a.cx"},
		{ID: "b.cx", Path: "/tmp/b.cx"},
	}

	boom := errors.New("download failed")
	run := func(ctx context.Context, input NetworkInput) *AnnotateResult {
		if input.ID == "b.cx" {
			return &AnnotateResult{Input: input, Error: boom}
		}
		return &AnnotateResult{
			Input:   input,
			Summary: &model.AnnotationSummary{EdgesAdded: 3},
		}
	}

	results := ProcessInputs(context.Background(), inputs, 2, run)

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Err() != nil || results[0].Summary.EdgesAdded != 3 {
		t.Errorf("unexpected first result: %+v", results[0])
	}
	if !errors.Is(results[1].Err(), boom) {
		t.Errorf("expected second result's error, got %v", results[1].Err())
	}
	if results[0].Input.ID != "a.cx" || results[1].Input.ID != "b.cx" {
		t.Error("results out of input order")
	}
}

func TestProcessInputs_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inputs := []NetworkInput{{ID: "a.cx"}}
	results := ProcessInputs(ctx, inputs, 1, func(ctx context.Context, input NetworkInput) *AnnotateResult {
		return &AnnotateResult{Input: input}
	})

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Err() == nil {
		t.Error("expected cancellation error")
	}
	if results[0].Input.ID != "a.cx" {
		t.Errorf("cancelled result should keep its input, got %+v", results[0].Input)
	}
}

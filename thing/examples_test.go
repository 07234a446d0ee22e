package thing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestExamples runs every testdata/*.thing script and compares the echoed
// values, plus the first line of any error, against the matching .out file.
func TestExamples(t *testing.T) {
	scripts, err := filepath.Glob(filepath.Join("testdata", "*.thing"))
	if err != nil {
		t.Fatalf("glob examples: %v", err)
	}
	if len(scripts) == 0 {
		t.Fatalf("no example scripts found")
	}

	for _, path := range scripts {
		name := strings.TrimSuffix(filepath.Base(path), ".thing")
		t.Run(name, func(t *testing.T) {
			source, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read script: %v", err)
			}
			want, err := os.ReadFile(strings.TrimSuffix(path, ".thing") + ".out")
			if err != nil {
				t.Fatalf("read expected output: %v", err)
			}

			var lines []string
			script, err := Parse(string(source))
			if err == nil {
				interp := NewInterpreter(Config{Echo: func(v Value) { lines = append(lines, v.String()) }})
				err = interp.Interpret(script)
			}
			if err != nil {
				first, _, _ := strings.Cut(err.Error(), "\n")
				lines = append(lines, first)
			}

			got := strings.Join(lines, "\n") + "\n"
			if diff := cmp.Diff(string(want), got); diff != "" {
				t.Fatalf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

package words

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestList(t *testing.T, content string) *FileList {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wordlist.txt")
	if content != "" {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write list: %v", err)
		}
	}
	return NewFileList(path)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(b)
}

func TestLoadNormalizes(t *testing.T) {
	l := newTestList(t, "crane\n  Slate \n\nTOOLONG\nab1de\ntrace\n")
	got, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"CRANE", "SLATE", "TRACE"}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	l := newTestList(t, "")
	if _, err := l.Load(context.Background()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestAppend(t *testing.T) {
	ctx := context.Background()
	l := newTestList(t, "crane\nslate\n")

	added, err := l.Append(ctx, "Trace")
	if err != nil || !added {
		t.Fatalf("append: added=%v err=%v", added, err)
	}
	added, err = l.Append(ctx, "SLATE")
	if err != nil || added {
		t.Fatalf("duplicate append: added=%v err=%v", added, err)
	}
	if got := readFile(t, l.Path()); got != "crane\nslate\ntrace\n" {
		t.Errorf("file = %q", got)
	}
	if _, err := l.Append(ctx, "nope"); !errors.Is(err, ErrInvalidWord) {
		t.Errorf("expected ErrInvalidWord, got %v", err)
	}
}

func TestAppendCreatesFile(t *testing.T) {
	l := NewFileList(filepath.Join(t.TempDir(), "data", "wordlist.txt"))
	if _, err := l.Append(context.Background(), "crane"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if got := readFile(t, l.Path()); got != "crane\n" {
		t.Errorf("file = %q", got)
	}
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	l := newTestList(t, "crane\nxxxxx\nslate\nXXXXX\n")

	removed, err := l.Remove(ctx, "xxxxx")
	if err != nil || !removed {
		t.Fatalf("remove: removed=%v err=%v", removed, err)
	}
	if got := readFile(t, l.Path()); got != "crane\nslate\n" {
		t.Errorf("file = %q", got)
	}
	removed, err = l.Remove(ctx, "xxxxx")
	if err != nil || removed {
		t.Errorf("second remove: removed=%v err=%v", removed, err)
	}
}

func TestRemoveMissingFile(t *testing.T) {
	l := newTestList(t, "")
	removed, err := l.Remove(context.Background(), "crane")
	if err != nil || removed {
		t.Errorf("removed=%v err=%v", removed, err)
	}
}

func TestSeed(t *testing.T) {
	l := newTestList(t, "")
	created, err := l.Seed([]string{"CRANE", "bad", "slate"})
	if err != nil || !created {
		t.Fatalf("seed: created=%v err=%v", created, err)
	}
	if got := readFile(t, l.Path()); got != "crane\nslate\n" {
		t.Errorf("file = %q", got)
	}
	created, err = l.Seed([]string{"TRACE"})
	if err != nil || created {
		t.Errorf("second seed should be a no-op: created=%v err=%v", created, err)
	}
}

func TestConcurrentAppend(t *testing.T) {
	ctx := context.Background()
	l := newTestList(t, "crane\n")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w := fmt.Sprintf("AB%c%cZ", 'A'+i/26, 'A'+i%26)
			if _, err := l.Append(ctx, w); err != nil {
				t.Errorf("append %s: %v", w, err)
			}
		}(i)
	}
	wg.Wait()

	got, err := l.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 21 {
		t.Errorf("expected 21 words, got %d: %s", len(got), strings.Join(got, ","))
	}
}

func TestDefaults(t *testing.T) {
	ws, err := Defaults()
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	as, err := Answers()
	if err != nil {
		t.Fatalf("answers: %v", err)
	}
	if len(ws) == 0 || len(as) == 0 {
		t.Fatalf("empty embedded lists: %d words, %d answers", len(ws), len(as))
	}
	for _, w := range append(ws, as...) {
		if _, ok := Normalize(w); !ok {
			t.Errorf("embedded word %q is not normalized", w)
		}
		if !IsAllowed(w) {
			t.Errorf("embedded word %q should be allowed", w)
		}
	}
	if IsAllowed("QQQQQ") {
		t.Error("QQQQQ should not be allowed")
	}
	for _, o := range []string{"SLATE", "BRICK", "JUMPY", "VOZHD", "FUNGI", "WRECK"} {
		if !IsAllowed(o) {
			t.Errorf("opener %s missing from defaults", o)
		}
	}
}

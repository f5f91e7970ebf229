package document

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestNew(t *testing.T) {
	d := New()

	if !d.IsEmpty() {
		t.Error("new document should be empty")
	}

	if d.Len() != 0 {
		t.Errorf("expected length 0, got %d", d.Len())
	}

	if d.Version() != 0 {
		t.Errorf("expected version 0, got %d", d.Version())
	}
}

func TestNewFromString(t *testing.T) {
	text := "Hello, World!"
	d := NewFromString(text)

	if d.Text() != text {
		t.Errorf("expected %q, got %q", text, d.Text())
	}

	if d.Len() != len(text) {
		t.Errorf("expected length %d, got %d", len(text), d.Len())
	}
}

func TestNewFromReader(t *testing.T) {
	d, err := NewFromReader(strings.NewReader("abc def"))
	if err != nil {
		t.Fatalf("NewFromReader failed: %v", err)
	}
	if d.Text() != "abc def" {
		t.Errorf("expected 'abc def', got %q", d.Text())
	}
}

func TestApplyEditInsert(t *testing.T) {
	d := NewFromString("Helo wrold")

	res, err := d.ApplyEdit(NewInsert(3, "l"))
	if err != nil {
		t.Fatalf("ApplyEdit failed: %v", err)
	}

	if d.Text() != "Hello wrold" {
		t.Errorf("expected 'Hello wrold', got %q", d.Text())
	}

	if res.Delta != 1 {
		t.Errorf("expected delta 1, got %d", res.Delta)
	}

	if res.NewRange != (Range{Start: 3, End: 4}) {
		t.Errorf("unexpected NewRange %v", res.NewRange)
	}

	if d.Version() != 1 {
		t.Errorf("expected version 1, got %d", d.Version())
	}
}

func TestApplyEditDelete(t *testing.T) {
	d := NewFromString("good bye")

	res, err := d.ApplyEdit(NewDelete(4, 5))
	if err != nil {
		t.Fatalf("ApplyEdit failed: %v", err)
	}

	if d.Text() != "goodbye" {
		t.Errorf("expected 'goodbye', got %q", d.Text())
	}

	if res.OldText != " " {
		t.Errorf("expected old text ' ', got %q", res.OldText)
	}

	if res.Delta != -1 {
		t.Errorf("expected delta -1, got %d", res.Delta)
	}
}

func TestApplyEditReplace(t *testing.T) {
	d := NewFromString("Hello World")

	_, err := d.ApplyEdit(NewReplace(6, 11, "Go"))
	if err != nil {
		t.Fatalf("ApplyEdit failed: %v", err)
	}

	if d.Text() != "Hello Go" {
		t.Errorf("expected 'Hello Go', got %q", d.Text())
	}
}

func TestApplyEditNoOp(t *testing.T) {
	d := NewFromString("Hello")

	res, err := d.ApplyEdit(Edit{Range: Range{Start: 2, End: 2}})
	if err != nil {
		t.Fatalf("ApplyEdit failed: %v", err)
	}

	if res.Delta != 0 {
		t.Errorf("expected delta 0, got %d", res.Delta)
	}

	if d.Version() != 0 {
		t.Errorf("no-op edit should not advance version, got %d", d.Version())
	}
}

func TestApplyEditInvalidRange(t *testing.T) {
	d := NewFromString("Hello")

	tests := []struct {
		name string
		edit Edit
	}{
		{"negative start", NewDelete(-1, 2)},
		{"start after end", Edit{Range: Range{Start: 4, End: 2}}},
		{"end past length", NewDelete(0, 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := d.ApplyEdit(tt.edit); !errors.Is(err, ErrRangeInvalid) {
				t.Errorf("expected ErrRangeInvalid, got %v", err)
			}
		})
	}
}

func TestSetText(t *testing.T) {
	d := NewFromString("old")

	v, err := d.SetText("new content")
	if err != nil {
		t.Fatalf("SetText failed: %v", err)
	}

	if v != 1 {
		t.Errorf("expected version 1, got %d", v)
	}

	if d.Text() != "new content" {
		t.Errorf("expected 'new content', got %q", d.Text())
	}
}

func TestClose(t *testing.T) {
	d := NewFromString("text")
	d.Close()

	if !d.IsClosed() {
		t.Error("document should be closed")
	}

	if _, err := d.ApplyEdit(NewInsert(0, "x")); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}

	// Reads remain valid after close
	if d.Text() != "text" {
		t.Errorf("expected 'text', got %q", d.Text())
	}
}

func TestSnapshotIsolation(t *testing.T) {
	d := NewFromString("before")
	snap := d.Snapshot()

	if _, err := d.ApplyEdit(NewReplace(0, 6, "after")); err != nil {
		t.Fatalf("ApplyEdit failed: %v", err)
	}

	if snap.Text() != "before" {
		t.Errorf("snapshot should be isolated, got %q", snap.Text())
	}

	if snap.Version() != 0 {
		t.Errorf("expected snapshot version 0, got %d", snap.Version())
	}

	if d.Snapshot().Text() != "after" {
		t.Errorf("new snapshot should see edit")
	}
}

func TestSnapshotTextRangeClamped(t *testing.T) {
	snap := NewSnapshot("hello", 0)

	if got := snap.TextRange(-3, 100); got != "hello" {
		t.Errorf("expected clamped 'hello', got %q", got)
	}

	if got := snap.TextRange(1, 3); got != "el" {
		t.Errorf("expected 'el', got %q", got)
	}
}

func TestConcurrentAccess(t *testing.T) {
	d := NewFromString(strings.Repeat("word ", 100))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_, _ = d.ApplyEdit(NewInsert(0, "x"))
				_ = d.Snapshot().Text()
				_ = d.Version()
			}
		}()
	}
	wg.Wait()

	if d.Len() != 500+8*50 {
		t.Errorf("expected length %d, got %d", 500+8*50, d.Len())
	}

	if d.Version() != 8*50 {
		t.Errorf("expected version %d, got %d", 8*50, d.Version())
	}
}

func TestRangeOperations(t *testing.T) {
	a := NewRange(2, 6)

	if !a.Overlaps(NewRange(5, 9)) {
		t.Error("[2:6) should overlap [5:9)")
	}

	if a.Overlaps(NewRange(6, 9)) {
		t.Error("[2:6) should not overlap [6:9)")
	}

	if got := a.Intersect(NewRange(4, 10)); got != NewRange(4, 6) {
		t.Errorf("expected [4:6), got %v", got)
	}

	if got := a.Union(NewRange(8, 10)); got != NewRange(2, 10) {
		t.Errorf("expected [2:10), got %v", got)
	}

	if got := a.Shift(3); got != NewRange(5, 9) {
		t.Errorf("expected [5:9), got %v", got)
	}

	if got := NewRange(-2, 50).Clamp(10); got != NewRange(0, 10) {
		t.Errorf("expected [0:10), got %v", got)
	}
}

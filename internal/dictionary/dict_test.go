package dictionary

import (
	"os"
	"reflect"
	"strings"
	"testing"
)

func TestDictBasics(t *testing.T) {
	d := NewDict("hello", "world")

	if !d.Exists("hello") {
		t.Error("expected 'hello' to exist")
	}

	if d.Exists("missing") {
		t.Error("'missing' should not exist")
	}

	d.Add("new")
	if d.Len() != 3 {
		t.Errorf("expected 3 words, got %d", d.Len())
	}

	d.Delete("new")
	if d.Exists("new") {
		t.Error("'new' should be deleted")
	}

	if got := d.List(); !reflect.DeepEqual(got, []string{"hello", "world"}) {
		t.Errorf("expected sorted list, got %v", got)
	}
}

func TestDictClone(t *testing.T) {
	d := NewDict("one")
	c := d.Clone()
	c.Add("two")

	if d.Exists("two") {
		t.Error("clone must not share storage with original")
	}
}

func TestReadWords(t *testing.T) {
	input := "# comment\nhello\n\n  world  \n#skip\nbye\n"
	words, err := ReadWords(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadWords failed: %v", err)
	}

	want := []string{"hello", "world", "bye"}
	if !reflect.DeepEqual(words, want) {
		t.Errorf("got %v, want %v", words, want)
	}
}

func TestWriteWordsSorted(t *testing.T) {
	var sb strings.Builder
	if err := WriteWords(&sb, []string{"zebra", "apple", "mango"}); err != nil {
		t.Fatalf("WriteWords failed: %v", err)
	}

	want := "apple\nmango\nzebra\n"
	if sb.String() != want {
		t.Errorf("got %q, want %q", sb.String(), want)
	}
}

func TestWordFileRoundTrip(t *testing.T) {
	path := t.TempDir() + "/words.txt"

	var sb strings.Builder
	if err := WriteWords(&sb, []string{"hello", "world"}); err != nil {
		t.Fatalf("WriteWords failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	words, err := OpenWordFile(path)
	if err != nil {
		t.Fatalf("OpenWordFile failed: %v", err)
	}
	if !reflect.DeepEqual(words, []string{"hello", "world"}) {
		t.Errorf("got %v", words)
	}
}

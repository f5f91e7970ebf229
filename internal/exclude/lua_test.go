package exclude

import (
	"reflect"
	"testing"

	"github.com/dshills/spellstorm/internal/engine/document"
)

func TestScriptDetector(t *testing.T) {
	const script = `
function detect(text)
    local i = string.find(text, "skipme", 1, true)
    if i == nil then
        return {}
    end
    return { { i - 1, i - 1 + 6 } }
end
`
	det, err := NewScriptDetector(script)
	if err != nil {
		t.Fatalf("NewScriptDetector() error = %v", err)
	}
	defer det.Close()

	got := det.Detect("abc skipme def")
	want := []document.Range{{Start: 4, End: 10}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Detect() = %v, want %v", got, want)
	}

	if got := det.Detect("nothing here"); len(got) != 0 {
		t.Errorf("Detect() on non-match = %v, want empty", got)
	}
}

func TestScriptDetectorTokenization(t *testing.T) {
	const script = `
function detect(text)
    return { { 0, 4 } }
end
`
	det, err := NewScriptDetector(script)
	if err != nil {
		t.Fatalf("NewScriptDetector() error = %v", err)
	}
	defer det.Close()

	got := checkedWords("bdwrd good", det.Detect)
	want := []string{"good"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestScriptDetectorMissingFunction(t *testing.T) {
	if _, err := NewScriptDetector(`x = 1`); err == nil {
		t.Error("expected error for script without detect function")
	}
}

func TestScriptDetectorBadSyntax(t *testing.T) {
	if _, err := NewScriptDetector(`function detect(`); err == nil {
		t.Error("expected error for unparsable script")
	}
}

func TestScriptDetectorRuntimeErrorExcludesAll(t *testing.T) {
	const script = `
function detect(text)
    error("boom")
end
`
	det, err := NewScriptDetector(script)
	if err != nil {
		t.Fatalf("NewScriptDetector() error = %v", err)
	}
	defer det.Close()

	got := det.Detect("some text")
	want := []document.Range{{Start: 0, End: 9}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Detect() = %v, want whole-text exclusion %v", got, want)
	}
}

func TestScriptDetectorMalformedReturnExcludesAll(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"non-table return", `function detect(text) return 42 end`},
		{"non-table entry", `function detect(text) return { "nope" } end`},
		{"inverted range", `function detect(text) return { { 5, 2 } } end`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			det, err := NewScriptDetector(tt.script)
			if err != nil {
				t.Fatalf("NewScriptDetector() error = %v", err)
			}
			defer det.Close()

			got := det.Detect("abcdef")
			want := []document.Range{{Start: 0, End: 6}}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Detect() = %v, want %v", got, want)
			}
		})
	}
}

func TestScriptDetectorClosed(t *testing.T) {
	det, err := NewScriptDetector(`function detect(text) return {} end`)
	if err != nil {
		t.Fatalf("NewScriptDetector() error = %v", err)
	}
	det.Close()
	det.Close() // idempotent

	got := det.Detect("ab")
	want := []document.Range{{Start: 0, End: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Detect() after Close = %v, want %v", got, want)
	}
}

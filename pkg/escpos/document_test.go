package escpos

import (
	"bytes"
	"testing"
)

func TestNewDocumentEmitsInit(t *testing.T) {
	doc := NewDocument(32)
	if !bytes.Equal(doc.Bytes(), Init) {
		t.Fatalf("expected fresh document to contain only INIT, got %x", doc.Bytes())
	}
}

func TestDocumentTokenOrdering(t *testing.T) {
	doc := NewDocument(32)
	doc.Center().Bold(true).Line("HEADER").Bold(false).Left()

	want := append([]byte{}, Init...)
	want = append(want, AlignCenter...)
	want = append(want, BoldOn...)
	want = append(want, []byte("HEADER")...)
	want = append(want, LF)
	want = append(want, BoldOff...)
	want = append(want, AlignLeft...)

	if !bytes.Equal(doc.Bytes(), want) {
		t.Fatalf("token ordering mismatch:\n got %x\nwant %x", doc.Bytes(), want)
	}
}

func TestDocumentDividerUsesWidth(t *testing.T) {
	doc := NewDocument(8)
	doc.Divider('=')
	want := append([]byte{}, Init...)
	want = append(want, []byte("========")...)
	want = append(want, LF)
	if !bytes.Equal(doc.Bytes(), want) {
		t.Fatalf("divider mismatch: got %x want %x", doc.Bytes(), want)
	}
}

func TestDocumentCutAndReset(t *testing.T) {
	doc := NewDocument(32)
	doc.Line("x").Cut()
	if !bytes.HasSuffix(doc.Bytes(), CutPaper) {
		t.Fatalf("expected stream to end with CUT_PAPER, got %x", doc.Bytes())
	}
	doc.Reset()
	if !bytes.Equal(doc.Bytes(), Init) {
		t.Fatalf("expected reset document to contain only INIT, got %x", doc.Bytes())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"Vanilla", 20, "Vanilla"},
		{"Triple Chocolate Fudge Sundae", 20, "Triple Chocolate ..."},
		{"abcd", 3, "abc"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.max); got != tt.want {
			t.Fatalf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestPadHelpers(t *testing.T) {
	if got := PadRight("ab", 5); got != "ab   " {
		t.Fatalf("PadRight: got %q", got)
	}
	if got := PadLeft("7", 2); got != " 7" {
		t.Fatalf("PadLeft: got %q", got)
	}
	if got := PadRight("toolong", 3); got != "toolong" {
		t.Fatalf("PadRight overflow: got %q", got)
	}
}

package lexer

import (
	"testing"

	"github.com/t18b219k/millet/internal/source"
)

func newTestFile(t *testing.T, content string) *source.File {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sml", []byte(content))
	return fs.Get(id)
}

func TestCursorBumpAndPeek(t *testing.T) {
	f := newTestFile(t, "ab")
	c := NewCursor(f)
	if c.Peek() != 'a' {
		t.Fatalf("Peek() = %q, want 'a'", c.Peek())
	}
	if b := c.Bump(); b != 'a' {
		t.Fatalf("Bump() = %q, want 'a'", b)
	}
	if c.Peek() != 'b' {
		t.Fatalf("Peek() = %q, want 'b'", c.Peek())
	}
	c.Bump()
	if !c.EOF() {
		t.Fatal("expected EOF after consuming all input")
	}
	if c.Peek() != 0 {
		t.Fatalf("Peek() at EOF = %q, want 0", c.Peek())
	}
}

func TestCursorMarkAndSpan(t *testing.T) {
	f := newTestFile(t, "hello")
	c := NewCursor(f)
	m := c.Mark()
	c.Bump()
	c.Bump()
	sp := c.SpanFrom(m)
	if sp.Start != 0 || sp.End != 2 {
		t.Fatalf("SpanFrom = %+v, want Start=0 End=2", sp)
	}
	c.Reset(m)
	if c.Off != 0 {
		t.Fatalf("Reset did not rewind, Off = %d", c.Off)
	}
}

func TestCursorEat(t *testing.T) {
	f := newTestFile(t, "=>")
	c := NewCursor(f)
	if !c.Eat('=') {
		t.Fatal("Eat('=') = false, want true")
	}
	if c.Eat('=') {
		t.Fatal("Eat('=') on '>' = true, want false")
	}
	if !c.Eat('>') {
		t.Fatal("Eat('>') = false, want true")
	}
}

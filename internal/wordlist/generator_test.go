package wordlist

import (
	"fmt"
	"testing"
)

func collect(g *Generator) []string {
	var out []string
	for i, p := range g.All() {
		if i != len(out) {
			panic(fmt.Sprintf("index %d out of sequence", i))
		}
		out = append(out, p)
	}
	return out
}

func TestGeneratorOrder(t *testing.T) {
	g := NewGenerator([]string{"admin", "login"}, []string{".php"})
	want := []string{"", "admin", "login", "admin.php", "login.php"}
	got := collect(g)
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("got %q, want %q", got, want)
	}
	if g.Len() != 5 {
		t.Errorf("Len = %d, want 5", g.Len())
	}
}

func TestGeneratorExtensionOrder(t *testing.T) {
	g := NewGenerator([]string{"a", "b"}, []string{".php", ".bak", "~"})
	want := []string{"", "a", "b", "a.php", "a.bak", "a~", "b.php", "b.bak", "b~"}
	got := collect(g)
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestGeneratorCount(t *testing.T) {
	for w := 0; w <= 6; w++ {
		for e := 0; e <= 4; e++ {
			words := make([]string, w)
			for i := range words {
				words[i] = fmt.Sprintf("w%d", i)
			}
			exts := make([]string, e)
			for i := range exts {
				exts[i] = fmt.Sprintf(".e%d", i)
			}
			g := NewGenerator(words, exts)
			want := 1 + w + w*e
			if g.Len() != want {
				t.Errorf("W=%d E=%d: Len = %d, want %d", w, e, g.Len(), want)
			}
			if n := len(collect(g)); n != want {
				t.Errorf("W=%d E=%d: yielded %d, want %d", w, e, n, want)
			}
		}
	}
}

func TestGeneratorStopsEarly(t *testing.T) {
	g := NewGenerator([]string{"a", "b", "c"}, nil)
	n := 0
	for range g.All() {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("expected iteration to stop after 2, got %d", n)
	}
}

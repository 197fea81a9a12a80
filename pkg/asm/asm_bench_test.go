package asm

import (
	"strings"
	"testing"
)

func BenchmarkTranslate(b *testing.B) {
	lines := []string{
		"new t = 12",
		"new r = 3",
		"NEW Y = T + R  # accumulate",
		"new y = y * 2",
		"new ram[t] byte = y",
		"push y",
		"new t = pop",
		"new r = -8.58",
		"exit",
	}
	source := strings.Repeat(strings.Join(lines, "\n")+"\n", 200)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		code, errs := Translate(source)
		if len(errs) != 0 {
			b.Fatalf("unexpected errors: %v", errs)
		}
		if len(code) == 0 {
			b.Fatal("empty program")
		}
	}
}

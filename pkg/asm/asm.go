package asm

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"gsx/pkg/cpu"
)

// constantLoad matches the one instruction shape that is not a
// dictionary key: a signed decimal assignment to a general register.
// The constant is either an integer or a decimal with at least one
// digit on each side of a single dot.
var constantLoad = regexp.MustCompile(`^new([try])=(-?\d+(?:\.\d+)?)$`)

// lineNumbers formats diagnostic line numbers with digit grouping.
var lineNumbers = message.NewPrinter(language.English)

// Translate assembles a GSX program into bytecode. Every line is
// normalized (comment stripped, all whitespace removed, lowercased)
// and resolved against the mnemonic dictionary, falling back to the
// constant-load pattern. Translation walks the whole program so every
// bad line is reported; if any error was recorded the accumulated
// bytes are discarded and the returned program is empty.
func Translate(source string) ([]byte, []string) {
	var program []byte
	var errs []string

	for i, raw := range strings.Split(source, "\n") {
		line := normalize(raw)
		if line == "" {
			continue
		}

		if op, ok := cpu.OpcodeFor(line); ok {
			program = append(program, op)
			continue
		}

		if enc, ok := encodeConstantLoad(line); ok {
			program = append(program, enc...)
			continue
		}

		errs = append(errs, lineNumbers.Sprintf("Unknown instruction (%s) on line %d.", raw, i+1))
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return program, nil
}

// normalize drops everything from the first '#' onwards, removes all
// whitespace, and lowercases, in that order. "NEW T = T + R" and
// "new t=t+r" normalize identically.
func normalize(raw string) string {
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = raw[:i]
	}
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

// encodeConstantLoad emits the byte- or float-constant load for a
// normalized "new <reg>=<decimal>" line. A constant whose textual
// form has no dot and whose value fits a signed byte takes the
// one-byte form; everything else, including dotted spellings of small
// values like 127.0, takes the four-byte big-endian float form.
func encodeConstantLoad(line string) ([]byte, bool) {
	m := constantLoad.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	target := strings.IndexByte("try", m[1][0])
	text := m[2]

	if !strings.Contains(text, ".") {
		if v, err := strconv.ParseInt(text, 10, 64); err == nil && v >= -128 && v <= 127 {
			return []byte{byte(cpu.OpLoadByteT + target), byte(int8(v))}, true
		}
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, false
	}
	b := cpu.FloatToBytes(cpu.RoundFloat32(v))
	return append([]byte{byte(cpu.OpLoadFloatT + target)}, b[:]...), true
}

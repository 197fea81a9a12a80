package cpu

import "testing"

// mustOpcode fails the test if the mnemonic is not keyable.
func mustOpcode(t *testing.T, mnemonic string) byte {
	t.Helper()
	op, ok := OpcodeFor(mnemonic)
	if !ok {
		t.Fatalf("mnemonic %q not in dictionary", mnemonic)
	}
	return op
}

func TestOpcodeNumbering(t *testing.T) {
	// The builder assigns opcodes by definition order; these
	// positions are part of the bytecode format and must never move.
	tests := []struct {
		mnemonic string
		want     byte
	}{
		{"exit", 6},
		{"runt", 7},
		{"runr", 8},
		{"runy", 9},
		{"pusht", 10},
		{"pushr", 11},
		{"pushy", 12},
		{"newt=pop", 13},
		{"newr=pop", 14},
		{"newy=pop", 15},

		{"newt=ram[t]byte", 16},
		{"newt=ram[r]byte", 17},
		{"newt=ram[y]byte", 18},
		{"newr=ram[t]byte", 19},
		{"newy=ram[y]byte", 24},
		{"newt=ram[t]float", 25},
		{"newr=ram[r]float", 29},
		{"newy=ram[y]float", 33},

		{"newram[t]byte=r", 34},
		{"newram[t]byte=y", 35},
		{"newram[r]byte=t", 36},
		{"newram[y]byte=r", 39},
		{"newram[t]float=r", 40},
		{"newram[y]float=r", 45},

		{"newt=r+y", 46},
		{"newr=t+y", 47},
		{"newy=t+r", 48},
		{"newt=t+t", 49},
		{"newr=2*r", 50},
		{"newy=y*2", 51},
		{"newt=t+r", 52},
		{"newt=t+y", 53},
		{"newr=r+t", 54},
		{"newr=r+y", 55},
		{"newy=y+t", 56},
		{"newy=y+r", 57},

		{"newt=r*y", 58},
		{"newr=t*y", 59},
		{"newy=t*r", 60},
		{"newt=t^2", 61},
		{"newr=r*r", 62},
		{"newy=y^2", 63},
		{"newt=t*r", 64},
		{"newt=t*y", 65},
		{"newr=r*t", 66},
		{"newr=r*y", 67},
		{"newy=y*t", 68},
		{"newy=y*r", 69},

		{"newt=r-y", 70},
		{"newt=y-r", 71},
		{"newr=t-y", 72},
		{"newr=y-t", 73},
		{"newy=t-r", 74},
		{"newy=r-t", 75},
		{"newt=t-r", 76},
		{"newt=t-y", 77},
		{"newt=r-t", 78},
		{"newt=y-t", 79},
		{"newr=r-t", 80},
		{"newr=r-y", 81},
		{"newr=t-r", 82},
		{"newr=y-r", 83},
		{"newy=y-t", 84},
		{"newy=y-r", 85},
		{"newy=t-y", 86},
		{"newy=r-y", 87},

		{"newt=r/y", 88},
		{"newt=y/r", 89},
		{"newr=t/y", 90},
		{"newr=y/t", 91},
		{"newy=t/r", 92},
		{"newy=r/t", 93},
		{"newt=t/r", 94},
		{"newt=t/y", 95},
		{"newt=r/t", 96},
		{"newt=y/t", 97},
		{"newr=r/t", 98},
		{"newr=r/y", 99},
		{"newr=t/r", 100},
		{"newr=y/r", 101},
		{"newy=y/t", 102},
		{"newy=y/r", 103},
		{"newy=t/y", 104},
		{"newy=r/y", 105},
	}
	for _, tc := range tests {
		if got := mustOpcode(t, tc.mnemonic); got != tc.want {
			t.Errorf("opcode of %q = %d; want %d", tc.mnemonic, got, tc.want)
		}
	}
}

func TestOpcodeSynonyms(t *testing.T) {
	// Commutative and synonymous spellings share one opcode.
	groups := [][]string{
		{"newt=r+y", "newt=y+r"},
		{"newr=t+y", "newr=y+t"},
		{"newt=t+t", "newt=2*t", "newt=t*2"},
		{"newt=t+r", "newt=r+t"},
		{"newy=t*r", "newy=r*t"},
		{"newr=r*r", "newr=r^2"},
		{"newy=y*t", "newy=t*y"},
	}
	for _, group := range groups {
		first := mustOpcode(t, group[0])
		for _, m := range group[1:] {
			if got := mustOpcode(t, m); got != first {
				t.Errorf("%q = %d, %q = %d; expected one opcode", group[0], first, m, got)
			}
		}
	}

	// Non-commutative spellings do not.
	if mustOpcode(t, "newt=r-y") == mustOpcode(t, "newt=y-r") {
		t.Errorf("newt=r-y and newt=y-r should be distinct opcodes")
	}
}

func TestOpcodeSetCardinality(t *testing.T) {
	if got := OpcodeCount(); got != 106 {
		t.Errorf("OpcodeCount() = %d; want 106", got)
	}
	if got := MnemonicCount(); got != 127 {
		t.Errorf("MnemonicCount() = %d; want 127", got)
	}
	if len(handlers) != 256 {
		t.Errorf("handler table has %d slots; want 256", len(handlers))
	}
	for op := 0; op < OpcodeCount(); op++ {
		if handlers[op] == nil {
			t.Errorf("opcode %d has no handler", op)
		}
	}
}

func TestZeroLoadHasNoDedicatedOpcode(t *testing.T) {
	// Zero assignments are byte-constant loads, which have no
	// dictionary key.
	for _, m := range []string{"newt=0", "newr=0", "newy=0", "newt=12"} {
		if op, ok := OpcodeFor(m); ok {
			t.Errorf("%q unexpectedly keyable as opcode %d", m, op)
		}
	}
}

package cpu

import "math"

// Handler executes one decoded instruction. By the time a handler
// runs, PC has already been advanced past the opcode byte; only the
// constant-load handlers advance it further, and exit/run overwrite
// it outright.
type Handler func(m *Machine, code []byte)

// The six variable-width constant loads occupy the head of the table
// in this fixed order. They carry an inline immediate (one signed
// byte, or four big-endian float bytes) and have no dictionary key;
// the assembler reaches them through its constant-load pattern.
const (
	OpLoadByteT = iota
	OpLoadByteR
	OpLoadByteY
	OpLoadFloatT
	OpLoadFloatR
	OpLoadFloatY
	OpExit
)

// genReg describes one general register for table generation. The
// enumeration order t, r, y is load-bearing: together with otherTwo
// it fixes every opcode number.
type genReg struct {
	name string
	get  func(*Registers) float32
	set  func(*Registers, float64)
}

var genRegs = [3]genReg{
	{"t", func(r *Registers) float32 { return r.T }, (*Registers).SetT},
	{"r", func(r *Registers) float32 { return r.R }, (*Registers).SetR},
	{"y", func(r *Registers) float32 { return r.Y }, (*Registers).SetY},
}

// otherTwo yields the two registers other than genRegs[i], keeping
// the enumeration order.
func otherTwo(i int) (genReg, genReg) {
	switch i {
	case 0:
		return genRegs[1], genRegs[2]
	case 1:
		return genRegs[0], genRegs[2]
	default:
		return genRegs[0], genRegs[1]
	}
}

// ramAddr truncates a float register value to a RAM address. Values
// outside [0, RAMSize) are undefined; the machine trusts bytecode it
// produced.
func ramAddr(v float32) uint32 {
	return uint32(int64(v))
}

var (
	handlers    [256]Handler
	mnemonics   map[string]byte
	opcodeCount int
)

func init() {
	handlers, mnemonics, opcodeCount = buildOpcodeSet()
}

// OpcodeFor looks up a normalized mnemonic and returns its opcode.
func OpcodeFor(mnemonic string) (byte, bool) {
	op, ok := mnemonics[mnemonic]
	return op, ok
}

// MnemonicCount returns the number of keyable mnemonics.
func MnemonicCount() int {
	return len(mnemonics)
}

// OpcodeCount returns the number of opcodes assigned by the builder.
func OpcodeCount() int {
	return opcodeCount
}

// buildOpcodeSet constructs the dispatch table and the mnemonic
// dictionary in a single pass. A position counter starts at zero and
// each definition takes the next opcode, so both the category order
// and the register enumeration inside each category are fixed;
// reordering anything renames every opcode after it.
func buildOpcodeSet() ([256]Handler, map[string]byte, int) {
	var table [256]Handler
	dict := make(map[string]byte)
	next := 0

	define := func(h Handler, names ...string) {
		table[next] = h
		for _, name := range names {
			dict[name] = byte(next)
		}
		next++
	}

	// Byte-constant loads, opcodes 0-2. Zero assignments such as
	// "new t = 0" travel this path; there is no dedicated clear
	// opcode.
	for _, reg := range genRegs {
		set := reg.set
		define(func(m *Machine, code []byte) {
			pc := m.Regs.PC
			set(&m.Regs, float64(int8(code[pc])))
			m.Regs.SetPC(float64(pc) + 1)
		})
	}

	// Float-constant loads, opcodes 3-5.
	for _, reg := range genRegs {
		set := reg.set
		define(func(m *Machine, code []byte) {
			pc := m.Regs.PC
			set(&m.Regs, float64(BytesToFloat(code[pc:pc+4])))
			m.Regs.SetPC(float64(pc) + 4)
		})
	}

	// exit: return to the caller if there is one, otherwise park PC
	// past the end of any legal program.
	define(func(m *Machine, code []byte) {
		if m.Regs.JS == 0 {
			m.Regs.SetPC(math.MaxUint32)
			return
		}
		m.Regs.SetJS(float64(m.Regs.JS) - 1)
		m.Regs.SetPC(float64(m.JumpStack[m.Regs.JS]))
	}, "exit")

	// run <reg>: call through a register. The stored return address
	// is the already-advanced PC plus one, unconditionally.
	for _, reg := range genRegs {
		get := reg.get
		define(func(m *Machine, code []byte) {
			m.JumpStack[m.Regs.JS] = SaturateUint32(float64(m.Regs.PC) + 1)
			m.Regs.SetJS(float64(m.Regs.JS) + 1)
			m.Regs.SetPC(float64(get(&m.Regs)))
		}, "run"+reg.name)
	}

	// push <reg>
	for _, reg := range genRegs {
		get := reg.get
		define(func(m *Machine, code []byte) {
			m.ArgStack[m.Regs.AS] = get(&m.Regs)
			m.Regs.SetAS(float64(m.Regs.AS) + 1)
		}, "push"+reg.name)
	}

	// new <reg> = pop
	for _, reg := range genRegs {
		set := reg.set
		define(func(m *Machine, code []byte) {
			m.Regs.SetAS(float64(m.Regs.AS) - 1)
			set(&m.Regs, float64(m.ArgStack[m.Regs.AS]))
		}, "new"+reg.name+"=pop")
	}

	// RAM reads, every (value, address) register pair: bytes first,
	// then floats.
	for _, vreg := range genRegs {
		for _, areg := range genRegs {
			set, addr := vreg.set, areg.get
			define(func(m *Machine, code []byte) {
				set(&m.Regs, float64(m.RAMGetInt8(ramAddr(addr(&m.Regs)))))
			}, "new"+vreg.name+"=ram["+areg.name+"]byte")
		}
	}
	for _, vreg := range genRegs {
		for _, areg := range genRegs {
			set, addr := vreg.set, areg.get
			define(func(m *Machine, code []byte) {
				set(&m.Regs, float64(m.RAMGetFloat32(ramAddr(addr(&m.Regs)))))
			}, "new"+vreg.name+"=ram["+areg.name+"]float")
		}
	}

	// RAM writes: the value register is always distinct from the
	// address register. Bytes first, then floats.
	for i, areg := range genRegs {
		o1, o2 := otherTwo(i)
		for _, vreg := range []genReg{o1, o2} {
			get, addr := vreg.get, areg.get
			define(func(m *Machine, code []byte) {
				m.RAMSetInt8(ramAddr(addr(&m.Regs)), int8(int64(get(&m.Regs))))
			}, "newram["+areg.name+"]byte="+vreg.name)
		}
	}
	for i, areg := range genRegs {
		o1, o2 := otherTwo(i)
		for _, vreg := range []genReg{o1, o2} {
			get, addr := vreg.get, areg.get
			define(func(m *Machine, code []byte) {
				m.RAMSetFloat32(ramAddr(addr(&m.Regs)), get(&m.Regs))
			}, "newram["+areg.name+"]float="+vreg.name)
		}
	}

	// Arithmetic computes in double precision; the result lands
	// through the target's single-precision gate. Division by zero
	// follows IEEE-754.
	add := func(x, y float64) float64 { return x + y }
	sub := func(x, y float64) float64 { return x - y }
	mul := func(x, y float64) float64 { return x * y }
	div := func(x, y float64) float64 { return x / y }

	arith := func(target, a, b genReg, op func(x, y float64) float64) Handler {
		set, x, y := target.set, a.get, b.get
		return func(m *Machine, code []byte) {
			set(&m.Regs, op(float64(x(&m.Regs)), float64(y(&m.Regs))))
		}
	}

	key := func(target, a genReg, op string, b genReg) string {
		return "new" + target.name + "=" + a.name + op + b.name
	}

	// target = other + other: commutative, both spellings share one
	// opcode.
	for i, target := range genRegs {
		a, b := otherTwo(i)
		define(arith(target, a, b, add), key(target, a, "+", b), key(target, b, "+", a))
	}

	// Doubling, three synonymous spellings per register.
	for _, target := range genRegs {
		define(arith(target, target, target, add),
			key(target, target, "+", target),
			"new"+target.name+"=2*"+target.name,
			"new"+target.name+"="+target.name+"*2")
	}

	// target = target + other.
	for i, target := range genRegs {
		o1, o2 := otherTwo(i)
		for _, other := range []genReg{o1, o2} {
			define(arith(target, target, other, add),
				key(target, target, "+", other), key(target, other, "+", target))
		}
	}

	// target = other * other.
	for i, target := range genRegs {
		a, b := otherTwo(i)
		define(arith(target, a, b, mul), key(target, a, "*", b), key(target, b, "*", a))
	}

	// Squaring.
	for _, target := range genRegs {
		define(arith(target, target, target, mul),
			key(target, target, "*", target),
			"new"+target.name+"="+target.name+"^2")
	}

	// target = target * other.
	for i, target := range genRegs {
		o1, o2 := otherTwo(i)
		for _, other := range []genReg{o1, o2} {
			define(arith(target, target, other, mul),
				key(target, target, "*", other), key(target, other, "*", target))
		}
	}

	// target = other - other: one opcode per operand order.
	for i, target := range genRegs {
		a, b := otherTwo(i)
		define(arith(target, a, b, sub), key(target, a, "-", b))
		define(arith(target, b, a, sub), key(target, b, "-", a))
	}

	// Subtraction with the target among the operands.
	for i, target := range genRegs {
		o1, o2 := otherTwo(i)
		define(arith(target, target, o1, sub), key(target, target, "-", o1))
		define(arith(target, target, o2, sub), key(target, target, "-", o2))
		define(arith(target, o1, target, sub), key(target, o1, "-", target))
		define(arith(target, o2, target, sub), key(target, o2, "-", target))
	}

	// target = other / other: one opcode per operand order.
	for i, target := range genRegs {
		a, b := otherTwo(i)
		define(arith(target, a, b, div), key(target, a, "/", b))
		define(arith(target, b, a, div), key(target, b, "/", a))
	}

	// Division with the target among the operands.
	for i, target := range genRegs {
		o1, o2 := otherTwo(i)
		define(arith(target, target, o1, div), key(target, target, "/", o1))
		define(arith(target, target, o2, div), key(target, target, "/", o2))
		define(arith(target, o1, target, div), key(target, o1, "/", target))
		define(arith(target, o2, target, div), key(target, o2, "/", target))
	}

	return table, dict, next
}

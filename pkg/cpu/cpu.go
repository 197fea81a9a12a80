package cpu

import (
	"fmt"
	"math"
)

const (
	// RAMSize is the fixed size of machine memory: 3 MiB.
	RAMSize = 3 << 20

	// MaxProgramSize bounds the bytecode accepted by Run. Programs
	// must be strictly smaller than this.
	MaxProgramSize = 3 << 20

	// StackDepth is the capacity of the argument and jump stacks.
	StackDepth = 256
)

// ErrProgramTooLarge is returned by Run for bytecode of
// MaxProgramSize bytes or more. Execution does not begin.
var ErrProgramTooLarge = fmt.Errorf("program too large: must be smaller than %d bytes", MaxProgramSize)

// Machine is a complete GSX machine: the register file, 3 MiB of RAM,
// and the two fixed-capacity stacks. All buffers are allocated with
// the machine and never resized. A Machine is not safe for concurrent
// use; distinct machines are fully independent.
type Machine struct {
	Regs      Registers
	RAM       [RAMSize]byte
	ArgStack  [StackDepth]float32
	JumpStack [StackDepth]uint32
}

func NewMachine() *Machine {
	return &Machine{}
}

// Reset zeroes the registers and RAM. The stack buffers are not
// cleared; they are addressed through the pointer registers, which
// are reset.
func (m *Machine) Reset() {
	m.Regs.Reset()
	m.RAM = [RAMSize]byte{}
}

// RAMGetInt8 reads the byte at addr as a two's-complement value.
func (m *Machine) RAMGetInt8(addr uint32) int8 {
	return int8(m.RAM[addr])
}

// RAMSetInt8 stores v at addr.
func (m *Machine) RAMSetInt8(addr uint32, v int8) {
	m.RAM[addr] = byte(v)
}

// RAMGetFloat32 reads the four bytes starting at addr as a big-endian
// single-precision float.
func (m *Machine) RAMGetFloat32(addr uint32) float32 {
	return BytesToFloat(m.RAM[addr : addr+4])
}

// RAMSetFloat32 stores v at addr as four big-endian bytes.
func (m *Machine) RAMSetFloat32(addr uint32, v float32) {
	b := FloatToBytes(v)
	copy(m.RAM[addr:], b[:])
}

// Run executes code against the machine until PC runs past the end of
// the program. Each step fetches one opcode byte at PC, advances PC,
// and dispatches; constant-load handlers advance PC further over
// their immediates, and exit/run overwrite it. An exit with an empty
// jump stack parks PC at 2^32-1, past any legal program.
//
// Run trusts code to be well formed; it only rejects programs of
// MaxProgramSize bytes or more.
func (m *Machine) Run(code []byte) error {
	if len(code) >= MaxProgramSize {
		return ErrProgramTooLarge
	}
	for int64(m.Regs.PC) < int64(len(code)) {
		op := code[m.Regs.PC]
		m.Regs.SetPC(float64(m.Regs.PC) + 1)
		handlers[op](m, code)
	}
	return nil
}

// Terminated reports whether PC holds the termination sentinel.
func (m *Machine) Terminated() bool {
	return m.Regs.PC == math.MaxUint32
}

package cpu

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
)

// snapshotRegisters is the JSON-serializable register block of a
// snapshot archive.
type snapshotRegisters struct {
	PC uint32  `json:"pc"`
	AS uint8   `json:"as"`
	JS uint8   `json:"js"`
	T  float32 `json:"t"`
	R  float32 `json:"r"`
	Y  float32 `json:"y"`
}

const (
	snapRegistersFile = "registers.json"
	snapRAMFile       = "ram.bin"
	snapArgStackFile  = "arg_stack.bin"
	snapJumpStackFile = "jump_stack.bin"
)

// SnapshotToBytes serialises the complete machine state into an
// in-memory ZIP archive and returns the raw bytes. Registers are
// stored as JSON so a snapshot stays inspectable; RAM and the stack
// buffers are raw sections, big-endian where multi-byte.
func (m *Machine) SnapshotToBytes() ([]byte, error) {
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)

	regs := snapshotRegisters{
		PC: m.Regs.PC,
		AS: m.Regs.AS,
		JS: m.Regs.JS,
		T:  m.Regs.T,
		R:  m.Regs.R,
		Y:  m.Regs.Y,
	}
	regJSON, err := json.MarshalIndent(regs, "", "  ")
	if err != nil {
		return nil, err
	}

	sections := []struct {
		name  string
		write func(io.Writer) error
	}{
		{snapRegistersFile, func(w io.Writer) error {
			_, err := w.Write(regJSON)
			return err
		}},
		{snapRAMFile, func(w io.Writer) error {
			_, err := w.Write(m.RAM[:])
			return err
		}},
		{snapArgStackFile, func(w io.Writer) error {
			return binary.Write(w, binary.BigEndian, m.ArgStack[:])
		}},
		{snapJumpStackFile, func(w io.Writer) error {
			return binary.Write(w, binary.BigEndian, m.JumpStack[:])
		}},
	}

	for _, s := range sections {
		w, err := zw.Create(s.name)
		if err != nil {
			return nil, err
		}
		if err := s.write(w); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RestoreFromBytes loads a snapshot archive produced by
// SnapshotToBytes, replacing the machine's registers, RAM, and stack
// buffers.
func (m *Machine) RestoreFromBytes(data []byte) error {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("invalid snapshot archive: %w", err)
	}

	read := func(name string) ([]byte, error) {
		f, err := zr.Open(name)
		if err != nil {
			return nil, fmt.Errorf("snapshot is missing %s: %w", name, err)
		}
		defer f.Close()
		return io.ReadAll(f)
	}

	regJSON, err := read(snapRegistersFile)
	if err != nil {
		return err
	}
	var regs snapshotRegisters
	if err := json.Unmarshal(regJSON, &regs); err != nil {
		return fmt.Errorf("invalid register block: %w", err)
	}

	ram, err := read(snapRAMFile)
	if err != nil {
		return err
	}
	if len(ram) != RAMSize {
		return fmt.Errorf("snapshot RAM section is %d bytes, want %d", len(ram), RAMSize)
	}

	argStack, err := read(snapArgStackFile)
	if err != nil {
		return err
	}
	jumpStack, err := read(snapJumpStackFile)
	if err != nil {
		return err
	}

	var args [StackDepth]float32
	if err := binary.Read(bytes.NewReader(argStack), binary.BigEndian, args[:]); err != nil {
		return fmt.Errorf("invalid argument stack section: %w", err)
	}
	var jumps [StackDepth]uint32
	if err := binary.Read(bytes.NewReader(jumpStack), binary.BigEndian, jumps[:]); err != nil {
		return fmt.Errorf("invalid jump stack section: %w", err)
	}

	m.Regs = Registers{PC: regs.PC, AS: regs.AS, JS: regs.JS, T: regs.T, R: regs.R, Y: regs.Y}
	copy(m.RAM[:], ram)
	m.ArgStack = args
	m.JumpStack = jumps
	return nil
}

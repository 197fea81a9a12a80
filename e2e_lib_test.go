package main

import (
	"strings"
	"testing"

	"gsx/pkg/asm"
	"gsx/pkg/cpu"
)

func TestTranslateAndRun(t *testing.T) {
	source := strings.Join([]string{
		"# compute (12 + 3) * 2 and store it at address 0",
		"NEW T = 12",
		"new r = 3",
		"new y = t + r",
		"New Y = Y * 2",
		"new t = 0",
		"new ram[t] byte = y",
		"exit",
	}, "\n")

	code, errs := asm.Translate(source)
	if len(errs) != 0 {
		t.Fatalf("translate errors: %v", errs)
	}

	vm := cpu.NewMachine()
	if err := vm.Run(code); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if vm.Regs.T != 0 || vm.Regs.R != 3 || vm.Regs.Y != 30 {
		t.Errorf("registers = (%v, %v, %v); want (0, 3, 30)", vm.Regs.T, vm.Regs.R, vm.Regs.Y)
	}
	if vm.RAM[0] != 30 {
		t.Errorf("RAM[0] = %d; want 30", vm.RAM[0])
	}
	if !vm.Terminated() {
		t.Errorf("PC = %d; expected termination sentinel", vm.Regs.PC)
	}
}

func TestTranslateReportsAllErrors(t *testing.T) {
	source := "exit\nwat\npush t\nalso wrong"
	code, errs := asm.Translate(source)
	if len(code) != 0 {
		t.Errorf("expected empty bytecode alongside errors, got %d bytes", len(code))
	}
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %v", errs)
	}
	if !strings.Contains(errs[0], "line 2") || !strings.Contains(errs[1], "line 4") {
		t.Errorf("errors carry wrong line numbers: %v", errs)
	}
}

func TestFloatRoundTripThroughProgram(t *testing.T) {
	// A float constant survives translate, execution, a RAM store
	// and a RAM load with exactly single-precision rounding.
	source := strings.Join([]string{
		"new t = -8.58",
		"push t",
		"new r = 4",
		"new ram[r] float = t",
		"new t = 0",
		"new y = ram[r] float",
	}, "\n")

	code, errs := asm.Translate(source)
	if len(errs) != 0 {
		t.Fatalf("translate errors: %v", errs)
	}

	vm := cpu.NewMachine()
	if err := vm.Run(code); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	want := cpu.RoundFloat32(-8.58)
	if vm.Regs.Y != want {
		t.Errorf("Y = %v; want %v", vm.Regs.Y, want)
	}
	if vm.ArgStack[0] != want {
		t.Errorf("ArgStack[0] = %v; want %v", vm.ArgStack[0], want)
	}
	if got := vm.RAMGetFloat32(4); got != want {
		t.Errorf("RAM float at 4 = %v; want %v", got, want)
	}
}

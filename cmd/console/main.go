package main

import (
	"fmt"
	"log"
	"os"

	"gsx/pkg/asm"
	"gsx/pkg/cpu"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: console <program.gsx>")
		os.Exit(2)
	}

	sourceBytes, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to read source file: %v", err)
	}

	program, errs := asm.Translate(string(sourceBytes))
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
		os.Exit(1)
	}

	vm := cpu.NewMachine()
	if err := vm.Run(program); err != nil {
		log.Fatalf("Run failed: %v", err)
	}

	fmt.Printf(
		"run complete (%s): PC=%d AS=%d JS=%d T=%g R=%g Y=%g\n",
		os.Args[1],
		vm.Regs.PC,
		vm.Regs.AS,
		vm.Regs.JS,
		vm.Regs.T,
		vm.Regs.R,
		vm.Regs.Y,
	)

	fmt.Print("ram[0:16]:")
	for _, b := range vm.RAM[:16] {
		fmt.Printf(" %02X", b)
	}
	fmt.Println()
}

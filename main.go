package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gsx/pkg/asm"
	"gsx/pkg/cpu"
)

func main() {
	inPath := flag.String("in", "", "input assembly file path")
	outPath := flag.String("out", "", "output binary file path (default: input with .bin extension)")
	runProgram := flag.Bool("run", false, "run the generated binary on the virtual machine")
	runBinPath := flag.String("run-bin", "", "run an existing binary on the virtual machine")
	snapshotPath := flag.String("snapshot", "", "write a machine state snapshot to this path after the run")
	flag.Parse()

	if *runProgram && *runBinPath != "" {
		fmt.Fprintln(os.Stderr, "use either -run or -run-bin, not both")
		os.Exit(2)
	}

	assembledOutput := ""
	if *inPath != "" {
		source, err := os.ReadFile(*inPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to read input file %q: %v\n", *inPath, err)
			os.Exit(1)
		}

		code, errs := asm.Translate(string(source))
		if len(errs) > 0 {
			for _, e := range errs {
				fmt.Fprintln(os.Stderr, e)
			}
			os.Exit(1)
		}

		output := *outPath
		if output == "" {
			output = defaultOutputPath(*inPath)
		}

		if err := os.WriteFile(output, code, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write binary file %q: %v\n", output, err)
			os.Exit(1)
		}

		fmt.Printf("assembled %d bytes -> %s\n", len(code), output)
		assembledOutput = output
	}

	if *inPath == "" && *runBinPath == "" && !*runProgram {
		fmt.Fprintln(os.Stderr, "nothing to do: provide -in to assemble, -run to run assembled output, or -run-bin <file> to run an existing binary")
		flag.Usage()
		os.Exit(2)
	}

	runTarget := ""
	switch {
	case *runBinPath != "":
		runTarget = *runBinPath
	case *runProgram:
		if assembledOutput == "" {
			fmt.Fprintln(os.Stderr, "-run requires -in, or use -run-bin <file>")
			os.Exit(2)
		}
		runTarget = assembledOutput
	default:
		return
	}

	if err := runBinary(runTarget, *snapshotPath); err != nil {
		fmt.Fprintf(os.Stderr, "run failed for %q: %v\n", runTarget, err)
		os.Exit(1)
	}
}

func defaultOutputPath(inPath string) string {
	ext := filepath.Ext(inPath)
	if ext == "" {
		return inPath + ".bin"
	}
	return strings.TrimSuffix(inPath, ext) + ".bin"
}

func runBinary(path string, snapshotPath string) error {
	code, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	vm := cpu.NewMachine()
	if err := vm.Run(code); err != nil {
		return err
	}

	fmt.Printf(
		"run complete (%s): PC=%d AS=%d JS=%d T=%g R=%g Y=%g\n",
		path,
		vm.Regs.PC,
		vm.Regs.AS,
		vm.Regs.JS,
		vm.Regs.T,
		vm.Regs.R,
		vm.Regs.Y,
	)

	if snapshotPath != "" {
		data, err := vm.SnapshotToBytes()
		if err != nil {
			return fmt.Errorf("snapshot failed: %w", err)
		}
		if err := os.WriteFile(snapshotPath, data, 0o644); err != nil {
			return fmt.Errorf("failed to write snapshot %q: %w", snapshotPath, err)
		}
		fmt.Printf("snapshot written -> %s\n", snapshotPath)
	}

	return nil
}

package main

import (
	"fmt"
	"image/color"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"gsx/pkg/asm"
	"gsx/pkg/cpu"
	"gsx/pkg/grid"
)

const (
	screenW = 640
	screenH = 480

	hexCols = 16
	hexRows = 20
	hexTop  = 96
	hexLeft = 80
)

// Game shows the observable machine state after a run: the register
// file, both stack pointers, and a pageable hex view of RAM.
type Game struct {
	vm      *cpu.Machine
	program []byte
	source  string

	viewAddr int
	cells    grid.Grid
}

func (g *Game) rerun() {
	g.vm.Reset()
	if err := g.vm.Run(g.program); err != nil {
		log.Printf("run failed: %v", err)
	}
}

func (g *Game) Update() error {
	const page = hexCols * hexRows

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		g.viewAddr += hexCols
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		g.viewAddr -= hexCols
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
		g.viewAddr += page
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		g.viewAddr -= page
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		g.viewAddr = 0
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.rerun()
	}

	if g.viewAddr < 0 {
		g.viewAddr = 0
	}
	if g.viewAddr > cpu.RAMSize-page {
		g.viewAddr = cpu.RAMSize - page
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	face := basicfont.Face7x13
	white := color.White

	regs := g.vm.Regs
	text.Draw(screen, g.source, face, 16, 20, white)
	text.Draw(screen,
		fmt.Sprintf("PC=%d  AS=%d  JS=%d", regs.PC, regs.AS, regs.JS),
		face, 16, 44, white)
	text.Draw(screen,
		fmt.Sprintf("T=%g  R=%g  Y=%g", regs.T, regs.R, regs.Y),
		face, 16, 62, white)
	text.Draw(screen, "arrows/pgup/pgdn scroll ram, home to top, r re-runs",
		face, 16, 80, color.Gray{Y: 0xAA})

	for row := 0; row < hexRows; row++ {
		addr := g.viewAddr + row*hexCols
		text.Draw(screen, fmt.Sprintf("%06X", addr), face, 16, hexTop+row*g.cells.CellH+12, color.Gray{Y: 0xAA})
	}

	for i := 0; i < hexCols*hexRows; i++ {
		px, py := g.cells.Origin(i)
		b := g.vm.RAM[g.viewAddr+i]
		text.Draw(screen, fmt.Sprintf("%02X", b), face, hexLeft+px, hexTop+py+12, white)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW, screenH
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: desktop <program.gsx>")
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

	game := &Game{
		vm:      cpu.NewMachine(),
		program: program,
		source:  os.Args[1],
		cells:   grid.Grid{Cols: hexCols, CellW: 28, CellH: 16},
	}
	game.rerun()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle("GSX Desktop")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

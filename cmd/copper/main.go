// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bytes"
	_ "embed"
	"encoding/binary"
	"flag"
	"fmt"
	goio "io"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/ezrec/copperlist/copper"
	"github.com/ezrec/copperlist/emulator"
	"github.com/ezrec/copperlist/internal"
	"github.com/ezrec/copperlist/io"
	"github.com/ezrec/copperlist/loader"
	"github.com/ezrec/copperlist/raster"
	"github.com/ezrec/copperlist/report"
	"github.com/ezrec/copperlist/translate"
)

//go:embed bands.cop
var demo string

// readBinary reads a big-endian word stream.
func readBinary(path string) (prog *copper.Program, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	if len(data)%4 != 0 {
		err = copper.ErrLengthOdd
		return
	}

	words := make([]uint16, len(data)/2)
	_, err = binary.Decode(data, binary.BigEndian, words)
	if err != nil {
		return
	}

	insts, err := copper.Disassemble(words)
	if err != nil {
		return
	}

	prog = copper.NewProgram(insts...)
	err = prog.Validate()
	return
}

// writeBinary writes a program as a big-endian word stream.
func writeBinary(path string, prog *copper.Program) (err error) {
	words, err := prog.Binary()
	if err != nil {
		return
	}

	data, err := binary.Append(nil, binary.BigEndian, words)
	if err != nil {
		return
	}

	err = os.WriteFile(path, data, 0o644)
	return
}

func main() {
	var compile string
	var input string
	var output string
	var listing bool
	var frames int
	var mode string
	var serial bool
	var verbose bool
	var defines []string

	flag.StringVar(&compile, "c", "", ".cop file to compile (default: built-in three band demo)")
	flag.StringVar(&input, "b", "", "binary copper list to load instead of compiling")
	flag.StringVar(&output, "o", "", "Write the binary copper list to a file")
	flag.BoolVar(&listing, "l", false, "Print the program listing")
	flag.IntVar(&frames, "f", 1, "Frames to run")
	flag.StringVar(&mode, "m", raster.MODE_640x480.Name, "Video mode")
	flag.BoolVar(&serial, "s", false, "Serial console output (CR/LF line endings)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.Func("D", "Predefine NAME=VALUE", func(define string) error {
		if !strings.Contains(define, "=") {
			return fmt.Errorf("%v: expected NAME=VALUE", define)
		}
		defines = append(defines, define)
		return nil
	})

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	timing, ok := raster.ModeByName(mode)
	if !ok {
		log.Fatalf("%v: unknown video mode", mode)
	}

	emu := emulator.NewEmulator(timing)
	emu.Verbose = verbose

	var prog *copper.Program
	var err error

	if len(input) != 0 {
		prog, err = readBinary(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
	} else {
		name := "demo"
		var inf goio.Reader = strings.NewReader(demo)
		if len(compile) != 0 {
			name = compile
			file, err := os.Open(compile)
			if err != nil {
				log.Fatalf("%v: %v", compile, err)
			}
			defer file.Close()
			inf = file
		}

		asm := &copper.Assembler{Verbose: verbose}
		asm.PredefineAll(emu.Defines())
		for _, define := range defines {
			equ, value, _ := strings.Cut(define, "=")
			asm.Predefine(equ, value)
		}

		if verbose {
			for equ, value := range internal.SortedSeq2(emu.Defines()) {
				log.Printf("define %v = %v", equ, value)
			}
		}

		prog, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", name, err)
		}
	}

	var out goio.Writer = os.Stdout
	if serial {
		out = &io.Console{Output: os.Stdout}
	}

	if listing {
		text, err := prog.Listing()
		if err != nil {
			log.Fatal(err)
		}
		fmt.Fprint(out, text)
	}

	if len(output) != 0 {
		err = writeBinary(output, prog)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
	}

	var bus io.Bus = emu
	if verbose {
		bus = &io.Trace{Bus: emu, Verbose: true}
	}

	ld := &loader.Loader{Bus: bus, Verbose: verbose, Verify: true}
	err = ld.LoadProgram(prog)
	if err != nil {
		log.Fatal(err)
	}
	emu.Program = prog

	status, err := report.Read(bus)
	if err != nil {
		log.Fatal(err)
	}
	_, err = status.WriteTo(out)
	if err != nil {
		log.Fatal(err)
	}

	ansi := !serial && term.IsTerminal(int(os.Stdout.Fd()))

	for frame := range frames {
		fr := &report.Frame{}
		err = emu.RunFrame(fr.Sample)
		if err != nil {
			log.Fatal(err)
		}

		var buf bytes.Buffer
		translate.Fprintf(&buf, "\nFrame %d:\n", frame)
		err = report.WriteBands(&buf, fr.Bands(), ansi)
		if err != nil {
			log.Fatal(err)
		}
		_, err = buf.WriteTo(out)
		if err != nil {
			log.Fatal(err)
		}
	}

	if verbose {
		log.Printf("\n%v", emu)
	}
}

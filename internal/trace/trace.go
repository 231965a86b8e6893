// Package trace replays scripted bus traffic against a machine, standing
// in for the CPU.
//
// A trace is a text file holding one command per line. Addresses and
// bytes are hexadecimal, with or without a 0x prefix; counts are
// decimal. A # starts a comment.
//
//	w ADDR B0 [B1 ...]   write bytes at consecutive addresses
//	fill ADDR LEN B      write LEN copies of B from ADDR
//	step N               advance N dots
//	line [N]             advance N scanlines (default 1)
//	frame [N]            advance N frames (default 1)
//	expect ADDR B        fail unless reading ADDR returns B
package trace

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/silatcha/gboy/internal/ppu"
	"github.com/silatcha/gboy/pkg/utils"
)

// ErrExpectation is returned by Run when an expect command fails.
var ErrExpectation = errors.New("trace: expectation failed")

// stepSize is the number of dots advanced per Machine.Step, a single
// machine cycle.
const stepSize = 4

// Machine is the bus and clock a Script drives.
type Machine interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
	Step(cycles uint64)
}

// Op is the kind of a Command.
type Op int

const (
	OpWrite Op = iota
	OpFill
	OpStep
	OpExpect
)

func (o Op) String() string {
	switch o {
	case OpWrite:
		return "w"
	case OpFill:
		return "fill"
	case OpStep:
		return "step"
	case OpExpect:
		return "expect"
	}
	return "unknown"
}

// Command is a single parsed trace line.
type Command struct {
	Op   Op
	Line int // 1-based source line

	Address uint16
	Data    []uint8 // OpWrite bytes, OpFill and OpExpect value in Data[0]
	Count   uint64  // OpFill length, OpStep dots
}

// Script is a parsed trace.
type Script []Command

// Load reads and parses the trace at path, decompressing it when
// needed.
func Load(path string) (Script, error) {
	data, err := utils.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(bytes.NewReader(data))
}

// Parse reads a trace from r.
func Parse(r io.Reader) (Script, error) {
	var s Script
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		c, err := parseCommand(fields)
		if err != nil {
			return nil, fmt.Errorf("trace: line %d: %w", n, err)
		}
		c.Line = n
		s = append(s, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("trace: %w", err)
	}
	return s, nil
}

func parseCommand(fields []string) (Command, error) {
	args := fields[1:]
	switch strings.ToLower(fields[0]) {
	case "w":
		if len(args) < 2 {
			return Command{}, fmt.Errorf("w needs an address and at least one byte")
		}
		addr, err := parseHex(args[0], 16)
		if err != nil {
			return Command{}, err
		}
		data := make([]uint8, 0, len(args)-1)
		for _, a := range args[1:] {
			b, err := parseHex(a, 8)
			if err != nil {
				return Command{}, err
			}
			data = append(data, uint8(b))
		}
		return Command{Op: OpWrite, Address: uint16(addr), Data: data}, nil
	case "fill":
		if len(args) != 3 {
			return Command{}, fmt.Errorf("fill needs an address, a length and a byte")
		}
		addr, err := parseHex(args[0], 16)
		if err != nil {
			return Command{}, err
		}
		length, err := strconv.ParseUint(args[1], 10, 17)
		if err != nil {
			return Command{}, fmt.Errorf("invalid length %q: %w", args[1], err)
		}
		b, err := parseHex(args[2], 8)
		if err != nil {
			return Command{}, err
		}
		return Command{Op: OpFill, Address: uint16(addr), Data: []uint8{uint8(b)}, Count: length}, nil
	case "step":
		if len(args) != 1 {
			return Command{}, fmt.Errorf("step needs a dot count")
		}
		n, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return Command{}, fmt.Errorf("invalid dot count %q: %w", args[0], err)
		}
		return Command{Op: OpStep, Count: n}, nil
	case "line", "frame":
		n := uint64(1)
		if len(args) > 1 {
			return Command{}, fmt.Errorf("%s takes at most one count", fields[0])
		}
		if len(args) == 1 {
			var err error
			if n, err = strconv.ParseUint(args[0], 10, 32); err != nil {
				return Command{}, fmt.Errorf("invalid count %q: %w", args[0], err)
			}
		}
		unit := uint64(ppu.DotsPerLine)
		if strings.ToLower(fields[0]) == "frame" {
			unit = ppu.FrameDots
		}
		return Command{Op: OpStep, Count: n * unit}, nil
	case "expect":
		if len(args) != 2 {
			return Command{}, fmt.Errorf("expect needs an address and a byte")
		}
		addr, err := parseHex(args[0], 16)
		if err != nil {
			return Command{}, err
		}
		b, err := parseHex(args[1], 8)
		if err != nil {
			return Command{}, err
		}
		return Command{Op: OpExpect, Address: uint16(addr), Data: []uint8{uint8(b)}}, nil
	}
	return Command{}, fmt.Errorf("unknown command %q", fields[0])
}

func parseHex(s string, bits int) (uint64, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "0x"), 16, bits)
	if err != nil {
		return 0, fmt.Errorf("invalid hex value %q: %w", s, err)
	}
	return v, nil
}

// Dots returns the number of dots the script advances in total.
func (s Script) Dots() uint64 {
	var total uint64
	for _, c := range s {
		if c.Op == OpStep {
			total += c.Count
		}
	}
	return total
}

// Run executes the script against m. Steps are issued one machine
// cycle at a time. It stops at the first failed expectation.
func (s Script) Run(m Machine) error {
	for _, c := range s {
		switch c.Op {
		case OpWrite:
			for i, b := range c.Data {
				m.Write(c.Address+uint16(i), b)
			}
		case OpFill:
			for i := uint64(0); i < c.Count; i++ {
				m.Write(c.Address+uint16(i), c.Data[0])
			}
		case OpStep:
			n := c.Count
			for ; n >= stepSize; n -= stepSize {
				m.Step(stepSize)
			}
			if n > 0 {
				m.Step(n)
			}
		case OpExpect:
			if got := m.Read(c.Address); got != c.Data[0] {
				return fmt.Errorf("%w: line %d: 0x%04X = 0x%02X, want 0x%02X", ErrExpectation, c.Line, c.Address, got, c.Data[0])
			}
		}
	}
	return nil
}

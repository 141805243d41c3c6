package sim

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/google/shlex"

	"hillside-go/errcode"
	"hillside-go/keyboard/keycode"
	"hillside-go/keyboard/report"
)

// Command is one script line, already split into words.
type Command struct {
	Line int
	Op   string
	Args []string
}

// Parse splits a script into commands. Blank lines and lines starting with
// '#' are skipped; words follow shell quoting rules.
func Parse(r io.Reader) ([]Command, error) {
	var out []Command
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		words, err := shlex.Split(text)
		if err != nil {
			return nil, lineErr(line, err.Error())
		}
		if len(words) == 0 {
			continue
		}
		out = append(out, Command{Line: line, Op: words[0], Args: words[1:]})
	}
	if err := sc.Err(); err != nil {
		return nil, errcode.Wrap(errcode.Error, "sim.parse", err)
	}
	return out, nil
}

func lineErr(line int, msg string) error {
	return &errcode.E{C: errcode.InvalidParams, Op: "sim.line " + strconv.Itoa(line), Msg: msg}
}

// Exec runs one command:
//
//	press|release|tap SIDE ROW COL
//	wait TICKS
//	usb SIDE on|off
//	expect [KEY...]
func (s *Sim) Exec(c Command) error {
	switch c.Op {
	case "press", "release", "tap":
		if len(c.Args) != 3 {
			return lineErr(c.Line, c.Op+" takes SIDE ROW COL")
		}
		side, ok := ParseSide(c.Args[0])
		if !ok {
			return lineErr(c.Line, "bad side "+c.Args[0])
		}
		row, err1 := strconv.Atoi(c.Args[1])
		col, err2 := strconv.Atoi(c.Args[2])
		if err1 != nil || err2 != nil {
			return lineErr(c.Line, "bad coordinates")
		}
		if c.Op == "tap" {
			if err := s.Set(side, row, col, true); err != nil {
				return err
			}
			s.Run(s.cfg.DebounceScans + 1)
			return s.Set(side, row, col, false)
		}
		return s.Set(side, row, col, c.Op == "press")

	case "wait":
		if len(c.Args) != 1 {
			return lineErr(c.Line, "wait takes TICKS")
		}
		n, err := strconv.Atoi(c.Args[0])
		if err != nil || n < 0 {
			return lineErr(c.Line, "bad tick count")
		}
		s.Run(n)
		return nil

	case "usb":
		if len(c.Args) != 2 {
			return lineErr(c.Line, "usb takes SIDE on|off")
		}
		side, ok := ParseSide(c.Args[0])
		if !ok {
			return lineErr(c.Line, "bad side "+c.Args[0])
		}
		s.halves[side].USB.SetConfigured(c.Args[1] == "on")
		return nil

	case "expect":
		var codes []keycode.KeyCode
		for _, name := range c.Args {
			k, ok := keycode.Lookup(name)
			if !ok {
				return lineErr(c.Line, "unknown key "+name)
			}
			codes = append(codes, k)
		}
		want := report.Build(codes...)
		got, _, ok := s.HostReport()
		if !ok {
			return lineErr(c.Line, "no half is configured")
		}
		if got != want {
			return &errcode.E{C: errcode.Error, Op: "sim.line " + strconv.Itoa(c.Line), Msg: "report " + got.String() + ", want " + want.String()}
		}
		return nil
	}
	return lineErr(c.Line, "unknown command "+c.Op)
}

// RunScript parses and executes a script, stopping at the first error.
func (s *Sim) RunScript(r io.Reader) error {
	cmds, err := Parse(r)
	if err != nil {
		return err
	}
	for _, c := range cmds {
		if err := s.Exec(c); err != nil {
			return err
		}
	}
	return nil
}

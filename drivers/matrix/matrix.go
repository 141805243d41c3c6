// Package matrix scans a row/column key switch matrix.
//
// Rows are driven outputs, columns are pulled-up inputs. A row is selected by
// driving it low; a closed switch then pulls its column low.
package matrix

import (
	"hillside-go/errcode"
)

// Output is a row line.
type Output interface {
	Set(high bool)
}

// Input is a column line.
type Input interface {
	Get() bool
}

// FallibleInput is implemented by inputs whose reads can fail, e.g. pins
// behind an I/O expander. When present, Read is used instead of Get.
type FallibleInput interface {
	Input
	Read() (bool, error)
}

// Snapshot is a rows x cols grid of closed switches.
type Snapshot struct {
	rows, cols int
	cells      []bool
}

func NewSnapshot(rows, cols int) Snapshot {
	return Snapshot{rows: rows, cols: cols, cells: make([]bool, rows*cols)}
}

func (s Snapshot) Rows() int { return s.rows }
func (s Snapshot) Cols() int { return s.cols }

func (s Snapshot) At(row, col int) bool { return s.cells[row*s.cols+col] }

func (s Snapshot) Set(row, col int, closed bool) { s.cells[row*s.cols+col] = closed }

// Equal reports whether both grids have the same shape and contents.
func (s Snapshot) Equal(o Snapshot) bool {
	if s.rows != o.rows || s.cols != o.cols {
		return false
	}
	for i := range s.cells {
		if s.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// CopyFrom overwrites s with o. Shapes must match.
func (s Snapshot) CopyFrom(o Snapshot) { copy(s.cells, o.cells) }

// Clone returns an independent copy.
func (s Snapshot) Clone() Snapshot {
	c := NewSnapshot(s.rows, s.cols)
	copy(c.cells, s.cells)
	return c
}

// Scanner strobes the matrix one row at a time.
type Scanner struct {
	rows []Output
	cols []Input

	// Settle, if set, runs after a row is driven and before its columns are
	// sampled.
	Settle func()

	scratch Snapshot
}

func New(rows []Output, cols []Input) (*Scanner, error) {
	if len(rows) == 0 || len(cols) == 0 || len(rows) > 255 || len(cols) > 255 {
		return nil, errcode.InvalidParams
	}
	for _, r := range rows {
		r.Set(true)
	}
	return &Scanner{
		rows:    rows,
		cols:    cols,
		scratch: NewSnapshot(len(rows), len(cols)),
	}, nil
}

func (s *Scanner) Rows() int { return len(s.rows) }
func (s *Scanner) Cols() int { return len(s.cols) }

// Scan reads the whole matrix into dst. On a read failure the cycle is
// abandoned, every row is released and dst is left untouched.
func (s *Scanner) Scan(dst Snapshot) error {
	if dst.rows != len(s.rows) || dst.cols != len(s.cols) {
		return errcode.InvalidParams
	}
	for i, row := range s.rows {
		row.Set(false)
		if s.Settle != nil {
			s.Settle()
		}
		for j, col := range s.cols {
			level, err := read(col)
			if err != nil {
				row.Set(true)
				return errcode.Wrap(errcode.MatrixRead, "matrix.scan", err)
			}
			s.scratch.Set(i, j, !level)
		}
		row.Set(true)
	}
	dst.CopyFrom(s.scratch)
	return nil
}

func read(in Input) (bool, error) {
	if f, ok := in.(FallibleInput); ok {
		return f.Read()
	}
	return in.Get(), nil
}

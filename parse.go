package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/tidwall/gjson"
)

// ErrMalformedInput is returned for instances or operation logs that do not
// follow the whitespace-separated integer format.
var ErrMalformedInput = errors.New("malformed input")

// Instance is one problem: the target drinks as given, duplicates included.
type Instance struct {
	Targets []Drink
}

// tokenReader pulls whitespace-separated integers off a reader.
type tokenReader struct {
	sc  *bufio.Scanner
	pos int
}

func newTokenReader(r io.Reader) *tokenReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)
	return &tokenReader{sc: sc}
}

func (t *tokenReader) int64(name string) (int64, error) {
	t.pos++
	if !t.sc.Scan() {
		if err := t.sc.Err(); err != nil {
			return 0, fmt.Errorf("%s: %w", name, err)
		}
		return 0, fmt.Errorf("%w: %s: unexpected EOF at token %d", ErrMalformedInput, name, t.pos)
	}
	v, err := strconv.ParseInt(t.sc.Text(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: parse error %q at token %d", ErrMalformedInput, name, t.sc.Text(), t.pos)
	}
	return v, nil
}

func (t *tokenReader) count(name string, limit int) (int, error) {
	v, err := t.int64(name)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: %s: negative count %d", ErrMalformedInput, name, v)
	}
	if v > int64(limit) {
		return 0, fmt.Errorf("%w: %s: count %d exceeds %d", ErrMalformedInput, name, v, limit)
	}
	return int(v), nil
}

func (t *tokenReader) drink(name string) (Drink, error) {
	s, err := t.int64(name)
	if err != nil {
		return Drink{}, err
	}
	f, err := t.int64(name)
	if err != nil {
		return Drink{}, err
	}
	d := Drink{Sweetness: s, Fizziness: f}
	if err := checkCoordinates(d); err != nil {
		return d, fmt.Errorf("%w: %s: %v", ErrMalformedInput, name, err)
	}
	return d, nil
}

func checkCoordinates(d Drink) error {
	if d.Sweetness < 0 || d.Fizziness < 0 {
		return fmt.Errorf("negative coordinate in %v", d)
	}
	if d.Sweetness > MaxCoordinate || d.Fizziness > MaxCoordinate {
		return fmt.Errorf("coordinate above %d in %v", MaxCoordinate, d)
	}
	return nil
}

// preallocated caps capacity hints taken from untrusted counts.
const preallocated = 1 << 16

// ParseInstance reads "N" followed by N "a b" pairs.
func ParseInstance(r io.Reader) (*Instance, error) {
	tr := newTokenReader(r)
	n, err := tr.count("N", MaxTargets)
	if err != nil {
		return nil, err
	}
	inst := &Instance{Targets: make([]Drink, 0, min(n, preallocated))}
	for i := 0; i < n; i++ {
		d, err := tr.drink(fmt.Sprintf("target %d", i))
		if err != nil {
			return nil, err
		}
		inst.Targets = append(inst.Targets, d)
	}
	return inst, nil
}

// ParseOperations reads an operation log: "M" followed by M
// "s f s' f'" lines.
func ParseOperations(r io.Reader) ([]Operation, error) {
	tr := newTokenReader(r)
	m, err := tr.count("M", MaxOperationsPerTarget*MaxTargets)
	if err != nil {
		return nil, err
	}
	ops := make([]Operation, 0, min(m, preallocated))
	for i := 0; i < m; i++ {
		name := fmt.Sprintf("operation %d", i)
		src, err := tr.drink(name)
		if err != nil {
			return nil, err
		}
		dst, err := tr.drink(name)
		if err != nil {
			return nil, err
		}
		ops = append(ops, Operation{Source: src, Result: dst})
	}
	return ops, nil
}

// ParseInstanceJSON extracts targets from a JSON document of the form
// {"targets": [[a, b], ...]}. Objects with "sweetness"/"fizziness" keys are
// accepted in place of pairs.
func ParseInstanceJSON(doc string) (*Instance, error) {
	if !gjson.Valid(doc) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformedInput)
	}
	targets := gjson.Get(doc, "targets")
	if !targets.IsArray() {
		return nil, fmt.Errorf("%w: missing targets array", ErrMalformedInput)
	}

	inst := &Instance{}
	var perr error
	targets.ForEach(func(key, v gjson.Result) bool {
		if len(inst.Targets) == MaxTargets {
			perr = fmt.Errorf("%w: more than %d targets", ErrMalformedInput, MaxTargets)
			return false
		}
		var s, f gjson.Result
		if v.IsArray() {
			pair := v.Array()
			if len(pair) != 2 {
				perr = fmt.Errorf("%w: target %d: want 2 values, got %d", ErrMalformedInput, key.Int(), len(pair))
				return false
			}
			s, f = pair[0], pair[1]
		} else {
			s, f = v.Get("sweetness"), v.Get("fizziness")
		}
		if s.Type != gjson.Number || f.Type != gjson.Number {
			perr = fmt.Errorf("%w: target %d: non-numeric coordinate", ErrMalformedInput, key.Int())
			return false
		}
		if s.Num > float64(MaxCoordinate) || f.Num > float64(MaxCoordinate) {
			perr = fmt.Errorf("%w: target %d: coordinate above %d", ErrMalformedInput, key.Int(), MaxCoordinate)
			return false
		}
		d := Drink{Sweetness: s.Int(), Fizziness: f.Int()}
		if err := checkCoordinates(d); err != nil {
			perr = fmt.Errorf("%w: target %d: %v", ErrMalformedInput, key.Int(), err)
			return false
		}
		inst.Targets = append(inst.Targets, d)
		return true
	})
	if perr != nil {
		return nil, perr
	}
	return inst, nil
}

// readInstance parses the instance file at path.
func readInstance(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	inst, err := ParseInstance(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return inst, nil
}

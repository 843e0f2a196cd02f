package main

import (
	"bufio"
	"io"
	"os"
	"strconv"
)

// WriteOperations writes the operation count followed by one
// "s f s' f'" line per operation.
func WriteOperations(w io.Writer, ops []Operation) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 96)
	buf = strconv.AppendInt(buf, int64(len(ops)), 10)
	buf = append(buf, '\n')
	if _, err := bw.Write(buf); err != nil {
		return err
	}
	for _, op := range ops {
		buf = buf[:0]
		buf = appendDrink(buf, op.Source)
		buf = append(buf, ' ')
		buf = appendDrink(buf, op.Result)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteInstance writes an instance in the format ParseInstance reads.
func WriteInstance(w io.Writer, inst *Instance) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 48)
	buf = strconv.AppendInt(buf, int64(len(inst.Targets)), 10)
	buf = append(buf, '\n')
	if _, err := bw.Write(buf); err != nil {
		return err
	}
	for _, d := range inst.Targets {
		buf = appendDrink(buf[:0], d)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func appendDrink(buf []byte, d Drink) []byte {
	buf = strconv.AppendInt(buf, d.Sweetness, 10)
	buf = append(buf, ' ')
	return strconv.AppendInt(buf, d.Fizziness, 10)
}

func writeInstanceFile(path string, inst *Instance) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteInstance(f, inst); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

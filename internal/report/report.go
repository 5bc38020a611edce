// Package report appends benchmark timings to a plain-text results table.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/Han-16/msmbench/internal/bench"
)

// Append writes one row per timing to path, creating the file with a header
// when it is new or empty.
func Append(path string, procs int, rep bench.Report) error {
	out, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open results: %w", err)
	}
	defer out.Close()

	fi, err := out.Stat()
	if err != nil {
		return fmt.Errorf("stat results: %w", err)
	}
	if fi.Size() == 0 {
		if err := WriteHeader(out, procs, rep.Engine); err != nil {
			return err
		}
	}
	if err := WriteRows(out, rep); err != nil {
		return err
	}
	return out.Close()
}

func WriteHeader(w io.Writer, procs int, engine string) error {
	if _, err := fmt.Fprintf(w, "# MSM Benchmark Results (engine=%s, procs=%d)\n", engine, procs); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "# exp | n | distribution | batch | iters | seed | Best | Avg")
	return err
}

func WriteRows(w io.Writer, rep bench.Report) error {
	for _, t := range rep.Timings {
		if _, err := fmt.Fprintf(w, "%d | %d | %s | %d | %d | %d | %s | %s\n",
			rep.Exp, t.N, t.Distribution, t.Batch, t.Iters, rep.Seed, t.Best, t.Avg); err != nil {
			return err
		}
	}
	return nil
}

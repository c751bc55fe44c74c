package io

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/matzehuels/edgecross/pkg/metric"
)

// SinglesFile is the file [WriteSeriesDir] writes scalar values to.
const SinglesFile = "_singles.txt"

// WriteWithIndex writes rows as "index<TAB>value" lines in the order given.
// Values use the shortest representation that round-trips.
func WriteWithIndex(rows []metric.Row, w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, r := range rows {
		if _, err := fmt.Fprintf(bw, "%d\t%s\n", r.Index, formatValue(r.Value)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteSingles writes values as "NAME<TAB>value" lines.
func WriteSingles(values []metric.Value, w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, v := range values {
		if _, err := fmt.Fprintf(bw, "%s\t%s\n", v.Name, formatValue(v.Value)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteSeriesDir writes res into dir: one "<NAME>.txt" per series and
// [SinglesFile] with the scalar values. The directory is created if missing.
// It returns the paths written.
func WriteSeriesDir(res *metric.Result, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	var paths []string
	for _, s := range res.Series() {
		path := filepath.Join(dir, s.Name+".txt")
		if err := writeFile(path, func(w io.Writer) error { return WriteWithIndex(s.Rows, w) }); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	path := filepath.Join(dir, SinglesFile)
	if err := writeFile(path, func(w io.Writer) error { return WriteSingles(res.Values(), w) }); err != nil {
		return paths, err
	}
	return append(paths, path), nil
}

// WriteResult encodes res as indented JSON.
func WriteResult(res any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportResult writes res as JSON to a file at path.
func ExportResult(res any, path string) error {
	return writeFile(path, func(w io.Writer) error { return WriteResult(res, w) })
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

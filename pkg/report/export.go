// Package report renders the road map as downloadable artifacts.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/DrSkyle/roadmap/pkg/graph"
	"github.com/DrSkyle/roadmap/pkg/mapfile"
	"github.com/DrSkyle/roadmap/pkg/snapshot"
	"gopkg.in/yaml.v3"
)

// Format selects the export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
	FormatHCL  Format = "hcl"
)

// BaseName is the export file name without extension.
const BaseName = "city-road-map"

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML, FormatCSV, FormatHCL:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported export format %q (want json, yaml, csv or hcl)", s)
}

// FileName returns the artifact name for the format.
func FileName(f Format) string {
	return BaseName + "." + string(f)
}

// Export writes the record to w.
func Export(w io.Writer, rec snapshot.Record, f Format) error {
	switch f {
	case FormatJSON:
		data, err := snapshot.Encode(rec)
		if err != nil {
			return err
		}
		_, err = w.Write(append(data, '\n'))
		return err
	case FormatYAML:
		return exportYAML(w, rec)
	case FormatCSV:
		return exportCSV(w, rec)
	case FormatHCL:
		s := graph.NewMemoryStore()
		if err := rec.Apply(s); err != nil {
			return fmt.Errorf("export hcl: %w", err)
		}
		return mapfile.Write(w, s)
	}
	return fmt.Errorf("unsupported export format %q", f)
}

// WriteFile exports into dir and returns the written path.
func WriteFile(dir string, rec snapshot.Record, f Format) (string, error) {
	var buf bytes.Buffer
	if err := Export(&buf, rec, f); err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export dir: %w", err)
	}
	path := filepath.Join(dir, FileName(f))
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", err
	}
	return path, nil
}

func exportYAML(w io.Writer, rec snapshot.Record) error {
	if rec.Nodes == nil {
		rec.Nodes = []snapshot.City{}
	}
	if rec.Edges == nil {
		rec.Edges = []snapshot.Road{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// exportCSV writes one row per road with city names resolved.
func exportCSV(w io.Writer, rec snapshot.Record) error {
	names := make(map[int]string, len(rec.Nodes))
	for _, c := range rec.Nodes {
		names[c.ID] = c.Name
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "from", "to", "weight"}); err != nil {
		return err
	}
	for _, r := range rec.Edges {
		row := []string{
			strconv.Itoa(r.ID),
			names[r.A],
			names[r.B],
			graph.FormatWeight(r.W),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

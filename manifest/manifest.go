// Package manifest implements the partition-manifest sidecar file
// format of spec.md §6: one line per partition,
// `<wkt-envelope>;<startEpochMillisOrEmpty>;<endEpochMillisOrEmpty>;<partFileName>`.
// File access goes through github.com/grailbio/base/file so manifests
// and part files can live on local disk or S3 (via s3file), the same
// way encoding/pam locates per-partition index/data files
// (pam.ListIndexes, pam.FileInfo).
package manifest

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/pkg/errors"

	"github.com/grailbio/stark/spatial"
	"github.com/grailbio/stark/sterrors"
)

// FileName is the conventional manifest file name located under a
// dataset directory; its absence means "read everything" (spec.md §6).
const FileName = "partition_info"

// Entry is one partition's manifest record.
type Entry struct {
	Envelope spatial.NRectRange
	// Start/End are epoch milliseconds; nil means unbounded on that side.
	// Both nil means the partition carries no temporal component.
	Start    *int64
	End      *int64
	PartFile string
}

// Write serializes entries to path, one line per entry, in order.
func Write(ctx context.Context, path string, entries []Entry) error {
	out, err := file.Create(ctx, path)
	if err != nil {
		return errors.Wrapf(err, "manifest.Write: create %v", path)
	}
	w := bufio.NewWriter(out.Writer(ctx))
	for _, e := range entries {
		line, err := formatLine(e)
		if err != nil {
			_ = out.Close(ctx)
			return errors.Wrapf(err, "manifest.Write: %v", path)
		}
		if _, err := w.WriteString(line + "\n"); err != nil {
			_ = out.Close(ctx)
			return errors.Wrapf(err, "manifest.Write: write %v", path)
		}
	}
	if err := w.Flush(); err != nil {
		_ = out.Close(ctx)
		return errors.Wrapf(err, "manifest.Write: flush %v", path)
	}
	return out.Close(ctx)
}

func formatLine(e Entry) (string, error) {
	wkt, err := formatWKT(e.Envelope)
	if err != nil {
		return "", err
	}
	start := ""
	if e.Start != nil {
		start = strconv.FormatInt(*e.Start, 10)
	}
	end := ""
	if e.End != nil {
		end = strconv.FormatInt(*e.End, 10)
	}
	return strings.Join([]string{wkt, start, end, e.PartFile}, ";"), nil
}

// Read loads the manifest at path. ok=false with a nil error means the
// manifest does not exist, matching spec.md §6's "its absence means
// read everything" contract — callers should treat that as "no
// pruning information available", not as an error.
func Read(ctx context.Context, path string) (entries []Entry, ok bool, err error) {
	in, openErr := file.Open(ctx, path)
	if openErr != nil {
		return nil, false, nil
	}
	defer func() { _ = in.Close(ctx) }()

	scanner := bufio.NewScanner(in.Reader(ctx))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		e, err := parseLine(line)
		if err != nil {
			return nil, false, sterrors.WrapDomain(err, "manifest.Read", fmt.Sprintf("%s:%d", path, lineNo))
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, false, errors.Wrapf(err, "manifest.Read: %v", path)
	}
	return entries, true, nil
}

func parseLine(line string) (Entry, error) {
	fields := strings.Split(line, ";")
	if len(fields) != 4 {
		return Entry{}, errors.Errorf("expected 4 fields, got %d: %q", len(fields), line)
	}
	envelope, err := parseWKT(fields[0])
	if err != nil {
		return Entry{}, err
	}
	start, err := parseOptionalInt64(fields[1])
	if err != nil {
		return Entry{}, errors.Wrapf(err, "start field %q", fields[1])
	}
	end, err := parseOptionalInt64(fields[2])
	if err != nil {
		return Entry{}, errors.Wrapf(err, "end field %q", fields[2])
	}
	return Entry{Envelope: envelope, Start: start, End: end, PartFile: fields[3]}, nil
}

func parseOptionalInt64(s string) (*int64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// formatWKT renders a 2-D NRectRange as a WKT POLYGON envelope,
// vertices in counter-clockwise order starting at (minX, minY).
func formatWKT(r spatial.NRectRange) (string, error) {
	if r.Dim() != 2 {
		return "", errors.Errorf("formatWKT: only 2-D ranges are supported, got dim=%d", r.Dim())
	}
	minX, minY := r.LL[0], r.LL[1]
	maxX, maxY := r.UR[0], r.UR[1]
	return fmt.Sprintf("POLYGON((%v %v, %v %v, %v %v, %v %v, %v %v))",
		minX, minY, maxX, minY, maxX, maxY, minX, maxY, minX, minY), nil
}

// parseWKT parses the envelope format formatWKT produces back into an
// NRectRange (the min/max corner of the polygon's vertices).
func parseWKT(s string) (spatial.NRectRange, error) {
	s = strings.TrimSpace(s)
	const prefix, suffix = "POLYGON((", "))"
	if !strings.HasPrefix(s, prefix) || !strings.HasSuffix(s, suffix) {
		return spatial.NRectRange{}, errors.Errorf("not a POLYGON envelope: %q", s)
	}
	inner := s[len(prefix) : len(s)-len(suffix)]
	var minX, minY, maxX, maxY float64
	first := true
	for _, vtx := range strings.Split(inner, ",") {
		fields := strings.Fields(vtx)
		if len(fields) != 2 {
			return spatial.NRectRange{}, errors.Errorf("malformed vertex %q in %q", vtx, s)
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return spatial.NRectRange{}, err
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return spatial.NRectRange{}, err
		}
		if first {
			minX, maxX, minY, maxY = x, x, y, y
			first = false
			continue
		}
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}
	return spatial.NewRect(spatial.NPoint{minX, minY}, spatial.NPoint{maxX, maxY})
}

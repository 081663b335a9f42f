package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/gogpu/gg"

	"github.com/san-kum/efield/internal/field"
	"github.com/san-kum/efield/internal/grid"
	"github.com/san-kum/efield/internal/streamline"
)

var (
	lineHeader   = []string{"line", "charge", "step", "x", "y", "z"}
	sampleHeader = []string{"x", "y", "z", "ex", "ey", "ez", "magnitude", "length", "color"}
)

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// WriteLinesCSV writes one row per traced point.
func WriteLinesCSV(w io.Writer, lines []streamline.Line) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(lineHeader); err != nil {
		return err
	}
	for i, l := range lines {
		for step, p := range l.Points {
			row := []string{
				strconv.Itoa(i), strconv.Itoa(l.Charge), strconv.Itoa(step),
				formatFloat(p.X), formatFloat(p.Y), formatFloat(p.Z),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadLinesCSV parses the output of WriteLinesCSV. Each line's seed is its
// first point.
func ReadLinesCSV(r io.Reader) ([]streamline.Line, error) {
	records, err := readRecords(r, len(lineHeader))
	if err != nil {
		return nil, err
	}

	lines := make([]streamline.Line, 0)
	for n, rec := range records {
		ints, err := parseInts(rec[:3])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n+2, err)
		}
		p, err := parseVec(rec[3:6])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n+2, err)
		}

		idx := ints[0]
		switch {
		case idx == len(lines):
			lines = append(lines, streamline.Line{Charge: ints[1], Seed: p})
		case idx < 0 || idx != len(lines)-1:
			return nil, fmt.Errorf("row %d: line %d out of order", n+2, idx)
		}
		lines[idx].Points = append(lines[idx].Points, p)
	}
	return lines, nil
}

// WriteSamplesCSV writes one row per grid sample. Colours are stored as
// #rrggbb.
func WriteSamplesCSV(w io.Writer, samples []grid.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(sampleHeader); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			formatFloat(s.Position.X), formatFloat(s.Position.Y), formatFloat(s.Position.Z),
			formatFloat(s.Field.X), formatFloat(s.Field.Y), formatFloat(s.Field.Z),
			formatFloat(s.Magnitude), formatFloat(s.Length), grid.HexColor(s.Color),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadSamplesCSV parses the output of WriteSamplesCSV. Direction is
// recomputed from the stored field vector.
func ReadSamplesCSV(r io.Reader) ([]grid.Sample, error) {
	records, err := readRecords(r, len(sampleHeader))
	if err != nil {
		return nil, err
	}

	samples := make([]grid.Sample, 0, len(records))
	for n, rec := range records {
		pos, err := parseVec(rec[0:3])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n+2, err)
		}
		e, err := parseVec(rec[3:6])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n+2, err)
		}
		vals, err := parseFloats(rec[6:8])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n+2, err)
		}
		samples = append(samples, grid.Sample{
			Position:  pos,
			Field:     e,
			Direction: e.Normalize(),
			Magnitude: vals[0],
			Length:    vals[1],
			Color:     gg.Hex(rec[8]),
		})
	}
	return samples, nil
}

// readRecords reads all rows after the header and checks their width.
func readRecords(r io.Reader, width int) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = width
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[1:], nil
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseInts(fields []string) ([]int, error) {
	out := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseVec(fields []string) (field.Vec3, error) {
	v, err := parseFloats(fields)
	if err != nil {
		return field.Vec3{}, err
	}
	return field.Vec3{X: v[0], Y: v[1], Z: v[2]}, nil
}

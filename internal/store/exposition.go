package store

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// WriteTo writes the current snapshot in the text exposition format, one
// line per series:
//
//	metric_name{label1="v1",label2="v2"} value
//
// Counters are written without a label block. Output ordering is stable
// across calls for unchanged content.
func (s *Store) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, series := range s.Snapshot() {
		n, err := fmt.Fprintf(w, "%s %s\n", seriesIdent(series), formatValue(series.Value))
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Render returns the text exposition of the current snapshot.
func (s *Store) Render() string {
	var b strings.Builder
	s.WriteTo(&b)
	return b.String()
}

// seriesIdent formats the name and label block of a series.
func seriesIdent(series Series) string {
	if len(series.Labels) == 0 {
		return series.Name
	}
	names := make([]string, 0, len(series.Labels))
	for name := range series.Labels {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(series.Name)
	b.WriteByte('{')
	for i, name := range names {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%s=%q", name, series.Labels[name])
	}
	b.WriteByte('}')
	return b.String()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

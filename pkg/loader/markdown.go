package loader

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"finsem-hq/bizgate/pkg/bizmeta/record"
)

// separatorRow matches "| --- | :---: |".
var separatorRow = regexp.MustCompile(`^\|\s*:?-{2,}`)

// Skipped is a table row that was ignored while reading.
type Skipped struct {
	Source string
	Line   int
	Reason string
}

// ReadMarkdown reads the first dictionary table of a Markdown document.
// The table starts at the first row that mentions both code and
// object_type and ends at the first line that is not a table row.
// Separator rows are ignored; rows whose cell count differs from the
// header are skipped and returned so the caller can report them. A
// literal pipe inside a cell is written \|, as in "int\|string".
func ReadMarkdown(r io.Reader, source string) ([]record.Record, []Skipped, error) {
	sc := bufio.NewScanner(bomReader(r))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		header  []string
		out     []record.Record
		skipped []Skipped
		lineNo  int
	)

	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())

		if header == nil {
			if strings.HasPrefix(line, "|") && strings.Contains(line, "code") && strings.Contains(line, "object_type") {
				header = splitRow(line)
			}
			continue
		}

		if !strings.HasPrefix(line, "|") {
			break
		}
		if separatorRow.MatchString(line) {
			continue
		}

		cells := splitRow(line)
		if len(cells) != len(header) {
			skipped = append(skipped, Skipped{
				Source: source,
				Line:   lineNo,
				Reason: "cell count differs from header",
			})
			continue
		}
		raw := make(map[string]string, len(header))
		for i, col := range header {
			raw[col] = cells[i]
		}
		out = append(out, record.FromRaw(raw, record.Origin{File: source, Line: lineNo}))
	}
	if err := sc.Err(); err != nil {
		return nil, nil, NewSourceError(source, lineNo, "read", err)
	}
	if header == nil {
		return nil, nil, NewSourceError(source, 0, "find table", ErrNoTable)
	}
	return out, skipped, nil
}

// splitRow splits "| a | b\|c |" into ["a", "b|c"].
func splitRow(line string) []string {
	line = strings.TrimPrefix(line, "|")
	if strings.HasSuffix(line, "|") && !strings.HasSuffix(line, `\|`) {
		line = line[:len(line)-1]
	}

	var (
		cells []string
		cell  strings.Builder
	)
	for i := 0; i < len(line); i++ {
		switch {
		case line[i] == '\\' && i+1 < len(line) && line[i+1] == '|':
			cell.WriteByte('|')
			i++
		case line[i] == '|':
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
		default:
			cell.WriteByte(line[i])
		}
	}
	return append(cells, strings.TrimSpace(cell.String()))
}

// Package csvfile reads and writes the roster's delimited text format.
//
// The format is a header line followed by one line per person:
//
//	Nombre,Apellidos,Edad
//	"Ana","Ruiz",30
//
// Names are written verbatim inside double quotes with no escaping, and lines
// are split on every comma when read. Names containing commas or quotes do
// not round-trip.
package csvfile

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	rerrors "github.com/wexinc/roster/internal/errors"
	"github.com/wexinc/roster/internal/person"
	"github.com/wexinc/roster/internal/roster"
)

// Header is the first line of every exported file.
const Header = "Nombre,Apellidos,Edad"

// maxLineSize bounds a single line read during import.
const maxLineSize = 1024 * 1024

// osOpen wraps os.Open for testability
var osOpen = func(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// Target receives imported persons.
type Target interface {
	Contains(p person.Person) bool
	Add(p person.Person) (roster.Slot, error)
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	// Lines is the number of data lines read, excluding the header.
	Lines int
	// Accepted is the number of persons added to the target.
	Accepted int
	// Problems holds one error per rejected line, in line order.
	Problems []error
}

// HasProblems reports whether any line was rejected.
func (r *ImportResult) HasProblems() bool {
	return len(r.Problems) > 0
}

// ImportOption configures Import.
type ImportOption func(*importOptions)

type importOptions struct {
	onProblem func(error)
}

// WithProblemHandler calls fn for each rejected line as soon as it is found.
func WithProblemHandler(fn func(error)) ImportOption {
	return func(o *importOptions) {
		o.onProblem = fn
	}
}

// Export writes the header and one line per person to w.
func Export(w io.Writer, seq iter.Seq[person.Person]) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(Header + "\n"); err != nil {
		return rerrors.IOFault("exporting", "", err)
	}
	for p := range seq {
		if _, err := bw.WriteString(FormatLine(p) + "\n"); err != nil {
			return rerrors.IOFault("exporting", "", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return rerrors.IOFault("exporting", "", err)
	}
	return nil
}

// FormatLine renders one person as a data line without the newline.
func FormatLine(p person.Person) string {
	return fmt.Sprintf(`"%s","%s",%d`, p.FirstName, p.LastName, p.Age)
}

// ExportFile writes seq to path. The data goes to a temporary file in the
// same directory that is renamed over path only after a complete write, so a
// failed export leaves any existing file untouched.
func ExportFile(path string, seq iter.Seq[person.Person]) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return rerrors.IOFault("exporting", path, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if err = tmp.Chmod(0644); err != nil {
		_ = tmp.Close()
		return rerrors.IOFault("exporting", path, err)
	}
	if err = Export(tmp, seq); err != nil {
		_ = tmp.Close()
		return withPath(err, path)
	}
	if err = tmp.Close(); err != nil {
		return rerrors.IOFault("exporting", path, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return rerrors.IOFault("exporting", path, err)
	}
	return nil
}

// Import reads lines from r and adds each valid person to dst.
// The first line is skipped without inspection. Malformed lines, invalid ages
// and duplicates are recorded in the result and do not stop the import.
// A read failure aborts the import with an IO error; persons added before
// the failure stay in dst.
func Import(r io.Reader, dst Target, opts ...ImportOption) (*ImportResult, error) {
	var o importOptions
	for _, opt := range opts {
		opt(&o)
	}

	result := &ImportResult{
		Problems: []error{},
	}
	report := func(err error) {
		result.Problems = append(result.Problems, err)
		if o.onProblem != nil {
			o.onProblem(err)
		}
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if lineNum == 1 {
			continue
		}
		line := scanner.Text()
		result.Lines++

		p, err := ParseLine(lineNum, line)
		if err != nil {
			report(err)
			continue
		}

		if dst.Contains(p) {
			report(&rerrors.DuplicateError{Name: p.FullName(), Line: lineNum})
			continue
		}
		if _, err := dst.Add(p); err != nil {
			var dup *rerrors.DuplicateError
			if rerrors.As(err, &dup) {
				dup.Line = lineNum
			}
			report(err)
			continue
		}
		result.Accepted++
	}

	if err := scanner.Err(); err != nil {
		return result, rerrors.IOFault("importing", "", err)
	}

	return result, nil
}

// ParseLine parses one data line. lineNum is used only for error reporting.
func ParseLine(lineNum int, line string) (person.Person, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 3 {
		return person.Person{}, rerrors.MalformedLine(lineNum, line, len(fields))
	}

	first := unquote(strings.TrimSpace(fields[0]))
	last := unquote(strings.TrimSpace(fields[1]))
	ageText := strings.TrimSpace(fields[2])

	age, err := strconv.Atoi(ageText)
	if err != nil {
		return person.Person{}, rerrors.InvalidAge(lineNum, line, ageText, err)
	}

	return person.New(first, last, age), nil
}

// ImportFile opens path and imports it into dst.
func ImportFile(path string, dst Target, opts ...ImportOption) (*ImportResult, error) {
	f, err := osOpen(path)
	if err != nil {
		return nil, rerrors.IOFault("importing", path, err)
	}
	defer f.Close()

	result, err := Import(f, dst, opts...)
	if err != nil {
		return result, withPath(err, path)
	}
	return result, nil
}

// Check parses r into a scratch roster and reports the same problems Import
// would, without touching any caller state.
func Check(r io.Reader) (*ImportResult, error) {
	return Import(r, roster.NewStore())
}

// unquote removes one pair of surrounding double quotes.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

func withPath(err error, path string) error {
	var re *rerrors.RosterError
	if rerrors.As(err, &re) && re.Details != nil {
		if _, ok := re.Details["path"]; !ok {
			re.WithDetails("path", path)
		}
	}
	return err
}

package csvfile

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	rerrors "github.com/wexinc/roster/internal/errors"
	"github.com/wexinc/roster/internal/person"
	"github.com/wexinc/roster/internal/roster"
)

// failingWriter fails after accepting limit bytes.
type failingWriter struct {
	limit int
	n     int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.n+len(p) > w.limit {
		return 0, errors.New("disk full")
	}
	w.n += len(p)
	return len(p), nil
}

// failingReader returns data and then an error instead of io.EOF.
type failingReader struct {
	data io.Reader
}

func (r *failingReader) Read(p []byte) (int, error) {
	n, err := r.data.Read(p)
	if err == io.EOF {
		return n, errors.New("device unplugged")
	}
	return n, err
}

func TestExport(t *testing.T) {
	var sb strings.Builder
	people := []person.Person{
		person.New("Ana", "Ruiz", 30),
		person.New("Luis", "Gomez", 25),
	}

	if err := Export(&sb, slices.Values(people)); err != nil {
		t.Fatalf("Export: %v", err)
	}

	want := "Nombre,Apellidos,Edad\n\"Ana\",\"Ruiz\",30\n\"Luis\",\"Gomez\",25\n"
	if sb.String() != want {
		t.Errorf("Export output =\n%s\nwant\n%s", sb.String(), want)
	}
}

func TestExport_Empty(t *testing.T) {
	var sb strings.Builder
	if err := Export(&sb, slices.Values([]person.Person{})); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if sb.String() != Header+"\n" {
		t.Errorf("Export output = %q, want header only", sb.String())
	}
}

func TestFormatLine_NoEscaping(t *testing.T) {
	got := FormatLine(person.New(`Jo"e`, `O\Brien`, -3))
	want := `"Jo"e","O\Brien",-3`
	if got != want {
		t.Errorf("FormatLine() = %q, want %q", got, want)
	}
}

func TestExport_WriteFailure(t *testing.T) {
	people := make([]person.Person, 0, 1000)
	for i := range 1000 {
		people = append(people, person.New("Name", "Surname", i))
	}

	err := Export(&failingWriter{limit: 100}, slices.Values(people))
	if err == nil {
		t.Fatal("expected error from failing writer")
	}
	if !errors.Is(err, rerrors.ErrIO) {
		t.Errorf("error = %v, want ErrIO", err)
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("error %q should include the cause", err.Error())
	}
}

func TestRoundTrip(t *testing.T) {
	src := roster.NewStore()
	_, _ = src.Add(person.New("Luis", "Gomez", 25))

	var sb strings.Builder
	if err := Export(&sb, slices.Values(src.Persons())); err != nil {
		t.Fatalf("Export: %v", err)
	}

	dst := roster.NewStore()
	result, err := Import(strings.NewReader(sb.String()), dst)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if result.HasProblems() {
		t.Fatalf("unexpected problems: %v", result.Problems)
	}

	got, want := dst.Persons(), src.Persons()
	if len(got) != len(want) {
		t.Fatalf("imported %v, want %v", got, want)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("person %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestImport(t *testing.T) {
	input := `Nombre,Apellidos,Edad
"Ana","Ruiz",30
Juan,Diaz,40
  "Pedro" , "Lopez" , 20 `

	dst := roster.NewStore()
	result, err := Import(strings.NewReader(input), dst)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if result.Lines != 3 {
		t.Errorf("Lines = %d, want 3", result.Lines)
	}
	if result.Accepted != 3 {
		t.Errorf("Accepted = %d, want 3", result.Accepted)
	}
	if len(result.Problems) != 0 {
		t.Errorf("Problems = %v, want none", result.Problems)
	}

	want := []person.Person{
		person.New("Ana", "Ruiz", 30),
		person.New("Juan", "Diaz", 40),
		person.New("Pedro", "Lopez", 20),
	}
	got := dst.Persons()
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("person %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestImport_HeaderIsNotValidated(t *testing.T) {
	dst := roster.NewStore()
	result, err := Import(strings.NewReader("this is not a header\n\"Ana\",\"Ruiz\",30\n"), dst)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if result.HasProblems() || dst.Len() != 1 {
		t.Errorf("problems = %v, len = %d; want none and 1", result.Problems, dst.Len())
	}
}

func TestImport_InvalidAge(t *testing.T) {
	dst := roster.NewStore()
	result, err := Import(strings.NewReader(Header+"\nAna,Ruiz,x\n"), dst)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if len(result.Problems) != 1 {
		t.Fatalf("Problems = %v, want exactly one", result.Problems)
	}
	problem := result.Problems[0]
	if !errors.Is(problem, rerrors.ErrInvalidAge) {
		t.Errorf("problem = %v, want ErrInvalidAge", problem)
	}

	var ageErr *rerrors.InvalidAgeError
	if !errors.As(problem, &ageErr) {
		t.Fatalf("problem type = %T, want *InvalidAgeError", problem)
	}
	if ageErr.Raw != "Ana,Ruiz,x" || ageErr.Line != 2 || ageErr.Value != "x" {
		t.Errorf("InvalidAgeError = %+v", ageErr)
	}
	if dst.Len() != 0 {
		t.Errorf("Len() = %d, want roster unchanged", dst.Len())
	}
}

func TestImport_MalformedLineContinues(t *testing.T) {
	input := Header + "\nAna,Ruiz\n\"Juan\",\"Diaz\",40\n"
	dst := roster.NewStore()

	result, err := Import(strings.NewReader(input), dst)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if len(result.Problems) != 1 {
		t.Fatalf("Problems = %v, want exactly one", result.Problems)
	}
	var mal *rerrors.MalformedLineError
	if !errors.As(result.Problems[0], &mal) {
		t.Fatalf("problem type = %T, want *MalformedLineError", result.Problems[0])
	}
	if mal.Line != 2 || mal.Raw != "Ana,Ruiz" || mal.Fields != 2 {
		t.Errorf("MalformedLineError = %+v", mal)
	}
	if !dst.Contains(person.New("Juan", "Diaz", 40)) {
		t.Error("valid line after a malformed one should be imported")
	}
}

func TestImport_MalformedVariants(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"too many fields", `"Ana","Ruiz",30,extra`},
		{"comma inside quotes", `"Ruiz, Ana","Lopez",30`},
		{"blank line", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Import(strings.NewReader(Header+"\n"+tt.line+"\n"), roster.NewStore())
			if err != nil {
				t.Fatalf("Import: %v", err)
			}
			if len(result.Problems) != 1 || !errors.Is(result.Problems[0], rerrors.ErrMalformedLine) {
				t.Errorf("Problems = %v, want one malformed line", result.Problems)
			}
		})
	}
}

func TestImport_Duplicate(t *testing.T) {
	dst := roster.NewStore()
	_, _ = dst.Add(person.New("Ana", "Ruiz", 30))

	input := Header + "\n\"Ana\",\"Ruiz\",30\n\"Ana\",\"Ruiz\",31\n"
	result, err := Import(strings.NewReader(input), dst)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if len(result.Problems) != 1 {
		t.Fatalf("Problems = %v, want exactly one", result.Problems)
	}
	var dup *rerrors.DuplicateError
	if !errors.As(result.Problems[0], &dup) {
		t.Fatalf("problem type = %T, want *DuplicateError", result.Problems[0])
	}
	if dup.Name != "Ana Ruiz" || dup.Line != 2 {
		t.Errorf("DuplicateError = %+v", dup)
	}
	if dst.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (existing + age 31)", dst.Len())
	}
	if result.Accepted != 1 {
		t.Errorf("Accepted = %d, want 1", result.Accepted)
	}
}

func TestImport_DuplicateWithinFile(t *testing.T) {
	input := Header + "\nAna,Ruiz,30\nAna,Ruiz,30\n"
	dst := roster.NewStore()

	result, err := Import(strings.NewReader(input), dst)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if dst.Len() != 1 || len(result.Problems) != 1 {
		t.Errorf("len = %d, problems = %v; want 1 and one duplicate", dst.Len(), result.Problems)
	}
}

func TestImport_NegativeAgeAccepted(t *testing.T) {
	dst := roster.NewStore()
	result, err := Import(strings.NewReader(Header+"\nAna,Ruiz,-5\n"), dst)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if result.HasProblems() || !dst.Contains(person.New("Ana", "Ruiz", -5)) {
		t.Errorf("negative age should import; problems = %v", result.Problems)
	}
}

func TestImport_ProblemHandler(t *testing.T) {
	input := Header + "\nbad\nAna,Ruiz,x\nAna,Ruiz,30\nAna,Ruiz,30\n"

	var seen []string
	result, err := Import(strings.NewReader(input), roster.NewStore(),
		WithProblemHandler(func(err error) {
			seen = append(seen, rerrors.Describe(err))
		}))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	want := []string{
		"line 2: invalid line format - bad",
		"line 3: age must be a valid number on line - Ana,Ruiz,x",
		"line 5: the person Ana Ruiz already exists in the table",
	}
	if len(seen) != len(want) {
		t.Fatalf("handler saw %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("problem %d = %q, want %q", i, seen[i], want[i])
		}
	}
	if len(result.Problems) != 3 {
		t.Errorf("result.Problems length = %d, want 3", len(result.Problems))
	}
}

func TestImport_ReadFailureKeepsAdded(t *testing.T) {
	input := Header + "\nAna,Ruiz,30\nJuan,Diaz,40\n"
	dst := roster.NewStore()

	result, err := Import(&failingReader{data: strings.NewReader(input)}, dst)
	if err == nil {
		t.Fatal("expected error from failing reader")
	}
	if !errors.Is(err, rerrors.ErrIO) {
		t.Errorf("error = %v, want ErrIO", err)
	}
	if result == nil || result.Accepted != 2 {
		t.Fatalf("result = %+v, want 2 accepted before the fault", result)
	}
	if dst.Len() != 2 {
		t.Errorf("Len() = %d, want records before the fault to remain", dst.Len())
	}
}

func TestImport_CRLF(t *testing.T) {
	dst := roster.NewStore()
	result, err := Import(strings.NewReader(Header+"\r\n\"Ana\",\"Ruiz\",30\r\n"), dst)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if result.HasProblems() || !dst.Contains(person.New("Ana", "Ruiz", 30)) {
		t.Errorf("CRLF input should import cleanly; problems = %v", result.Problems)
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		line    string
		want    person.Person
		wantErr error
	}{
		{`"Ana","Ruiz",30`, person.New("Ana", "Ruiz", 30), nil},
		{`Ana,Ruiz,30`, person.New("Ana", "Ruiz", 30), nil},
		{`"","",0`, person.New("", "", 0), nil},
		{`""Ana"","Ruiz",30`, person.New(`"Ana"`, "Ruiz", 30), nil},
		{`Ana,Ruiz, 7 `, person.New("Ana", "Ruiz", 7), nil},
		{`Ana,Ruiz,"30"`, person.Person{}, rerrors.ErrInvalidAge},
		{`Ana,Ruiz,3.5`, person.Person{}, rerrors.ErrInvalidAge},
		{`Ana;Ruiz;30`, person.Person{}, rerrors.ErrMalformedLine},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseLine(7, tt.line)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ParseLine(%q) error = %v, want %v", tt.line, err, tt.wantErr)
				}
				if rerrors.LineOf(err) != 7 {
					t.Errorf("LineOf() = %d, want 7", rerrors.LineOf(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLine(%q): %v", tt.line, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseLine(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestExportFile_ImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.csv")
	people := []person.Person{
		person.New("Ana", "Ruiz", 30),
		person.New("Luis", "Gomez", 25),
	}

	if err := ExportFile(path, slices.Values(people)); err != nil {
		t.Fatalf("ExportFile: %v", err)
	}

	dst := roster.NewStore()
	result, err := ImportFile(path, dst)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if result.Accepted != 2 || dst.Len() != 2 {
		t.Errorf("Accepted = %d, Len = %d; want 2 and 2", result.Accepted, dst.Len())
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only the export (no temp files)", len(entries))
	}
}

func TestExportFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.csv")
	if err := os.WriteFile(path, []byte("old contents\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := ExportFile(path, slices.Values([]person.Person{person.New("Ana", "Ruiz", 30)})); err != nil {
		t.Fatalf("ExportFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != Header+"\n\"Ana\",\"Ruiz\",30\n" {
		t.Errorf("file contents = %q", string(data))
	}
}

func TestExportFile_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "roster.csv")

	err := ExportFile(path, slices.Values([]person.Person{}))
	if !errors.Is(err, rerrors.ErrIO) {
		t.Fatalf("error = %v, want ErrIO", err)
	}
	var re *rerrors.RosterError
	if !errors.As(err, &re) || re.Details["path"] != path {
		t.Errorf("error details = %+v, want path %q", re, path)
	}
}

func TestImportFile_Missing(t *testing.T) {
	_, err := ImportFile(filepath.Join(t.TempDir(), "nope.csv"), roster.NewStore())
	if !errors.Is(err, rerrors.ErrIO) {
		t.Errorf("error = %v, want ErrIO", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, should wrap os.ErrNotExist", err)
	}
}

type closeTracker struct {
	io.Reader
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

func TestImportFile_ClosesOnFailure(t *testing.T) {
	tracker := &closeTracker{Reader: &failingReader{data: strings.NewReader(Header + "\n")}}

	orig := osOpen
	osOpen = func(string) (io.ReadCloser, error) { return tracker, nil }
	defer func() { osOpen = orig }()

	_, err := ImportFile("roster.csv", roster.NewStore())
	if err == nil {
		t.Fatal("expected error")
	}
	if !tracker.closed {
		t.Error("file should be closed after a failed import")
	}
	var re *rerrors.RosterError
	if errors.As(err, &re) && re.Details["path"] != "roster.csv" {
		t.Errorf("error path detail = %q, want roster.csv", re.Details["path"])
	}
}

func TestCheck(t *testing.T) {
	input := Header + "\nAna,Ruiz,30\nbroken\nAna,Ruiz,30\n"

	result, err := Check(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if result.Lines != 3 || result.Accepted != 1 || len(result.Problems) != 2 {
		t.Errorf("result = %+v, want 3 lines, 1 accepted, 2 problems", result)
	}
}

package components

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestNewPathPrompt(t *testing.T) {
	f := NewPathPrompt("/tmp/project")
	if f.IsVisible() {
		t.Error("prompt should start hidden")
	}
	if f.View() != "" {
		t.Error("hidden prompt should render nothing")
	}
	if f.Update(runes("a")) != nil {
		t.Error("hidden prompt should ignore input")
	}
}

func TestPathPrompt_Resolved(t *testing.T) {
	tests := []struct {
		base  string
		value string
		want  string
	}{
		{"/tmp/project", "roster.csv", filepath.Join("/tmp/project", "roster.csv")},
		{"/tmp/project", "/abs/roster.csv", "/abs/roster.csv"},
		{"", "roster.csv", "roster.csv"},
		{"/tmp/project", "", ""},
	}
	for _, tt := range tests {
		f := NewPathPrompt(tt.base)
		f.SetValue(tt.value)
		if got := f.Resolved(); got != tt.want {
			t.Errorf("Resolved(%q, %q) = %q, want %q", tt.base, tt.value, got, tt.want)
		}
	}
}

func TestPathPrompt_ImportPreview(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "people.csv", "Nombre,Apellidos,Edad\n\"Ana\",\"Ruiz\",30\nbad line\n")

	f := NewPathPrompt(dir)
	f.Show(PathImport, "people.csv")

	if f.Problem() != "" {
		t.Fatalf("unexpected problem %q", f.Problem())
	}
	preview := f.Preview()
	if preview == nil {
		t.Fatal("expected a preview")
	}
	if preview.Lines != 2 || preview.Accepted != 1 || len(preview.Problems) != 1 {
		t.Errorf("unexpected preview %+v", preview)
	}
	if !strings.Contains(f.View(), "1 with problems") {
		t.Error("view should mention the problem count")
	}
}

func TestPathPrompt_ImportMissingFile(t *testing.T) {
	f := NewPathPrompt(t.TempDir())
	f.Show(PathImport, "missing.csv")

	if f.Problem() != "File not found" {
		t.Errorf("expected 'File not found', got %q", f.Problem())
	}
	if cmd := f.Update(keyOf(tea.KeyEnter)); cmd != nil {
		t.Error("enter should not submit a missing file")
	}
	if !f.IsVisible() {
		t.Error("prompt should stay open")
	}
}

func TestPathPrompt_Directory(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatal(err)
	}

	f := NewPathPrompt(dir)
	f.Show(PathExport, "sub")
	if !strings.Contains(f.Problem(), "directory") {
		t.Errorf("expected directory problem, got %q", f.Problem())
	}
}

func TestPathPrompt_ExportNewFile(t *testing.T) {
	dir := t.TempDir()
	f := NewPathPrompt(dir)
	f.Show(PathExport, "out.csv")

	msg := run(f.Update(keyOf(tea.KeyEnter)))
	submitted, ok := msg.(PathSubmittedMsg)
	if !ok {
		t.Fatalf("expected PathSubmittedMsg, got %T", msg)
	}
	if submitted.Purpose != PathExport {
		t.Errorf("expected export purpose, got %v", submitted.Purpose)
	}
	if submitted.Path != filepath.Join(dir, "out.csv") {
		t.Errorf("unexpected path %q", submitted.Path)
	}
	if submitted.Exists {
		t.Error("new file should not be marked existing")
	}
	if f.IsVisible() {
		t.Error("prompt should hide after submit")
	}
}

func TestPathPrompt_ExportExistingFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "out.csv", "Nombre,Apellidos,Edad\n")

	f := NewPathPrompt(dir)
	f.Show(PathExport, "out.csv")
	if !strings.Contains(f.View(), "will be replaced") {
		t.Error("view should warn about replacing the file")
	}

	submitted, ok := run(f.Update(keyOf(tea.KeyEnter))).(PathSubmittedMsg)
	if !ok {
		t.Fatal("expected PathSubmittedMsg")
	}
	if !submitted.Exists {
		t.Error("existing file should be marked")
	}
}

func TestPathPrompt_ExportMissingDirectory(t *testing.T) {
	f := NewPathPrompt(t.TempDir())
	f.Show(PathExport, filepath.Join("nope", "out.csv"))

	if !strings.HasPrefix(f.Problem(), "Directory does not exist") {
		t.Errorf("unexpected problem %q", f.Problem())
	}
}

func TestPathPrompt_TypingRevalidates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", "Nombre,Apellidos,Edad\n")

	f := NewPathPrompt(dir)
	f.Show(PathImport, "")
	if f.Problem() == "" {
		t.Fatal("empty path should be a problem")
	}

	typeText(f.Update, "a.csv")
	if f.Value() != "a.csv" {
		t.Fatalf("expected typed value, got %q", f.Value())
	}
	if f.Problem() != "" {
		t.Errorf("expected no problem after typing, got %q", f.Problem())
	}
}

func TestPathPrompt_Cancel(t *testing.T) {
	f := NewPathPrompt("")
	f.Show(PathImport, "x.csv")

	if _, ok := run(f.Update(keyOf(tea.KeyEsc))).(PathCanceledMsg); !ok {
		t.Error("expected PathCanceledMsg")
	}
	if f.IsVisible() {
		t.Error("prompt should hide on esc")
	}
}

func TestPathPurpose_String(t *testing.T) {
	if PathImport.String() != "import" || PathExport.String() != "export" {
		t.Error("unexpected purpose names")
	}
}

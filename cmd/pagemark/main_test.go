package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bft-labs/pagemark/internal/domain"
)

const handbook = `
name = "handbook.pdf"
pages = 4
locked_pages = [3]

[[bookmarks]]
name = "Intro"
page = 1

[[bookmarks]]
name = "Overview"
page = 1

[[bookmarks]]
name = "Usage"
page = 3

[[annotations]]
page = 2
text = "draft"
`

// execute runs the CLI with a scratch HOME so no user config is read.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{"PAGEMARK_CONFIRM", "PAGEMARK_FORMAT", "PAGEMARK_OUTPUT", "PAGEMARK_WATCH"} {
		t.Setenv(k, "")
	}

	var out, logs bytes.Buffer
	root := newRootCmd(&logs)
	root.SetOut(&out)
	root.SetErr(&logs)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "handbook.toml")
	if err := os.WriteFile(path, []byte(handbook), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAnalyze_Text(t *testing.T) {
	out, err := execute(t, "analyze", writeFixture(t))
	if err != nil {
		t.Fatalf("analyze error = %v", err)
	}
	for _, want := range []string{
		"Total pages: 4",
		"Bookmarks: 3",
		"Pages without bookmarks: 2, 4",
		"Page 1 (2 bookmarks):",
		"- Overview",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFooter_JSON(t *testing.T) {
	reportPath := filepath.Join(t.TempDir(), "report.json")
	out, err := execute(t, "footer", writeFixture(t), "--confirm", "yes", "--format", "json", "--output", reportPath)
	if err != nil {
		t.Fatalf("footer error = %v", err)
	}

	var rep domain.Report
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("stdout is not a JSON report: %v\n%s", err, out)
	}
	if rep.Batch == nil {
		t.Fatal("batch missing after confirmation")
	}
	// Usage targets the locked page.
	if rep.Batch.SuccessCount != 2 || rep.Batch.FailureCount != 1 {
		t.Errorf("batch = %+v, want 2 succeeded and 1 failed", rep.Batch)
	}
	if len(rep.Batch.Failures) != 1 || rep.Batch.Failures[0].BookmarkName != "Usage" {
		t.Errorf("failures = %+v", rep.Batch.Failures)
	}

	saved, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("report file not written: %v", err)
	}
	if !bytes.Equal(bytes.TrimSpace(saved), bytes.TrimSpace([]byte(out))) {
		t.Errorf("report file differs from stdout:\n%s\n---\n%s", saved, out)
	}
}

func TestFooter_Declined(t *testing.T) {
	out, err := execute(t, "footer", writeFixture(t), "--confirm", "no")
	if err != nil {
		t.Fatalf("footer error = %v", err)
	}
	if strings.Contains(out, "Annotations added") {
		t.Errorf("declined run reported a batch:\n%s", out)
	}
	if !strings.Contains(out, "Total pages: 4") {
		t.Errorf("declined run should still print the analysis:\n%s", out)
	}
}

func TestFooter_PromptEOFDeclines(t *testing.T) {
	out, err := execute(t, "footer", writeFixture(t))
	if err != nil {
		t.Fatalf("footer error = %v", err)
	}
	if strings.Contains(out, "Annotations added") {
		t.Errorf("empty stdin confirmed the batch:\n%s", out)
	}
}

func TestClean(t *testing.T) {
	out, err := execute(t, "clean", writeFixture(t), "--confirm", "yes")
	if err != nil {
		t.Fatalf("clean error = %v", err)
	}
	if !strings.Contains(out, "Annotations removed: 1") {
		t.Errorf("output:\n%s", out)
	}

	out, err = execute(t, "clean", writeFixture(t), "--confirm", "no")
	if err != nil {
		t.Fatalf("declined clean error = %v", err)
	}
	if out != "" {
		t.Errorf("declined clean printed %q", out)
	}
}

func TestConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(cfgPath, []byte("format = \"json\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	fixturePath := writeFixture(t)

	out, err := execute(t, "analyze", fixturePath, "--config", cfgPath)
	if err != nil {
		t.Fatalf("analyze error = %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("config file format not applied:\n%s", out)
	}

	out, err = execute(t, "analyze", fixturePath, "--config", cfgPath, "--format", "text")
	if err != nil {
		t.Fatalf("analyze error = %v", err)
	}
	if !strings.HasPrefix(out, "Total pages") {
		t.Errorf("flag did not override config file:\n%s", out)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    func(t *testing.T) []string
		wantErr error
	}{
		{
			name:    "unsupported extension",
			args:    func(t *testing.T) []string { return []string{"analyze", "notes.txt"} },
			wantErr: domain.ErrNoActiveDocument,
		},
		{
			name: "invalid confirm mode",
			args: func(t *testing.T) []string {
				return []string{"footer", writeFixture(t), "--confirm", "maybe"}
			},
			wantErr: domain.ErrInvalidConfig,
		},
		{
			name: "document without bookmarks",
			args: func(t *testing.T) []string {
				path := filepath.Join(t.TempDir(), "empty.toml")
				if err := os.WriteFile(path, []byte("pages = 2\n"), 0644); err != nil {
					t.Fatal(err)
				}
				return []string{"analyze", path}
			},
			wantErr: domain.ErrNoBookmarksFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args(t)...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFooter_DeclineWithStuckPreviewFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sealed.toml")
	fixture := "pages = 2\nsealed_pages = [1]\n\n[[bookmarks]]\nname = \"Intro\"\npage = 1\n"
	if err := os.WriteFile(path, []byte(fixture), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := execute(t, "footer", path, "--confirm", "no")
	if !errors.Is(err, domain.ErrUserCancelled) {
		t.Fatalf("footer error = %v, want a failed cancel wrapping ErrUserCancelled", err)
	}
}

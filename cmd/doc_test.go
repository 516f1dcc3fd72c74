package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/vellum/internal/audit"
	"github.com/PolarWolf314/vellum/internal/configs"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

func TestSealCommand_LegacyKnownAnswer(t *testing.T) {
	dir := setupTestEnvironment(t, "secret")
	plain := filepath.Join(dir, "city.txt")
	writeTestFile(t, plain, "İstanbul")

	output, err := runCLI(t, "doc", "seal", plain)
	if err != nil {
		t.Fatalf("seal failed: %v\n%s", err, output)
	}

	if got := readTestFile(t, plain+".vlm"); got != "JFcf79jPeqbEIkHWTm2MXA==" {
		t.Errorf("Unexpected envelope %q", got)
	}
	if _, err := os.Stat(plain); !os.IsNotExist(err) {
		t.Error("Plain file should be removed without --keep")
	}
	if !strings.Contains(output, "Sealed 1 file") {
		t.Errorf("Expected success message, got: %s", output)
	}
}

func TestSealCommand_V2Keep(t *testing.T) {
	dir := setupTestEnvironment(t, "secret")
	plain := filepath.Join(dir, "notes.md")
	writeTestFile(t, plain, "hello world")

	output, err := runCLI(t, "doc", "seal", plain, "--suite", "xchacha20-poly1305", "--keep")
	if err != nil {
		t.Fatalf("seal failed: %v\n%s", err, output)
	}

	envelope := readTestFile(t, plain+".vlm")
	if !strings.HasPrefix(envelope, "$vellum$v2$xchacha20-poly1305$") {
		t.Errorf("Expected v2 envelope, got %q", envelope)
	}
	if readTestFile(t, plain) != "hello world" {
		t.Error("Plain file should be kept with --keep")
	}
}

func TestSealCommand_DryRunNeedsNoPassword(t *testing.T) {
	dir := setupTestEnvironment(t)
	plain := filepath.Join(dir, "a.txt")
	writeTestFile(t, plain, "text")

	output, err := runCLI(t, "doc", "seal", plain, "--dry-run")
	if err != nil {
		t.Fatalf("dry run failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "[dry-run]") || !strings.Contains(output, "No changes made.") {
		t.Errorf("Expected dry-run output, got: %s", output)
	}
	if _, err := os.Stat(plain + ".vlm"); !os.IsNotExist(err) {
		t.Error("Dry run should not write files")
	}
}

func TestSealCommand_RefusesOverwrite(t *testing.T) {
	dir := setupTestEnvironment(t, "secret")
	plain := filepath.Join(dir, "a.txt")
	writeTestFile(t, plain, "new")
	writeTestFile(t, plain+".vlm", "old")

	output, err := runCLI(t, "doc", "seal", plain)
	if err != nil {
		t.Fatalf("Expected a handled error, got: %v", err)
	}
	if !strings.Contains(output, "--force") {
		t.Errorf("Expected a --force hint, got: %s", output)
	}
	if readTestFile(t, plain+".vlm") != "old" {
		t.Error("Existing envelope was modified")
	}
}

func TestSealCommand_UnknownFormat(t *testing.T) {
	dir := setupTestEnvironment(t, "secret")
	plain := filepath.Join(dir, "a.txt")
	writeTestFile(t, plain, "text")

	if _, err := runCLI(t, "doc", "seal", plain, "--format", "v9"); err == nil {
		t.Error("Expected flag parsing to reject an unknown format")
	}
}

func TestUnsealCommand(t *testing.T) {
	dir := setupTestEnvironment(t, "pässwörd")
	sealed := filepath.Join(dir, "greeting.txt.vlm")
	writeTestFile(t, sealed, "F+cmdwFIgHh5FvPOYi+w+g==")

	output, err := runCLI(t, "doc", "unseal", sealed)
	if err != nil {
		t.Fatalf("unseal failed: %v\n%s", err, output)
	}

	if got := readTestFile(t, filepath.Join(dir, "greeting.txt")); got != "Merhaba dünya" {
		t.Errorf("Unexpected plaintext %q", got)
	}
	if !strings.Contains(output, "legacy") {
		t.Errorf("Expected the detected format in output, got: %s", output)
	}
}

func TestUnsealCommand_WrongPassword(t *testing.T) {
	for _, pw := range []string{"wrong", "Secret", "secret2", " secret"} {
		t.Run(pw, func(t *testing.T) {
			dir := setupTestEnvironment(t, pw)
			sealed := filepath.Join(dir, "city.txt.vlm")
			writeTestFile(t, sealed, "JFcf79jPeqbEIkHWTm2MXA==")

			output, err := runCLI(t, "doc", "unseal", sealed)
			if err != nil {
				t.Fatalf("Expected a handled error, got: %v", err)
			}
			if !strings.Contains(output, "check your password") {
				t.Errorf("Expected a password hint, got: %s", output)
			}
			if _, err := os.Stat(filepath.Join(dir, "city.txt")); !os.IsNotExist(err) {
				t.Error("Nothing should be written with a wrong password")
			}
		})
	}
}

func TestCatCommand(t *testing.T) {
	dir := setupTestEnvironment(t, "secret")
	sealed := filepath.Join(dir, "hello.vlm")
	writeTestFile(t, sealed, "ELFyM9eZRo47AGaExhH6jQ==")

	output, err := runCLI(t, "doc", "cat", sealed, "--password-stdin")
	if err != nil {
		t.Fatalf("cat failed: %v", err)
	}
	if output != "hello world" {
		t.Errorf("Expected plaintext only, got %q", output)
	}
}

func TestRekeyCommand_UpgradesToV2(t *testing.T) {
	dir := setupTestEnvironment(t, "secret", "fresh", "fresh")
	sealed := filepath.Join(dir, "hello.vlm")
	writeTestFile(t, sealed, "ELFyM9eZRo47AGaExhH6jQ==")

	output, err := runCLI(t, "doc", "rekey", sealed, "--format", "v2")
	if err != nil {
		t.Fatalf("rekey failed: %v\n%s", err, output)
	}
	if !strings.HasPrefix(readTestFile(t, sealed), "$vellum$v2$") {
		t.Error("Expected the envelope to be upgraded to v2")
	}

	output, err = runCLI(t, "doc", "cat", sealed)
	if err != nil {
		t.Fatalf("cat failed: %v", err)
	}
	if output != "hello world" {
		t.Errorf("Expected the new password to open the envelope, got %q", output)
	}
}

func TestEditCommand_SaveAndQuit(t *testing.T) {
	dir := setupTestEnvironment(t)
	target := filepath.Join(dir, "draft.txt")
	editInput = strings.NewReader("set\nfirst line\nsecond line\n.\nsave " + target + "\nquit\n")

	output, err := runCLI(t, "doc", "edit", "--no-banner")
	if err != nil {
		t.Fatalf("edit failed: %v\n%s", err, output)
	}

	if got := readTestFile(t, target); got != "first line\nsecond line" {
		t.Errorf("Unexpected saved content %q", got)
	}
	if !strings.Contains(output, "Bye!") {
		t.Errorf("Expected the session to end, got: %s", output)
	}

	config, err := configs.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if len(config.Recent.Files) == 0 || config.Recent.Files[0] != target {
		t.Errorf("Expected %s in recent files, got %v", target, config.Recent.Files)
	}

	entries, err := audit.ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	var ops []string
	for _, e := range entries {
		ops = append(ops, e.Operation)
	}
	joined := strings.Join(ops, ",")
	for _, op := range []string{"new", "save", "close", "close-all"} {
		if !strings.Contains(joined, op) {
			t.Errorf("Expected %q in audit operations %v", op, ops)
		}
	}
}

func TestEditCommand_QuitWithUnsavedChangesAsks(t *testing.T) {
	dir := setupTestEnvironment(t, "secret")
	sealed := filepath.Join(dir, "city.vlm")
	writeTestFile(t, sealed, "JFcf79jPeqbEIkHWTm2MXA==")
	editInput = strings.NewReader("append\n!\n.\nquit\nc\nshow\nquit\nn\n")

	output, err := runCLI(t, "doc", "edit", "--no-banner", sealed)
	if err != nil {
		t.Fatalf("edit failed: %v\n%s", err, output)
	}

	if !strings.Contains(output, "İstanbul\n!") {
		t.Errorf("Expected the document to survive the cancelled quit, got: %s", output)
	}
	if readTestFile(t, sealed) != "JFcf79jPeqbEIkHWTm2MXA==" {
		t.Error("Discarding should leave the envelope untouched")
	}
}

func TestLogCommand(t *testing.T) {
	dir := setupTestEnvironment(t, "secret")
	plain := filepath.Join(dir, "a.txt")
	writeTestFile(t, plain, "text")

	output, err := runCLI(t, "doc", "log")
	if err != nil {
		t.Fatalf("log failed: %v", err)
	}
	if !strings.Contains(output, "No audit log found") {
		t.Errorf("Expected no log yet, got: %s", output)
	}

	if _, err := runCLI(t, "doc", "seal", plain); err != nil {
		t.Fatalf("seal failed: %v", err)
	}

	output, err = runCLI(t, "doc", "log", "--operation", "seal", "--oneline")
	if err != nil {
		t.Fatalf("log failed: %v", err)
	}
	if !strings.Contains(output, "seal") || !strings.Contains(output, "a.txt") {
		t.Errorf("Expected the seal entry, got: %s", output)
	}

	output, err = runCLI(t, "doc", "log", "--since", "yesterday")
	if err != nil {
		t.Fatalf("Expected a handled error, got: %v", err)
	}
	if !strings.Contains(output, "YYYY-MM-DD") {
		t.Errorf("Expected a date format hint, got: %s", output)
	}
}

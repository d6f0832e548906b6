/*
Copyright 2023 Alexander Bartolomey (github@alexanderbartolomey.de)

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gbv/pica/config"
)

const sampleInput = "003@ \x1f0123456789X\x1e041A/01 \x1f901\x1e\n" +
	"003@ \x1f0987654321X\x1e041A/01 \x1f902\x1e\n"

func writeInput(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "in.pica")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func outputPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "out")
}

func TestCmdCatPassesRecordsThrough(t *testing.T) {
	in := writeInput(t, sampleInput)
	out := outputPath(t)
	code := cmdCat(&config.Default, []string{"-o", out, in})
	if code != exitOK {
		t.Fatalf("cmdCat: exit %d", code)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != sampleInput {
		t.Errorf("got %q, want %q", got, sampleInput)
	}
}

func TestCmdCatWhereFiltersRecords(t *testing.T) {
	in := writeInput(t, sampleInput)
	out := outputPath(t)
	code := cmdCat(&config.Default, []string{"-o", out, "--where", `003@.0 == "0987654321X"`, in})
	if code != exitOK {
		t.Fatalf("cmdCat: exit %d", code)
	}
	got, _ := os.ReadFile(out)
	if !strings.Contains(string(got), "0987654321X") || strings.Contains(string(got), "0123456789X") {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestCmdCountCountsMatchingRecords(t *testing.T) {
	in := writeInput(t, sampleInput)
	out := outputPath(t)
	code := cmdCount(&config.Default, []string{"-o", out, in})
	if code != exitOK {
		t.Fatalf("cmdCount: exit %d", code)
	}
	got, _ := os.ReadFile(out)
	if strings.TrimSpace(string(got)) != "2" {
		t.Errorf("got %q, want \"2\"", got)
	}
}

func TestCmdHashMatchesSha256sumOfLine(t *testing.T) {
	in := writeInput(t, sampleInput)
	out := outputPath(t)
	code := cmdHash(&config.Default, []string{"-o", out, in})
	if code != exitOK {
		t.Fatalf("cmdHash: exit %d", code)
	}
	got, _ := os.ReadFile(out)
	lines := strings.Split(strings.TrimSpace(string(got)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	firstLine := sampleInput[:strings.IndexByte(sampleInput, '\n')+1]
	sum := sha256.Sum256([]byte(firstLine))
	want := "0123456789X\t" + hex.EncodeToString(sum[:])
	if lines[0] != want {
		t.Errorf("line 0 = %q, want %q", lines[0], want)
	}
}

func TestCmdFilterKeepRetainsOnlyMatchingFields(t *testing.T) {
	in := writeInput(t, sampleInput)
	out := outputPath(t)
	code := cmdFilter(&config.Default, []string{"-o", out, "--keep", "003@", in})
	if code != exitOK {
		t.Fatalf("cmdFilter: exit %d", code)
	}
	got, _ := os.ReadFile(out)
	if strings.Contains(string(got), "041A") {
		t.Errorf("041A should have been dropped: %q", got)
	}
	if !strings.Contains(string(got), "003@") {
		t.Errorf("003@ should have survived: %q", got)
	}
}

func TestCmdInvalidReportsDecodeFailures(t *testing.T) {
	in := writeInput(t, "not a valid pica line\n")
	out := outputPath(t)
	code := cmdInvalid(&config.Default, []string{"-o", out, in})
	if code != exitDecodeError {
		t.Fatalf("cmdInvalid: exit %d, want %d", code, exitDecodeError)
	}
	got, _ := os.ReadFile(out)
	if len(got) == 0 {
		t.Error("expected a report of the invalid line")
	}
}

func TestCmdSelectEmitsOneRowPerRecord(t *testing.T) {
	in := writeInput(t, sampleInput)
	out := outputPath(t)
	code := cmdSelect(&config.Default, []string{"-o", out, "003@.0", in})
	if code != exitOK {
		t.Fatalf("cmdSelect: exit %d", code)
	}
	got, _ := os.ReadFile(out)
	want := "0123456789X\n0987654321X\n"
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRunDispatchesUnknownCommand(t *testing.T) {
	code := run([]string{"bogus"})
	if code != exitUserError {
		t.Errorf("got %d, want %d", code, exitUserError)
	}
}

func TestRunWithNoArgsIsUserError(t *testing.T) {
	if code := run(nil); code != exitUserError {
		t.Errorf("got %d, want %d", code, exitUserError)
	}
}

func TestRunHelpIsOK(t *testing.T) {
	if code := run([]string{"--help"}); code != exitOK {
		t.Errorf("got %d, want %d", code, exitOK)
	}
}

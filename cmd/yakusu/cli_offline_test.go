package main_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestCLI_OfflineReport(t *testing.T) {
	tmp := t.TempDir()

	// Local dictionary file so no download is attempted.
	dictFile := filepath.Join(tmp, "jmdict-eng-common.json")
	dictContent := `{
  "words": [
    {
      "id": "1",
      "kanji": [{"text": "猫", "common": true}],
      "kana": [{"text": "ねこ", "common": true}],
      "sense": [{"gloss": [{"text": "cat"}], "partOfSpeech": ["n"]}]
    }
  ]
}`
	if err := os.WriteFile(dictFile, []byte(dictContent), 0644); err != nil {
		t.Fatalf("failed to write dict: %v", err)
	}

	bin := filepath.Join(tmp, "yakusu.bin")
	build := exec.Command("go", "build", "-o", bin, "github.com/nephila-nacrea/yakusu/cmd/yakusu")
	build.Stdout = os.Stdout
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		t.Fatalf("failed to build CLI: %v", err)
	}

	reportFile := filepath.Join(tmp, "report.tsv")
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	cmd := exec.CommandContext(ctx, bin, "-text", "猫", "-dict", dictFile, "-report", reportFile)
	out, err := cmd.CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		t.Fatalf("cli timed out, output:\n%s", out)
	}
	if err != nil {
		t.Fatalf("cli failed: %v\noutput:\n%s", err, out)
	}

	data, err := os.ReadFile(reportFile)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}
	got := string(data)
	if !strings.Contains(got, "猫\tねこ\tcat") {
		t.Fatalf("report missing expected row, got:\n%s", got)
	}
}

func TestCLI_OfflineTranslate(t *testing.T) {
	tmp := t.TempDir()

	dictFile := filepath.Join(tmp, "jmdict.json")
	dictContent := `{
  "words": [
    {
      "id": "1",
      "kanji": [{"text": "猫", "common": true}],
      "kana": [{"text": "ねこ", "common": true}],
      "sense": [{"gloss": [{"text": "cat"}], "partOfSpeech": ["n"]}]
    }
  ]
}`
	if err := os.WriteFile(dictFile, []byte(dictContent), 0644); err != nil {
		t.Fatalf("failed to write dict: %v", err)
	}

	bin := filepath.Join(tmp, "yakusu.bin")
	build := exec.Command("go", "build", "-o", bin, "github.com/nephila-nacrea/yakusu/cmd/yakusu")
	build.Stdout = os.Stdout
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		t.Fatalf("failed to build CLI: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	cmd := exec.CommandContext(ctx, bin, "-text", "猫", "-dict", dictFile, "-translate")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("cli failed: %v\noutput:\n%s", err, out)
	}
	if !strings.Contains(string(out), "cat ") {
		t.Fatalf("expected translation containing %q, got:\n%s", "cat ", out)
	}
}

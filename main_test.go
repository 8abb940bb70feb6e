package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/dotan-asm/mipsasm/diag"
	"github.com/dotan-asm/mipsasm/parser"
)

func TestAssembleFile_WritesArtifactsOnSuccess(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "prog.as")
	if err := os.WriteFile(src, []byte("MAIN: add $1, $2, $3\nstop\n"), 0644); err != nil {
		t.Fatalf("writing source: %v", err)
	}

	var buf bytes.Buffer
	printer := diag.NewPrinter(&buf, false, true)
	if status := assembleFile(src, printer); status != statusOK {
		t.Fatalf("assembleFile status = %v, diagnostics: %s", status, buf.String())
	}

	base := src[:len(src)-len(filepath.Ext(src))]
	if _, err := os.Stat(base + ".ob"); err != nil {
		t.Errorf(".ob not written: %v", err)
	}
}

func TestAssembleFile_RejectsNonAsExtension(t *testing.T) {
	var buf bytes.Buffer
	printer := diag.NewPrinter(&buf, false, true)
	if status := assembleFile("prog.txt", printer); status != statusSkipped {
		t.Errorf("status = %v, want statusSkipped for a non-.as path", status)
	}
}

func TestAssembleFile_OpenFailureIsSkippedNotFailed(t *testing.T) {
	var buf bytes.Buffer
	printer := diag.NewPrinter(&buf, false, true)
	if status := assembleFile(filepath.Join(t.TempDir(), "missing.as"), printer); status != statusSkipped {
		t.Errorf("status = %v, want statusSkipped for an unopenable file", status)
	}
}

func TestAssembleFile_HardErrorSuppressesOutput(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "bad.as")
	if err := os.WriteFile(src, []byte("jmp UNDEFINED\n"), 0644); err != nil {
		t.Fatalf("writing source: %v", err)
	}

	var buf bytes.Buffer
	printer := diag.NewPrinter(&buf, false, true)
	if status := assembleFile(src, printer); status != statusFailed {
		t.Fatalf("status = %v, want statusFailed for an undefined label", status)
	}

	base := src[:len(src)-len(filepath.Ext(src))]
	if _, err := os.Stat(base + ".ob"); !os.IsNotExist(err) {
		t.Errorf(".ob should not be written when a hard error occurred, stat err = %v", err)
	}
	if buf.Len() == 0 {
		t.Error("expected a diagnostic to be printed")
	}
}

func TestMain_SkippedAndUnopenableFilesDoNotFailTheRun(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.as")
	if err := os.WriteFile(good, []byte("stop\n"), 0644); err != nil {
		t.Fatalf("writing source: %v", err)
	}

	var buf bytes.Buffer
	printer := diag.NewPrinter(&buf, false, true)
	allOK := true
	for _, arg := range []string{good, "ignored.txt", filepath.Join(dir, "missing.as")} {
		if assembleFile(arg, printer) == statusFailed {
			allOK = false
		}
	}
	if !allOK {
		t.Error("a skipped or unopenable file should not flip the run's exit status")
	}
}

func TestLoadConfig_LimitsFlowIntoParser(t *testing.T) {
	defer parser.SetLimits(parser.Limits{
		MaxProgLines: parser.MaxProgLines,
		MaxLabelLen:  parser.MaxLabelLen,
		MaxLineLen:   parser.MaxLineLen,
	})

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(configPath, []byte("[limits]\nmax_label_len = 4\n"), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Limits.MaxLabelLen != 4 {
		t.Fatalf("MaxLabelLen = %d, want 4", cfg.Limits.MaxLabelLen)
	}

	parser.SetLimits(parser.Limits{
		MaxProgLines: cfg.Limits.MaxProgLines,
		MaxLabelLen:  cfg.Limits.MaxLabelLen,
		MaxLineLen:   cfg.Limits.MaxLineLen,
	})

	p := parser.NewParser(parser.NewTokenizer("test.as"))
	stmt := p.ParseLine(1, "TOOLONG: stop")
	if stmt.Type != parser.StmtError || stmt.Err.Code != parser.LongLabel {
		t.Fatalf("stmt = %+v, want LongLabel under the config-loaded 4-char limit", stmt)
	}
}

package tools_test

import (
	"strings"
	"testing"

	"github.com/cs6461/ttm/parser"
	"github.com/cs6461/ttm/tools"
)

func tokenizeAll(t *testing.T, src string) []*parser.Line {
	t.Helper()
	var lines []*parser.Line
	for i, raw := range strings.Split(src, "\n") {
		line, err := parser.Tokenize(raw, i+1, "test.asm")
		if err != nil {
			t.Fatalf("Tokenize line %d: %v", i+1, err)
		}
		if line == nil {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func TestGenerateTracksDefinitionAndBranchReference(t *testing.T) {
	lines := tokenizeAll(t, `
LOC 6
JMA 0,0,LOOP
LOOP: HLT
`)
	symbols, err := tools.Generate(lines, "test.asm")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	loop, ok := symbols["LOOP"]
	if !ok {
		t.Fatal("LOOP not found")
	}
	if loop.Definition == nil {
		t.Error("LOOP should have a definition")
	}
	if !loop.IsBranch {
		t.Error("LOOP should be marked as a branch target")
	}
	if len(loop.References) != 1 || loop.References[0].Type != tools.RefBranch {
		t.Errorf("LOOP references = %+v, want one RefBranch", loop.References)
	}
}

func TestGenerateDetectsUndefinedSymbol(t *testing.T) {
	lines := tokenizeAll(t, `
LOC 6
JMA 0,0,NOWHERE
`)
	symbols, err := tools.Generate(lines, "test.asm")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	undefined := tools.GetUndefinedSymbols(symbols)
	if len(undefined) != 1 || undefined[0].Name != "NOWHERE" {
		t.Errorf("GetUndefinedSymbols = %+v, want [NOWHERE]", undefined)
	}
}

func TestGenerateDetectsUnusedLabel(t *testing.T) {
	lines := tokenizeAll(t, `
LOC 6
START: HLT
`)
	symbols, err := tools.Generate(lines, "test.asm")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	unused := tools.GetUnusedSymbols(symbols)
	if len(unused) != 1 || unused[0].Name != "START" {
		t.Errorf("GetUnusedSymbols = %+v, want [START]", unused)
	}
}

func TestGenerateRejectsDuplicateLabel(t *testing.T) {
	lines := tokenizeAll(t, `
LOC 6
A: HLT
A: HLT
`)
	if _, err := tools.Generate(lines, "test.asm"); err == nil {
		t.Fatal("expected duplicate-label error, got nil")
	}
}

func TestReportStringIncludesSummary(t *testing.T) {
	lines := tokenizeAll(t, `
LOC 6
START: LDA 0,0,9
JMA 0,0,START
DATA 0
`)
	symbols, err := tools.Generate(lines, "test.asm")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	report := tools.NewReport(symbols).String()
	if !strings.Contains(report, "START") {
		t.Errorf("report missing START: %q", report)
	}
	if !strings.Contains(report, "Summary") {
		t.Errorf("report missing summary section: %q", report)
	}
}

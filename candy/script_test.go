package candy

import (
	"strings"
	"testing"
)

func TestGenerateScript(t *testing.T) {
	script, err := GenerateScript("UFNIA", testLogger())
	if err != nil {
		t.Fatalf("GenerateScript: %v", err)
	}

	if !strings.HasPrefix(script, "(set-logic UFNIA)\n") {
		t.Error("Expected the script to open with set-logic")
	}

	if !strings.Contains(script, "(declare-const N Int)") {
		t.Error("Expected the child count declared")
	}

	if !strings.Contains(script, "(declare-fun m (Int Int) Int)") {
		t.Error("Expected the candy function declared")
	}

	checks := strings.Count(script, "(check-sat)")
	if checks != planQueries {
		t.Errorf("Expected %d check-sat commands, got %d", planQueries, checks)
	}

	pushes := strings.Count(script, "(push 1)")
	pops := strings.Count(script, "(pop 1)")
	if pushes != pops {
		t.Errorf("Expected balanced scopes, got %d pushes and %d pops", pushes, pops)
	}
	if pushes == 0 {
		t.Error("Expected scoped queries in the script")
	}
}

func TestGenerateScriptWithoutLogic(t *testing.T) {
	script, err := GenerateScript("", testLogger())
	if err != nil {
		t.Fatalf("GenerateScript: %v", err)
	}
	if strings.Contains(script, "set-logic") {
		t.Error("Expected no set-logic command")
	}
}

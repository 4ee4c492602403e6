package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionCommandSkipsConfig(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version", "--config", "/nonexistent/osrs-tools.yaml"})
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out.String(), "osrs-tools dev") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestCommandTree(t *testing.T) {
	want := []string{"highscores", "ironman", "combat", "ehb", "price", "margin-check", "export", "version"}
	for _, name := range want {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Fatalf("command %s not registered: %v", name, err)
		}
	}
	if cmd, _, _ := rootCmd.Find([]string{"hs"}); cmd.Name() != "highscores" {
		t.Fatal("hs alias not registered")
	}
}

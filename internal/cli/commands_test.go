package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCmdRegistersSubcommands(t *testing.T) {
	root := NewRootCmd()

	want := []string{"run", "preview", "init", "version"}
	for _, name := range want {
		found := false
		for _, c := range root.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestVersionCmdPrintsVersion(t *testing.T) {
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	if err := root.Execute(); err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out.String(), version) {
		t.Fatalf("output %q missing version %q", out.String(), version)
	}
}

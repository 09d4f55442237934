package cli

import (
	"bytes"
	"testing"

	"github.com/matzehuels/sunburst/pkg/errors"
)

func TestPaletteCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"default", nil, false},
		{"sized", []string{"-n", "6", "--count", "12"}, false},
		{"zero", []string{"-n", "0"}, true},
		{"too many", []string{"--size", "1000"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, cfgPath, _ := testEnv(t)
			c := New(&bytes.Buffer{}, LogInfo)
			root := c.RootCommand()
			root.SetArgs(append([]string{"--config", cfgPath, "palette"}, tt.args...))
			err := root.Execute()
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("code = %s, want INVALID_INPUT", errors.GetCode(err))
			}
		})
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	for _, name := range []string{"render", "explore", "palette", "serve", "cache", "completion"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

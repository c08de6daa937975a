package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func confirmWith(t *testing.T, input string) (bool, string) {
	t.Helper()

	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&out)

	return confirm(cmd, "Create these events?"), out.String()
}

// TestConfirm: anything but an explicit yes must answer no. An accidental
// Enter on a prompt that mutates a shared calendar has to be safe.
func TestConfirm(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"y", "y\n", true},
		{"yes", "yes\n", true},
		{"Uppercase YES", "YES\n", true},
		{"Padded yes", "  y  \n", true},
		{"n", "n\n", false},
		{"Bare enter defaults to no", "\n", false},
		{"Garbage defaults to no", "sure\n", false},
		{"Closed input defaults to no", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answer, prompt := confirmWith(t, tt.input)
			assert.Equal(t, tt.expected, answer)
			assert.Contains(t, prompt, "[y/N]")
		})
	}
}

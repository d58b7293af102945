package interaction

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/CodeMonkeyCybersecurity/userdir/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeYesNoInput(t *testing.T) {
	tests := []struct {
		input      string
		wantAnswer bool
		wantOK     bool
	}{
		{"y", true, true},
		{"YES", true, true},
		{"  yEs ", true, true},
		{"n", false, true},
		{"No\n", false, true},
		{"", false, false},
		{"maybe", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			answer, ok := NormalizeYesNoInput(tt.input)
			assert.Equal(t, tt.wantAnswer, answer)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestPromptYesNo(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		defaultYes bool
		want       bool
		wantErr    error
	}{
		{name: "yes", input: "y\n", want: true},
		{name: "no with default yes", input: "no\n", defaultYes: true, want: false},
		{name: "empty line takes default no", input: "\n", want: false},
		{name: "empty line takes default yes", input: "\n", defaultYes: true, want: true},
		{name: "garbage takes default", input: "perhaps\n", want: false},
		{name: "answer without newline", input: "yes", want: true},
		{name: "closed input", input: "", want: false, wantErr: ErrNoAnswer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := testutil.NewTestContext(t)

			got, err := PromptYesNo(rc.Ctx, strings.NewReader(tt.input), "Delete user abc?", tt.defaultYes)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPromptYesNoReadError(t *testing.T) {
	boom := errors.New("tty gone")
	got, err := PromptYesNo(context.Background(), iotest.ErrReader(boom), "Delete?", false)
	assert.ErrorIs(t, err, boom)
	assert.False(t, got)
}

func TestIsInteractiveOverride(t *testing.T) {
	prev := stdinIsTerminal
	t.Cleanup(func() { stdinIsTerminal = prev })

	stdinIsTerminal = func() bool { return true }
	assert.True(t, IsInteractive())
	stdinIsTerminal = func() bool { return false }
	assert.False(t, IsInteractive())
}

func FuzzNormalizeYesNoInput(f *testing.F) {
	f.Add("yes")
	f.Add("no")
	f.Add("Y")
	f.Add("  yEs ")
	f.Add("not-a-valid-answer")

	f.Fuzz(func(t *testing.T, input string) {
		answer, ok := NormalizeYesNoInput(input)
		if !ok && answer {
			t.Fatalf("unrecognized input %q reported a yes", input)
		}
	})
}

package delete

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/CodeMonkeyCybersecurity/userdir/pkg/cmd_helpers"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/dir_err"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/testutil"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/usertwin"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, interactive bool) (*testutil.Twin, string) {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("USERDIR_BASE_URL", "")
	testutil.IsolateDefinitions(t)

	prev := isInteractive
	isInteractive = func() bool { return interactive }
	t.Cleanup(func() {
		isInteractive = prev
		deleteForce = false
	})

	twin := testutil.NewTwin(t)
	doc := twin.Store().Create(usertwin.Document{"name": "Alice"})
	return twin, doc[usertwin.IDKey].(string)
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{Use: "userdir", SilenceUsage: true, SilenceErrors: true}
	cmd_helpers.AddGlobalFlags(root)
	root.AddCommand(DeleteCmd)
	t.Cleanup(func() { root.RemoveCommand(DeleteCmd) })

	var out bytes.Buffer
	root.SetArgs(append([]string{"delete"}, args...))
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestDeleteConfirmed(t *testing.T) {
	twin, id := setup(t, true)

	out, err := execute(t, "y\n", id, "--base-url", twin.URL)
	require.NoError(t, err)
	assert.Equal(t, "User deleted successfully.\n", out)
	assert.Zero(t, twin.Store().Len())
}

func TestDeleteDeclinedMakesNoRequest(t *testing.T) {
	for _, answer := range []string{"n\n", "\n", "", "nope\nn\n"} {
		t.Run(strings.TrimSpace(answer), func(t *testing.T) {
			twin, id := setup(t, true)

			out, err := execute(t, answer, id, "--base-url", twin.URL)
			require.NoError(t, err)
			assert.Equal(t, "Deletion cancelled.\n", out)
			assert.Equal(t, 1, twin.Store().Len())
			assert.Zero(t, twin.Requests())
		})
	}
}

func TestDeleteWithoutTerminalNeedsForce(t *testing.T) {
	twin, id := setup(t, false)

	_, err := execute(t, "y\n", id, "--base-url", twin.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refusing to delete without confirmation")
	assert.Contains(t, err.Error(), "--force")
	assert.Equal(t, 2, dir_err.GetExitCode(err))
	assert.Zero(t, twin.Requests())
}

func TestDeleteForceSkipsPrompt(t *testing.T) {
	twin, id := setup(t, false)

	out, err := execute(t, "", id, "--base-url", twin.URL, "--force")
	require.NoError(t, err)
	assert.Equal(t, "User deleted successfully.\n", out)
	assert.Equal(t, int64(1), twin.Requests())
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}

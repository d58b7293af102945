package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/CodeMonkeyCybersecurity/userdir/pkg/testutil"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/usertwin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	testutil.IsolateDefinitions(t)
	for _, key := range []string{"USERDIR_BASE_URL", "USERDIR_TIMEOUT", "USERDIR_USER_AGENT", "USERDIR_LOG_LEVEL"} {
		t.Setenv(key, "")
	}
}

func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestCRUDAgainstTwin(t *testing.T) {
	isolate(t)
	twin := testutil.NewTwin(t)

	res := run(t, "", "list", "--base-url", twin.URL)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "No users found.\n", res.stdout)

	res = run(t, "", "create", "--base-url", twin.URL, "--name", "Alice", "--json")
	require.Equal(t, 0, res.code, res.stderr)
	var created map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &created))
	id, _ := created[usertwin.IDKey].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "Alice", created["name"])

	res = run(t, "", "read", id, "--base-url", twin.URL)
	require.Equal(t, 0, res.code, res.stderr)
	assert.True(t, strings.HasPrefix(res.stdout, "User Found: \n{\n"), res.stdout)
	assert.Contains(t, res.stdout, `"name": "Alice"`)

	res = run(t, "", "update", id, "--base-url", twin.URL, "--name", "Bob")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "User updated successfully.\n", res.stdout)

	res = run(t, "", "list", "--base-url", twin.URL)
	require.Equal(t, 0, res.code, res.stderr)
	assert.True(t, strings.HasPrefix(res.stdout, "Users: \n[\n"), res.stdout)
	assert.Contains(t, res.stdout, `"name": "Bob"`)

	res = run(t, "", "delete", id, "--base-url", twin.URL, "--force")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "User deleted successfully.\n", res.stdout)
	assert.Zero(t, twin.Store().Len())

	res = run(t, "", "read", id, "--base-url", twin.URL)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "No user found with that ID.\n", res.stdout)
}

func TestCreatePrintsCompactRecord(t *testing.T) {
	isolate(t)
	twin := testutil.NewTwin(t)

	res := run(t, "", "add", "-n", "Alice", "--base-url", twin.URL)
	require.Equal(t, 0, res.code, res.stderr)
	assert.True(t, strings.HasPrefix(res.stdout, "User added successfully: \n{\"_id\":"), res.stdout)
	assert.Contains(t, res.stdout, `"name":"Alice"}`)
}

func TestMissingValuesExitWithValidationCode(t *testing.T) {
	isolate(t)
	twin := testutil.NewTwin(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"create without name", []string{"create"}, "Please provide a user name."},
		{"read without id", []string{"read"}, "Please provide a user ID."},
		{"update without name", []string{"update", "abc"}, "Please provide both user ID and user name."},
		{"delete without id", []string{"delete", "--force"}, "Please provide a user ID to delete."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, "", append(tt.args, "--base-url", twin.URL)...)
			assert.Equal(t, 2, res.code)
			assert.Empty(t, res.stdout)
			assert.Contains(t, res.stderr, tt.want)
		})
	}
	assert.Zero(t, twin.Requests())
}

func TestMissingBaseURL(t *testing.T) {
	isolate(t)

	res := run(t, "", "list")
	assert.Equal(t, 2, res.code)
	assert.Contains(t, res.stderr, "base_url is required")
	assert.Contains(t, res.stderr, "How to fix:")
}

func TestUnreachableServiceReportsTransportError(t *testing.T) {
	isolate(t)

	res := run(t, "", "list", "--base-url", testutil.ClosedURL(t))
	assert.NotEqual(t, 0, res.code)
	assert.True(t, strings.HasPrefix(res.stderr, "Error fetching users: "), res.stderr)
	assert.NotContains(t, res.stderr, testutil.TwinPrefix)
}

func TestConfigInitThenShow(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "userdir.yaml")

	res := run(t, "", "config", "init", "--path", path, "--base-url", "https://crudcrud.com/api/0123456789abcdef")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "Wrote "+path+"\n", res.stdout)

	res = run(t, "", "config", "show", "--config", path)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "# from "+path)
	assert.Contains(t, res.stdout, "base_url: https://crudcrud.com/api/")
	assert.NotContains(t, res.stdout, "0123456789abcdef")
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

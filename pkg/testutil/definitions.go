// pkg/testutil/definitions.go

package testutil

import (
	"testing"

	"github.com/CodeMonkeyCybersecurity/userdir/pkg/apiclient"
)

// IsolateDefinitions makes LoadDefinition see only the embedded API
// definitions: no override directory and an empty home. The definition cache
// is cleared now and again when the test ends.
func IsolateDefinitions(t *testing.T) {
	t.Helper()
	t.Setenv(apiclient.DefinitionsEnv, "")
	t.Setenv("HOME", t.TempDir())
	apiclient.ClearCache()
	t.Cleanup(apiclient.ClearCache)
}

// Package testutil provides testing utilities for userdir
package testutil

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/bradleyjkemp/cupaloy/v2"
)

// UpdateEnv names the variable that rewrites golden files when set to true.
const UpdateEnv = "UPDATE_SNAPSHOTS"

// GoldenFile provides golden file testing utilities for snapshot testing
//
// Golden files suit multi-line user-facing output: rendered messages and
// terminal UI frames.
//
// Usage:
//
//	func TestDescribe(t *testing.T) {
//	    golden := testutil.NewGolden(t)
//	    golden.AssertWithName("list-empty", form.Describe(userdir.OpList, outcome))
//	}
//
// Golden files are committed next to the test. A missing one fails the
// test. To write new ones, or rewrite existing ones after an intended change:
//
//	UPDATE_SNAPSHOTS=true go test ./...
type GoldenFile struct {
	t           *testing.T
	snapshotter *cupaloy.Config
}

// NewGolden creates a new golden file tester
//
// Golden files are stored in: testdata/golden/<name>
func NewGolden(t *testing.T) *GoldenFile {
	t.Helper()

	goldenDir := filepath.Join("testdata", "golden")

	update := updateRequested()
	snapshotter := cupaloy.New(
		cupaloy.SnapshotSubdirectory(goldenDir),
		cupaloy.CreateNewAutomatically(update),
		cupaloy.FailOnUpdate(false),
		cupaloy.ShouldUpdate(func() bool { return update }),
	)

	return &GoldenFile{
		t:           t,
		snapshotter: snapshotter,
	}
}

// Assert compares got against the golden file named after the test.
func (g *GoldenFile) Assert(got interface{}) {
	g.t.Helper()
	g.AssertWithName(g.t.Name(), got)
}

// AssertWithName compares with a custom snapshot name
func (g *GoldenFile) AssertWithName(name string, got interface{}) {
	g.t.Helper()

	if err := g.snapshotter.SnapshotWithName(snapshotName(name), got); err != nil {
		g.t.Fatalf("Golden file assertion failed for '%s': %v\n\nTo update golden files, run:\n  %s=true go test ./...", name, err, UpdateEnv)
	}
}

// GoldenString is a convenience function for string comparisons
func GoldenString(t *testing.T, got string) {
	t.Helper()
	NewGolden(t).Assert(got)
}

func snapshotName(name string) string {
	r := strings.NewReplacer("/", "__", " ", "_", ":", "_")
	return r.Replace(name)
}

func updateRequested() bool {
	v, _ := strconv.ParseBool(os.Getenv(UpdateEnv))
	return v
}

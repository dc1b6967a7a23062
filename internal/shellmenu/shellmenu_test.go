package shellmenu

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoxDroid/envpath/internal/errors"
)

type fakeRegistry struct {
	keys    map[string]Key
	deleted []string
	failOn  string
}

func newFakeRegistry() *fakeRegistry { return &fakeRegistry{keys: map[string]Key{}} }

func (f *fakeRegistry) SetKey(k Key) error {
	if f.failOn != "" && strings.HasSuffix(k.Path, f.failOn) {
		return fmt.Errorf("access is denied")
	}
	f.keys[k.Path] = k
	return nil
}

func (f *fakeRegistry) DeleteKey(path string) error {
	f.deleted = append(f.deleted, path)
	delete(f.keys, path)
	return nil
}

const testExe = `C:\Program Files\envpath\envpath.exe`

func TestKeysCoverFolderAndBackground(t *testing.T) {
	keys := Keys(testExe)
	require.Len(t, keys, 2*len(Verbs))
	var sawFolder, sawBackground bool
	for _, k := range keys {
		if strings.HasPrefix(k.Path, `Software\Classes\Directory\shell\envpath.`) {
			sawFolder = true
		}
		if strings.HasPrefix(k.Path, `Software\Classes\Directory\Background\shell\envpath.`) {
			sawBackground = true
		}
	}
	assert.True(t, sawFolder, "missing folder keys: %+v", keys)
	assert.True(t, sawBackground, "missing background keys: %+v", keys)
}

func TestCommandLineQuoting(t *testing.T) {
	for _, k := range Keys(testExe) {
		if strings.HasSuffix(k.Path, "envpath.add-system") {
			assert.Equal(t, `"`+testExe+`" add system "%V\."`, k.Command)
			assert.Equal(t, k.Path+`\command`, k.CommandPath())
			return
		}
	}
	t.Fatal("add-system key not found")
}

func TestFolderArgumentSurvivesDriveRoot(t *testing.T) {
	// Explorer substitutes C:\ for a drive root; a backslash right before
	// the closing quote would escape it
	for _, k := range Keys(testExe) {
		if !strings.Contains(k.Command, "%V") {
			continue
		}
		line := strings.ReplaceAll(k.Command, "%V", `C:\`)
		assert.False(t, strings.HasSuffix(line, `\"`), "closing quote is escaped in %s", line)
		assert.True(t, strings.HasSuffix(line, `"C:\\."`), line)
	}
	assert.Equal(t, `"x" show`, commandLine("x", []string{"show"}))
	assert.Equal(t, `"x" "a b"`, commandLine("x", []string{"a b"}))
}

func TestInstallDryRunWritesNothing(t *testing.T) {
	t.Setenv("ENVPATH_HOME", t.TempDir())
	reg := newFakeRegistry()
	actions, err := Install(Options{Executable: testExe, DryRun: true, Registry: reg})
	require.NoError(t, err)
	assert.Len(t, actions, 2*len(Verbs)+1)
	assert.Empty(t, reg.keys, "dry run wrote keys")
}

func TestInstallThenUninstall(t *testing.T) {
	t.Setenv("ENVPATH_HOME", t.TempDir())
	reg := newFakeRegistry()
	_, err := Install(Options{Executable: testExe, Registry: reg})
	require.NoError(t, err)
	assert.Len(t, reg.keys, 2*len(Verbs))

	plan := PlanUninstall()
	assert.Contains(t, plan[len(plan)-1], "metadata", "uninstall plan should use metadata")

	_, err = Uninstall(Options{Registry: reg})
	require.NoError(t, err)
	assert.Empty(t, reg.keys, "keys left after uninstall")
	_, err = loadMetadata()
	assert.Error(t, err, "metadata should be removed")
}

func TestUninstallWithoutMetadataRemovesDefaults(t *testing.T) {
	t.Setenv("ENVPATH_HOME", t.TempDir())
	reg := newFakeRegistry()
	_, err := Uninstall(Options{Registry: reg})
	require.NoError(t, err)
	assert.Len(t, reg.deleted, 2*len(Verbs))
}

func TestInstallFailureRecordsPartialKeys(t *testing.T) {
	t.Setenv("ENVPATH_HOME", t.TempDir())
	reg := newFakeRegistry()
	reg.failOn = "envpath.remove-user"
	_, err := Install(Options{Executable: testExe, Registry: reg})
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnexpected), "expected unexpected error, got %v", err)
	m, err := loadMetadata()
	require.NoError(t, err, "metadata not saved")
	assert.Len(t, m.Keys, 3)
}

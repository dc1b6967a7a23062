// Package shellmenu installs and removes the Explorer context-menu entries
// that run envpath on a folder.
package shellmenu

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	folderShell     = `Software\Classes\Directory\shell`
	backgroundShell = `Software\Classes\Directory\Background\shell`
	keyPrefix       = "envpath."
)

// Verb is one context-menu entry.
type Verb struct {
	Name  string
	Label string
	// Args follow the executable; "%V" is the folder Explorer passes.
	Args []string
}

// Verbs are the entries envpath installs.
var Verbs = []Verb{
	{Name: "add-user", Label: "Add to user PATH", Args: []string{"add", "user", "%V"}},
	{Name: "add-system", Label: "Add to system PATH", Args: []string{"add", "system", "%V"}},
	{Name: "remove-user", Label: "Remove from user PATH", Args: []string{"remove", "user", "%V"}},
	{Name: "remove-system", Label: "Remove from system PATH", Args: []string{"remove", "system", "%V"}},
	{Name: "show", Label: "Show PATH", Args: []string{"show"}},
}

// Key is a registry key written under HKLM.
type Key struct {
	Path    string
	Label   string
	Icon    string
	Command string
}

// CommandPath is the subkey holding the command line.
func (k Key) CommandPath() string { return k.Path + `\command` }

// folderArg is the folder argument as written to the command line. A drive
// root expands %V to C:\ and "C:\" would escape the closing quote, so a
// trailing \. keeps the backslash away from it. The entry is cleaned before
// it is stored.
const folderArg = `%V\.`

// commandLine quotes the executable and any argument Explorer may expand to
// a path with spaces.
func commandLine(exe string, args []string) string {
	parts := []string{`"` + exe + `"`}
	for _, a := range args {
		if a == "%V" {
			a = folderArg
		}
		if strings.Contains(a, "%") || strings.ContainsAny(a, " \t") {
			a = `"` + a + `"`
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

// Keys returns every key Install writes for exe: one per verb on folders
// and one per verb on the folder background.
func Keys(exe string) []Key {
	exe = filepath.Clean(exe)
	icon := fmt.Sprintf(`"%s",0`, exe)
	var out []Key
	for _, root := range []string{folderShell, backgroundShell} {
		for _, v := range Verbs {
			out = append(out, Key{
				Path:    root + `\` + keyPrefix + v.Name,
				Label:   v.Label,
				Icon:    icon,
				Command: commandLine(exe, v.Args),
			})
		}
	}
	return out
}

// keyPaths lists the key paths Install writes, without the command subkeys.
func keyPaths() []string {
	var out []string
	for _, k := range Keys("envpath") {
		out = append(out, k.Path)
	}
	return out
}

// Package version provides version information.
package version

import (
	"fmt"
	"strings"

	"github.com/tcnksm/go-latest"
)

// Version is set at build time via -ldflags "-X github.com/VoxDroid/envpath/internal/version.Version=<value>"
// The default is a development placeholder.
var Version = "v0.1.0"

// Source is where released versions are looked up.
var Source latest.Source = &latest.GithubTag{
	Owner:             "VoxDroid",
	Repository:        "envpath",
	FixVersionStrFunc: latest.DeleteFrontV(),
}

// Update is the result of CheckLatest.
type Update struct {
	Current  string
	Latest   string
	Outdated bool
}

// CheckLatest compares Version with the newest published release.
func CheckLatest() (*Update, error) {
	current := strings.TrimPrefix(Version, "v")
	res, err := latest.Check(Source, current)
	if err != nil {
		return nil, fmt.Errorf("check latest release: %w", err)
	}
	return &Update{Current: current, Latest: res.Current, Outdated: res.Outdated}, nil
}

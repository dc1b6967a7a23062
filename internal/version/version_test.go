package version

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tcnksm/go-latest"
)

type failingSource struct{}

func (failingSource) Validate() error { return nil }
func (failingSource) Fetch() (*latest.FetchResponse, error) {
	return nil, errors.New("offline")
}

func TestCheckLatestReportsFetchError(t *testing.T) {
	orig := Source
	Source = failingSource{}
	defer func() { Source = orig }()

	_, err := CheckLatest()
	assert.Error(t, err, "expected error when the release source is unreachable")
}

package pathlist

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", []string{}},
		{"only separators", ";;;", []string{}},
		{"whitespace entries dropped", " ; \t ;C:\\Bin", []string{`C:\Bin`}},
		{"trims and strips trailing separator", `  C:\Tools\ ;C:\Bin`, []string{`C:\Tools`, `C:\Bin`}},
		{"strips repeated trailing separators", `C:\Tools\\\`, []string{`C:\Tools`}},
		{"forward slash separators", `C:/Go/bin/`, []string{`C:/Go/bin`}},
		{"case-insensitive dedupe keeps first", `C:\Tools;c:\TOOLS\;C:\Bin;C:\tools`, []string{`C:\Tools`, `C:\Bin`}},
		{"keeps unexpanded variables", `%SystemRoot%\system32;%SYSTEMROOT%\System32\`, []string{`%SystemRoot%\system32`}},
		{"trailing separator in list", `C:\A;C:\B;`, []string{`C:\A`, `C:\B`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.raw).Entries())
		})
	}
}

func TestSerialize(t *testing.T) {
	assert.Equal(t, "", Serialize(List{}))
	assert.Equal(t, `C:\Tools;C:\Bin`, Parse(`C:\Tools\;C:\Bin;;`).String())
}

func TestParseIsIdempotent(t *testing.T) {
	inputs := []string{
		"",
		`C:\Tools\\;C:\Tools`,
		` a ; B\ ;b;A\\\; ;`,
		`%USERPROFILE%\bin\;C:\x`,
	}
	for _, in := range inputs {
		once := Parse(in)
		twice := Parse(Serialize(once))
		assert.True(t, EqualList(once, twice), "input %q: %v vs %v", in, once, twice)
		assert.Equal(t, once.Entries(), twice.Entries())
	}
}

func TestSeparatorNormalizationIdempotence(t *testing.T) {
	dirs := []string{`C:\Tools`, `D:\Program Files\Git\cmd`, `relative\dir`, `C:\with;semicolon`}
	for _, d := range dirs {
		withSep := Parse(Serialize(Parse(d + `\`)))
		without := Parse(Serialize(Parse(d)))
		assert.Equal(t, without.Entries(), withSep.Entries(), "dir %q", d)
	}
}

func TestWithWithoutRoundTrip(t *testing.T) {
	base := Parse(`C:\Tools;C:\Bin`)
	added, ok := base.With(`C:\NewDir`)
	require.True(t, ok)
	assert.Equal(t, `C:\Tools;C:\Bin;C:\NewDir`, added.String())

	back, ok := added.Without(`c:\newdir\`)
	require.True(t, ok)
	assert.True(t, EqualList(base, back))
	// the original is untouched
	assert.Equal(t, 2, base.Len())
}

func TestWithPresentOrInvalid(t *testing.T) {
	l := Parse(`C:\Tools;C:\Bin`)
	same, ok := l.With(`c:\tools\`)
	assert.False(t, ok)
	assert.True(t, EqualList(l, same))

	same, ok = l.With("   ")
	assert.False(t, ok)
	assert.Equal(t, 2, same.Len())
}

func TestWithoutRemovesAllMatches(t *testing.T) {
	// lists built through Parse are unique, so construct the duplicate by hand
	l := List{entries: []string{`C:\A`, `C:\B`, `c:\a`}}
	out, ok := l.Without(`C:\A\`)
	require.True(t, ok)
	assert.Equal(t, []string{`C:\B`}, out.Entries())

	_, ok = out.Without(`C:\Missing`)
	assert.False(t, ok)
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(`C:\Tools\`, `c:\TOOLS`))
	assert.False(t, Equal(`C:\Tools`, `C:\Tool`))
}

func TestNoDuplicatesForAnyAddSequence(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	pool := []string{`C:\A`, `c:\a\`, `C:\B`, `C:\b\\`, `D:\x`, ` d:\X `, "", " "}
	for round := 0; round < 200; round++ {
		var l List
		for i := 0; i < 12; i++ {
			l, _ = l.With(pool[r.Intn(len(pool))])
		}
		seen := map[string]bool{}
		for _, e := range l.Entries() {
			key := strings.ToLower(Normalize(e))
			assert.False(t, seen[key], "duplicate %s in %v", e, l.Entries())
			seen[key] = true
		}
	}
}

func TestFromEntries(t *testing.T) {
	l := FromEntries(`C:\A\`, `c:\a`, "", `C:\B`)
	assert.Equal(t, []string{`C:\A`, `C:\B`}, l.Entries())
}

package glob

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcher_SeedCases(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"*.cs", "/project/file.cs", true},
		{"*.cs", "/project/file.vb", false},
		{"*.cs", "/project/file.csx", false},
		{"*.{cs,vb}", "/project/file.vb", true},
		{"*.{cs,vb}", "/project/file.fs", false},
		{"**/*.cs", "/a/b/c/file.cs", true},
		{"file?.cs", "/project/file1.cs", true},
		{"file?.cs", "/project/file10.cs", false},
		{"file{1..5}.cs", "/project/file3.cs", true},
		{"file{1..5}.cs", "/project/file6.cs", false},
		{"file[!abc].cs", "/project/filed.cs", true},
		{"file[!abc].cs", "/project/filea.cs", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.path, func(t *testing.T) {
			m, ok := TryCreateMatcher(tt.pattern)
			require.True(t, ok)
			assert.Equal(t, tt.want, m.IsMatch(tt.path))
		})
	}
}

func TestMatcher_Grammar(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		path    string
		want    bool
	}{
		{"star stops at slash", "src/*.cs", "/repo/src/a/b.cs", false},
		{"dir boundary", "src/*.cs", "/repo/src/b.cs", true},
		{"no substring match", "src/*.cs", "/repo/mysrc/b.cs", false},
		{"double star crosses dirs", "src/**.cs", "/repo/src/a/b.cs", true},
		{"anchored", "/src/*.cs", "/src/a.cs", true},
		{"anchored rejects deeper", "/src/*.cs", "/repo/src/a.cs", false},
		{"star matches everything", "*", "/any/file.txt", true},
		{"class", "[abc].txt", "/b.txt", true},
		{"class range", "[a-c].txt", "/d.txt", false},
		{"negated class never matches slash", "a[!x]b", "/a/b", false},
		{"question mark not slash", "a?b", "/a/b", false},
		{"nested alternatives", "{src,lib/{a,b}}/*.go", "/lib/b/x.go", true},
		{"alternative with glob", "*.{c*,h}", "/x/main.cpp", true},
		{"single alternative is literal", "{cs}", "/{cs}", true},
		{"single alternative not expanded", "{cs}", "/cs", false},
		{"negative range", "f{-3..3}", "/f-2", true},
		{"reversed range", "f{5..1}", "/f4", true},
		{"range out of bounds", "f{-3..3}", "/f-4", false},
		{"range after star", "*{10..20}.cs", "/file15.cs", true},
		{"range after star out of bounds", "*{10..20}.cs", "/file5.cs", false},
		{"range before star", "{1..3}*", "/12x", true},
		{"range before star rejects", "{1..3}*", "/4x", false},
		{"range across digit counts", "v{8..120}", "/v99", true},
		{"range upper bound", "v{8..120}", "/v121", false},
		{"range leading zeros", "v{8..120}", "/v009", true},
		{"range plus sign", "v{8..120}", "/v+12", true},
		{"range negative zero", "v{-2..2}", "/v-0", true},
		{"escape", `\*.cs`, "/*.cs", true},
		{"escape rejects glob", `\*.cs`, "/a.cs", false},
		{"case sensitive", "*.CS", "/a.cs", false},
		{"backslash path", "*.cs", `C:\repo\file.cs`, true},
		{"literal dot", "a.b", "/aXb", false},
		{"brackets in alternatives", "{[ab],c}.md", "/a.md", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := TryCreateMatcher(tt.pattern)
			require.True(t, ok, tt.pattern)
			assert.Equal(t, tt.want, m.IsMatch(tt.path), "%s ~ %s", tt.pattern, tt.path)
		})
	}
}

func TestTryCreateMatcher_Malformed(t *testing.T) {
	for _, pattern := range []string{"", "*.{cs,vb", "file[abc", "{a,{b}", "[!"} {
		m, ok := TryCreateMatcher(pattern)
		assert.False(t, ok, pattern)
		assert.Nil(t, m, pattern)
	}

	_, err := Compile("*.{cs")
	var syntaxErr *SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Contains(t, syntaxErr.Error(), "unterminated '{'")
}

func TestMatcher_Pattern(t *testing.T) {
	m, ok := TryCreateMatcher("*.md")
	require.True(t, ok)
	assert.Equal(t, "*.md", m.Pattern())
}

func TestMatchAny(t *testing.T) {
	cs, _ := TryCreateMatcher("*.cs")
	vb, _ := TryCreateMatcher("*.vb")
	matchers := []*Matcher{cs, nil, vb}

	assert.True(t, MatchAny(matchers, "/x.vb"))
	assert.False(t, MatchAny(matchers, "/x.fs"))
	assert.False(t, MatchAny(nil, "/x.cs"))
}

func writeTree(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}
	return root
}

func TestAnyFileMatches(t *testing.T) {
	root := writeTree(t,
		"src/app/main.cs",
		"docs/readme.md",
		"node_modules/pkg/index.js",
		"bin/Debug/out.vb",
	)

	compile := func(pattern string) []*Matcher {
		m, ok := TryCreateMatcher(pattern)
		require.True(t, ok)
		return []*Matcher{m}
	}
	ignore := []string{".git", "node_modules", "bin"}

	tests := []struct {
		name    string
		pattern string
		want    bool
	}{
		{"nested file", "*.cs", true},
		{"anchored relative to root", "/docs/*.md", true},
		{"anchored mismatch", "/src/*.cs", false},
		{"ignored directory", "*.js", false},
		{"ignored nested directory", "*.vb", false},
		{"no file", "*.fs", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AnyFileMatches(root, compile(tt.pattern), ignore)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnyFileMatches_IgnorePatterns(t *testing.T) {
	root := writeTree(t, "build-output/x.cs", "src/generated/y.cs")
	m, _ := TryCreateMatcher("*.cs")

	got, err := AnyFileMatches(root, []*Matcher{m}, []string{"build-*", "src/generated"})
	require.NoError(t, err)
	assert.False(t, got)
}

func TestAnyFileMatches_FailsOpen(t *testing.T) {
	m, _ := TryCreateMatcher("*.cs")

	got, err := AnyFileMatches(filepath.Join(t.TempDir(), "missing"), []*Matcher{m}, nil)
	assert.Error(t, err)
	assert.True(t, got)

	got, err = AnyFileMatches(t.TempDir(), nil, nil)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestRangeExpr(t *testing.T) {
	tests := []struct {
		lo, hi int
	}{
		{0, 0}, {1, 9}, {10, 20}, {7, 1234}, {-150, -3}, {-12, 305}, {99, 100},
	}

	for _, tt := range tests {
		re := regexp.MustCompile("^" + rangeExpr(tt.lo, tt.hi) + "$")
		for n := tt.lo - 25; n <= tt.hi+25; n++ {
			want := n >= tt.lo && n <= tt.hi
			assert.Equal(t, want, re.MatchString(strconv.Itoa(n)), "%d in [%d, %d]", n, tt.lo, tt.hi)
		}
	}
}

func TestCompile_RangeTooLarge(t *testing.T) {
	_, err := Compile("f{1..99999999999999999999}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "numeric range out of bounds")
}

package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/leapstack-labs/ecl/internal/cli/config"
	"github.com/leapstack-labs/ecl/internal/cli/output"
	clitest "github.com/leapstack-labs/ecl/internal/cli/testutil"
	"github.com/leapstack-labs/ecl/internal/testutil"
	"github.com/leapstack-labs/ecl/pkg/core"
	"github.com/leapstack-labs/ecl/pkg/validate"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs cmd standalone with default configuration and returns its
// combined output.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCommandMetadata(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{NewLintCommand(), "lint [path...]", []string{"format", "disable", "severity"}},
		{NewFixCommand(), "fix [path...]", []string{"write", "check", "sort", "align"}},
		{NewFormatCommand(), "format [path...]", []string{"write", "check", "align"}},
		{NewSortCommand(), "sort [path...]", []string{"write", "check", "section"}},
		{NewAddMissingCommand(), "add-missing [path...]", []string{"write", "check", "category"}},
		{NewChainCommand(), "chain [path]", []string{"format"}},
		{NewRulesCommand(), "rules [code]", []string{"group", "format"}},
		{NewKeywordsCommand(), "keywords [name]", []string{"category", "all", "format"}},
		{NewWatchCommand(), "watch [path...]", []string{"severity", "debounce"}},
	}
	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short, "Short should not be empty")
			assert.NotEmpty(t, tt.cmd.Example, "Example should not be empty")
			for _, flag := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(flag), "flag %q should exist", flag)
			}
		})
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, NewVersionCommand("1.2.3"))
	require.NoError(t, err)
	assert.Contains(t, out, "ecl v1.2.3")
}

const cleanConfig = "root = true\n\n[*.cs]\nindent_style = space\nindent_size = 4\n"

func TestLint_Clean(t *testing.T) {
	dir := clitest.SetupWorkspace(t, map[string]string{
		".editorconfig": cleanConfig,
		"src/a.cs":      "",
	})

	out, err := execute(t, NewLintCommand(), dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No lint issues found in 1 files")
}

func TestLint_ReportsIssues(t *testing.T) {
	dir := clitest.SetupWorkspace(t, map[string]string{
		".editorconfig": "root = true\n[*]\nindent_style = space\nindent_style = tab\n",
	})

	out, err := execute(t, NewLintCommand(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lint issues found")
	assert.Contains(t, out, "EC103")
	assert.Contains(t, out, "Summary: 1 issues")
	clitest.AssertNoANSI(t, out)
}

func TestLint_Disable(t *testing.T) {
	dir := clitest.SetupWorkspace(t, map[string]string{
		".editorconfig": "root = true\n[*]\nindent_style = space\nindent_style = tab\n",
	})

	_, err := execute(t, NewLintCommand(), "--disable", "ec103", dir)
	require.NoError(t, err)
}

func TestLint_JSON(t *testing.T) {
	dir := clitest.SetupWorkspace(t, map[string]string{
		".editorconfig":      "root = true\n[*]\nfoo_bar = 1\n",
		"sub/.editorconfig":  "[*.md]\nindent_size = 2\n",
		"sub/readme.md":      "",
		"node_modules/.keep": "",
	})

	out, err := execute(t, NewLintCommand(), "--format", "json", dir)
	require.Error(t, err)

	var result output.LintOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 2, result.Summary.FilesAnalyzed)
	assert.Equal(t, 1, result.Summary.FilesWithIssues)
	require.Len(t, result.Files, 1)
	require.Len(t, result.Files[0].Diagnostics, 1)
	d := result.Files[0].Diagnostics[0]
	assert.Equal(t, "EC112", d.Code)
	assert.Equal(t, "warning", d.Category)
	assert.Equal(t, 3, d.Line)
	assert.NotEmpty(t, d.DocURL)
}

func TestLint_SharedParentsAcrossWorkers(t *testing.T) {
	files := map[string]string{
		".editorconfig": "root = true\n[*.cs]\nindent_size = 4\n",
	}
	const children = 12
	for i := 0; i < children; i++ {
		files[fmt.Sprintf("p%02d/.editorconfig", i)] = "[*.cs]\nindent_size = 4\n"
		files[fmt.Sprintf("p%02d/a.cs", i)] = ""
	}
	files["a.cs"] = ""
	dir := clitest.SetupWorkspace(t, files)

	for round := 0; round < 5; round++ {
		out, err := execute(t, NewLintCommand(), "--format", "json", "--severity", "suggestion", dir)
		require.Error(t, err)

		var result output.LintOutput
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		assert.Equal(t, children+1, result.Summary.FilesAnalyzed)
		require.Len(t, result.Files, children, "round %d", round)
		for _, f := range result.Files {
			require.Len(t, f.Diagnostics, 1, f.Path)
			assert.Equal(t, "EC105", f.Diagnostics[0].Code, f.Path)
		}
	}
}

func TestLint_NoFiles(t *testing.T) {
	_, err := execute(t, NewLintCommand(), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no .editorconfig files found")
}

func TestLint_BadSeverity(t *testing.T) {
	_, err := execute(t, NewLintCommand(), "--severity", "fatal", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown severity")
}

func TestFilterBySeverity(t *testing.T) {
	results := []lintFileResult{{
		Path: ".editorconfig",
		Diagnostics: []core.DisplayError{
			{Code: "EC101", Category: core.CategoryError},
			{Code: "EC103", Category: core.CategoryWarning},
			{Code: "EC113", Category: core.CategorySuggestion},
		},
	}}

	t.Run("error threshold", func(t *testing.T) {
		filtered := filterBySeverity(results, core.CategoryError)
		require.Len(t, filtered, 1)
		assert.Len(t, filtered[0].Diagnostics, 1)
	})

	t.Run("suggestion threshold", func(t *testing.T) {
		filtered := filterBySeverity(results, core.CategorySuggestion)
		require.Len(t, filtered, 1)
		assert.Len(t, filtered[0].Diagnostics, 3)
	})

	t.Run("empty when all below threshold", func(t *testing.T) {
		only := []lintFileResult{{Path: "x", Diagnostics: []core.DisplayError{{Category: core.CategorySuggestion}}}}
		assert.Empty(t, filterBySeverity(only, core.CategoryError))
	})
}

func TestSummarize(t *testing.T) {
	results := []lintFileResult{
		{Path: "a", Diagnostics: []core.DisplayError{{Category: core.CategoryError}, {Category: core.CategoryWarning}}},
		{Path: "b", Diagnostics: []core.DisplayError{{Category: core.CategorySuggestion}}},
	}
	s := summarize(results, 5)
	assert.Equal(t, output.LintSummary{
		FilesAnalyzed:   5,
		FilesWithIssues: 2,
		TotalIssues:     3,
		Errors:          1,
		Warnings:        1,
		Suggestions:     1,
	}, s)
}

func TestFix_PreviewAndWrite(t *testing.T) {
	dir := clitest.SetupWorkspace(t, map[string]string{
		".editorconfig": "root = true\n[*]\nindent_style=space\nindent_style = tab\n",
	})
	path := filepath.Join(dir, ".editorconfig")

	out, err := execute(t, NewFixCommand(), path)
	require.NoError(t, err)
	assert.Equal(t, "root = true\n[*]\nindent_style = tab\n", out)
	assert.Equal(t, "root = true\n[*]\nindent_style=space\nindent_style = tab\n", clitest.ReadFile(t, dir, ".editorconfig"), "preview leaves the file alone")

	out, err = execute(t, NewFixCommand(), "--write", path)
	require.NoError(t, err)
	assert.Contains(t, out, "(updated)")
	assert.Equal(t, "root = true\n[*]\nindent_style = tab\n", clitest.ReadFile(t, dir, ".editorconfig"))

	out, err = execute(t, NewFixCommand(), "--write", path)
	require.NoError(t, err)
	assert.Contains(t, out, "(unchanged)")
}

func TestFix_Check(t *testing.T) {
	dir := clitest.SetupWorkspace(t, map[string]string{
		"a/.editorconfig": "root = true\n[*]\nindent_size = 2\nindent_size = 4\n",
		"b/.editorconfig": "root = true\n[*]\nindent_size = 4\n",
	})

	out, err := execute(t, NewFixCommand(), "--check", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 files would change")
	assert.Contains(t, out, "(would change)")
}

func TestEditFlags_MutuallyExclusive(t *testing.T) {
	_, err := execute(t, NewFixCommand(), "--write", "--check", t.TempDir())
	require.Error(t, err)
}

func TestFormat_Align(t *testing.T) {
	dir := clitest.SetupWorkspace(t, map[string]string{
		".editorconfig": "root = true\n[*]\nindent_style=space\nindent_size = 4   \n",
	})

	out, err := execute(t, NewFormatCommand(), "--align", "section", filepath.Join(dir, ".editorconfig"))
	require.NoError(t, err)
	assert.Equal(t, "root = true\n[*]\nindent_style = space\nindent_size  = 4\n", out)
}

func TestSort(t *testing.T) {
	dir := clitest.SetupWorkspace(t, map[string]string{
		".editorconfig": "root = true\n[*]\nindent_size = 4\ncharset = utf-8\n[*.cs]\nindent_size = 2\nend_of_line = lf\n",
	})
	path := filepath.Join(dir, ".editorconfig")

	out, err := execute(t, NewSortCommand(), path)
	require.NoError(t, err)
	assert.Equal(t, "root = true\n[*]\ncharset = utf-8\nindent_size = 4\n[*.cs]\nend_of_line = lf\nindent_size = 2\n", out)

	out, err = execute(t, NewSortCommand(), "--section", "1", path)
	require.NoError(t, err)
	assert.Equal(t, "root = true\n[*]\nindent_size = 4\ncharset = utf-8\n[*.cs]\nend_of_line = lf\nindent_size = 2\n", out)

	_, err = execute(t, NewSortCommand(), "--section", "7", path)
	require.Error(t, err)
}

func TestAddMissing(t *testing.T) {
	dir := clitest.SetupWorkspace(t, map[string]string{
		".editorconfig": "root = true\n",
	})
	path := filepath.Join(dir, ".editorconfig")

	out, err := execute(t, NewAddMissingCommand(), "--category", "dotnet", path)
	require.NoError(t, err)
	assert.Contains(t, out, "[*.{cs,vb}]")
	assert.Contains(t, out, "dotnet_style_predefined_type_for_member_access = true:suggestion")
	assert.NotContains(t, out, "indent_style")

	_, err = execute(t, NewAddMissingCommand(), "--category", "cobol", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown keyword category")
}

func TestChain(t *testing.T) {
	dir := clitest.SetupWorkspace(t, map[string]string{
		".editorconfig":     "root = true\n[*]\nindent_style = space\n[*.cs]\nindent_size = 4\n",
		"src/.editorconfig": "[*.cs]\nindent_size = 2\n",
		"src/app/Main.cs":   "",
	})

	out, err := execute(t, NewChainCommand(), "--format", "json", filepath.Join(dir, "src", "app", "Main.cs"))
	require.NoError(t, err)

	var result ChainJSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Chain, 2)
	assert.Equal(t, filepath.Join(dir, "src", ".editorconfig"), result.Chain[0].Path)
	assert.True(t, result.Chain[1].Root)

	values := make(map[string]string)
	for _, p := range result.Properties {
		values[p.Name] = p.Value
	}
	assert.Equal(t, map[string]string{"indent_style": "space", "indent_size": "2"}, values)

	out, err = execute(t, NewChainCommand(), filepath.Join(dir, "src"))
	require.NoError(t, err)
	assert.Contains(t, out, "# Inheritance chain")
	assert.Contains(t, out, "(root)")
}

func TestRules(t *testing.T) {
	out, err := execute(t, NewRulesCommand(), "--format", "json")
	require.NoError(t, err)
	var result RulesJSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 21, result.Count)
	assert.Equal(t, "EC101", result.Rules[0].Code)

	out, err = execute(t, NewRulesCommand(), "--group", "naming", "--format", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 4, result.Count)

	out, err = execute(t, NewRulesCommand(), "ec103")
	require.NoError(t, err)
	assert.Contains(t, out, "duplicates.property")
	assert.Contains(t, out, "# suppress: EC103")

	_, err = execute(t, NewRulesCommand(), "EC999")
	require.Error(t, err)
}

func TestKeywords(t *testing.T) {
	out, err := execute(t, NewKeywordsCommand(), "--category", "standard", "--format", "json")
	require.NoError(t, err)
	var result KeywordsJSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.NotEmpty(t, result.Keywords)
	for _, kw := range result.Keywords {
		assert.Equal(t, "Standard", kw.Category.String())
	}
	assert.NotEmpty(t, result.Severities)

	out, err = execute(t, NewKeywordsCommand(), "indent_style")
	require.NoError(t, err)
	assert.Contains(t, out, "# indent_style")
	assert.Contains(t, out, "tab, space, unset")

	_, err = execute(t, NewKeywordsCommand(), "no_such_keyword")
	require.Error(t, err)
}

func newWatchContext(t *testing.T, out *clitest.SafeBuffer, logger *slog.Logger) *CommandContext {
	t.Helper()
	cfg := config.Default()
	catalog, err := loadCatalog(cfg)
	require.NoError(t, err)
	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: output.NewRendererWithTTY(out, out, false, output.ModeText),
		Catalog:  catalog,
		Validator: validate.New(validate.Config{
			Catalog:  catalog,
			Settings: cfg.Settings(),
			Logger:   logger,
		}),
	}
}

func TestWatch_RevalidatesOnChange(t *testing.T) {
	dir := clitest.SetupWorkspace(t, map[string]string{
		".editorconfig": cleanConfig,
		"src/a.cs":      "",
	})
	path := filepath.Join(dir, ".editorconfig")

	var out clitest.SafeBuffer
	logger, records := testutil.NewRecordingLogger(t)
	cmdCtx := newWatchContext(t, &out, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runWatch(ctx, cmdCtx, []string{path}, 10*time.Millisecond, core.CategoryWarning)
	}()

	require.Eventually(t, func() bool {
		return bytes.Contains([]byte(out.String()), []byte("no issues"))
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte(cleanConfig+"indent_size = 2\n"), 0o644))
	require.Eventually(t, func() bool {
		return bytes.Contains([]byte(out.String()), []byte("EC103"))
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
	assert.True(t, records.Has("opened document"))
}

func TestWatch_ReparentsOnCreateAndRemove(t *testing.T) {
	dir := clitest.SetupWorkspace(t, map[string]string{
		".editorconfig":          "root = true\n[*.cs]\nindent_size = 4\n",
		"sub/deep/.editorconfig": "[*.cs]\nindent_size = 4\n",
		"sub/deep/a.cs":          "",
	})
	childPath := filepath.Join(dir, "sub", "deep", ".editorconfig")
	middlePath := filepath.Join(dir, "sub", ".editorconfig")

	var out clitest.SafeBuffer
	cmdCtx := newWatchContext(t, &out, testutil.NewTestLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runWatch(ctx, cmdCtx, []string{childPath}, 10*time.Millisecond, core.CategorySuggestion)
	}()
	since := func(mark int) string { return out.String()[mark:] }

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "EC105")
	}, 5*time.Second, 10*time.Millisecond, "child repeats the root value")

	mark := len(out.String())
	require.NoError(t, os.WriteFile(middlePath, []byte("[*.cs]\nindent_size = 2\n"), 0o644))
	require.Eventually(t, func() bool {
		return strings.Contains(since(mark), childPath+": no issues")
	}, 5*time.Second, 10*time.Millisecond, "new intermediate file becomes the parent")

	mark = len(out.String())
	require.NoError(t, os.Remove(middlePath))
	require.Eventually(t, func() bool {
		return strings.Contains(since(mark), "EC105")
	}, 5*time.Second, 10*time.Millisecond, "removed parent no longer shadows the root")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

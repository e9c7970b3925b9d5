package validate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/ecl/internal/testutil"
	"github.com/leapstack-labs/ecl/pkg/core"
	"github.com/leapstack-labs/ecl/pkg/document"
	"github.com/leapstack-labs/ecl/pkg/lint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T, settings *lint.Settings) *Validator {
	t.Helper()
	return New(Config{Settings: settings, Logger: testutil.NewTestLogger(t)})
}

// validateText parses text into a path-less document and validates it.
func validateText(t *testing.T, text string, settings *lint.Settings) (*document.Document, []core.DisplayError) {
	t.Helper()
	doc := document.New(document.Config{})
	doc.Parse(text)
	errs, err := newValidator(t, settings).Validate(doc)
	require.NoError(t, err)
	return doc, errs
}

func codes(errs []core.DisplayError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Code)
	}
	return out
}

// itemErrors returns the codes attached to the first item with text.
func itemErrors(t *testing.T, doc *document.Document, kind core.ItemKind, text string) []string {
	t.Helper()
	var out []string
	for _, item := range doc.Snapshot().Items {
		if item.Kind == kind && item.Text == text {
			for _, e := range item.Errors {
				out = append(out, e.Code)
			}
			return out
		}
	}
	t.Fatalf("no %s item %q", kind, text)
	return nil
}

func TestValidate_EndToEnd(t *testing.T) {
	text := "root = true\n\n# comment\n[*.cs]\nindent_style = space\nindent_size = 4\nend_of_line = crlf\ninsert_final_newline = true\n"

	doc, errs := validateText(t, text, nil)
	assert.Empty(t, errs)

	snap := doc.Snapshot()
	require.Len(t, snap.Properties, 1)
	require.Len(t, snap.Sections, 1)
	assert.Len(t, snap.Sections[0].Properties, 4)
	assert.True(t, snap.Sections[0].IsValid())
}

func TestValidate_NilDocument(t *testing.T) {
	_, err := newValidator(t, nil).Validate(nil)
	assert.ErrorIs(t, err, document.ErrNilDocument)
}

func TestValidate_Idempotent(t *testing.T) {
	text := "[*]\nfoo = bar\nindent_style = spaces\nindent_style = tab\n= stray\n[*]\n"
	doc := document.New(document.Config{})
	doc.Parse(text)
	v := newValidator(t, nil)

	first, err := v.Validate(doc)
	require.NoError(t, err)
	second, err := v.Validate(doc)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	for _, item := range doc.Snapshot().Items {
		seen := map[string]bool{}
		for _, e := range item.Errors {
			assert.False(t, seen[e.Code], "duplicate %s on %q", e.Code, item.Text)
			seen[e.Code] = true
		}
	}
}

func TestValidate_Suppression(t *testing.T) {
	text := "# suppress: EC112\n[*]\nfoo = bar\nbaz = qux\nzip = zap\n"
	_, errs := validateText(t, text, nil)
	assert.NotContains(t, codes(errs), "EC112")

	_, errs = validateText(t, "[*]\nfoo = bar\n", nil)
	assert.Contains(t, codes(errs), "EC112")
}

func TestValidate_Rules(t *testing.T) {
	tests := []struct {
		name string
		text string
		kind core.ItemKind
		item string
		want string
	}{
		{"unknown element", "[*]\n= value\n", core.ItemUnknown, "= value", "EC101"},
		{"root in section", "[*]\nroot = true\n", core.ItemKeyword, "root", "EC102"},
		{"root not first", "indent_style = tab\nroot = true\n", core.ItemKeyword, "root", "EC102"},
		{"missing value", "[*]\nindent_style =\n", core.ItemKeyword, "indent_style", "EC106"},
		{"unknown value", "[*]\nindent_style = spaces\n", core.ItemValue, "spaces", "EC107"},
		{"unknown value in list", "[*.cs]\ncsharp_new_line_before_open_brace = methods, bogus\n", core.ItemValue, "methods, bogus", "EC107"},
		{"non-positive integer", "[*]\nindent_size = 0\n", core.ItemValue, "0", "EC107"},
		{"missing severity", "[*.cs]\ncsharp_prefer_braces = true\n", core.ItemKeyword, "csharp_prefer_braces", "EC108"},
		{"unknown severity", "[*.cs]\ncsharp_prefer_braces = true:warnin\n", core.ItemValue, "true:warnin", "EC109"},
		{"severity not applicable", "[*]\nindent_style = tab:warning\n", core.ItemSeverity, "warning", "EC110"},
		{"unterminated header", "[*.cs\n", core.ItemSection, "[*.cs", "EC111"},
		{"malformed glob", "[*.{cs]\n", core.ItemSection, "[*.{cs]", "EC111"},
		{"unknown keyword", "[*]\nfoo = bar\n", core.ItemKeyword, "foo", "EC112"},
		{"space in section", "[*.cs *.vb]\n", core.ItemSection, "[*.cs *.vb]", "EC113"},
		{"tab_width unneeded", "[*]\nindent_size = 4\ntab_width = 4\n", core.ItemKeyword, "tab_width", "EC115"},
		{"indent_size unneeded", "[*]\nindent_style = tab\nindent_size = 4\n", core.ItemKeyword, "indent_size", "EC116"},
		{"unsupported keyword", "[*]\ndotnet_style_allow_multiple_blank_lines_experimental = true:silent\n", core.ItemKeyword, "dotnet_style_allow_multiple_blank_lines_experimental", "EC120"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, _ := validateText(t, tt.text, nil)
			assert.Contains(t, itemErrors(t, doc, tt.kind, tt.item), tt.want)
		})
	}
}

func TestValidate_CleanCases(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"severity present", "[*.cs]\ncsharp_prefer_braces = true:silent\n"},
		{"unset", "[*]\nindent_style = unset\n"},
		{"case-insensitive values", "[*]\nEnd_Of_Line = LF\n"},
		{"diagnostic family", "[*.cs]\ndotnet_diagnostic.CA1822.severity = warning\n"},
		{"ignored prefix", "[*]\nresharper_foo = bar\nij_whatever\n"},
		{"tab_width differs", "[*]\nindent_size = 4\ntab_width = 8\n"},
		{"path value", "[*]\nfile_header_template = C:\\Users\\test\\file.cs\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := validateText(t, tt.text, nil)
			assert.Empty(t, errs)
		})
	}
}

func TestValidate_DuplicateProperties(t *testing.T) {
	doc, _ := validateText(t, "[*]\nindent_style = space\nindent_style = tab\n", nil)

	props := doc.Snapshot().Sections[0].Properties
	require.Len(t, props, 2)
	assert.True(t, props[0].Keyword.HasError("EC103"), "earlier occurrence is overridden")
	assert.False(t, props[1].Keyword.HasError("EC103"), "last occurrence is clean")
}

func TestValidate_DuplicateSections(t *testing.T) {
	doc, _ := validateText(t, "[*.cs]\nindent_size = 2\n[*.cs]\nindent_size = 4\n", nil)

	sections := doc.Snapshot().Sections
	require.Len(t, sections, 2)
	assert.False(t, sections[0].Item.HasError("EC104"), "first section is clean")
	assert.True(t, sections[1].Item.HasError("EC104"))
}

func TestValidate_Settings(t *testing.T) {
	text := "[*]\nfoo = bar\nindent_style = spaces\nindent_style = tab\n[*]\n[a b]\n"

	settings := lint.DefaultSettings()
	settings.UnknownProperties = false
	settings.UnknownValues = false
	settings.DuplicateProperties = false
	settings.DuplicateSections = false
	settings.AllowSpacesInSections = true

	_, errs := validateText(t, text, settings)
	assert.Empty(t, errs)

	_, errs = validateText(t, text, lint.DefaultSettings().Disable("EC112"))
	assert.NotContains(t, codes(errs), "EC112")
	assert.Contains(t, codes(errs), "EC107")
}

func TestValidate_SettingsReadEachRun(t *testing.T) {
	doc := document.New(document.Config{})
	doc.Parse("[*]\nfoo = bar\n")
	v := newValidator(t, nil)

	errs, err := v.Validate(doc)
	require.NoError(t, err)
	assert.Contains(t, codes(errs), "EC112")

	v.SetSettings(lint.DefaultSettings().Disable("ec112"))
	errs, err = v.Validate(doc)
	require.NoError(t, err)
	assert.Empty(t, errs)
}

func TestValidate_ErrorPositions(t *testing.T) {
	_, errs := validateText(t, "[*]\n  foo = bar\n", nil)
	require.Len(t, errs, 1)
	assert.Equal(t, "EC112", errs[0].Code)
	assert.Equal(t, 2, errs[0].Line)
	assert.Equal(t, 3, errs[0].Column)
	assert.Equal(t, core.CategoryWarning, errs[0].Category)
	assert.Equal(t, `The keyword "foo" is unknown`, errs[0].Description)
}

func TestValidate_Naming(t *testing.T) {
	text := `[*.cs]
dotnet_naming_rule.all_members.symbols = everything
dotnet_naming_rule.all_members.style = pascal
dotnet_naming_rule.all_members.severity = warning
dotnet_naming_rule.private_fields.symbols = private_fields
dotnet_naming_rule.private_fields.style = camel
dotnet_naming_rule.private_fields.severity = warning
dotnet_naming_rule.broken.symbols = nowhere
dotnet_naming_rule.broken.style = missing
dotnet_naming_symbols.everything.applicable_kinds = *
dotnet_naming_symbols.private_fields.applicable_kinds = field
dotnet_naming_symbols.private_fields.applicable_accessibilities = private
dotnet_naming_style.pascal.capitalization = pascal_case
dotnet_naming_style.camel.capitalization = camel_case
dotnet_naming_style.leftover.capitalization = all_upper
`
	doc, _ := validateText(t, text, nil)

	assert.Contains(t, itemErrors(t, doc, core.ItemValue, "missing"), "EC117")
	assert.Contains(t, itemErrors(t, doc, core.ItemValue, "nowhere"), "EC121")
	assert.Contains(t, itemErrors(t, doc, core.ItemKeyword, "dotnet_naming_style.leftover.capitalization"), "EC118")
	assert.Contains(t, itemErrors(t, doc, core.ItemKeyword, "dotnet_naming_rule.all_members.symbols"), "EC119")
	assert.NotContains(t, itemErrors(t, doc, core.ItemKeyword, "dotnet_naming_rule.private_fields.symbols"), "EC119")
}

func TestSectionPattern(t *testing.T) {
	tests := []struct {
		header  string
		pattern string
		reason  string
	}{
		{"[*.cs]", "*.cs", ""},
		{"[*.cs", "", "missing closing bracket"},
		{"[]", "", "empty pattern"},
		{"[", "", "missing closing bracket"},
		{"*.cs]", "", "missing opening bracket"},
		{"[file[abc]", "", "unterminated '['"},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			pattern, reason := SectionPattern(tt.header)
			assert.Equal(t, tt.pattern, pattern)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func loadDoc(t *testing.T, path string) *document.Document {
	t.Helper()
	doc, err := (&document.DiskLoader{}).Load(path)
	require.NoError(t, err)
	return doc
}

func TestValidate_Globbing(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, document.FileName)
	writeFile(t, path, "root = true\n[*.cs]\nindent_size = 4\n[*.vb]\nindent_size = 4\n")
	writeFile(t, filepath.Join(root, "src", "a.cs"), "")
	writeFile(t, filepath.Join(root, "bin", "b.vb"), "")

	doc := loadDoc(t, path)
	_, err := newValidator(t, nil).Validate(doc)
	require.NoError(t, err)

	sections := doc.Snapshot().Sections
	assert.False(t, sections[0].Item.HasError("EC114"))
	assert.True(t, sections[1].Item.HasError("EC114"), "files under ignored directories do not count")

	settings := lint.DefaultSettings()
	settings.Globbing = false
	_, err = newValidator(t, settings).Validate(doc)
	require.NoError(t, err)
	assert.False(t, sections[1].Item.HasError("EC114"))
}

func TestValidate_ParentDuplicates(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, document.FileName), "root = true\n[*.cs]\nindent_size = 4\nindent_style = space\n")
	childPath := filepath.Join(root, "child", document.FileName)
	writeFile(t, childPath, "[*.cs]\nindent_size = 4\nindent_style = tab\n[*.md]\nindent_size = 4\n")

	doc := loadDoc(t, childPath)
	settings := lint.DefaultSettings()
	settings.Globbing = false
	_, err := newValidator(t, settings).Validate(doc)
	require.NoError(t, err)

	snap := doc.Snapshot()
	assert.True(t, snap.Sections[0].Properties[0].Keyword.HasError("EC105"), "same value in parent")
	assert.False(t, snap.Sections[0].Properties[1].Keyword.HasError("EC105"), "different value")
	assert.False(t, snap.Sections[1].Properties[0].Keyword.HasError("EC105"), "section absent in parent")
}

func TestValidate_ParentDuplicatesNearestWins(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, document.FileName), "root = true\n[*.cs]\nindent_size = 4\n")
	writeFile(t, filepath.Join(root, "mid", document.FileName), "[*.cs]\nindent_size = 2\n")
	leafPath := filepath.Join(root, "mid", "leaf", document.FileName)
	writeFile(t, leafPath, "[*.cs]\nindent_size = 4\n")

	doc := loadDoc(t, leafPath)
	settings := lint.DefaultSettings()
	settings.Globbing = false
	_, err := newValidator(t, settings).Validate(doc)
	require.NoError(t, err)

	assert.False(t, doc.Snapshot().Sections[0].Properties[0].Keyword.HasError("EC105"),
		"grandparent value is shadowed by the parent")
}

func TestValidate_EmitsValidatedEvent(t *testing.T) {
	doc := document.New(document.Config{})
	doc.Parse("[*]\n")

	var events []document.EventKind
	unsubscribe := doc.Subscribe(func(ev document.Event) { events = append(events, ev.Kind) })
	defer unsubscribe()

	_, err := newValidator(t, nil).Validate(doc)
	require.NoError(t, err)
	assert.Equal(t, []document.EventKind{document.EventValidated}, events)
}

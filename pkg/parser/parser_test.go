package parser

import (
	"testing"

	"github.com/leapstack-labs/ecl/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(items []*core.ParseItem) []core.ItemKind {
	out := make([]core.ItemKind, len(items))
	for i, item := range items {
		out[i] = item.Kind
	}
	return out
}

func TestParse_EndToEnd(t *testing.T) {
	text := "root = true\n\n# comment\n[*.cs]\nindent_style = space\nindent_size = 4\nend_of_line = crlf\ninsert_final_newline = true\n"

	res := Parse(text)

	require.Len(t, res.Properties, 1)
	assert.Equal(t, "root", res.Properties[0].Name())
	assert.Equal(t, "true", res.Properties[0].ValueText())

	require.Len(t, res.Sections, 1)
	section := res.Sections[0]
	assert.Equal(t, "[*.cs]", section.Item.Text)
	require.Len(t, section.Properties, 4)
	assert.True(t, section.IsValid())

	for _, item := range res.Items {
		assert.NotEqual(t, core.ItemUnknown, item.Kind, "unexpected unknown item %q", item.Text)
	}
}

func TestParse_RoundTripStable(t *testing.T) {
	text := "# top\nroot=true\r\n[*.{cs,vb}] ; trailing\r\nfoo = bar:warning # eol\n\n= orphan\nkey value\n"

	first := Parse(text)
	second := Parse(text)

	require.Len(t, second.Items, len(first.Items))
	for i := range first.Items {
		assert.True(t, first.Items[i].Equal(second.Items[i]), "item %d differs", i)
		assert.Equal(t, first.Items[i].Kind, second.Items[i].Kind)
	}
}

func TestParse_SpansMatchText(t *testing.T) {
	text := "[*]\r\nindent_style = tab # comment\r\ndotnet_style_qualification_for_field = false:suggestion\n"

	res := Parse(text)
	for _, item := range res.Items {
		assert.Positive(t, item.Span.Length)
		got := text[item.Span.Start : item.Span.Start+item.Span.Length]
		assert.Equal(t, item.Text, got)
	}
}

func TestParse_PropertyBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		keyword  string
		value    string
		severity string
	}{
		{"path with colon", `generated_code = C:\Users\test\file.cs`, "generated_code", `C:\Users\test\file.cs`, ""},
		{"severity suffix", "rule = value:warning", "rule", "value", "warning"},
		{"unknown suffix stays in value", "rule = value:notaseverity", "rule", "value:notaseverity", ""},
		{"severity case-insensitive", "rule = true:Error", "rule", "true", "Error"},
		{"colon separator", "indent_style: space", "indent_style", "space", ""},
		{"no spaces", "indent_size=4", "indent_size", "4", ""},
		{"spaced severity", "rule = false : silent", "rule", "false", "silent"},
		{"missing value", "indent_style =", "indent_style", "", ""},
		{"keyword only", "indent_style", "indent_style", "", ""},
		{"comment after value", "charset = utf-8 ; note", "charset", "utf-8", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Parse("[*]\n" + tt.line)
			require.Len(t, res.Sections, 1)
			require.Len(t, res.Sections[0].Properties, 1)

			prop := res.Sections[0].Properties[0]
			assert.Equal(t, tt.keyword, prop.Name())
			assert.Equal(t, tt.value, prop.ValueText())
			assert.Equal(t, tt.severity, prop.SeverityText())
		})
	}
}

func TestParse_UnknownText(t *testing.T) {
	t.Run("line starting with separator", func(t *testing.T) {
		res := Parse("= value")
		require.Len(t, res.Items, 1)
		assert.Equal(t, core.ItemUnknown, res.Items[0].Kind)
		assert.Equal(t, "= value", res.Items[0].Text)
		assert.Empty(t, res.Properties)
	})

	t.Run("keyword followed by text", func(t *testing.T) {
		res := Parse("indent_style space")
		assert.Equal(t, []core.ItemKind{core.ItemKeyword, core.ItemUnknown}, kinds(res.Items))
		assert.Equal(t, "space", res.Items[1].Text)
	})

	t.Run("text after severity", func(t *testing.T) {
		res := Parse("rule = true:warning extra")
		assert.Equal(t, []core.ItemKind{core.ItemKeyword, core.ItemValue, core.ItemSeverity, core.ItemUnknown}, kinds(res.Items))
		assert.Equal(t, "extra", res.Items[3].Text)
	})

	t.Run("text after section", func(t *testing.T) {
		res := Parse("[*.cs] junk")
		assert.Equal(t, []core.ItemKind{core.ItemSection, core.ItemUnknown}, kinds(res.Items))
	})

	t.Run("whitespace is never unknown", func(t *testing.T) {
		res := Parse("   \n\t\n[*]   \n")
		assert.Equal(t, []core.ItemKind{core.ItemSection}, kinds(res.Items))
	})
}

func TestParse_Sections(t *testing.T) {
	res := Parse("[*.cs]\na = b\n[*.vb # comment\nc = d\n[x]]\n")

	require.Len(t, res.Sections, 3)
	assert.Equal(t, "[*.cs]", res.Sections[0].Item.Text)
	assert.Equal(t, "[*.vb # comment", res.Sections[1].Item.Text)
	assert.Equal(t, "[x]]", res.Sections[2].Item.Text)
	assert.Len(t, res.Sections[0].Properties, 1)
	assert.Len(t, res.Sections[1].Properties, 1)
	assert.Empty(t, res.Sections[2].Properties)
	assert.Empty(t, res.Properties)
}

func TestParse_SectionTrailingComment(t *testing.T) {
	res := Parse("[*.md] # markdown")
	assert.Equal(t, []core.ItemKind{core.ItemSection, core.ItemComment}, kinds(res.Items))
	assert.Equal(t, "# markdown", res.Items[1].Text)

	tests := []struct {
		line    string
		header  string
		comment string
	}{
		{"[*.cs] # see [docs]", "[*.cs]", "# see [docs]"},
		{"[*.cs]; [legacy] rules", "[*.cs]", "; [legacy] rules"},
		{"[{a,b}]]  # x]", "[{a,b}]]", "# x]"},
	}
	for _, tt := range tests {
		res := Parse(tt.line + "\nindent_style = tab\n")
		require.Len(t, res.Sections, 1, tt.line)
		assert.Equal(t, tt.header, res.Sections[0].Item.Text, tt.line)
		require.GreaterOrEqual(t, len(res.Items), 2, tt.line)
		assert.Equal(t, core.ItemComment, res.Items[1].Kind, tt.line)
		assert.Equal(t, tt.comment, res.Items[1].Text, tt.line)
	}

	res = Parse("[a]b] trailing")
	assert.Equal(t, "[a]b]", res.Sections[0].Item.Text, "no comment falls back to the last bracket")
}

func TestParse_Comments(t *testing.T) {
	res := Parse("  # hash comment   \n; semicolon\n")
	require.Len(t, res.Items, 2)
	assert.Equal(t, "# hash comment", res.Items[0].Text)
	assert.Equal(t, 2, res.Items[0].Span.Start)
	assert.Equal(t, "; semicolon", res.Items[1].Text)
}

func TestParse_Suppression(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		suppressed []string
		prefix     string
	}{
		{"with colon", "# suppress: EC101 EC112", []string{"EC101", "EC112"}, "# suppress:"},
		{"without colon", "#suppress EC103", []string{"EC103"}, "#suppress"},
		{"upper case keyword", "# SUPPRESS: EC104", []string{"EC104"}, "# SUPPRESS:"},
		{"unknown codes ignored", "# suppress: EC999 nonsense EC105", []string{"EC105"}, "# suppress:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Parse(tt.line)
			require.NotEmpty(t, res.Items)
			assert.Equal(t, core.ItemComment, res.Items[0].Kind)
			assert.Equal(t, tt.prefix, res.Items[0].Text)
			assert.Len(t, res.Suppressions, len(tt.suppressed))
			for _, code := range tt.suppressed {
				assert.True(t, res.IsSuppressed(code), code)
			}
			for _, item := range res.Items[1:] {
				assert.Equal(t, core.ItemSuppression, item.Kind)
			}
		})
	}
}

func TestParse_SuppressionLookalike(t *testing.T) {
	res := Parse("# suppressed warnings are listed below")
	require.Len(t, res.Items, 1)
	assert.Equal(t, core.ItemComment, res.Items[0].Kind)
	assert.Empty(t, res.Suppressions)
}

func TestParse_RootPropertiesBeforeSection(t *testing.T) {
	res := Parse("root = true\nfoo = bar\n[*]\nbaz = qux\n")
	require.Len(t, res.Properties, 2)
	assert.Equal(t, "foo", res.Properties[1].Name())
	require.Len(t, res.Sections, 1)
	assert.Equal(t, "baz", res.Sections[0].Properties[0].Name())
}

func TestParse_Empty(t *testing.T) {
	res := Parse("")
	assert.Empty(t, res.Items)
	assert.Empty(t, res.Sections)
	assert.NotNil(t, res.Suppressions)
}

func TestIsSeverityName(t *testing.T) {
	for _, name := range []string{"none", "silent", "suggestion", "warning", "error", "default", "refactoring", "WARNING"} {
		assert.True(t, IsSeverityName(name), name)
	}
	assert.False(t, IsSeverityName("info"))
	assert.False(t, IsSeverityName(""))
}

package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettings_IsIgnoredKeyword(t *testing.T) {
	s := DefaultSettings()

	assert.True(t, s.IsIgnoredKeyword("resharper_csharp_wrap_lines"))
	assert.True(t, s.IsIgnoredKeyword("IJ_continuation_indent_size"))
	assert.False(t, s.IsIgnoredKeyword("indent_style"))

	s.IgnoredPrefixes = SplitList(" foo_ ,, bar_")
	assert.Equal(t, []string{"foo_", "bar_"}, s.IgnoredPrefixes)
	assert.True(t, s.IsIgnoredKeyword("Bar_thing"))
	assert.False(t, s.IsIgnoredKeyword("resharper_x"))

	var nilSettings *Settings
	assert.False(t, nilSettings.IsIgnoredKeyword("resharper_x"))
}

func TestSettings_Disable(t *testing.T) {
	s := DefaultSettings()
	s.Disable("EC114").Disable("EC114")

	assert.Equal(t, []string{"EC114"}, s.Disabled)
	assert.True(t, s.IsDisabled("ec114"))
	assert.False(t, s.IsDisabled("EC113"))
}

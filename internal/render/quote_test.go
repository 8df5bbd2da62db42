package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJavaString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Hello", `"Hello"`},
		{"quote", `say "hi"`, `"say \"hi\""`},
		{"backslash", `a\b`, `"a\\b"`},
		{"unicode escape text", `\u0041`, `"\\u0041"`},
		{"newline", "a\nb", `"a\nb"`},
		{"tab", "a\tb", `"a\tb"`},
		{"control", "a\x01b", `"a\u0001b"`},
		{"non-ascii kept", "ça", `"ça"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, javaString(tt.in))
		})
	}
}

func TestJavaString_NormalizesNFC(t *testing.T) {
	decomposed := "c\u0327a"
	assert.Equal(t, javaString("ça"), javaString(decomposed))
}

func TestJSONString_NoHTMLEscape(t *testing.T) {
	s, err := jsonString(`<a & "b">`)
	require.NoError(t, err)
	assert.Equal(t, `"<a & \"b\">"`, s)
}

func TestBindingName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"climp_idle_1", "CLIMP_IDLE_1"},
		{"climp_task_failed_target_removed_12", "CLIMP_TASK_FAILED_TARGET_REMOVED_12"},
		{"a--b", "A_B"},
		{"9lives", "S_9LIVES"},
		{"", "S_"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, BindingName(tt.in))
		})
	}
}

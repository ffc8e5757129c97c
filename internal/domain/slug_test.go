package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		want    string
		wantErr bool
	}{
		{name: "simple", title: "My Talk", want: "my-talk"},
		{name: "already a slug", title: "my-talk", want: "my-talk"},
		{name: "punctuation collapsed", title: "Go -- The  Good   Parts!!", want: "go-the-good-parts"},
		{name: "leading and trailing junk", title: "  ***Hello, World***  ", want: "hello-world"},
		{name: "digits kept", title: "GopherCon 2026", want: "gophercon-2026"},
		{name: "unicode stripped", title: "Café Nights", want: "caf-nights"},
		{name: "empty", title: "", wantErr: true},
		{name: "whitespace only", title: "   ", wantErr: true},
		{name: "symbols only", title: "!!!", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Slugify(tt.title)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, IsValidSlug(got), "slugify output must have the canonical shape")
		})
	}
}

func TestIsValidSlug(t *testing.T) {
	valid := []string{"a", "my-talk", "gophercon-2026", "a-b-c", "123"}
	for _, s := range valid {
		assert.True(t, IsValidSlug(s), s)
	}
	invalid := []string{"", "My-Talk", "my talk", "my--talk", "-my-talk", "my-talk-", "my_talk", "my.talk"}
	for _, s := range invalid {
		assert.False(t, IsValidSlug(s), s)
	}
}

func TestSlugVariantPattern(t *testing.T) {
	re := SlugVariantPattern("my-talk")
	assert.True(t, re.MatchString("my-talk"))
	assert.True(t, re.MatchString("my-talk-1"))
	assert.True(t, re.MatchString("my-talk-42"))
	assert.False(t, re.MatchString("my-talk-extra"))
	assert.False(t, re.MatchString("my-talks"))
	assert.False(t, re.MatchString("my-talk-1-2"))
}

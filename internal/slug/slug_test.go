package slug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vnnews/crawler/internal/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Thể thao", "the-thao"},
		{"Đời sống", "doi-song"},
		{"Kinh tế - Tài chính", "kinh-te-tai-chinh"},
		{"Tin  tức__mới", "tin-tuc-moi"},
		{"--Công nghệ--", "cong-nghe"},
		{"", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, slug.Make(tt.in))
		})
	}
}

func TestMake_CapsLength(t *testing.T) {
	t.Parallel()

	got := slug.Make(strings.Repeat("a", 250))
	assert.LessOrEqual(t, len(got), 100)
	assert.NotEmpty(t, got)
}

package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromGOOS(t *testing.T) {
	assert.Equal(t, Windows, FromGOOS("windows"))
	assert.Equal(t, POSIX, FromGOOS("linux"))
	assert.Equal(t, POSIX, FromGOOS("darwin"))
}

func TestJoin(t *testing.T) {
	tests := []struct {
		name     string
		platform Platform
		elems    []string
		want     string
	}{
		{"posix suffix with separator", POSIX, []string{"/proj", "/public"}, "/proj/public"},
		{"posix trailing slash base", POSIX, []string{"/proj/", "/public/"}, "/proj/public"},
		{"posix bare separator suffix", POSIX, []string{"/proj", "/"}, "/proj"},
		{"posix dot segments", POSIX, []string{"/proj", "/a/../b"}, "/proj/b"},
		{"windows suffix", Windows, []string{`C:\proj`, `\public`}, `C:\proj\public`},
		{"windows mixed separators", Windows, []string{`C:\proj`, "/site/dist"}, `C:\proj\site\dist`},
		{"empty elements skipped", POSIX, []string{"", "/proj", ""}, "/proj"},
		{"windows unc share", Windows, []string{`\\server\share\proj`, "/public"}, `\\server\share\proj\public`},
		{"windows unc share with forward slashes", Windows, []string{"//server/share/proj/", `\public\`}, `\\server\share\proj\public`},
		{"posix double slash collapses", POSIX, []string{"//proj", "/public"}, "/proj/public"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.platform.Join(tt.elems...))
		})
	}
}

func TestDirAndBase(t *testing.T) {
	assert.Equal(t, "/proj/public", POSIX.Dir("/proj/public/index.html"))
	assert.Equal(t, "index.html", POSIX.Base("/proj/public/index.html"))
	assert.Equal(t, `C:\proj\public`, Windows.Dir(`C:\proj\public\index.html`))
	assert.Equal(t, "index.html", Windows.Base(`C:\proj\public\index.html`))
	assert.Equal(t, `\\server\share\proj`, Windows.Dir(`\\server\share\proj\index.html`))
}

func TestClean(t *testing.T) {
	tests := []struct {
		platform Platform
		in       string
		want     string
	}{
		{POSIX, "", ""},
		{POSIX, "/proj/./a/../b/", "/proj/b"},
		{POSIX, "//proj", "/proj"},
		{Windows, `C:\proj\.\site\`, `C:\proj\site`},
		{Windows, `\\server\share\proj\`, `\\server\share\proj`},
		{Windows, `\\server\share\a\..\proj`, `\\server\share\proj`},
		{Windows, "//server/share/proj", `\\server\share\proj`},
		{Windows, `\\\proj`, `\proj`},
	}
	for _, tt := range tests {
		t.Run(tt.platform.String()+" "+tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.platform.Clean(tt.in))
		})
	}
}

func TestSameDir(t *testing.T) {
	assert.True(t, POSIX.SameDir("/proj/", "/proj"))
	assert.False(t, POSIX.SameDir("/Proj", "/proj"))
	assert.True(t, Windows.SameDir(`c:\proj`, `C:\proj\`))
	assert.True(t, Windows.SameDir(`\\server\share\proj`, `\\SERVER\share\proj\`))
	assert.False(t, Windows.SameDir(`C:\proj`, `C:\proj\public`))
}

func TestWithTrailingSeparator(t *testing.T) {
	tests := []struct {
		platform Platform
		in       string
		want     string
	}{
		{POSIX, "/proj", "/proj/"},
		{POSIX, "/proj/", "/proj/"},
		{POSIX, "/proj//", "/proj/"},
		{POSIX, "/", "/"},
		{Windows, `C:\proj`, `C:\proj\`},
		{Windows, `C:\proj\`, `C:\proj\`},
		{Windows, `C:\proj/`, `C:\proj\`},
	}
	for _, tt := range tests {
		t.Run(tt.platform.String()+" "+tt.in, func(t *testing.T) {
			got := tt.platform.WithTrailingSeparator(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, tt.platform.WithTrailingSeparator(got), "should be idempotent")
		})
	}
}

func TestTrimTrailingSeparator(t *testing.T) {
	assert.Equal(t, "/proj", POSIX.TrimTrailingSeparator("/proj/"))
	assert.Equal(t, "/", POSIX.TrimTrailingSeparator("/"))
	assert.Equal(t, `C:\proj`, Windows.TrimTrailingSeparator(`C:\proj\`))
}

func TestEnsureLeadingSeparator(t *testing.T) {
	assert.Equal(t, "/dist", POSIX.EnsureLeadingSeparator("dist"))
	assert.Equal(t, "/dist", POSIX.EnsureLeadingSeparator("/dist"))
	assert.Equal(t, `\dist`, Windows.EnsureLeadingSeparator("dist"))
	assert.Equal(t, `\dist`, Windows.EnsureLeadingSeparator(`\dist`))
	assert.Equal(t, "/dist", Windows.EnsureLeadingSeparator("/dist"))
}

package version

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePom(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pom.xml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantErr bool
	}{
		{
			name: "Namespaced descriptor",
			content: `<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://maven.apache.org/POM/4.0.0">
  <modelVersion>4.0.0</modelVersion>
  <groupId>btrplace</groupId>
  <artifactId>scheduler</artifactId>
  <version>0.42-SNAPSHOT</version>
  <dependencies>
    <dependency>
      <groupId>junit</groupId>
      <artifactId>junit</artifactId>
      <version>4.11</version>
    </dependency>
  </dependencies>
</project>`,
			want: "0.42-SNAPSHOT",
		},
		{
			name: "Version inherited from parent",
			content: `<project xmlns="http://maven.apache.org/POM/4.0.0">
  <parent>
    <groupId>btrplace</groupId>
    <version>1.3.0</version>
  </parent>
  <artifactId>api</artifactId>
</project>`,
			want: "1.3.0",
		},
		{
			name:    "Surrounding whitespace is ignored",
			content: "<project><version>\n  2.0.1\n</version></project>",
			want:    "2.0.1",
		},
		{
			name:    "No version element",
			content: "<project><artifactId>api</artifactId></project>",
			wantErr: true,
		},
		{
			name:    "Malformed XML",
			content: "<project><version>1.0</project>",
			wantErr: true,
		},
		{
			name:    "Wrong root element",
			content: "<settings><version>1.0</version></settings>",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(writePom(t, tt.content))
			if tt.wantErr {
				var perr *ParseError
				require.Error(t, err)
				assert.True(t, errors.As(err, &perr), "expected a *ParseError, got %T", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "pom.xml"))
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestNext(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "1.2.9", want: "1.2.10"},
		{in: "0.42", want: "0.43"},
		{in: "7", want: "8"},
		{in: "2.0.0-SNAPSHOT", want: "2.0.0"},
		{in: "1.0.0.4", want: "1.0.0.5"},
		{in: "1.0.beta", wantErr: true},
		{in: "1.0-rc1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Next(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				var numErr *strconv.NumError
				assert.True(t, errors.As(err, &numErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReleaseAndNextAgreeOnSnapshots(t *testing.T) {
	for _, v := range []string{"2.0.0-SNAPSHOT", "0.1-SNAPSHOT", "10-SNAPSHOT"} {
		next, err := Next(v)
		require.NoError(t, err)
		assert.Equal(t, ToRelease(v), next)
		assert.False(t, IsPreRelease(next))
	}
}

func TestToRelease(t *testing.T) {
	assert.Equal(t, "2.0.0", ToRelease("2.0.0-SNAPSHOT"))
	assert.Equal(t, "2.0.0", ToRelease("2.0.0"))
}

func TestSnapshot(t *testing.T) {
	assert.Equal(t, "1.3-SNAPSHOT", Snapshot("1.3"))
	assert.Equal(t, "1.3-SNAPSHOT", Snapshot("1.3-SNAPSHOT"))
}

package nomad

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-logr/zapr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestCommand(Te *testing.T) {
	cmd := Command([]string{"calc1", "calc2"}, "abc123", "")
	assert.Equal(Te, "tar cf - calc1 calc2 | curl -XPUT -# -HX-Token:abc123 -N -F file=@- http://nomad-repository.eu:8000 | xargs echo", cmd)
	cmd = Command([]string{"my calc"}, "t", "http://localhost:1")
	assert.Equal(Te, "tar cf - 'my calc' | curl -XPUT -# -HX-Token:t -N -F file=@- http://localhost:1 | xargs echo", cmd)
	assert.Equal(Te, `'it'"'"'s'`, shellQuote("it's"))
	assert.Equal(Te, "''", shellQuote(""))
}

func TestDryRunSavesToken(Te *testing.T) {
	tokenfile := filepath.Join(Te.TempDir(), "conf", "nomad-token")
	var out bytes.Buffer
	opts := Options{
		Folders:   []string{"Al"},
		Token:     "secret",
		DryRun:    true,
		TokenFile: tokenfile,
		In:        strings.NewReader("Yes\n"),
		Out:       &out,
	}
	require.NoError(Te, Upload(context.Background(), opts))
	lines := strings.Split(out.String(), "\n")
	assert.Equal(Te, Command([]string{"Al"}, "secret", ""), lines[0])
	assert.Contains(Te, out.String(), "Wrote token to "+tokenfile)
	info, err := os.Stat(tokenfile)
	require.NoError(Te, err)
	assert.Equal(Te, os.FileMode(0o600), info.Mode().Perm())
	token, err := ReadToken(tokenfile)
	require.NoError(Te, err)
	assert.Equal(Te, "secret", token)

	//now the saved token is used
	out.Reset()
	opts.Token = ""
	opts.In = strings.NewReader("")
	require.NoError(Te, Upload(context.Background(), opts))
	assert.Equal(Te, Command([]string{"Al"}, "secret", "")+"\n", out.String())
}

func TestUploadLogsURL(Te *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	var out bytes.Buffer
	opts := Options{
		Folders:        []string{"Al"},
		Token:          "secret",
		DoNotSaveToken: true,
		DryRun:         true,
		Out:            &out,
		Log:            zapr.NewLogger(zap.New(core)),
	}
	require.NoError(Te, Upload(context.Background(), opts))
	entries := logs.FilterMessage("uploading").All()
	require.Len(Te, entries, 1)
	assert.Equal(Te, DefaultURL, entries[0].ContextMap()["url"])

	opts.URL = "http://localhost:1"
	require.NoError(Te, Upload(context.Background(), opts))
	entries = logs.FilterMessage("uploading").All()
	require.Len(Te, entries, 2)
	assert.Equal(Te, "http://localhost:1", entries[1].ContextMap()["url"])
}

func TestDontSaveToken(Te *testing.T) {
	dir := Te.TempDir()
	tokenfile := filepath.Join(dir, "nomad-token")
	for _, o := range []Options{
		{Token: "t1", In: strings.NewReader("no\n")},
		{Token: "t2", In: strings.NewReader("")},
		{Token: "t3", DoNotSaveToken: true, In: strings.NewReader("yes\n")},
	} {
		var out bytes.Buffer
		o.Folders = []string{"x"}
		o.DryRun = true
		o.TokenFile = tokenfile
		o.Out = &out
		require.NoError(Te, Upload(context.Background(), o))
		_, err := os.Stat(tokenfile)
		assert.True(Te, errors.Is(err, os.ErrNotExist), o.Token)
	}
}

func TestNoToken(Te *testing.T) {
	var out bytes.Buffer
	err := Upload(context.Background(), Options{
		Folders:   []string{"x"},
		DryRun:    true,
		TokenFile: filepath.Join(Te.TempDir(), "nomad-token"),
		Out:       &out,
	})
	require.Error(Te, err)
	assert.True(Te, errors.Is(err, ErrNoToken))
	assert.Empty(Te, out.String())
	var nerr *Error
	require.ErrorAs(Te, err, &nerr)
	assert.Equal(Te, []string{"ReadToken", "Upload"}, nerr.Decorate(""))

	err = Upload(context.Background(), Options{DryRun: true, Token: "t"})
	assert.Error(Te, err)
}

func TestReadToken(Te *testing.T) {
	tokenfile := filepath.Join(Te.TempDir(), "nomad-token")
	require.NoError(Te, os.WriteFile(tokenfile, []byte("  tok  \nignored\n"), 0o644))
	token, err := ReadToken(tokenfile)
	require.NoError(Te, err)
	assert.Equal(Te, "tok", token)
	require.NoError(Te, SaveToken(tokenfile, "new"))
	info, err := os.Stat(tokenfile)
	require.NoError(Te, err)
	assert.Equal(Te, os.FileMode(0o600), info.Mode().Perm())
	require.NoError(Te, os.WriteFile(tokenfile, []byte("\n"), 0o600))
	_, err = ReadToken(tokenfile)
	assert.True(Te, errors.Is(err, ErrNoToken))
}

package dispcli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"oss.terrastruct.com/util-go/assert"
	"oss.terrastruct.com/util-go/cmdlog"
	"oss.terrastruct.com/util-go/xmain"
	"oss.terrastruct.com/util-go/xos"

	"github.com/azriel91/disposition-sub001/displayout"
)

func TestWatcher(t *testing.T) {
	t.Parallel()

	dir, cleanup := assert.TempDir(t)
	defer cleanup()

	inputPath := filepath.Join(dir, "in.yaml")
	outputPath := filepath.Join(dir, "in.svg")
	assert.WriteFile(t, inputPath, []byte("things:\n  a: A\n"), 0644)

	ms := &xmain.State{
		Name: "test",

		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,

		Env: xos.NewEnv(nil),
		PWD: dir,
	}
	ms.Log = cmdlog.NewTB(ms.Env, t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	w, err := newWatcher(ctx, ms, watcherOpts{
		settings:   renderSettings{viewport: displayout.DefaultViewport},
		inputPath:  inputPath,
		outputPath: outputPath,
	})
	assert.Success(t, err)

	done := make(chan error, 1)
	go func() {
		done <- w.run()
	}()

	contains := func(s string) func() bool {
		return func() bool {
			b, err := os.ReadFile(outputPath)
			return err == nil && strings.Contains(string(b), s)
		}
	}
	require.Eventually(t, contains(`id="a"`), time.Second*30, time.Millisecond*20)

	assert.WriteFile(t, inputPath, []byte("things:\n  a: A\n  b: B\n"), 0644)
	require.Eventually(t, contains(`id="b"`), time.Second*30, time.Millisecond*20)

	cancel()
	select {
	case err := <-done:
		assert.Success(t, err)
	case <-time.After(time.Second * 10):
		t.Fatal("watcher did not stop")
	}
}

func TestRenameExt(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		in  string
		exp string
	}{
		{"a.yaml", "a.svg"},
		{"dir/a.b.yml", "dir/a.b.svg"},
		{"noext", "noext.svg"},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.exp, renameExt(tc.in, ".svg"))
	}
}

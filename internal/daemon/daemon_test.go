package daemon

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/pybuilder/internal/backend"
	"git.home.luguber.info/inful/pybuilder/internal/buildsys"
	"git.home.luguber.info/inful/pybuilder/internal/config"
	"git.home.luguber.info/inful/pybuilder/internal/events"
	"git.home.luguber.info/inful/pybuilder/internal/manifest"
)

// Daemon.Stop passes its context through to the forwarder's bounded drain.
var _ func(context.Context) = (*events.NATSForwarder)(nil).Stop

func newProject(t *testing.T, backendID string) *buildsys.BuildSystem {
	t.Helper()
	root := t.TempDir()
	content := "[build-system]\nbuild-backend = \"" + backendID + "\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, manifest.FileName), []byte(content), 0o644))

	bs := buildsys.New(root, backend.DefaultRegistry())
	require.NoError(t, bs.Init(context.Background()))
	return bs
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestWatcher_RegistersNewBuildOutputs(t *testing.T) {
	bs := newProject(t, "flit_core.buildapi")
	var mu sync.Mutex

	watcher, err := NewBuildDirWatcher(bs, &mu)
	require.NoError(t, err)
	require.NoError(t, watcher.Start(context.Background()))
	defer watcher.Stop()

	path := filepath.Join(bs.BuildDir(), "mypkg-1.0-py3-none-any.whl")
	require.NoError(t, os.WriteFile(path, []byte("wheel"), 0o644))

	waitFor(t, 2*time.Second, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(bs.Artifacts()) == 1
	})

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, backend.KindWheel, bs.Artifacts()[0].Kind)
}

func TestWatcher_IgnoresUnsupportedKinds(t *testing.T) {
	// setuptools.build_meta supports sdists only.
	bs := newProject(t, "setuptools.build_meta")
	var mu sync.Mutex

	watcher, err := NewBuildDirWatcher(bs, &mu)
	require.NoError(t, err)
	require.NoError(t, watcher.Start(context.Background()))
	defer watcher.Stop()

	require.NoError(t, os.WriteFile(
		filepath.Join(bs.BuildDir(), "mypkg-1.0-py3-none-any.whl"), []byte("wheel"), 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(bs.BuildDir(), "mypkg-1.0.tar.gz"), []byte("sdist"), 0o644))

	waitFor(t, 2*time.Second, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(bs.Artifacts()) == 1
	})

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, backend.KindSdist, bs.Artifacts()[0].Kind)
}

func TestRescanScheduler_PicksUpExistingOutputs(t *testing.T) {
	bs := newProject(t, "flit_core.buildapi")
	require.NoError(t, os.MkdirAll(bs.BuildDir(), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(bs.BuildDir(), "mypkg-1.0.tar.gz"), []byte("sdist"), 0o644))

	var mu sync.Mutex
	scheduler, err := NewRescanScheduler(bs, &mu, 20*time.Millisecond)
	require.NoError(t, err)
	scheduler.Start()
	defer scheduler.Stop()

	waitFor(t, 2*time.Second, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(bs.Artifacts()) == 1
	})
}

func TestDaemon_StartStop(t *testing.T) {
	bs := newProject(t, "flit_core.buildapi")
	cfg := &config.Config{}
	cfg.Daemon.RescanInterval = time.Hour // effectively disabled for the test
	cfg.EventStore.Path = ":memory:"

	bus := events.NewBus()
	d := New(bs, cfg, bus)

	ctx := context.Background()
	require.NoError(t, d.Start(ctx, nil))

	// On-demand rescan works while running.
	require.NoError(t, os.WriteFile(
		filepath.Join(bs.BuildDir(), "mypkg-1.0.tar.gz"), []byte("sdist"), 0o644))
	require.NoError(t, d.Rescan())

	d.Stop(ctx)
	bus.Close()
}

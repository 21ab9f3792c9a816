// Package daemon keeps a project's artifact registry current in the
// background: a filesystem watcher picks up build outputs as frontends
// write them, a periodic rescan covers anything the watcher missed, and
// optional sidecars expose metrics over HTTP, forward events to NATS, and
// persist build history to SQLite.
package daemon

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/pybuilder/internal/buildsys"
	"git.home.luguber.info/inful/pybuilder/internal/config"
	pberrors "git.home.luguber.info/inful/pybuilder/internal/errors"
	"git.home.luguber.info/inful/pybuilder/internal/events"
	"git.home.luguber.info/inful/pybuilder/internal/eventstore"
	"git.home.luguber.info/inful/pybuilder/internal/metrics"
	"git.home.luguber.info/inful/pybuilder/internal/retry"
)

// Daemon supervises the background components for one project.
//
// The build system itself is not safe for concurrent use; the daemon
// serializes every registry mutation through one mutex shared by the
// watcher and the rescan job.
type Daemon struct {
	bs  *buildsys.BuildSystem
	cfg *config.Config
	bus *events.Bus

	mu sync.Mutex // guards bs registry mutations

	watcher   *BuildDirWatcher
	scheduler *RescanScheduler
	store     *eventstore.Store
	recorder  *eventstore.Recorder
	forwarder *events.NATSForwarder
	httpSrv   *http.Server
	httpDone  chan struct{}
}

// New creates a daemon for bs. The build system must have completed Init.
func New(bs *buildsys.BuildSystem, cfg *config.Config, bus *events.Bus) *Daemon {
	return &Daemon{bs: bs, cfg: cfg, bus: bus}
}

// Start brings up every configured component. On error the components
// started so far are torn down again.
func (d *Daemon) Start(ctx context.Context, reg *prom.Registry) error {
	if err := d.start(ctx, reg); err != nil {
		d.Stop(ctx)
		return err
	}
	return nil
}

func (d *Daemon) start(ctx context.Context, reg *prom.Registry) error {
	if path := d.cfg.EventStore.Path; path != "" {
		store, err := eventstore.Open(path)
		if err != nil {
			return pberrors.DaemonStartFailed("eventstore", err)
		}
		d.store = store
		d.recorder = eventstore.NewRecorder(d.bus, store)
	}

	if url := d.cfg.Daemon.NATSURL; url != "" {
		// The broker may still be starting; give it a few tries.
		policy := retry.NewPolicy(retry.BackoffLinear, time.Second, 10*time.Second, 3)
		err := policy.Do(ctx, func() error {
			forwarder, err := events.NewNATSForwarder(d.bus, url, d.cfg.Daemon.NATSSubject)
			if err == nil {
				d.forwarder = forwarder
			}
			return err
		})
		if err != nil {
			return pberrors.DaemonStartFailed("nats", err)
		}
	}

	watcher, err := NewBuildDirWatcher(d.bs, &d.mu)
	if err != nil {
		return pberrors.DaemonStartFailed("watcher", err)
	}
	d.watcher = watcher
	if err := d.watcher.Start(ctx); err != nil {
		return pberrors.DaemonStartFailed("watcher", err)
	}

	scheduler, err := NewRescanScheduler(d.bs, &d.mu, d.cfg.Daemon.RescanInterval)
	if err != nil {
		return pberrors.DaemonStartFailed("scheduler", err)
	}
	d.scheduler = scheduler
	d.scheduler.Start()

	if listen := d.cfg.Daemon.MetricsListen; listen != "" && reg != nil {
		d.serveMetrics(listen, reg)
	}

	slog.Info("Daemon started", "root", d.bs.Root(), "build_dir", d.bs.BuildDir())
	return nil
}

func (d *Daemon) serveMetrics(listen string, reg *prom.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(reg))
	d.httpSrv = &http.Server{
		Addr:              listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	d.httpDone = make(chan struct{})

	go func() {
		defer close(d.httpDone)
		slog.Info("Serving metrics", "listen", listen)
		if err := d.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Metrics server failed", "error", err)
		}
	}()
}

// Stop tears down all running components in reverse start order. It is
// safe to call after a partial Start.
func (d *Daemon) Stop(ctx context.Context) {
	if d.httpSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := d.httpSrv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Metrics server shutdown failed", "error", err)
		}
		cancel()
		<-d.httpDone
		d.httpSrv = nil
	}

	if d.scheduler != nil {
		d.scheduler.Stop()
		d.scheduler = nil
	}

	if d.watcher != nil {
		d.watcher.Stop()
		d.watcher = nil
	}

	if d.forwarder != nil {
		d.forwarder.Stop(ctx)
		d.forwarder = nil
	}

	if d.recorder != nil {
		d.recorder.Stop()
		d.recorder = nil
	}

	if d.store != nil {
		if err := d.store.Close(); err != nil {
			slog.Error("Event store close failed", "error", err)
		}
		d.store = nil
	}

	slog.Info("Daemon stopped", "root", d.bs.Root())
}

// Rescan synchronously re-registers the build directory contents. It is
// exposed for hosts that want an on-demand refresh between rescan ticks.
func (d *Daemon) Rescan() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.bs.RegisterBuildDir()
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/pybuilder/internal/backend"
	"git.home.luguber.info/inful/pybuilder/internal/buildsys"
	"git.home.luguber.info/inful/pybuilder/internal/config"
	"git.home.luguber.info/inful/pybuilder/internal/daemon"
	"git.home.luguber.info/inful/pybuilder/internal/events"
	"git.home.luguber.info/inful/pybuilder/internal/lint"
	"git.home.luguber.info/inful/pybuilder/internal/manifest"
	"git.home.luguber.info/inful/pybuilder/internal/metrics"
	"git.home.luguber.info/inful/pybuilder/internal/pipeline"
	"git.home.luguber.info/inful/pybuilder/internal/pyenv"
	"git.home.luguber.info/inful/pybuilder/internal/target"
	"git.home.luguber.info/inful/pybuilder/internal/version"
)

var CLI struct {
	Root    string `short:"C" help:"Project root directory" default:"."`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Resolve struct{} `cmd:"" help:"Resolve the project manifest and report the selected backend"`

	Build struct {
		NoEnv bool `help:"Skip virtual environment provisioning"`
	} `cmd:"" help:"Run the backend build and register its outputs"`

	Targets struct{} `cmd:"" help:"List the build targets derived from registered artifacts"`

	Clean struct{} `cmd:"" help:"Remove build outputs and clear the artifact registry"`

	Env struct {
		Provision bool `help:"Create or upgrade the environment instead of only printing it"`
	} `cmd:"" help:"Show (or provision) the project virtual environment"`

	Lint struct {
		File string `arg:"" help:"Python file to lint"`
	} `cmd:"" help:"Run the configured linter on a file"`

	Daemon struct{} `cmd:"" help:"Watch the build directory and keep the artifact registry current"`

	Version struct{} `cmd:"" help:"Print version information"`
}

func main() {
	kctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	root, err := filepath.Abs(CLI.Root)
	if err != nil {
		slog.Error("Failed to resolve project root", "error", err)
		os.Exit(1)
	}

	switch kctx.Command() {
	case "resolve":
		err = runResolve(root)
	case "build":
		err = runBuild(root, !CLI.Build.NoEnv)
	case "targets":
		err = runTargets(root)
	case "clean":
		err = runClean(root)
	case "env":
		err = runEnv(root, CLI.Env.Provision)
	case "lint <file>":
		err = runLint(root, CLI.Lint.File)
	case "daemon":
		err = runDaemon(root)
	case "version":
		fmt.Printf("pybuilder %s (commit %s, built %s)\n",
			version.Version, version.GitCommit, version.BuildTime)
	}
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

// setup loads configuration and resolves the project manifest.
func setup(root string, opts ...buildsys.Option) (*config.Config, *buildsys.BuildSystem, error) {
	cfg, err := config.Load(root)
	if err != nil {
		return nil, nil, err
	}

	bs := buildsys.New(root, backend.DefaultRegistry(), opts...)
	if err := bs.Init(context.Background()); err != nil {
		return nil, nil, err
	}
	bs.SetEnvPath(pyenv.Resolve(root, cfg))
	return cfg, bs, nil
}

func runResolve(root string) error {
	_, bs, err := setup(root)
	if err != nil {
		if manifest.IsNotPep517(err) {
			fmt.Println("not a PEP 517 project")
			return nil
		}
		return err
	}

	fmt.Printf("manifest: %s\n", bs.Manifest().Path)
	if b := bs.Backend(); b != nil {
		fmt.Printf("backend:  %s (%s)\n", b.Name(), b.DisplayName())
		fmt.Printf("builddir: %s\n", bs.BuildDir())
	} else {
		fmt.Printf("backend:  %s (unsupported)\n", bs.Manifest().BuildSystem.BuildBackend)
	}
	if version := bs.ProjectVersion(); version != "" {
		fmt.Printf("version:  %s\n", version)
	}
	return nil
}

func runBuild(root string, provision bool) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, bs, err := setup(root)
	if err != nil {
		return err
	}

	if provision {
		env, err := pyenv.Ensure(ctx, root, cfg, &pyenv.VenvProvisioner{})
		if err != nil {
			return err
		}
		bs.SetEnvPath(env)
	}

	stage := pipeline.NewBuildStage(bs)
	if err := stage.Build(ctx); err != nil {
		return err
	}

	for _, artifact := range bs.Artifacts() {
		fmt.Printf("%-6s %s\n", artifact.Kind, artifact.Path)
	}
	return nil
}

func runTargets(root string) error {
	_, bs, err := setup(root)
	if err != nil {
		return err
	}
	if err := bs.RegisterBuildDir(); err != nil {
		return err
	}

	targets := target.Synthesize(bs.Installables(), bs.EnvPath(), bs.Backend(), root)
	for _, t := range targets {
		fmt.Printf("%-30s %v\n", t.Name, t.Argv())
	}
	return nil
}

func runClean(root string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	_, bs, err := setup(root)
	if err != nil {
		return err
	}

	stage := pipeline.NewBuildStage(bs)
	return stage.Clean(ctx)
}

func runEnv(root string, provision bool) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(root)
	if err != nil {
		return err
	}

	env := pyenv.Resolve(root, cfg)
	if provision {
		if env, err = pyenv.Ensure(ctx, root, cfg, &pyenv.VenvProvisioner{}); err != nil {
			return err
		}
	}

	if env == pyenv.None {
		fmt.Println("no virtual environment configured")
	} else {
		fmt.Println(env)
	}
	return nil
}

func runLint(root, file string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(root)
	if err != nil {
		return err
	}

	runner := lint.NewRunner(root, cfg, lint.WithEnv(pyenv.Resolve(root, cfg)))
	diagnostics, err := runner.Run(ctx, file, nil)
	if err != nil {
		return err
	}

	for _, d := range diagnostics {
		fmt.Printf("%s:%d:%d: %s: %s [%s]\n",
			d.Path, d.Start.Line, d.Start.Column, d.Severity, d.Message, d.Symbol)
	}
	return nil
}

func runDaemon(root string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	bus := events.NewBus()
	defer bus.Close()
	emit := func(evt any) {
		if err := bus.Publish(ctx, evt); err != nil {
			slog.Debug("Event publish failed", "error", err)
		}
	}

	registry := prom.NewRegistry()
	recorder := metrics.NewPrometheusRecorder(registry)

	cfg, bs, err := setup(root,
		buildsys.WithRecorder(recorder),
		buildsys.WithEventSink(emit),
	)
	if err != nil {
		return err
	}

	d := daemon.New(bs, cfg, bus)
	if err := d.Start(ctx, registry); err != nil {
		return err
	}
	defer d.Stop(context.Background())

	<-ctx.Done()
	slog.Info("Shutting down")
	return nil
}

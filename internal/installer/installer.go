// Package installer puts the lab agent on a machine: it downloads the
// binary, writes its config, registers it as a service and optionally
// announces the machine to the management server.
package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quickr-dev/labctl/internal/config"
	"github.com/quickr-dev/labctl/internal/db"
	"github.com/quickr-dev/labctl/internal/privilege"
	"github.com/quickr-dev/labctl/internal/registration"
	"github.com/quickr-dev/labctl/internal/service"
	"github.com/quickr-dev/labctl/internal/shell"
	"github.com/quickr-dev/labctl/internal/ui"
)

var ErrNotElevated = errors.New("administrator privileges required")

// Deps are the installer's collaborators. Zero fields get the real
// implementations.
type Deps struct {
	Privilege privilege.Checker
	Services  service.Manager
	HTTP      *http.Client
	HostInfo  func(ctx context.Context) (registration.HostInfo, error)
	Out       io.Writer
	Log       *zap.Logger
	GOOS      string
}

type Installer struct {
	cfg       *config.Install
	privilege privilege.Checker
	services  service.Manager
	http      *http.Client
	registrar *registration.Client
	hostInfo  func(ctx context.Context) (registration.HostInfo, error)
	out       io.Writer
	log       *zap.Logger
	goos      string

	runID   string
	journal *journal
}

func New(cfg *config.Install, deps Deps) *Installer {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.Privilege == nil {
		deps.Privilege = privilege.OS{}
	}
	if deps.Services == nil {
		deps.Services = service.NewManager(shell.NewExecRunner(deps.Log))
	}
	if deps.HTTP == nil {
		// no timeout: large agent builds over slow lab links
		deps.HTTP = &http.Client{}
	}
	if deps.HostInfo == nil {
		deps.HostInfo = registration.CollectHostInfo
	}
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	if deps.GOOS == "" {
		deps.GOOS = runtime.GOOS
	}

	return &Installer{
		cfg:       cfg,
		privilege: deps.Privilege,
		services:  deps.Services,
		http:      deps.HTTP,
		registrar: registration.NewClient(deps.HTTP, deps.Log),
		hostInfo:  deps.HostInfo,
		out:       deps.Out,
		log:       deps.Log,
		goos:      deps.GOOS,
		runID:     uuid.New().String(),
	}
}

// Run performs the installation and prints progress. The returned error has
// already been reported on the output.
func (i *Installer) Run(ctx context.Context) error {
	fmt.Fprintln(i.out, ui.Title("Computer Management Agent Installation"))
	fmt.Fprintln(i.out, strings.Repeat("-", 40))

	i.log.Info("installer run started", zap.String("run_id", i.runID), zap.String("install_dir", i.cfg.InstallDir))

	elevated, err := i.privilege.IsElevated()
	if err != nil {
		i.log.Warn("elevation check failed", zap.Error(err))
	}
	if !elevated {
		fmt.Fprintln(i.out, ui.Error("This script must be run with administrator privileges."))
		fmt.Fprintln(i.out, "Please right-click and select 'Run as administrator'.")
		return ErrNotElevated
	}

	if err := i.install(ctx); err != nil {
		var dlErr *DownloadError
		if errors.As(err, &dlErr) {
			fmt.Fprintln(i.out, ui.Error(dlErr.Error()))
		} else {
			fmt.Fprintln(i.out, ui.Error(fmt.Sprintf("Installation failed: %v", err)))
		}
		return err
	}

	fmt.Fprintln(i.out)
	fmt.Fprintln(i.out, ui.Success("Installation completed successfully!"))
	return nil
}

func (i *Installer) install(ctx context.Context) error {
	dir := i.cfg.InstallDir

	fmt.Fprintf(i.out, "Creating installation directory %s...\n", dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	i.journal = openJournal(dir, i.runID, i.log)
	defer i.journal.close()
	i.journal.record(StepDirectory, db.StatusOK, dir)

	fmt.Fprintln(i.out, "Downloading agent...")
	agentPath, err := i.download(ctx)
	if err != nil {
		i.journal.record(StepDownload, db.StatusFailed, err.Error())
		return err
	}
	i.journal.record(StepDownload, db.StatusOK, agentPath)

	fmt.Fprintln(i.out, "Creating configuration file...")
	configPath, err := i.cfg.AgentConfig().Save(dir)
	if err != nil {
		i.journal.record(StepConfig, db.StatusFailed, err.Error())
		return err
	}
	i.journal.record(StepConfig, db.StatusOK, configPath)

	fmt.Fprintln(i.out, "Installing service...")
	if err := i.services.Install(ctx, service.AgentSpec(agentPath)); err != nil {
		i.journal.record(StepService, db.StatusFailed, err.Error())
		return err
	}
	i.journal.record(StepService, db.StatusOK, service.AgentServiceName)
	fmt.Fprintln(i.out, "Service installed and started.")

	i.register(ctx)
	return nil
}

// register never fails the installation.
func (i *Installer) register(ctx context.Context) {
	if !i.cfg.AutoRegister {
		fmt.Fprintln(i.out, "Auto-registration disabled. Manual registration required.")
		i.journal.record(StepRegister, db.StatusSkipped, "auto-registration disabled")
		return
	}

	fmt.Fprintln(i.out, "Registering computer with server...")
	if err := i.tryRegister(ctx); err != nil {
		i.log.Warn("auto-registration failed", zap.Error(err))
		fmt.Fprintln(i.out, ui.Warn(fmt.Sprintf("Failed to auto-register computer: %v", err)))
		fmt.Fprintln(i.out, "The agent is installed and will connect, but registration must be completed manually.")
		i.journal.record(StepRegister, db.StatusFailed, err.Error())
		return
	}

	fmt.Fprintln(i.out, ui.Success("Computer successfully registered!"))
	i.journal.record(StepRegister, db.StatusOK, "")
}

func (i *Installer) tryRegister(ctx context.Context) error {
	info, err := i.hostInfo(ctx)
	if err != nil {
		return fmt.Errorf("collecting host info: %w", err)
	}

	payload := registration.NewPayload(info, i.cfg.RoomID, i.cfg.Token)
	return i.registrar.Register(ctx, registration.Endpoint(i.cfg.APIBase()), payload)
}

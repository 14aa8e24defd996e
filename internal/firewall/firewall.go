// Package firewall queries and toggles the host firewall for all profiles.
//
// Every outcome, including failures to run the platform utility, is returned
// as the text to show the user. Nothing here returns an error.
package firewall

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/quickr-dev/labctl/internal/shell"
)

const InvalidCommandMessage = "Invalid command. Use: status, on, or off"

type Command int

const (
	Invalid Command = iota
	Status
	On
	Off
)

func (c Command) String() string {
	switch c {
	case Status:
		return "status"
	case On:
		return "on"
	case Off:
		return "off"
	default:
		return "invalid"
	}
}

// ParseCommand reads the verb from the first argument. No arguments means
// status; anything after the first argument is ignored.
func ParseCommand(args []string) Command {
	if len(args) == 0 {
		return Status
	}

	switch strings.ToLower(args[0]) {
	case "status":
		return Status
	case "on":
		return On
	case "off":
		return Off
	default:
		return Invalid
	}
}

type Controller struct {
	backend Backend
	runner  shell.Runner
	log     *zap.Logger
}

func NewController(backend Backend, runner shell.Runner, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{backend: backend, runner: runner, log: log}
}

// Run executes cmd and returns the text to print.
func (c *Controller) Run(ctx context.Context, cmd Command) string {
	switch cmd {
	case Status:
		return c.Status(ctx)
	case On:
		return c.SetState(ctx, true)
	case Off:
		return c.SetState(ctx, false)
	default:
		return InvalidCommandMessage
	}
}

// Status returns the raw output of the firewall status query.
func (c *Controller) Status(ctx context.Context) string {
	name, args := c.backend.StatusCommand()

	res, err := c.runner.Run(ctx, name, args...)
	if err != nil {
		c.log.Info("firewall status query failed", zap.String("backend", c.backend.Name()), zap.Error(err))
		return fmt.Sprintf("Error checking firewall status: %s", launchCause(err))
	}

	c.log.Debug("firewall status queried", zap.Int("exit_code", res.ExitCode))
	return res.Stdout
}

// SetState turns the firewall on or off for all profiles. The underlying
// utility needs elevation; a permission failure shows up as its error text.
func (c *Controller) SetState(ctx context.Context, on bool) string {
	state := stateValue(on)
	name, args := c.backend.SetStateCommand(on)

	res, err := c.runner.Run(ctx, name, args...)
	if err != nil {
		c.log.Info("firewall state change failed to launch", zap.String("state", state), zap.Error(err))
		return fmt.Sprintf("Error changing firewall state: %s", launchCause(err))
	}

	if !res.Success() {
		c.log.Info("firewall state change rejected", zap.String("state", state), zap.Int("exit_code", res.ExitCode))
		return fmt.Sprintf("Error: %s", res.Output())
	}

	c.log.Info("firewall state changed", zap.String("state", state))
	return fmt.Sprintf("Successfully turned firewall %s", state)
}

func launchCause(err error) error {
	var launchErr *shell.LaunchError
	if errors.As(err, &launchErr) {
		return launchErr.Err
	}
	return err
}

// Package pluginctl is the operator-facing command tree for driving a
// loader.Loader from the command line, grounded on the teacher's
// cli/plugin/plugin.go: a kingpin subcommand whose Action closes over a
// small struct of flag pointers and drives one library call.
package pluginctl

import (
	"fmt"

	kingpin "github.com/alecthomas/kingpin/v2"

	"github.com/alerm-sml/strongswan/loader"
)

const (
	cmdName = "plugin"
	cmdDesc = "Manage the plugin loader"
)

// Controller wraps the loader.Loader instance the CLI operates on.
type Controller struct {
	loader *loader.Loader
}

// NewController wraps l for CLI use.
func NewController(l *loader.Loader) *Controller {
	return &Controller{loader: l}
}

type loadCmd struct {
	ctrl *Controller
	list *string
}

func (c *loadCmd) run(_ *kingpin.ParseContext) error {
	if ok := c.ctrl.loader.Load(*c.list); !ok {
		return fmt.Errorf("load failed: %s", c.ctrl.loader.Status())
	}
	fmt.Println(c.ctrl.loader.Status())
	return nil
}

type unloadCmd struct {
	ctrl *Controller
}

func (c *unloadCmd) run(_ *kingpin.ParseContext) error {
	c.ctrl.loader.Unload()
	fmt.Println("unloaded all plugins")
	return nil
}

type reloadCmd struct {
	ctrl *Controller
	list *string
}

func (c *reloadCmd) run(_ *kingpin.ParseContext) error {
	n := c.ctrl.loader.Reload(*c.list)
	fmt.Printf("reloaded %d plugin(s)\n", n)
	return nil
}

type statusCmd struct {
	ctrl *Controller
}

func (c *statusCmd) run(_ *kingpin.ParseContext) error {
	status := c.ctrl.loader.Status()
	if status == "" {
		fmt.Println("no plugins loaded")
		return nil
	}
	fmt.Println(status)
	return nil
}

// AddTo registers the "plugin" command and its load/unload/reload/status
// subcommands against app, all operating on ctrl's loader.
func AddTo(app *kingpin.Application, ctrl *Controller) {
	cmd := app.Command(cmdName, cmdDesc)

	load := &loadCmd{ctrl: ctrl}
	loadSub := cmd.Command("load", "Load a whitespace-delimited plugin list (append ! to mark a plugin critical)")
	load.list = loadSub.Arg("list", "plugin list").Required().String()
	loadSub.Action(load.run)

	unload := &unloadCmd{ctrl: ctrl}
	cmd.Command("unload", "Unload every loaded plugin").Action(unload.run)

	reload := &reloadCmd{ctrl: ctrl}
	reloadSub := cmd.Command("reload", "Reload plugins supporting it (empty list means all)")
	reload.list = reloadSub.Arg("list", "plugin list").String()
	reloadSub.Action(reload.run)

	status := &statusCmd{ctrl: ctrl}
	cmd.Command("status", "Print the current load status").Action(status.run)
}

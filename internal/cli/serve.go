package cli

import (
	"github.com/ironsheep/figtools/internal/server"
)

// ServeCmd runs the MCP tool server on stdio.
type ServeCmd struct{}

func (c *ServeCmd) Run(env *Env) error {
	srv, err := server.New(env.Config, env.Logger, version)
	if err != nil {
		return err
	}
	env.Logger.Debug("serving MCP on stdio", "version", version)
	return srv.Run(env.Stdin, env.Stdout)
}

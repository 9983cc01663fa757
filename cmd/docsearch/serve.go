package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Tomlord1122/todo-docs/internal/mcpserver"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the tools over MCP on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := mcpserver.New(a.toolbox(), version, a.log)
			a.log.Info("serving MCP over stdio", slog.String("name", mcpserver.Name), slog.String("version", version))
			return mcpserver.ServeStdio(s, cmd.ErrOrStderr())
		},
	}
}

package commands

import (
	"fmt"

	"github.com/surfaceplanner/surfaced/internal/cli/config"
)

// getSelectedServer loads the config and returns the server to talk to.
// This is common logic used by most commands.
func getSelectedServer(alias string) (*config.Server, error) {
	cfg, err := config.LoadFromCurrentDir()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w\nRun 'surfacectl init' to create a configuration file", err)
	}

	var server *config.Server
	if alias != "" {
		server, err = cfg.GetServerByAlias(alias)
	} else {
		server, err = cfg.GetDefaultServer()
	}
	if err != nil {
		return nil, err
	}

	if server.URL == "" {
		return nil, fmt.Errorf("server URL is empty. Please edit %s and add a valid URL", config.ConfigFileName)
	}

	return server, nil
}

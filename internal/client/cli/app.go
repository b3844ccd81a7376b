// Package cli implements the interactive labctl shell used by
// administrators to inspect and manage accounts.
package cli

import (
	"bufio"
	"os"

	"github.com/saschasalles/LabPlatformAPI/internal/client/api"
	"github.com/saschasalles/LabPlatformAPI/internal/client/config"
)

type App struct {
	config *config.Config
	client *api.Client
	reader *bufio.Reader
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		client: api.NewClient(c.ServerEndpointAddr, c.RequestTimeout),
		reader: bufio.NewReader(os.Stdin),
	}
}

func (a *App) isLoggedIn() bool {
	return a.client.CurrentUser() != nil
}

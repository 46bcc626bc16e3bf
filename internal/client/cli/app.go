package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/taskkeeper/internal/client/api"
	"github.com/dmitrijs2005/taskkeeper/internal/client/cache"
	"github.com/dmitrijs2005/taskkeeper/internal/client/config"
	"github.com/dmitrijs2005/taskkeeper/internal/client/services"
)

type App struct {
	config      *config.Config
	authService *services.AuthService
	itemService *services.ItemService
	reader      *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	apiClient := api.NewHTTPClient(c.ServerURL, c.RequestTimeout)

	as := services.NewAuthService(apiClient, c.SessionFile)
	is := services.NewItemService(apiClient, cache.New())

	return &App{
		config:      c,
		authService: as,
		itemService: is,
		reader:      bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.authService.Session() != nil
}

func (a *App) getStatus() string {
	if s := a.authService.Session(); s != nil {
		return fmt.Sprintf("(%s)", s.Email)
	}
	return ""
}

// Run restores any saved session, primes the item cache, and hands control
// to the REPL. It blocks until the user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	log.Println("Welcome to taskkeeper CLI (type 'help' for commands)")

	if err := a.authService.Load(); err != nil {
		log.Printf("could not restore session: %s", err.Error())
	}
	if a.isLoggedIn() {
		if err := a.Refresh(ctx); err != nil {
			log.Printf("could not load items: %s", err.Error())
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

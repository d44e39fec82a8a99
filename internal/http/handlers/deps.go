package handlers

import (
	"time"

	"github.com/GlennSimanjorang/sarpras/internal/api"
	"github.com/GlennSimanjorang/sarpras/internal/services"
	"github.com/GlennSimanjorang/sarpras/internal/session"
)

type Deps struct {
	Auth       *AuthHandler
	Dashboard  *DashboardHandler
	Borrowings *BorrowingHandler
	Returns    *ReturnHandler
	Categories *CategoryHandler
	Items      *ItemHandler
	Users      *UserHandler
}

func NewDeps(client *api.Client, tokens session.TokenStore, sessionTTL time.Duration) *Deps {
	lifecycleSvc := services.NewLifecycleService(client)
	dashSvc := services.NewDashboardService(client)
	catalogSvc := services.NewCatalogService(client)

	return &Deps{
		Auth:       &AuthHandler{API: client, Tokens: tokens, TTL: sessionTTL},
		Dashboard:  &DashboardHandler{Dash: dashSvc},
		Borrowings: &BorrowingHandler{Lifecycle: lifecycleSvc},
		Returns:    &ReturnHandler{Lifecycle: lifecycleSvc},
		Categories: &CategoryHandler{Catalog: catalogSvc},
		Items:      &ItemHandler{Catalog: catalogSvc},
		Users:      &UserHandler{Catalog: catalogSvc},
	}
}

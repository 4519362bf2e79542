package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/matthieukhl/toposhop/internal/api"
	"github.com/matthieukhl/toposhop/internal/catalog"
	"github.com/matthieukhl/toposhop/internal/config"
	"github.com/matthieukhl/toposhop/internal/store"
	"github.com/matthieukhl/toposhop/internal/validate"
)

// app wires the containers, the API client and the catalog service for one
// command invocation. Everything is constructed once here and injected,
// there are no package-level singletons.
type app struct {
	cfg    *config.Config
	log    *logrus.Logger
	client *api.Client
	shop   *store.Shop
	auth   *store.Auth
	site   *store.Site
	svc    *catalog.Service
	input  *validate.Validator
}

func newApp() (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logrus.New()
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}

	tokenPath, err := cfg.TokenFilePath()
	if err != nil {
		return nil, err
	}
	tokens := store.NewFileTokenStore(tokenPath)

	client := api.NewClient(api.Config{
		BaseURL: cfg.APIBaseURL(),
		AuthURL: cfg.AuthBaseURL(),
		Tokens:  tokens,
		Timeout: cfg.API.Timeout,
		Logger:  log,
	})

	auth := store.NewAuth(client, tokens, log)
	auth.Initialize()

	shop := store.NewShop()
	site := store.NewSite(cfg.SiteData())

	return &app{
		cfg:    cfg,
		log:    log,
		client: client,
		shop:   shop,
		auth:   auth,
		site:   site,
		svc:    catalog.NewService(client, shop, log),
		input:  validate.New(),
	}, nil
}

// requireLogin fails fast with a hint instead of letting an admin call
// bounce off the backend with a 401.
func (a *app) requireLogin() error {
	if !a.auth.Authenticated() {
		return fmt.Errorf("not logged in, run 'toposhop login' first")
	}
	return nil
}

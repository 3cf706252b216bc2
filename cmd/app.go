package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/misterclayt0n/mapty/internal/config"
	"github.com/misterclayt0n/mapty/internal/controller"
	"github.com/misterclayt0n/mapty/internal/geo"
	"github.com/misterclayt0n/mapty/internal/logging"
	"github.com/misterclayt0n/mapty/internal/persistence"
	"github.com/misterclayt0n/mapty/internal/storage"
	"github.com/misterclayt0n/mapty/internal/terminal"
	"github.com/spf13/cobra"
)

// app is everything a command needs, wired from the config file.
type app struct {
	cfg     *config.Config
	store   storage.Store
	adapter *persistence.Adapter
	ctl     *controller.Controller
	mapView *terminal.MapView
	form    *terminal.Form
}

// ErrEphemeralStorage is returned when the configured backend would lose
// every workout as soon as the command exits.
var ErrEphemeralStorage = errors.New("storage backend does not persist between commands")

func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadConfigFrom(configPath)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return nil, err
	}
	if err := checkPersistent(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func checkPersistent(cfg *config.Config) error {
	if !cfg.Storage.Persistent() {
		return fmt.Errorf("%w: %q, use %q or %q", ErrEphemeralStorage,
			cfg.Storage.Backend, config.BackendFile, config.BackendLibSQL)
	}
	return nil
}

func newApp(cmd *cobra.Command, assumeYes bool) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("Failed to load config: %w", err)
	}

	logging.Setup(logging.SetupParams{
		LogFileName:   cfg.Log.File,
		LogToStdout:   cfg.Log.Stdout,
		LogLevel:      cfg.Log.Level,
		LogFormatJSON: cfg.Log.JSON,
	})

	st, err := storage.Open(cmd.Context(), cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("Failed to open storage: %w", err)
	}

	locator, err := geo.New(cfg.Geolocation)
	if err != nil {
		st.Close()
		return nil, err
	}

	out := cmd.OutOrStdout()
	a := &app{
		cfg:     cfg,
		store:   st,
		adapter: persistence.New(st),
		mapView: terminal.NewMapView(out),
		form:    terminal.NewForm(),
	}
	a.ctl = controller.New(a.adapter, controller.Collaborators{
		Geo:     locator,
		Map:     a.mapView,
		Form:    a.form,
		List:    terminal.NewListView(out),
		Confirm: terminal.NewPrompt(cmd.InOrStdin(), out, assumeYes),
		Alert:   terminal.NewAlerter(cmd.ErrOrStderr()),
	}, controller.Options{
		Zoom:               cfg.Map.Zoom,
		GeolocationTimeout: cfg.Geolocation.Timeout,
	})

	return a, nil
}

// startup runs the controller startup. Commands that can work without a map
// tolerate a missing position; the user has already been alerted.
func (a *app) startup(ctx context.Context, needMap bool) error {
	err := a.ctl.OnStartup(ctx)
	if err != nil && !needMap && errors.Is(err, controller.ErrPositionUnavailable) {
		return nil
	}
	return err
}

func (a *app) Close() error {
	return a.store.Close()
}

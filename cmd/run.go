package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rsehgal/adaptest/internal/app"
	"github.com/rsehgal/adaptest/internal/assessment"
	"github.com/rsehgal/adaptest/internal/flow"
)

// runApp resolves config, opens the store, builds the API client, and
// launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	var client assessment.Client
	if cfg.Demo {
		client = assessment.NewMock()
	} else {
		client = assessment.WithRetry(
			assessment.NewHTTPClient(cfg.ServerURL),
			assessment.DefaultRetryConfig(),
		)
	}

	return app.Run(app.Deps{
		Client:  client,
		History: st.HistoryRepo(),
		Config:  cfg,
		State:   flow.NewState(),
	})
}

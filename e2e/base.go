package e2e

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/suite"

	"mediaflow/api"
	"mediaflow/auth"
)

// BaseSuite wires a real backend client from environment configuration.
// Suites embedding it are skipped entirely when no backend is configured, so
// the e2e package stays inert in unit test runs.
type BaseSuite struct {
	suite.Suite
	Config  Config
	Log     *slog.Logger
	Backend *api.Client
}

// SetupSuite loads the environment configuration before running tests
func (s *BaseSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)

	if s.Config.BackendAddr == "" {
		s.T().Skip("BACKEND_ADDR not set, skipping e2e suite")
	}

	s.Log = logs.GetLoggerFromLevel(slog.LevelDebug)
	httpClient := &http.Client{Timeout: 2 * time.Minute}
	s.Backend = api.NewClient(s.Config.BackendAddr, httpClient,
		auth.OpaqueToken(s.Config.BackendToken), s.Log)
}

// Step prints a colorized header so scenario phases stand out in the log.
func (s *BaseSuite) Step(name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
}

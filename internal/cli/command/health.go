package command

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/respkv/internal/server/httpserver/handler"
)

// HealthCommand returns the health command.
func HealthCommand() *cli.Command {
	return &cli.Command{
		Name:   "health",
		Usage:  "Check server health through the admin endpoint",
		Action: health,
	}
}

// healthReport is the decoded /healthz body.
type healthReport struct {
	handler.HealthResponse `yaml:",inline"`
	Target                 string `json:"target" yaml:"target"`
}

func (h healthReport) String() string {
	var b strings.Builder
	if h.Status == "healthy" {
		fmt.Fprintf(&b, "✓ Server is healthy\n")
	} else {
		fmt.Fprintf(&b, "✗ Server is unhealthy: %s\n", h.Status)
	}
	fmt.Fprintf(&b, "  Target:  %s\n", h.Target)
	fmt.Fprintf(&b, "  Version: %s (%s)\n", h.Version.Version, h.Version.Commit)
	fmt.Fprintf(&b, "  Uptime:  %s\n", h.Uptime)
	fmt.Fprintf(&b, "  Keys:    %d\n", h.Keys)
	return b.String()
}

func health(c *cli.Context) error {
	flags := ParseGlobalFlags(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	target := "http://" + flags.Admin + "/healthz"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		PrintError(c, "Health check failed: %v", err)
		return fmt.Errorf("server unhealthy")
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("server unhealthy: HTTP %d", res.StatusCode)
	}

	report := healthReport{Target: flags.Admin}
	if err := json.NewDecoder(res.Body).Decode(&report.HealthResponse); err != nil {
		return fmt.Errorf("decode health response: %w", err)
	}
	return Print(c, report)
}

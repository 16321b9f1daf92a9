package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Axle-Bucamp/bytebot/internal/config"
	"github.com/Axle-Bucamp/bytebot/internal/providers"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show bytebot status",
	RunE:  runStatus,
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfgPath := config.ConfigPath()

	fmt.Printf("%s bytebot Status\n\n", logo)

	_, statErr := os.Stat(cfgPath)
	cfgMark := "✗"
	if statErr == nil {
		cfgMark = "✓"
	}
	fmt.Printf("Config:  %s %s\n", cfgPath, cfgMark)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Printf("  (could not load config: %v)\n", err)
		return nil
	}

	model := cfg.Agents.Defaults.Model
	fmt.Printf("Model:   %s\n", model)

	desktopMark, endpointMark := probeEndpoints(cfg)
	fmt.Printf("Desktop: %s %s\n", cfg.Desktop.BaseURL, desktopMark)
	fmt.Printf("LLM:     %s %s\n\n", cfg.GetAPIBase(model), endpointMark)

	fmt.Println("Providers:")
	for _, spec := range providers.PROVIDERS {
		p := cfg.ProviderByName(spec.Name)
		if p == nil {
			continue
		}
		label := spec.Label()
		switch {
		case spec.IsLocal:
			base := p.APIBase
			if base == "" {
				base = spec.DefaultAPIBase
			}
			if base != "" {
				fmt.Printf("  %-20s ✓ %s\n", label, base)
			} else {
				fmt.Printf("  %-20s (not set)\n", label)
			}
		default:
			if p.APIKey != "" {
				fmt.Printf("  %-20s ✓\n", label)
			} else {
				fmt.Printf("  %-20s (not set)\n", label)
			}
		}
	}
	return nil
}

// probeEndpoints checks the desktop daemon and the model endpoint in parallel.
// Any HTTP response counts as reachable; only connection failures mark ✗.
func probeEndpoints(cfg *config.Config) (desktop, endpoint string) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	desktop, endpoint = "✗", "✗"
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if reachable(ctx, cfg.Desktop.BaseURL) {
			desktop = "✓"
		}
		return nil
	})
	g.Go(func() error {
		if reachable(ctx, cfg.GetAPIBase(cfg.Agents.Defaults.Model)+"/models") {
			endpoint = "✓"
		}
		return nil
	})
	_ = g.Wait()
	return desktop, endpoint
}

func reachable(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Axle-Bucamp/bytebot/internal/config"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Initialize configuration and playbooks",
	RunE:  runOnboard,
}

func runOnboard(_ *cobra.Command, _ []string) error {
	cfgPath := config.ConfigPath()

	if _, err := os.Stat(cfgPath); err == nil {
		fmt.Printf("Config already exists at %s\n", cfgPath)
		fmt.Printf("Press Enter to refresh (keep existing values) or Ctrl+C to cancel: ")
		fmt.Scanln()
		existing, loadErr := config.Load(cfgPath)
		if loadErr != nil {
			def := config.DefaultConfig()
			existing = &def
		}
		if err := config.Save(existing, cfgPath); err != nil {
			return err
		}
		fmt.Printf("✓ Config refreshed at %s\n", cfgPath)
	} else {
		cfg := config.DefaultConfig()
		if err := config.Save(&cfg, cfgPath); err != nil {
			return err
		}
		fmt.Printf("✓ Created config at %s\n", cfgPath)
	}

	def := config.DefaultConfig()
	playbooksDir := def.PlaybooksPath()
	if err := os.MkdirAll(playbooksDir, 0o755); err != nil {
		return fmt.Errorf("create playbooks dir: %w", err)
	}
	fmt.Printf("✓ Playbooks at %s\n", playbooksDir)

	createPlaybookTemplate(playbooksDir)

	fmt.Printf("\n%s bytebot is ready!\n\n", logo)
	fmt.Println("Next steps:")
	fmt.Printf("  1. Point bytebot at your model endpoint in %s\n", cfgPath)
	fmt.Println("     (defaults to a LiteLLM proxy on http://localhost:4000)")
	fmt.Println("  2. Start the desktop daemon on http://localhost:9990")
	fmt.Printf("  3. Run a task: bytebot agent -m \"Open Firefox and search for cats\"\n")
	return nil
}

func createPlaybookTemplate(dir string) {
	p := filepath.Join(dir, "desktop-basics.md")
	if _, err := os.Stat(p); !os.IsNotExist(err) {
		return
	}
	content := `---
description: baseline habits for driving the desktop
always: true
---

# Desktop basics

- Take a screenshot before the first click of every task.
- Verify the result of each action with a screenshot before moving on.
- Prefer keyboard shortcuts over menu navigation when both work.
`
	if os.WriteFile(p, []byte(content), 0o644) == nil {
		fmt.Println("  Created desktop-basics.md")
	}
}

package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Axle-Bucamp/bytebot/internal/config"
	"github.com/Axle-Bucamp/bytebot/internal/dependency"
	"github.com/Axle-Bucamp/bytebot/internal/providers"
	"github.com/Axle-Bucamp/bytebot/internal/schema"
)

var (
	agentMessage string
	agentModel   string
	agentQuiet   bool
)

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Run an agent task against the desktop",
	RunE:  runAgent,
}

func init() {
	agentCmd.Flags().StringVarP(&agentMessage, "message", "m", "", "Send a single task and exit")
	agentCmd.Flags().StringVar(&agentModel, "model", "", "Override the configured model")
	agentCmd.Flags().BoolVarP(&agentQuiet, "quiet", "q", false, "Suppress tool progress output")
}

var exitCommands = map[string]bool{
	"exit":  true,
	"quit":  true,
	"/exit": true,
	"/quit": true,
	":q":    true,
}

// taskRunner is the slice of agent.Runner the commands need.
type taskRunner interface {
	Run(ctx context.Context, conversation *schema.Conversation, onProgress func(string)) (string, error)
}

func runAgent(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(config.ConfigPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if agentModel != "" {
		cfg.Agents.Defaults.Model = agentModel
	}

	container, err := dependency.New(cfg)
	if err != nil {
		return err
	}

	if agentMessage != "" {
		return runSingleTask(container.Runner(), agentMessage)
	}
	return runInteractive(container.Runner(), os.Stdin)
}

// runSingleTask sends one task to the agent and prints the final answer.
func runSingleTask(runner taskRunner, task string) error {
	conversation := schema.NewConversation()
	conversation.AddUser(schema.NewTextBlock(task))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	answer, err := runner.Run(ctx, &conversation, progressPrinter())
	if errors.Is(err, providers.ErrInterrupted) {
		fmt.Println("\n(interrupted)")
		return nil
	}
	if err != nil {
		return err
	}

	printResponse(answer)
	return nil
}

// runInteractive starts the REPL loop: each line is appended to the running
// conversation, so follow-up tasks keep the full desktop history. Ctrl+C
// cancels only the in-flight request; the session and its history survive.
func runInteractive(runner taskRunner, in io.Reader) error {
	fmt.Printf("%s Interactive mode (type 'exit' or Ctrl+C to quit)\n\n", logo)

	conversation := schema.NewConversation()
	scanner := bufio.NewScanner(in)

	for {
		fmt.Print("You: ")

		if !scanner.Scan() {
			fmt.Println("\nGoodbye!")
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if exitCommands[strings.ToLower(line)] {
			fmt.Println("Goodbye!")
			return nil
		}

		conversation.AddUser(schema.NewTextBlock(line))

		// The signal context is armed per request, so an interrupt aborts
		// the current task and the next prompt re-arms from scratch.
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		answer, err := runner.Run(ctx, &conversation, progressPrinter())
		stop()

		switch {
		case errors.Is(err, providers.ErrInterrupted):
			fmt.Println("\n(interrupted)")
		case err != nil:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		default:
			printResponse(answer)
		}
	}
}

func progressPrinter() func(string) {
	if agentQuiet {
		return nil
	}
	return func(s string) {
		fmt.Printf("  ↳ %s\n", s)
	}
}

func printResponse(text string) {
	fmt.Printf("\n%s bytebot\n%s\n\n", logo, text)
}

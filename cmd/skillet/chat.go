package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/skillet-ai/skillet/pkg/presenter"
	llmtypes "github.com/skillet-ai/skillet/pkg/types/llm"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive chat session. The conversation, including skill
activations, persists until you exit with "exit", "quit" or Ctrl-D.`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sigCh
			presenter.Warning("cancellation requested, shutting down...")
			cancel()
		}()

		config, err := loadConfig()
		if err != nil {
			presenter.Error(err, "failed to load configuration")
			os.Exit(1)
		}

		shutdownTracing := initTracing(ctx, config)
		defer func() { _ = shutdownTracing(context.Background()) }()

		a, err := newAgent(ctx, config)
		if err != nil {
			presenter.Error(err, "failed to initialize agent")
			os.Exit(1)
		}

		presenter.Section("skillet chat")
		presenter.Info(`type "exit" or "quit" to leave`)

		handler := &llmtypes.ConsoleMessageHandler{}
		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				break
			}

			input := strings.TrimSpace(scanner.Text())
			if input == "" {
				continue
			}
			if input == "exit" || input == "quit" {
				break
			}

			if _, err := a.SendMessage(ctx, input, handler); err != nil {
				if ctx.Err() != nil {
					break
				}
				presenter.Error(err, "message failed")
			}
		}

		usage := a.Usage()
		presenter.Info(fmt.Sprintf("input tokens: %d | output tokens: %d",
			usage.InputTokens, usage.OutputTokens))
	},
}

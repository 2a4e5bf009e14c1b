package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/skillet-ai/skillet/pkg/presenter"
	llmtypes "github.com/skillet-ai/skillet/pkg/types/llm"
)

var runCmd = &cobra.Command{
	Use:   "run [query]",
	Short: "Execute a one-shot query",
	Long: `Execute a one-shot query and print the result. The query comes from the
arguments, from stdin when piped, or both with the arguments first.`,
	Args: cobra.MinimumNArgs(0),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sigCh
			presenter.Warning("cancellation requested, shutting down...")
			cancel()
		}()

		query, err := resolveQuery(args)
		if err != nil {
			presenter.Error(err, "no query to run")
			os.Exit(1)
		}

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

		fmt.Printf("[user]: %s\n\n", query)

		handler := &llmtypes.ConsoleMessageHandler{}
		if _, err := a.SendMessage(ctx, query, handler); err != nil {
			presenter.Error(err, "query failed")
			os.Exit(1)
		}

		usage := a.Usage()
		presenter.Info(fmt.Sprintf("input tokens: %d | output tokens: %d",
			usage.InputTokens, usage.OutputTokens))
	},
}

// resolveQuery combines arguments with piped stdin. Arguments come first
// so a pipe can supply context for an instruction given on the command
// line.
func resolveQuery(args []string) (string, error) {
	stat, err := os.Stdin.Stat()
	isPipe := err == nil && (stat.Mode()&os.ModeCharDevice) == 0

	if !isPipe {
		if len(args) == 0 {
			return "", fmt.Errorf("no query provided")
		}
		return strings.Join(args, " "), nil
	}

	stdinBytes, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read from stdin: %w", err)
	}
	stdinContent := string(stdinBytes)

	if len(args) > 0 {
		return strings.Join(args, " ") + "\n" + stdinContent, nil
	}
	if strings.TrimSpace(stdinContent) == "" {
		return "", fmt.Errorf("no query provided")
	}
	return stdinContent, nil
}

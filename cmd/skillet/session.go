package main

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/skillet-ai/skillet/pkg/agent"
	"github.com/skillet-ai/skillet/pkg/llm"
	"github.com/skillet-ai/skillet/pkg/logger"
	"github.com/skillet-ai/skillet/pkg/skills"
	"github.com/skillet-ai/skillet/pkg/tools"
	llmtypes "github.com/skillet-ai/skillet/pkg/types/llm"
)

// newAgent wires one conversation: skill discovery, the session state
// with its sandbox, the provider and the loop around them.
func newAgent(ctx context.Context, config llmtypes.Config) (*agent.Agent, error) {
	discovery, err := skills.NewDiscovery(skills.WithSkillsDir(config.SkillsDir))
	if err != nil {
		return nil, errors.Wrap(err, "failed to set up skill discovery")
	}
	discovered, err := discovery.DiscoverSkills(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to discover skills")
	}
	logger.G(ctx).WithField("count", len(discovered)).Debug("skills discovered")

	stateOpts := []tools.BasicStateOption{
		tools.WithSkillSession(skills.NewSession(discovered)),
	}
	if config.WorkingDir != "" {
		stateOpts = append(stateOpts, tools.WithWorkingDir(config.WorkingDir))
	}
	if config.BashTimeout > 0 {
		stateOpts = append(stateOpts, tools.WithBashTimeout(time.Duration(config.BashTimeout)*time.Second))
	}
	state := tools.NewBasicState(ctx, stateOpts...)

	provider, err := llm.NewProvider(config)
	if err != nil {
		return nil, err
	}

	return agent.New(provider, state, agent.WithMaxTurns(config.MaxTurns)), nil
}

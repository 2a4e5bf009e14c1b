package tools

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/skillet-ai/skillet/pkg/logger"
	"github.com/skillet-ai/skillet/pkg/skills"
	tooltypes "github.com/skillet-ai/skillet/pkg/types/tools"
)

// ErrPathEscape indicates a tool path argument resolved outside the
// working directory. Security invariant: always rejected, never corrected.
var ErrPathEscape = errors.New("path escapes the working directory")

const defaultBashTimeout = 60 * time.Second

var _ tooltypes.State = &BasicState{}

// BasicState implements the State interface for a single session: the
// working-directory sandbox, the bash timeout, the tool set and the skill
// session with its activation cache.
type BasicState struct {
	sessionID    string
	workingDir   string
	bashTimeout  time.Duration
	tools        []tooltypes.Tool
	skillSession *skills.Session
}

// BasicStateOption configures a BasicState.
type BasicStateOption func(ctx context.Context, s *BasicState) error

// WithWorkingDir sets the sandbox root for all file tools.
func WithWorkingDir(dir string) BasicStateOption {
	return func(_ context.Context, s *BasicState) error {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return errors.Wrap(err, "failed to resolve working directory")
		}
		s.workingDir = abs
		return nil
	}
}

// WithBashTimeout sets the default timeout for execute_bash.
func WithBashTimeout(d time.Duration) BasicStateOption {
	return func(_ context.Context, s *BasicState) error {
		if d <= 0 {
			return errors.New("bash timeout must be positive")
		}
		s.bashTimeout = d
		return nil
	}
}

// WithSkillSession attaches the skill session for this conversation.
func WithSkillSession(session *skills.Session) BasicStateOption {
	return func(_ context.Context, s *BasicState) error {
		s.skillSession = session
		return nil
	}
}

// WithTools overrides the tool set, mainly for tests.
func WithTools(tools ...tooltypes.Tool) BasicStateOption {
	return func(_ context.Context, s *BasicState) error {
		s.tools = tools
		return nil
	}
}

// NewBasicState creates a session state. Defaults: current directory as
// sandbox root, 60s bash timeout, the full default tool catalog and an
// empty skill session.
func NewBasicState(ctx context.Context, opts ...BasicStateOption) *BasicState {
	workingDir, err := os.Getwd()
	if err != nil {
		logger.G(ctx).WithError(err).Fatal("failed to get current working directory")
	}

	state := &BasicState{
		sessionID:   uuid.New().String(),
		workingDir:  workingDir,
		bashTimeout: defaultBashTimeout,
	}

	for _, opt := range opts {
		if err := opt(ctx, state); err != nil {
			logger.G(ctx).WithError(err).Fatal("failed to configure session state")
		}
	}

	if state.skillSession == nil {
		state.skillSession = skills.NewSession(nil)
	}
	if state.tools == nil {
		state.tools = DefaultTools()
	}

	return state
}

// SessionID returns the unique id of this session.
func (s *BasicState) SessionID() string {
	return s.sessionID
}

// WorkingDir returns the sandbox root.
func (s *BasicState) WorkingDir() string {
	return s.workingDir
}

// BashTimeout returns the default execute_bash timeout.
func (s *BasicState) BashTimeout() time.Duration {
	return s.bashTimeout
}

// SkillSession returns the skill session owned by this state.
func (s *BasicState) SkillSession() *skills.Session {
	return s.skillSession
}

// Tools returns the tool catalog for this session.
func (s *BasicState) Tools() []tooltypes.Tool {
	return s.tools
}

// Resolve resolves a tool path argument against the working directory.
// Relative paths are joined to the working directory; absolute paths are
// accepted only when already inside it. Anything resolving outside the
// working directory fails with ErrPathEscape, whether or not the target
// exists.
func (s *BasicState) Resolve(path string) (string, error) {
	if path == "" {
		return "", errors.New("path must not be empty")
	}

	var candidate string
	if filepath.IsAbs(path) {
		candidate = filepath.Clean(path)
	} else {
		candidate = filepath.Join(s.workingDir, path)
	}

	if candidate != s.workingDir && !strings.HasPrefix(candidate, s.workingDir+string(os.PathSeparator)) {
		return "", errors.Wrapf(ErrPathEscape, "path %q", path)
	}
	return candidate, nil
}

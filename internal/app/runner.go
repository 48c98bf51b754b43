// Package app runs Lua scripts against the ropeview modules.
//
// A Runner turns configuration into a sandboxed Lua state, injects the
// module registry and executes scripts in order. Every Run gets a fresh
// state so reruns in watch mode never see each other's globals.
package app

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/ropeview/internal/config"
	"github.com/dshills/ropeview/internal/plugin/api"
	luart "github.com/dshills/ropeview/internal/plugin/lua"
	"github.com/dshills/ropeview/internal/view"
)

// InlineName is the script name used for code passed on the command line.
const InlineName = "(inline)"

// Script is a unit of Lua code to run.
type Script struct {
	// Name identifies the script in logs and errors.
	Name string
	// Path is the file to run. Empty for inline code.
	Path string
	// Code is the inline chunk, used when Path is empty.
	Code string
}

// FileScript returns a script read from path.
func FileScript(path string) Script {
	return Script{Name: path, Path: path}
}

// InlineScript returns a script for an inline chunk.
func InlineScript(code string) Script {
	return Script{Name: InlineName, Code: code}
}

// Runner executes scripts.
type Runner struct {
	cfg      config.Config
	registry *api.Registry
	log      *logrus.Entry
	out      io.Writer
	session  string
	input    *view.View
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger. Defaults to the logrus standard logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.log = logrus.NewEntry(logger)
		}
	}
}

// WithRegistry sets the module registry. Defaults to api.DefaultRegistry.
func WithRegistry(registry *api.Registry) Option {
	return func(r *Runner) {
		r.registry = registry
	}
}

// WithOutput sets where Lua print writes. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		if w != nil {
			r.out = w
		}
	}
}

// WithInput exposes v to every script as the global "input".
func WithInput(v view.View) Option {
	return func(r *Runner) {
		r.input = &v
	}
}

// New creates a runner for cfg.
func New(cfg config.Config, opts ...Option) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &ComponentError{Component: "config", Action: "validate", Err: err}
	}

	r := &Runner{
		cfg:     cfg,
		log:     logrus.NewEntry(logrus.StandardLogger()),
		out:     os.Stdout,
		session: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.registry == nil {
		registry, err := api.DefaultRegistry()
		if err != nil {
			return nil, &ComponentError{Component: "registry", Action: "build", Err: err}
		}
		r.registry = registry
	}

	r.log = r.log.WithField("session", r.session)
	return r, nil
}

// Session returns the runner's session id.
func (r *Runner) Session() string {
	return r.session
}

// Run executes scripts in order on a fresh Lua state and stops at the
// first failure, which is returned as a *ScriptError.
func (r *Runner) Run(ctx context.Context, scripts []Script) error {
	if len(scripts) == 0 {
		return ErrNoScripts
	}

	state, err := r.newState()
	if err != nil {
		return err
	}
	defer state.Close()

	for _, script := range scripts {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.runScript(ctx, state, script); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runScript(ctx context.Context, state *luart.State, script Script) error {
	log := r.log.WithField("script", script.Name)
	log.Debug("script started")
	start := time.Now()

	var err error
	if script.Path != "" {
		err = state.DoFile(ctx, script.Path)
	} else {
		err = state.DoString(ctx, script.Code)
	}

	elapsed := time.Since(start)
	if err != nil {
		log.WithError(err).WithField("elapsed", elapsed).Error("script failed")
		return &ScriptError{Script: script.Name, Err: err}
	}
	log.WithField("elapsed", elapsed).Info("script finished")
	return nil
}

// newState builds a sandboxed state with the registry injected, print
// redirected to the runner's output and the input view, if any, bound.
func (r *Runner) newState() (*luart.State, error) {
	state, err := luart.NewState(
		luart.WithExecutionTimeout(r.cfg.Lua.ExecutionTimeout.Duration),
		luart.WithCallStackSize(r.cfg.Lua.CallStackSize),
		luart.WithRegistrySize(r.cfg.Lua.RegistrySize),
	)
	if err != nil {
		return nil, &ComponentError{Component: "lua", Action: "create state", Err: err}
	}

	if err := state.Inject(r.registry.InjectAll); err != nil {
		state.Close()
		return nil, &ComponentError{Component: "registry", Action: "inject", Err: err}
	}

	p := &printer{out: r.out, limit: r.cfg.Lua.MaxOutput}
	err = state.Inject(func(L *lua.LState) error {
		L.SetGlobal("print", L.NewFunction(p.print))
		if r.input != nil {
			L.SetGlobal("input", luart.NewViewValue(L, *r.input))
		}
		return nil
	})
	if err != nil {
		state.Close()
		return nil, &ComponentError{Component: "lua", Action: "install globals", Err: err}
	}
	return state, nil
}

// printer backs Lua's print for one run, honoring __tostring and the
// output limit.
type printer struct {
	out     io.Writer
	limit   int64
	written int64
}

func (p *printer) print(L *lua.LState) int {
	top := L.GetTop()
	parts := make([]string, top)
	for i := 1; i <= top; i++ {
		parts[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	line := strings.Join(parts, "\t") + "\n"

	if p.limit > 0 && p.written+int64(len(line)) > p.limit {
		L.RaiseError("print: %v (%d bytes)", ErrOutputLimit, p.limit)
		return 0
	}
	n, err := io.WriteString(p.out, line)
	p.written += int64(n)
	if err != nil {
		L.RaiseError("print: %v", err)
	}
	return 0
}

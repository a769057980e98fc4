package command

import (
	"time"

	"github.com/TFMV/filebuddy/internal/output"
	"github.com/TFMV/filebuddy/internal/pattern"
	"github.com/TFMV/filebuddy/internal/walk"
	"go.uber.org/zap"
)

// Indicator is a background status display started for the length of a run.
type Indicator interface {
	Start()
	Stop()
}

// Runner executes commands.
type Runner struct {
	Out       *output.Formatter
	Logger    *zap.Logger
	Indicator Indicator        // Optional
	Now       func() time.Time // Defaults to time.Now
}

// Run executes rc.Command, prints its summary tables and returns them. The
// first table carries an "Elapsed Time" row. Per-entry failures are reported
// through the formatter and never stop the run; the returned error is a
// failure of the traversal itself.
func (r *Runner) Run(rc RunContext) ([]*output.Table, error) {
	now := r.Now
	if now == nil {
		now = time.Now
	}
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	e := &env{rc: rc, out: r.Out, log: logger}

	start := now()
	if r.Indicator != nil {
		r.Indicator.Start()
	}
	logger.Debug("running command",
		zap.String("command", string(rc.Command.Kind())),
		zap.String("directory", rc.Directory),
		zap.Bool("recursive", rc.Recursive),
	)
	tables, err := rc.Command.run(e)
	if r.Indicator != nil {
		r.Indicator.Stop()
	}
	if err != nil {
		return nil, err
	}

	elapsed := now().Sub(start)
	if len(tables) == 0 {
		tables = append(tables, output.NewTable("Summary"))
	}
	tables[0].Add("Elapsed Time", output.Elapsed(elapsed))
	logger.Debug("command finished", zap.Duration("elapsed", elapsed))

	for _, t := range tables {
		r.Out.Summary(t)
	}
	return tables, nil
}

// env is what a command handler sees while running.
type env struct {
	rc  RunContext
	out *output.Formatter
	log *zap.Logger
}

func (e *env) walkOptions(recursive bool) walk.Options {
	return walk.Options{
		Recursive:     recursive,
		IncludeHidden: e.rc.IncludeHidden,
		Exclude:       e.rc.Exclude,
		Logger:        e.log,
		OnError: func(path string, err error) {
			e.out.Error("Could not read directory %s: %v", path, err)
		},
	}
}

// emitMatch prints path with the matched part of its base name highlighted.
// suffix follows the name, e.g. "/" for directories.
func (e *env) emitMatch(root string, m pattern.Match, suffix string) {
	e.out.Emit(walk.Join(root, m.Before), m.Matched, m.After+suffix, output.RoleMatch, output.RolePlain)
}

// emitAction prints a completed change as "path => to", where suffix follows
// both sides.
func (e *env) emitAction(root string, m pattern.Match, suffix, to string) {
	e.out.Emit(walk.Join(root, m.Before), m.Matched, m.After+suffix+" => "+to+suffix, output.RoleMatch, output.RoleSuccess)
}

// match tests name against p. A nil pattern matches everything with an empty
// span.
func match(p *pattern.Pattern, name string) (pattern.Match, bool) {
	if p == nil {
		return pattern.Match{Before: name}, true
	}
	return p.Search(name)
}

package annotate

import (
	"errors"
	"fmt"
	"os"

	"github.com/OpenTraceLab/kbpost/pkg/kicad/pcb"
	"github.com/OpenTraceLab/kbpost/pkg/refname"
	"go.uber.org/zap"
)

// ErrSameFile is returned when a job would overwrite one of its inputs
var ErrSameFile = errors.New("output would overwrite input")

// Job names the files of one run
type Job struct {
	SchematicIn  string
	SchematicOut string
	BoardIn      string
	BoardOut     string

	Options Options

	// Verify re-reads the written board and fails if any generated
	// reference is still unannotated
	Verify bool
}

// Validate checks the job before any file is touched
func (j Job) Validate() error {
	if j.SchematicIn == j.SchematicOut {
		return fmt.Errorf("%w: %s", ErrSameFile, j.SchematicIn)
	}
	if j.BoardIn == j.BoardOut {
		return fmt.Errorf("%w: %s", ErrSameFile, j.BoardIn)
	}
	return j.Options.Validate()
}

// Report summarizes a run
type Report struct {
	Components     int
	Companions     int
	SchematicLines int // lines written to the schematic
	BoardLines     int
	BoardRewritten int
	Names          *refname.Map

	// Unannotated is filled by verification
	Unannotated []pcb.Unannotated
}

// Runner executes jobs
type Runner struct {
	log *zap.Logger
}

// NewRunner creates a runner that logs progress to log. A nil logger
// disables logging.
func NewRunner(log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{log: log}
}

// Run rewrites the schematic, then the board. The first error aborts the
// run; an output already written is left in place.
func (r *Runner) Run(job Job) (*Report, error) {
	if err := job.Validate(); err != nil {
		return nil, err
	}

	rep := &Report{Names: refname.NewMap()}

	if err := r.schematic(job, rep); err != nil {
		return rep, err
	}
	if err := r.board(job, rep); err != nil {
		return rep, err
	}

	for _, c := range rep.Names.Collisions() {
		r.log.Warn("Distinct references share a new name",
			zap.String("new", c.New),
			zap.Strings("old", c.Olds))
	}

	if job.Verify {
		if err := r.verify(job.BoardOut, rep); err != nil {
			return rep, err
		}
	}

	return rep, nil
}

func (r *Runner) schematic(job Job, rep *Report) error {
	r.log.Info("Reading schematic", zap.String("path", job.SchematicIn))
	data, err := os.ReadFile(job.SchematicIn)
	if err != nil {
		return fmt.Errorf("read schematic: %w", err)
	}

	res, err := RewriteSchematic(SplitLines(string(data)), job.Options, rep.Names)
	if err != nil {
		return fmt.Errorf("%s: %w", job.SchematicIn, err)
	}
	rep.Components = res.Components
	rep.Companions = res.Companions
	rep.SchematicLines = len(res.Lines)

	if err := os.WriteFile(job.SchematicOut, []byte(JoinLines(res.Lines)), 0o644); err != nil {
		return fmt.Errorf("write schematic: %w", err)
	}
	r.log.Info("Output written",
		zap.String("path", job.SchematicOut),
		zap.Int("components", res.Components),
		zap.Int("companions", res.Companions))
	return nil
}

func (r *Runner) board(job Job, rep *Report) error {
	r.log.Info("Reading board", zap.String("path", job.BoardIn))
	data, err := os.ReadFile(job.BoardIn)
	if err != nil {
		return fmt.Errorf("read board: %w", err)
	}

	lines, changed := RewriteBoard(SplitLines(string(data)), rep.Names)
	rep.BoardLines = len(lines)
	rep.BoardRewritten = changed

	if err := os.WriteFile(job.BoardOut, []byte(JoinLines(lines)), 0o644); err != nil {
		return fmt.Errorf("write board: %w", err)
	}
	r.log.Info("Output written",
		zap.String("path", job.BoardOut),
		zap.Int("lines_rewritten", changed))
	return nil
}

func (r *Runner) verify(path string, rep *Report) error {
	r.log.Debug("Verifying board", zap.String("path", path))
	board, err := pcb.ParseFile(path)
	if err != nil {
		return fmt.Errorf("verify %s: %w", path, err)
	}

	rep.Unannotated = board.Unannotated()
	for _, u := range rep.Unannotated {
		r.log.Warn("Reference left unannotated",
			zap.String("reference", u.Reference),
			zap.String("source", u.Source),
			zap.Int("line", u.Line))
	}
	if n := len(rep.Unannotated); n > 0 {
		return fmt.Errorf("verify %s: %d %w", path, n, pcb.ErrUnannotated)
	}
	return nil
}

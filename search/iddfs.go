package search

// iddfsWalker runs depth-limited search with limits 0, 1, …, maxDepth-1,
// clearing the grid overlay before every iteration after the first. It
// stops at the first success or after the last iteration.
type iddfsWalker struct {
	base
	env      Env
	maxDepth int
	depth    int
	inner    *dlsWalker

	// totals of finished iterations
	doneSteps    int
	doneExpanded int
}

func newIDDFS(env Env, maxDepth int) *iddfsWalker {
	return &iddfsWalker{
		base:     newBase(IDDFS, env),
		env:      env,
		maxDepth: maxDepth,
		inner:    newDLS(env, 0),
	}
}

// Step advances the current iteration by one DLS step. When an iteration
// is exhausted and deeper ones remain, the overlay is cleared, the next
// iteration is prepared and the result carries IterationDone.
func (w *iddfsWalker) Step() StepResult {
	if r, ok := w.gate(); !ok {
		return r
	}

	r := w.inner.Step()
	in := w.inner.Outcome()
	w.mu.Lock()
	if w.out.Status == StatusIdle {
		w.out.Status = StatusRunning
	}
	w.out.Steps = w.doneSteps + in.Steps
	w.out.Expanded = w.doneExpanded + in.Expanded
	w.mu.Unlock()
	r.Depth = w.depth

	switch {
	case !r.Done:
		return r
	case r.Found:
		return w.found(in.Path, r.Current)
	case w.depth+1 >= w.maxDepth:
		return w.exhausted()
	}

	w.doneSteps += in.Steps
	w.doneExpanded += in.Expanded
	w.depth++
	w.g.ClearOverlay()
	w.inner = newDLS(w.env, w.depth)
	return StepResult{IterationDone: true, Depth: w.depth}
}

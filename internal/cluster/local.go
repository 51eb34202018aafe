package cluster

import "github.com/nomoriel/phase2vec/internal/gridsearch"

// Local wraps jobs as directly executable shell invocations of the training
// entrypoint, suitable for a sequential or parallel local runner.
type Local struct {
	TrainerCmd string
}

// Wrap implements Backend.
func (l *Local) Wrap(job gridsearch.Job) (Command, error) {
	return Command{Line: trainingInvocation(l.TrainerCmd, job)}, nil
}

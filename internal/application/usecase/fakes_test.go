package usecase_test

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/memory"
)

// fakeTx Commit si fn no falla; si falla (o si commitErr está definido) vuelve al snapshot.
type fakeTx struct {
	db        *memory.Store
	commitErr error
	runs      int
}

func (f *fakeTx) Run(_ context.Context, fn func(repository.Repos) error) error {
	f.runs++
	snap := f.db.Snapshot()
	if err := fn(f.db.Repos()); err != nil {
		f.db.Rollback(snap)
		return err
	}
	if f.commitErr != nil {
		f.db.Rollback(snap)
		return f.commitErr
	}
	return nil
}

type recordingPublisher struct {
	events []usecase.AuditEvent
}

func (p *recordingPublisher) Publish(_ context.Context, ev usecase.AuditEvent) error {
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) actions() []string {
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Entity+":"+ev.Action)
	}
	return out
}

// Package module wires the enrichment service as a modkit.Module
package module

import (
	"context"
	"fmt"
	"os"

	"chatter/internal/adapters/classifier"
	"chatter/internal/modkit"
	"chatter/internal/modkit/httpkit"
	"chatter/internal/modkit/repokit"
	dom "chatter/internal/services/enrich/domain"
	erepo "chatter/internal/services/enrich/repo"
	eservice "chatter/internal/services/enrich/service"

	"github.com/google/uuid"
)

// Ports exported by the enrich module
type Ports struct {
	Enricher dom.EnricherPort
}

// Module implements modkit.Module for enrichment
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New wires the module against the Calais-compatible classifier from deps.Cfg
func New(deps modkit.Deps) *Module {
	return NewWith(deps, topicsOf{classifier.New(classifier.FromConfig(deps.Cfg))})
}

// NewWith wires the module around an explicit classifier
func NewWith(deps modkit.Deps, cls dom.Classifier) *Module {
	opts := FromConfig(deps.Cfg)
	svc := eservice.New(
		repokit.TxRunner(deps.PG),
		erepo.NewPG(),
		cls,
		eservice.Config{
			Owner:      fmt.Sprintf("enrich:%d:%s", os.Getpid(), uuid.NewString()),
			ClaimTTL:   opts.ClaimTTL,
			SweepBatch: opts.SweepBatch,
			SweepPause: opts.SweepPause,
			SweepIdle:  opts.SweepIdle,
		},
	)
	m := &Module{deps: deps}
	m.ports = Ports{Enricher: svc}
	return m
}

// Name returns the module name
func (m *Module) Name() string { return "enrich" }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// MountRoutes is a no-op: enrichment has no HTTP routes
func (m *Module) MountRoutes(_ httpkit.Router) {}

// topicsOf adapts the classifier client to the domain port
type topicsOf struct{ c *classifier.Client }

func (t topicsOf) Enabled() bool { return t.c.Enabled() }

func (t topicsOf) Classify(ctx context.Context, title, content string) ([]dom.Topic, error) {
	got, err := t.c.Classify(ctx, title, content)
	if err != nil {
		return nil, err
	}
	out := make([]dom.Topic, 0, len(got))
	for _, g := range got {
		out = append(out, dom.Topic{Label: g.Label, Score: g.Score})
	}
	return out, nil
}

package handlers

import (
	"github.com/rooming-app/rooming/internal/mention"
	"github.com/rooming-app/rooming/internal/notify"
	"github.com/rooming-app/rooming/internal/repository"
	"github.com/rooming-app/rooming/internal/social"
)

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	repo     *repository.Repository
	graph    *social.Graph
	notify   *notify.Service
	mentions *mention.Resolver
}

// NewHandlers creates a new handlers instance
func NewHandlers(repo *repository.Repository, graph *social.Graph, notifySvc *notify.Service, resolver *mention.Resolver) *Handlers {
	return &Handlers{
		repo:     repo,
		graph:    graph,
		notify:   notifySvc,
		mentions: resolver,
	}
}

package cli

import (
	"github.com/harborview-io/harborview/internal/api"
	"github.com/harborview-io/harborview/internal/session"
	"github.com/harborview-io/harborview/internal/store"
)

// Core bundles the client-side subsystems every command composes: durable
// storage, the endpoint and credential stores, the HTTP client, and the
// session manager built on top of them.
type Core struct {
	Storage     store.Storage
	Endpoints   *store.EndpointStore
	Credentials *store.CredentialStore
	Client      *api.Client
	Sessions    *session.Manager
}

// buildCore wires the subsystems together. This is the composition root;
// nothing else constructs a session manager.
func buildCore() *Core {
	storage := store.OpenDefault()
	endpoints := store.NewEndpointStore(storage)
	credentials := store.NewCredentialStore(storage)
	client := api.NewClient(endpoints, credentials)
	sessions := session.NewManager(client, endpoints, credentials, storage)
	return &Core{
		Storage:     storage,
		Endpoints:   endpoints,
		Credentials: credentials,
		Client:      client,
		Sessions:    sessions,
	}
}

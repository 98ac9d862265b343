package world

import (
	"sync"

	"github.com/google/uuid"

	"github.com/odrlcore/odrlengine/pkg/odrl/policy"
)

// Registry is the state world's party/asset/policy lookup table, keyed by
// IRI (spec.md §3 "Ownership": parties and assets are shared by IRI; the
// evaluator resolves them through the state world's registry). It is the
// one place cyclic Party<->Rule<->Policy references are broken: everything
// here is stored by value-of-IRI, never by owning pointer (spec.md §9).
type Registry struct {
	mu               sync.RWMutex
	parties          map[string]*policy.Party
	assets           map[string]*policy.Asset
	assetCollections map[string]*policy.AssetCollection
	policies         map[string]*policy.Policy
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		parties:          make(map[string]*policy.Party),
		assets:           make(map[string]*policy.Asset),
		assetCollections: make(map[string]*policy.AssetCollection),
		policies:         make(map[string]*policy.Policy),
	}
}

// PutParty registers or replaces a party by its UID.
func (r *Registry) PutParty(p *policy.Party) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parties[p.UID] = p
}

// Party looks up a party by IRI.
func (r *Registry) Party(iri string) (*policy.Party, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.parties[iri]
	return p, ok
}

// PutAsset registers or replaces an asset by its UID.
func (r *Registry) PutAsset(a *policy.Asset) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assets[a.UID] = a
}

// Asset looks up an asset by IRI.
func (r *Registry) Asset(iri string) (*policy.Asset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.assets[iri]
	return a, ok
}

// NewAnonymousAsset registers and returns a freshly minted asset with a
// generated urn:uuid IRI, for callers (tests, ad-hoc CLI requests) that
// need a target to evaluate against without authoring one in a policy
// document.
func (r *Registry) NewAnonymousAsset() *policy.Asset {
	a := &policy.Asset{UID: "urn:uuid:" + uuid.NewString()}
	r.PutAsset(a)
	return a
}

// PutAssetCollection registers or replaces an asset collection by its UID.
func (r *Registry) PutAssetCollection(c *policy.AssetCollection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assetCollections[c.UID] = c
}

// AssetCollection looks up an asset collection by IRI.
func (r *Registry) AssetCollection(iri string) (*policy.AssetCollection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.assetCollections[iri]
	return c, ok
}

// PutPolicy registers a policy globally, keyed by its UID, so it can be
// looked up via an asset's Policies list or an InheritFrom reference.
func (r *Registry) PutPolicy(p *policy.Policy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.policies[p.UID] = p
}

// Policy looks up a globally registered policy by IRI.
func (r *Registry) Policy(iri string) (*policy.Policy, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.policies[iri]
	return p, ok
}

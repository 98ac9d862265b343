package policy

// Party is an ODRL party (assigner or assignee), shared by IRI across every
// rule that references it (spec.md §3). AssignerOf/AssigneeOf are weak
// back-references — lookup conveniences, never owning pointers — recording
// the UIDs of rules this party appears in.
type Party struct {
	UID        string
	Metadata   map[string]interface{}
	PartOf     []string // IRIs of party collections this party belongs to.
	AssignerOf []string // rule UIDs where this party is the assigner.
	AssigneeOf []string // rule UIDs where this party is the assignee.
}

// Asset is an ODRL asset (a rule's target), shared by IRI. Policies lists
// the IRIs of policies attached directly to this asset.
type Asset struct {
	UID      string
	Metadata map[string]interface{}
	PartOf   []string // IRIs of AssetCollections this asset belongs to.
	Policies []string
}

// AssetCollection groups assets under a single IRI (spec.md §3: "assets may
// reference AssetCollections (partOf)").
type AssetCollection struct {
	UID     string
	Members []string
}

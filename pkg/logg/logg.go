package logg

// Shared zap field names so log lines stay greppable across layers.
const (
	Layer     = "layer"
	Operation = "op"

	URL        = "url"
	Selector   = "selector"
	Ref        = "ref"
	Region     = "region"
	SnapshotID = "snapshot_id"
	Command    = "command"
)

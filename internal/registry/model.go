package registry

// File represents the on-disk sessions.yaml document.
type File struct {
	Version  int                `yaml:"version"`
	Sessions map[string]*Record `yaml:"sessions"`
}

// Record is the durable state of one session, keyed by its identity name.
type Record struct {
	Name        string `yaml:"name"`
	Repo        string `yaml:"repo"`
	Branch      string `yaml:"branch"`
	SourceRef   string `yaml:"source_ref"`
	SourceKind  string `yaml:"source_kind"`
	ContainerID string `yaml:"container_id"`
	State       string `yaml:"state"`
	CreatedAt   string `yaml:"created_at"`
}

package cache

// ArtifactKeyOpts lists every option that changes the rendered bytes.
type ArtifactKeyOpts struct {
	Format           string   `json:"fmt"`
	CoordinateSystem string   `json:"cs"`
	SelectedOnly     bool     `json:"sel"`
	Objects          []string `json:"obj,omitempty"`
	BlankLines       bool     `json:"blank"`
	Encoding         string   `json:"enc"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key for an export of the scene whose bytes
	// hash to sceneHash.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the scene hash together with the options.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey("egg", sceneHash, opts)
}

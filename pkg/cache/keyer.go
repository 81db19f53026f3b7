package cache

// keyVersion is bumped whenever the delay model or an artifact format
// changes, so stale entries are never read back.
const keyVersion = 1

// TreeKeyOpts are the build options that change a tree.
type TreeKeyOpts struct {
	LogicDepth int    `json:"logic_depth"`
	Prefix     string `json:"prefix"`
}

// ArtifactKeyOpts are the render options that change an artifact.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Detailed bool   `json:"detailed"`
}

// Keyer generates cache keys.
type Keyer interface {
	// TreeKey identifies a build configuration.
	TreeKey(width int, opts TreeKeyOpts) string
	// ArtifactKey identifies one rendering of a tree.
	ArtifactKey(treeKey string, opts ArtifactKeyOpts) string
}

// DefaultKeyer derives keys by hashing their inputs.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) TreeKey(width int, opts TreeKeyOpts) string {
	return hashKey("tree", keyVersion, width, opts)
}

func (DefaultKeyer) ArtifactKey(treeKey string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", keyVersion, treeKey, opts)
}

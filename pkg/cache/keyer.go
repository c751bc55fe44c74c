package cache

// Keyer builds cache keys for metric computations.
type Keyer interface {
	// MetricKey returns the key of a full metric result.
	MetricKey(docHash string, opts MetricKeyOpts) string

	// LocalKey returns the key of a restricted count around one or two nodes.
	LocalKey(docHash string, opts LocalKeyOpts) string
}

// MetricKeyOpts holds the options that change a metric result.
type MetricKeyOpts struct {
	Strategy      string `json:"strategy"`
	Strict        bool   `json:"strict"`
	MaxNaiveEdges int    `json:"max_naive_edges"`
}

// LocalKeyOpts holds the options that change a restricted count.
type LocalKeyOpts struct {
	Node   int64  `json:"node"`
	Other  *int64 `json:"other,omitempty"`
	Strict bool   `json:"strict"`
}

// keyVersion is bumped whenever the cached result encoding changes.
const keyVersion = "v1"

// DefaultKeyer builds keys of the form "<kind>:<version>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// MetricKey returns the key of a full metric result.
func (DefaultKeyer) MetricKey(docHash string, opts MetricKeyOpts) string {
	return versionedKey("metric", docHash, opts)
}

// LocalKey returns the key of a restricted count.
func (DefaultKeyer) LocalKey(docHash string, opts LocalKeyOpts) string {
	return versionedKey("local", docHash, opts)
}

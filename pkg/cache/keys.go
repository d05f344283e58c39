package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Keyer builds cache keys for the pipeline's stages. Keys derive from
// content hashes plus option fingerprints: identical inputs always
// produce identical keys, and any semantic change to the input or the
// options produces a different one.
type Keyer interface {
	// DocumentKey keys a parsed document by source content hash.
	DocumentKey(contentHash string) string

	// LayoutKey keys a computed layout by document hash and the
	// layout options that shaped it.
	LayoutKey(documentHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys a rendered artifact by layout hash and render
	// options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts is the fingerprint of every layout option that changes
// positions. Fields marshal to JSON for hashing, so ordering is stable.
type LayoutKeyOpts struct {
	Algorithm      string  `json:"algorithm"`
	EdgeRouting    string  `json:"edge_routing"`
	NodeWidth      float64 `json:"node_width"`
	TierGap        float64 `json:"tier_gap"`
	HideContainers bool    `json:"hide_containers"`
	SubgroupsHash  string  `json:"subgroups_hash"`
}

// ArtifactKeyOpts fingerprints a render request.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Theme       string  `json:"theme"`
	Scale       float64 `json:"scale"`
	Legend      bool    `json:"legend"`
	Drivers     bool    `json:"drivers"`
	Transparent bool    `json:"transparent"`
}

// DefaultKeyer is the standard key scheme: stage-prefixed SHA-256
// hashes.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// DocumentKey generates a key for document caching.
func (k *DefaultKeyer) DocumentKey(contentHash string) string {
	return hashKey("doc", contentHash)
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(documentHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", documentHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	// Full SHA-256 (64 hex chars) to prevent collisions
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

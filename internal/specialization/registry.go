// Package specialization holds the per-specialization configuration that
// drives research source selection, topic scoring, and posting cadence.
// Profiles are plain data so scoring and planning stay testable in isolation.
package specialization

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/talent-manager/internal/schemas"
)

// Profile configures research and planning behavior for one specialization.
type Profile struct {
	// Name is the specialization tag, e.g. "tech_education".
	Name string `json:"name"`

	// PostingFrequency is content items per day (0.5 = every other day).
	PostingFrequency float64 `json:"posting_frequency"`

	// ContentSpacing is the gap between consecutive scheduled items.
	ContentSpacing time.Duration `json:"content_spacing"`

	// ExpertiseWeights maps expertise keywords to integer-like weights used
	// by the topic scorer. Empty means expertise match scores zero.
	ExpertiseWeights map[string]float64 `json:"expertise_weights"`

	// AudienceKeywords are terms whose presence in a title indicates
	// audience fit. Empty means a neutral 0.5 audience score.
	AudienceKeywords []string `json:"audience_keywords"`

	// Subreddits maps subreddit name to its hot listing JSON URL.
	Subreddits map[string]string `json:"subreddits"`

	// BlogFeeds lists RSS/Atom feed URLs polled during research.
	BlogFeeds []string `json:"blog_feeds"`

	// AngleTemplates are fmt templates (one %s for the topic title) used to
	// rephrase topics in the talent's voice. The first template is primary.
	AngleTemplates []string `json:"angle_templates"`
}

// Angle renders the primary talent angle for a topic title.
func (p Profile) Angle(title string) string {
	if len(p.AngleTemplates) == 0 {
		return fmt.Sprintf("Complete guide to %s", title)
	}
	return fmt.Sprintf(p.AngleTemplates[0], title)
}

// Registry resolves specialization tags to profiles, falling back to a
// neutral general profile for unknown tags so lookups never fail.
type Registry struct {
	profiles map[string]Profile
	fallback Profile
}

// NewRegistry returns a registry preloaded with the built-in profiles.
func NewRegistry() *Registry {
	r := &Registry{profiles: make(map[string]Profile)}
	for _, p := range builtinProfiles() {
		r.profiles[p.Name] = p
	}
	r.fallback = generalProfile()
	return r
}

// Lookup returns the profile for tag, or the general fallback profile when
// the tag is unknown. The second return reports whether tag was registered.
func (r *Registry) Lookup(tag string) (Profile, bool) {
	if p, ok := r.profiles[tag]; ok {
		return p, true
	}
	return r.fallback, false
}

// Register adds or replaces a profile. Later registrations win.
func (r *Registry) Register(p Profile) {
	r.profiles[p.Name] = p
}

// Tags returns the registered specialization tags.
func (r *Registry) Tags() []string {
	tags := make([]string, 0, len(r.profiles))
	for tag := range r.profiles {
		tags = append(tags, tag)
	}
	return tags
}

// profileFile is the on-disk shape for profile overrides. Spacing is given
// in hours to keep the JSON readable.
type profileFile struct {
	Profiles []struct {
		Profile
		ContentSpacingHours float64 `json:"content_spacing_hours"`
	} `json:"profiles"`
}

// LoadFile merges profile overrides from a JSON file into the registry. The
// file is validated against the specializations schema first, so a malformed
// profile reports the offending field instead of a raw decode error. When
// the schema file cannot be located, validation is skipped and decoding
// alone guards the input.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read profiles file %s: %w", path, err)
	}

	if schemaPath := schemas.ResolveSchemaPath(filepath.Join("schemas", "specializations.schema.json")); schemaPath != "" {
		schema, err := os.ReadFile(schemaPath)
		if err != nil {
			return fmt.Errorf("failed to read schema %s: %w", schemaPath, err)
		}
		if err := schemas.ValidateJSONString(string(schema), string(data)); err != nil {
			return fmt.Errorf("profiles file %s: %w", path, err)
		}
	}

	var file profileFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse profiles file %s: %w", path, err)
	}

	for _, entry := range file.Profiles {
		p := entry.Profile
		if p.Name == "" {
			return fmt.Errorf("profiles file %s: profile with empty name", path)
		}
		if entry.ContentSpacingHours > 0 {
			p.ContentSpacing = time.Duration(entry.ContentSpacingHours * float64(time.Hour))
		}
		if p.ContentSpacing == 0 {
			p.ContentSpacing = 48 * time.Hour
		}
		r.Register(p)
	}
	return nil
}

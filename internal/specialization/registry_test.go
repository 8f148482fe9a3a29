package specialization

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_KnownSpecialization(t *testing.T) {
	r := NewRegistry()

	p, ok := r.Lookup("tech_education")

	assert.True(t, ok)
	assert.Equal(t, "tech_education", p.Name)
	assert.Equal(t, 0.5, p.PostingFrequency)
	assert.NotEmpty(t, p.ExpertiseWeights)
	assert.NotEmpty(t, p.Subreddits)
}

func TestLookup_UnknownSpecializationFallsBack(t *testing.T) {
	r := NewRegistry()

	p, ok := r.Lookup("underwater_basket_weaving")

	assert.False(t, ok)
	assert.Equal(t, "general", p.Name)
	assert.Empty(t, p.ExpertiseWeights)
	assert.Empty(t, p.AudienceKeywords)
	assert.Greater(t, p.PostingFrequency, 0.0)
}

func TestAngle_UsesPrimaryTemplate(t *testing.T) {
	r := NewRegistry()
	p, _ := r.Lookup("tech_education")

	assert.Equal(t, "Developer's guide to Async Patterns", p.Angle("Async Patterns"))
}

func TestAngle_DefaultWhenNoTemplates(t *testing.T) {
	p := Profile{Name: "general"}

	assert.Equal(t, "Complete guide to Gardening", p.Angle("Gardening"))
}

func TestRegister_OverwritesExisting(t *testing.T) {
	r := NewRegistry()
	r.Register(Profile{Name: "cooking", PostingFrequency: 2.0})

	p, ok := r.Lookup("cooking")

	assert.True(t, ok)
	assert.Equal(t, 2.0, p.PostingFrequency)
}

func TestLoadFile_MergesCustomProfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.json")
	content := `{
		"profiles": [
			{
				"name": "gardening",
				"posting_frequency": 0.3,
				"content_spacing_hours": 72,
				"audience_keywords": ["garden", "plants"]
			}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	r := NewRegistry()
	require.NoError(t, r.LoadFile(path))

	p, ok := r.Lookup("gardening")
	assert.True(t, ok)
	assert.Equal(t, 0.3, p.PostingFrequency)
	assert.Equal(t, 72*time.Hour, p.ContentSpacing)
	assert.Equal(t, []string{"garden", "plants"}, p.AudienceKeywords)
}

func TestLoadFile_RejectsEmptyName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"profiles":[{"posting_frequency":1}]}`), 0o644))

	r := NewRegistry()
	err := r.LoadFile(path)

	assert.Error(t, err)
}

func TestLoadFile_ReportsOffendingField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.json")
	content := `{
		"profiles": [
			{
				"name": "gardening",
				"posting_frequency": "daily"
			}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	r := NewRegistry()
	err := r.LoadFile(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "posting_frequency")
}

func TestLoadFile_RejectsWrongTopLevelShape(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name": "gardening"}]`), 0o644))

	r := NewRegistry()
	err := r.LoadFile(path)

	assert.Error(t, err)
}

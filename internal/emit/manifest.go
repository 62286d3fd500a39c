package emit

import (
	"encoding/json"
	"fmt"
	"sort"
)

const (
	ManifestFileName    = ".tripgen-manifest.json"
	manifestFileVersion = 1
)

// Manifest records what the last successful run read and wrote. It carries
// no timestamps so identical inputs produce an identical manifest.
type Manifest struct {
	Version   int              `json:"version"`
	Format    string           `json:"format"`
	Document  ManifestSource   `json:"document"`
	Gazetteer ManifestSource   `json:"gazetteer"`
	Counts    ManifestCounts   `json:"counts"`
	Stubs     []string         `json:"stubs"`
	Orphans   []string         `json:"orphans"`
	Outputs   []ManifestOutput `json:"outputs"`
}

type ManifestSource struct {
	Path     string `json:"path"`
	Checksum string `json:"checksum"`
}

type ManifestCounts struct {
	Days         int `json:"days"`
	Activities   int `json:"activities"`
	ScheduleRows int `json:"schedule_rows"`
	Lodging      int `json:"lodging"`
	Locations    int `json:"locations"`
}

type ManifestOutput struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Checksum string   `json:"checksum"`
}

// ParseManifest decodes a manifest written by a previous run.
func ParseManifest(data []byte) (*Manifest, error) {
	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("emit: parse manifest: %w", err)
	}
	if manifest.Version == 0 {
		manifest.Version = manifestFileVersion
	}
	return &manifest, nil
}

// Output returns the manifest entry for category.
func (m *Manifest) Output(category Category) (ManifestOutput, bool) {
	if m == nil {
		return ManifestOutput{}, false
	}
	for _, output := range m.Outputs {
		if output.Category == category {
			return output, true
		}
	}
	return ManifestOutput{}, false
}

func (m *Manifest) marshal() ([]byte, error) {
	cloned := *m
	if cloned.Version == 0 {
		cloned.Version = manifestFileVersion
	}
	cloned.Stubs = sortedCopy(cloned.Stubs)
	cloned.Orphans = sortedCopy(cloned.Orphans)
	cloned.Outputs = append([]ManifestOutput{}, cloned.Outputs...)
	// Stable ordering for deterministic output.
	sort.Slice(cloned.Outputs, func(i, j int) bool {
		return cloned.Outputs[i].Name < cloned.Outputs[j].Name
	})
	return encodeJSONFile(cloned)
}

func sortedCopy(values []string) []string {
	out := append([]string{}, values...)
	sort.Strings(out)
	return out
}

package categories

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

// ReasonCategory is one accepted reason for reporting a resource.
type ReasonCategory struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type CategoriesFile struct {
	Categories []ReasonCategory `json:"categories"`
}

// Defaults is the reason set used when no file is configured.
var Defaults = []ReasonCategory{
	{ID: "other", Label: "Other"},
	{ID: "discrimination_etc", Label: "Discrimination, racism or hate speech"},
	{ID: "pornographic_content_links", Label: "Pornographic content or links"},
	{ID: "glorific_trivia_of_cruel_inhuman_acts", Label: "Glorification of cruel or inhuman acts"},
	{ID: "doxing", Label: "Publishing private information"},
	{ID: "intentional_intimidation_stalking_persecution", Label: "Intimidation, stalking or persecution"},
	{ID: "advert_products_services_commercial", Label: "Commercial advertising"},
	{ID: "criminal_behavior_violation_german_law", Label: "Criminal behaviour or violation of law"},
}

// Registry is the closed set of reason categories. It is built once and
// never modified, so it is safe for concurrent reads.
type Registry struct {
	byID map[string]ReasonCategory
}

func NewRegistry(list []ReasonCategory) (*Registry, error) {
	if len(list) == 0 {
		return nil, errors.New("at least one reason category is required")
	}
	byID := make(map[string]ReasonCategory, len(list))
	for _, c := range list {
		if c.ID == "" {
			return nil, errors.New("reason category id must not be empty")
		}
		if _, dup := byID[c.ID]; dup {
			return nil, fmt.Errorf("duplicate reason category %q", c.ID)
		}
		byID[c.ID] = c
	}
	return &Registry{byID: byID}, nil
}

// Load reads the registry from path, or returns the defaults when path is empty.
func Load(path string) (*Registry, error) {
	if path == "" {
		return NewRegistry(Defaults)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reason categories: %w", err)
	}

	var file CategoriesFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse reason categories: %w", err)
	}
	return NewRegistry(file.Categories)
}

func (r *Registry) Exists(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// All returns the categories sorted by id.
func (r *Registry) All() []ReasonCategory {
	result := make([]ReasonCategory, 0, len(r.byID))
	for _, c := range r.byID {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

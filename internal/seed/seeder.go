// Package seed loads a snack catalog from YAML and posts it through the REST API.
package seed

import (
	"context"
	_ "embed"
	"os"
	"strings"
	"time"

	"snack_factory_backend/internal/models"
	"snack_factory_backend/pkg/utils"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var sampleCatalog []byte

// Snack is one catalog entry as written in the seed file.
type Snack struct {
	Name        string       `yaml:"name" json:"name"`
	Description string       `yaml:"description" json:"description"`
	Price       float64      `yaml:"price" json:"price"`
	Image       string       `yaml:"image" json:"image,omitempty"`
	Category    string       `yaml:"category" json:"category,omitempty"`
	PacketTypes []PacketType `yaml:"packetTypes" json:"packetTypes,omitempty"`
	InStock     *bool        `yaml:"inStock" json:"inStock,omitempty"`
	Rating      *float64     `yaml:"rating" json:"rating,omitempty"`
	Ingredients []string     `yaml:"ingredients" json:"ingredients,omitempty"`
}

type PacketType struct {
	Size            string  `yaml:"size" json:"size"`
	Weight          string  `yaml:"weight" json:"weight"`
	PriceMultiplier float64 `yaml:"priceMultiplier" json:"priceMultiplier"`
}

// Catalog is the root of a seed file.
type Catalog struct {
	Snacks []Snack `yaml:"snacks"`
}

// ParseCatalog decodes a seed file and checks each entry has what the API requires.
func ParseCatalog(data []byte) (*Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, errors.Wrap(err, "parsing catalog")
	}
	for i, s := range catalog.Snacks {
		if strings.TrimSpace(s.Name) == "" || strings.TrimSpace(s.Description) == "" {
			return nil, errors.Errorf("catalog entry %d: name and description are required", i)
		}
		if s.Price < 0 {
			return nil, errors.Errorf("catalog entry %q: price must not be negative", s.Name)
		}
		if s.Category != "" && !models.IsValidSnackCategory(s.Category) {
			return nil, errors.Errorf("catalog entry %q: unknown category %q", s.Name, s.Category)
		}
	}
	return &catalog, nil
}

// LoadCatalog reads path, or the embedded sample catalog when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return ParseCatalog(sampleCatalog)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return ParseCatalog(data)
}

// Result summarizes one seeding run.
type Result struct {
	Created []string
	Skipped []string
}

// Seeder talks to a running API.
type Seeder struct {
	client *resty.Client
}

type listEnvelope struct {
	Success bool           `json:"success"`
	Data    []models.Snack `json:"data"`
}

type errorEnvelope struct {
	Message string `json:"message"`
}

// NewSeeder builds a client rooted at baseURL, e.g. http://localhost:5000.
func NewSeeder(baseURL string) *Seeder {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(15*time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500*time.Millisecond).
		SetHeader("Accept", "application/json")
	return &Seeder{client: client}
}

func (s *Seeder) existingNames(ctx context.Context) (map[string]bool, error) {
	var list listEnvelope
	resp, err := s.client.R().SetContext(ctx).SetResult(&list).Get("/api/snacks")
	if err != nil {
		return nil, errors.Wrap(err, "listing snacks")
	}
	if resp.IsError() {
		return nil, errors.Errorf("listing snacks: unexpected status %d", resp.StatusCode())
	}

	names := make(map[string]bool, len(list.Data))
	for _, snack := range list.Data {
		names[strings.ToLower(snack.Name)] = true
	}
	return names, nil
}

// Seed posts every catalog snack whose name is not yet present. Running it twice creates nothing the second time.
func (s *Seeder) Seed(ctx context.Context, catalog *Catalog) (*Result, error) {
	existing, err := s.existingNames(ctx)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for _, snack := range catalog.Snacks {
		key := strings.ToLower(strings.TrimSpace(snack.Name))
		if existing[key] {
			result.Skipped = append(result.Skipped, snack.Name)
			continue
		}

		var apiErr errorEnvelope
		resp, err := s.client.R().
			SetContext(ctx).
			SetBody(snack).
			SetError(&apiErr).
			Post("/api/snacks")
		if err != nil {
			return result, errors.Wrapf(err, "creating %q", snack.Name)
		}
		if resp.IsError() {
			return result, errors.Errorf("creating %q: status %d: %s", snack.Name, resp.StatusCode(), apiErr.Message)
		}

		existing[key] = true
		result.Created = append(result.Created, snack.Name)
		utils.LogInfo("Seeded snack", map[string]interface{}{"name": snack.Name})
	}
	return result, nil
}

// Package prefs manages the user-extensible assignee and channel value
// sets. Each set lives in Redis as a named JSON blob and is merged with
// an immutable default set on every load, so the defaults can never be
// removed no matter what the stored blob contains.
package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/Keerthan22-sys/Instigar/pkg/cache"
)

var (
	// ErrEmptyName rejects blank additions.
	ErrEmptyName = errors.New("name must not be empty")
	// ErrAlreadyExists rejects additions duplicating an existing member.
	ErrAlreadyExists = errors.New("option already exists")
	// ErrImmutableDefault rejects removal of a default member.
	ErrImmutableDefault = errors.New("default options cannot be removed")
	// ErrNotFound means no option with the given value exists.
	ErrNotFound = errors.New("option not found")
)

// Option is one selectable value with its display label.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Service manages one named option set.
type Service struct {
	cache    *cache.Client
	key      string
	defaults []Option
	slugSep  string
}

// NewAssignees creates the assignee set with its fixed defaults.
func NewAssignees(c *cache.Client) *Service {
	return &Service{
		cache: c,
		key:   "prefs:assignees",
		defaults: []Option{
			{Label: "Unassigned", Value: "unassigned"},
			{Label: "John Doe", Value: "john_doe"},
			{Label: "Jane Smith", Value: "jane_smith"},
		},
		slugSep: "_",
	}
}

// NewChannels creates the channel set with its fixed defaults.
func NewChannels(c *cache.Client) *Service {
	return &Service{
		cache: c,
		key:   "prefs:channels",
		defaults: []Option{
			{Label: "Walk-ins", Value: "walk-ins"},
			{Label: "Phone", Value: "phone"},
			{Label: "Website", Value: "website"},
			{Label: "Social media", Value: "social-media"},
		},
		slugSep: "-",
	}
}

// List returns the defaults followed by stored custom options.
func (s *Service) List(ctx context.Context) ([]Option, error) {
	custom, err := s.loadCustom(ctx)
	if err != nil {
		return nil, err
	}
	return append(append([]Option{}, s.defaults...), custom...), nil
}

// Add registers a new option named after the trimmed input. Adding a
// name that already exists (by label, case-insensitively, or by slug) is
// rejected.
func (s *Service) Add(ctx context.Context, name string) (Option, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Option{}, ErrEmptyName
	}

	opt := Option{Label: name, Value: s.slugify(name)}

	existing, err := s.List(ctx)
	if err != nil {
		return Option{}, err
	}
	for _, o := range existing {
		if strings.EqualFold(o.Label, name) || o.Value == opt.Value {
			return Option{}, fmt.Errorf("option %q: %w", name, ErrAlreadyExists)
		}
	}

	custom, err := s.loadCustom(ctx)
	if err != nil {
		return Option{}, err
	}
	if err := s.saveCustom(ctx, append(custom, opt)); err != nil {
		return Option{}, err
	}
	return opt, nil
}

// Remove deletes a custom option by value. Default members are
// immutable.
func (s *Service) Remove(ctx context.Context, value string) error {
	if s.IsDefault(value) {
		return ErrImmutableDefault
	}

	custom, err := s.loadCustom(ctx)
	if err != nil {
		return err
	}

	kept := custom[:0]
	found := false
	for _, o := range custom {
		if o.Value == value {
			found = true
			continue
		}
		kept = append(kept, o)
	}
	if !found {
		return ErrNotFound
	}
	return s.saveCustom(ctx, kept)
}

// IsDefault reports whether value names an immutable default member.
func (s *Service) IsDefault(value string) bool {
	for _, o := range s.defaults {
		if o.Value == value {
			return true
		}
	}
	return false
}

func (s *Service) slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), s.slugSep)
}

// loadCustom reads the stored blob, dropping anything that shadows a
// default so a corrupted blob cannot duplicate or override one.
func (s *Service) loadCustom(ctx context.Context) ([]Option, error) {
	raw, err := s.cache.Get(ctx, s.key)
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed loading %s: %w", s.key, err)
	}

	var stored []Option
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		// A malformed blob falls back to the defaults instead of
		// breaking the filter panel.
		return nil, nil
	}

	custom := make([]Option, 0, len(stored))
	for _, o := range stored {
		if o.Value == "" || s.IsDefault(o.Value) {
			continue
		}
		custom = append(custom, o)
	}
	return custom, nil
}

func (s *Service) saveCustom(ctx context.Context, custom []Option) error {
	payload, err := json.Marshal(custom)
	if err != nil {
		return fmt.Errorf("failed encoding %s: %w", s.key, err)
	}
	if err := s.cache.Set(ctx, s.key, payload, 0); err != nil {
		return fmt.Errorf("failed saving %s: %w", s.key, err)
	}
	return nil
}

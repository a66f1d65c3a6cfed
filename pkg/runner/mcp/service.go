// Package mcp provides the Model Context Protocol server integration for diary.
package mcp

import (
	"context"
	"errors"
	"strings"
	"time"

	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/journal"
	"tableflip.dev/diary/pkg/viewmodel"
)

// Service adapts journal operations to transport-friendly values shared by
// the MCP tools and resources.
type Service struct {
	Journal *journal.Journal
}

// ErrEntryNotFound is returned when an entry is not in the journal.
var ErrEntryNotFound = errors.New("entry not found")

// EntryDTO is a transport-friendly projection of an entry.
type EntryDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	Day         string `json:"day"`
	CreatedISO  string `json:"created"`
	CreatedUnix int64  `json:"createdUnix"`
	Feedback    string `json:"feedback,omitempty"`
}

// DayDTO is one day group.
type DayDTO struct {
	Day     string     `json:"day"`
	Count   int        `json:"count"`
	Entries []EntryDTO `json:"entries"`
}

// ListOptions filter and order a listing.
type ListOptions struct {
	Query string
	Sort  viewmodel.Sort
	// Since drops entries created before it when set.
	Since time.Time
}

func (o ListOptions) sort() viewmodel.Sort {
	if o.Sort == "" {
		return viewmodel.SortNewest
	}
	return o.Sort
}

func (o ListOptions) view() []viewmodel.Option {
	return []viewmodel.Option{
		viewmodel.WithOrder(o.sort().Order()),
		viewmodel.WithQuery(o.Query),
		viewmodel.WithSince(o.Since),
	}
}

// NewService builds a service over j.
func NewService(j *journal.Journal) *Service {
	return &Service{Journal: j}
}

func (s *Service) journal() (*journal.Journal, error) {
	if s.Journal == nil {
		return nil, errors.New("journal is not configured")
	}
	return s.Journal, nil
}

// ListEntries returns a flat listing in the requested order.
func (s *Service) ListEntries(_ context.Context, opts ListOptions) ([]EntryDTO, error) {
	j, err := s.journal()
	if err != nil {
		return nil, err
	}
	var entries []*entry.Entry
	if opts.sort().Grouped() {
		entries = viewmodel.SortByDate(j.Entries(), opts.view()...)
	} else {
		entries = viewmodel.SortByTitle(j.Entries(), opts.view()...)
	}
	return toDTOs(entries), nil
}

// Days returns the day groups. A title sort falls back to newest first.
func (s *Service) Days(_ context.Context, opts ListOptions) ([]DayDTO, error) {
	j, err := s.journal()
	if err != nil {
		return nil, err
	}
	groups := j.View(opts.view()...)
	out := make([]DayDTO, 0, len(groups))
	for _, g := range groups {
		out = append(out, DayDTO{Day: g.Day, Count: len(g.Entries), Entries: toDTOs(g.Entries)})
	}
	return out, nil
}

// Day returns the group for a single YYYY-MM-DD day.
func (s *Service) Day(ctx context.Context, day string) (*DayDTO, error) {
	if _, err := entry.ParseDay(day); err != nil {
		return nil, err
	}
	days, err := s.Days(ctx, ListOptions{Sort: viewmodel.SortOldest})
	if err != nil {
		return nil, err
	}
	for i := range days {
		if days[i].Day == day {
			return &days[i], nil
		}
	}
	return &DayDTO{Day: day, Entries: []EntryDTO{}}, nil
}

// EntryByID returns a single entry.
func (s *Service) EntryByID(_ context.Context, id string) (*EntryDTO, error) {
	j, err := s.journal()
	if err != nil {
		return nil, err
	}
	e, ok := j.Get(strings.TrimSpace(id))
	if !ok {
		return nil, ErrEntryNotFound
	}
	dto := toDTO(e)
	return &dto, nil
}

// CreateEntry adds an entry.
func (s *Service) CreateEntry(ctx context.Context, title, content string) (*EntryDTO, error) {
	j, err := s.journal()
	if err != nil {
		return nil, err
	}
	e, err := j.Create(ctx, title, content)
	if err != nil {
		return nil, err
	}
	dto := toDTO(e)
	return &dto, nil
}

// UpdateEntry changes an entry. Empty title or content keeps the current
// value.
func (s *Service) UpdateEntry(ctx context.Context, id, title, content string) (*EntryDTO, error) {
	j, err := s.journal()
	if err != nil {
		return nil, err
	}
	var titleP, contentP *string
	if title != "" {
		titleP = &title
	}
	if content != "" {
		contentP = &content
	}
	if err := j.Patch(ctx, id, titleP, contentP); err != nil {
		if journal.IsNotFound(err) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return s.EntryByID(ctx, id)
}

// DeleteEntry removes an entry.
func (s *Service) DeleteEntry(ctx context.Context, id string) error {
	j, err := s.journal()
	if err != nil {
		return err
	}
	if err := j.Delete(ctx, id); err != nil {
		if journal.IsNotFound(err) {
			return ErrEntryNotFound
		}
		return err
	}
	return nil
}

func toDTOs(entries []*entry.Entry) []EntryDTO {
	out := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toDTO(e))
	}
	return out
}

// EntryDTOFor projects e.
func EntryDTOFor(e *entry.Entry) EntryDTO {
	return toDTO(e)
}

func toDTO(e *entry.Entry) EntryDTO {
	dto := EntryDTO{
		ID:       e.ID,
		Title:    e.Title,
		Content:  e.Content,
		Day:      e.Day(),
		Feedback: e.Feedback,
	}
	if !e.Created.IsZero() {
		dto.CreatedISO = entry.FormatTime(e.Created.Time)
		dto.CreatedUnix = e.Created.Unix()
	}
	return dto
}

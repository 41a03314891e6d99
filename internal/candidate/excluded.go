package candidate

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"time"
)

const ExcludeActorUser = "user"

// ExcludedCandidates is the on-disk list of candidates that must not be
// considered again.
type ExcludedCandidates struct {
	Items []*ExcludedCandidate
}

type ExcludedCandidate struct {
	Email      string
	Name       string
	Actor      string `json:",omitempty"`
	Reason     string `json:",omitempty"`
	ExcludedAt time.Time
}

func (p *Pool) ToExcluded(actor, reason string) *ExcludedCandidates {
	excluded := &ExcludedCandidates{}
	now := time.Now().UTC()
	for _, c := range p.Items {
		excluded.Items = append(excluded.Items, &ExcludedCandidate{
			Email:      c.Email,
			Name:       c.Name,
			Actor:      actor,
			Reason:     reason,
			ExcludedAt: now,
		})
	}
	return excluded
}

// GetExcludedFromFile reads an exclude file. A missing or empty file is an
// empty list.
func GetExcludedFromFile(path string) (*ExcludedCandidates, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &ExcludedCandidates{}, nil
		}
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &ExcludedCandidates{}, nil
	}

	var excluded ExcludedCandidates
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, err
	}
	return &excluded, nil
}

// Append adds entries whose email is not listed yet.
func (e *ExcludedCandidates) Append(s *ExcludedCandidates) {
	known := make(map[string]struct{}, len(e.Items))
	for _, item := range e.Items {
		known[item.Email] = struct{}{}
	}
	for _, item := range s.Items {
		if _, ok := known[item.Email]; ok {
			continue
		}
		known[item.Email] = struct{}{}
		e.Items = append(e.Items, item)
	}
}

func (e *ExcludedCandidates) Emails() []string {
	emails := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		emails = append(emails, item.Email)
	}
	return emails
}

func (e *ExcludedCandidates) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

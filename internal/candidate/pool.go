package candidate

import (
	"slices"
	"strings"
)

type Pool struct {
	Items []Candidate
}

func NewPool(items []Candidate) *Pool {
	return &Pool{Items: items}
}

func (p *Pool) Len() int {
	return len(p.Items)
}

func (p *Pool) FindByEmail(email string) *Candidate {
	for i := range p.Items {
		if p.Items[i].Email == email {
			return &p.Items[i]
		}
	}
	return nil
}

func (p *Pool) Emails() []string {
	emails := make([]string, 0, len(p.Items))
	for _, c := range p.Items {
		emails = append(emails, c.Email)
	}
	return emails
}

// AllSkills returns every distinct skill in the pool, sorted.
func (p *Pool) AllSkills() []string {
	set := make(map[string]struct{})
	for _, c := range p.Items {
		for _, s := range c.Skills {
			set[s] = struct{}{}
		}
	}
	skills := make([]string, 0, len(set))
	for s := range set {
		skills = append(skills, s)
	}
	slices.Sort(skills)
	return skills
}

// FilterBySkills keeps candidates that list at least one of the selected
// skills (exact match). An empty selection keeps everyone.
func (p *Pool) FilterBySkills(selected []string) *Pool {
	if len(selected) == 0 {
		return &Pool{Items: slices.Clone(p.Items)}
	}

	want := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		want[s] = struct{}{}
	}

	kept := make([]Candidate, 0, len(p.Items))
	for _, c := range p.Items {
		for _, s := range c.Skills {
			if _, ok := want[s]; ok {
				kept = append(kept, c)
				break
			}
		}
	}
	return &Pool{Items: kept}
}

// Exclude removes candidates with the given emails, preserving order, and
// returns the removed emails.
func (p *Pool) Exclude(emails []string) []string {
	drop := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		drop[e] = struct{}{}
	}

	var excluded []string
	kept := make([]Candidate, 0, len(p.Items))
	for _, c := range p.Items {
		if _, ok := drop[c.Email]; ok {
			excluded = append(excluded, c.Email)
			continue
		}
		kept = append(kept, c)
	}
	p.Items = kept
	return excluded
}

// PruneSelection drops selected emails that are not part of the pool,
// keeping the selection order.
func (p *Pool) PruneSelection(selected []string) []string {
	present := make(map[string]struct{}, len(p.Items))
	for _, c := range p.Items {
		present[c.Email] = struct{}{}
	}

	pruned := make([]string, 0, len(selected))
	seen := make(map[string]struct{}, len(selected))
	for _, e := range selected {
		if _, ok := present[e]; !ok {
			continue
		}
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		pruned = append(pruned, e)
	}
	return pruned
}

// ExcludeUnavailable removes candidates whose work availability does not
// list kind and returns their emails. Candidates without any availability
// are kept.
func (p *Pool) ExcludeUnavailable(kind string) []string {
	var drop []string
	for _, c := range p.Items {
		if len(c.WorkAvailability) == 0 {
			continue
		}
		if !slices.ContainsFunc(c.WorkAvailability, func(a string) bool { return strings.EqualFold(a, kind) }) {
			drop = append(drop, c.Email)
		}
	}
	return p.Exclude(drop)
}

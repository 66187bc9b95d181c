package domain

import "strings"

// Technician models a support staff member eligible for ticket ownership.
// Identity comes from the platform roster; limits and availability come
// from local configuration keyed by email.
type Technician struct {
	ID            int
	Email         string
	Name          string
	Specialties   []string
	WorkloadLimit int
	Available     bool
}

// Roster indexes technicians by lower-cased email for configuration lookups.
type Roster struct {
	byEmail map[string]*Technician
	all     []*Technician
}

// NewRoster builds a roster from the given technicians.
func NewRoster(techs []*Technician) *Roster {
	r := &Roster{byEmail: make(map[string]*Technician, len(techs))}
	for _, tech := range techs {
		if tech == nil || tech.Email == "" {
			continue
		}
		r.byEmail[strings.ToLower(tech.Email)] = tech
		r.all = append(r.all, tech)
	}
	return r
}

// ByEmail returns the technician with the given email, matched
// case-insensitively, or nil.
func (r *Roster) ByEmail(email string) *Technician {
	if r == nil {
		return nil
	}
	return r.byEmail[strings.ToLower(email)]
}

// All returns the technicians in registration order.
func (r *Roster) All() []*Technician {
	if r == nil {
		return nil
	}
	return r.all
}

// Len returns the roster size.
func (r *Roster) Len() int {
	if r == nil {
		return 0
	}
	return len(r.all)
}

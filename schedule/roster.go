/*
roster.go - Menu-variant schedule table keyed by employee name

PURPOSE:
  The roster is the small interactive variant of the schedule ledger: one
  shift per employee, keyed by name, persisted as a JSON object of
  name -> ["HH:MM", "HH:MM"] pairs. The file format is preserved as-is so
  existing roster files keep loading.

PERSISTENCE:
  Whole-file read on load, whole-file rewrite on save. A missing file is not
  an error: the roster starts empty and is created on first save.
*/
package schedule

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/warp/ledger-engine/validate"
)

// Shift is an entry/exit pair. It marshals as the two-element
// ["HH:MM", "HH:MM"] array of the roster file.
type Shift struct {
	In  Clock
	Out Clock
}

func (s Shift) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{s.In.String(), s.Out.String()})
}

func (s *Shift) UnmarshalJSON(data []byte) error {
	var pair [2]string
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	inHour, inMin, err := validate.Clock(pair[0])
	if err != nil {
		return fmt.Errorf("entry %q: %w", pair[0], err)
	}
	outHour, outMin, err := validate.Clock(pair[1])
	if err != nil {
		return fmt.Errorf("exit %q: %w", pair[1], err)
	}
	s.In = Clock{Hour: inHour, Minute: inMin}
	s.Out = Clock{Hour: outHour, Minute: outMin}
	return nil
}

// Roster is the name-keyed shift table.
type Roster struct {
	path    string
	entries map[string]Shift
}

// LoadRoster reads the roster file. A missing file yields an empty roster
// with a diagnostic; the file appears on the first Save.
func LoadRoster(path string, logger *slog.Logger) (*Roster, error) {
	r := &Roster{path: path, entries: make(map[string]Shift)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger.Info("roster file not found, starting empty", "file", path)
		return r, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &r.entries); err != nil {
		return nil, fmt.Errorf("roster %s: %w", path, err)
	}
	return r, nil
}

// Set validates and stores the shift for an employee, replacing any
// previous one, then rewrites the file.
func (r *Roster) Set(name string, in, out Clock) error {
	if !in.Before(out) {
		return fmt.Errorf("%s %s-%s: %w", name, in, out, ErrShiftOrder)
	}
	r.entries[name] = Shift{In: in, Out: out}
	return r.Save()
}

// Len returns the number of employees on the roster.
func (r *Roster) Len() int { return len(r.entries) }

// RosterEntry is one employee's shift, for ordered listings.
type RosterEntry struct {
	Name  string
	Shift Shift
}

// Entries returns the roster ordered case-insensitively by name.
func (r *Roster) Entries() []RosterEntry {
	out := make([]RosterEntry, 0, len(r.entries))
	for name, shift := range r.entries {
		out = append(out, RosterEntry{Name: name, Shift: shift})
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// WorkingAt returns the entries whose shift contains the reference instant,
// under the same boundary rule as Record containment.
func (r *Roster) WorkingAt(ref Clock) []RosterEntry {
	var out []RosterEntry
	for _, e := range r.Entries() {
		rec := Record{Employee: e.Name, In: e.Shift.In, Out: e.Shift.Out}
		if len(WorkingAt([]Record{rec}, ref)) > 0 {
			out = append(out, e)
		}
	}
	return out
}

// Save rewrites the roster file with entries in name order.
func (r *Roster) Save() error {
	// json.Marshal sorts map keys, which keeps the file diffable.
	data, err := json.MarshalIndent(r.entries, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, append(data, '\n'), 0o644)
}

package store

import (
	"encoding/json"
	"strconv"
)

// deadlineKey is the single KV entry holding the course deadline map,
// keyed by course ID, valued by a YYYY-MM-DD date string.
const deadlineKey = "course_deadlines"

// DeadlineBook reads and writes admin-set course deadlines. The engine only
// ever reads them for days-remaining display.
type DeadlineBook struct {
	KV KV
}

func (d *DeadlineBook) All() (map[string]string, error) {
	raw, err := d.KV.Get(deadlineKey)
	if err != nil {
		return nil, err
	}
	deadlines := make(map[string]string)
	if raw == "" {
		return deadlines, nil
	}
	if err := json.Unmarshal([]byte(raw), &deadlines); err != nil {
		// A corrupt map means no deadlines, not an error surface
		return make(map[string]string), nil
	}
	return deadlines, nil
}

func (d *DeadlineBook) Get(courseID uint) (string, bool) {
	deadlines, err := d.All()
	if err != nil {
		return "", false
	}
	date, ok := deadlines[strconv.FormatUint(uint64(courseID), 10)]
	return date, ok
}

func (d *DeadlineBook) Set(courseID uint, date string) error {
	deadlines, err := d.All()
	if err != nil {
		return err
	}
	deadlines[strconv.FormatUint(uint64(courseID), 10)] = date
	return d.save(deadlines)
}

func (d *DeadlineBook) Remove(courseID uint) error {
	deadlines, err := d.All()
	if err != nil {
		return err
	}
	delete(deadlines, strconv.FormatUint(uint64(courseID), 10))
	return d.save(deadlines)
}

func (d *DeadlineBook) save(deadlines map[string]string) error {
	raw, err := json.Marshal(deadlines)
	if err != nil {
		return err
	}
	return d.KV.Set(deadlineKey, string(raw))
}

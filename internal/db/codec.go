package db

import (
	"context"
	"encoding/json"
	"time"

	"timebox/internal/dateutil"
	"timebox/internal/task"
)

// Persisted blob shapes. Decoding fails closed: a blob that does not parse
// yields empty state, and individual records that fail validation are dropped
// whole rather than admitted as partially-constructed tasks.

type taskRecord struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	StartMin  int    `json:"startMin"`
	Duration  int    `json:"duration"`
	Color     string `json:"color"`
	Completed bool   `json:"isCompleted"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type settingsRecord struct {
	WakeHour int `json:"wakeTime"`
	BedHour  int `json:"bedTime"`
}

type templateRecord struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Duration int    `json:"duration"`
	Color    string `json:"color"`
}

func toRecord(t *task.Task) taskRecord {
	rec := taskRecord{
		ID:        t.ID,
		Title:     t.Title,
		StartMin:  t.StartMin,
		Duration:  t.Duration,
		Color:     string(t.Color),
		Completed: t.Completed,
	}
	if !t.CreatedAt.IsZero() {
		rec.CreatedAt = t.CreatedAt.Format(time.RFC3339)
	}
	return rec
}

// fromRecord converts a persisted record back to a domain task.
// Returns nil for records that would violate the data model.
func fromRecord(rec taskRecord) *task.Task {
	if rec.ID == "" {
		return nil
	}
	if rec.StartMin < 0 || rec.StartMin >= task.MinutesPerDay {
		return nil
	}
	if rec.Duration <= 0 {
		return nil
	}

	t := &task.Task{
		ID:        rec.ID,
		Title:     rec.Title,
		StartMin:  rec.StartMin,
		Duration:  rec.Duration,
		Color:     task.Color(rec.Color).Normalize(),
		Completed: rec.Completed,
	}
	if rec.CreatedAt != "" {
		if created, err := time.Parse(time.RFC3339, rec.CreatedAt); err == nil {
			t.CreatedAt = created
		}
	}
	return t
}

func encodeDays(days map[string][]*task.Task) ([]byte, error) {
	out := make(map[string][]taskRecord, len(days))
	for date, tasks := range days {
		recs := make([]taskRecord, 0, len(tasks))
		for _, t := range tasks {
			recs = append(recs, toRecord(t))
		}
		out[date] = recs
	}
	return json.Marshal(out)
}

func decodeDays(blob []byte) map[string][]*task.Task {
	var raw map[string][]taskRecord
	if err := json.Unmarshal(blob, &raw); err != nil {
		return map[string][]*task.Task{}
	}

	days := make(map[string][]*task.Task, len(raw))
	for date, recs := range raw {
		if !dateutil.Valid(date) {
			continue
		}
		days[date] = decodeTasks(recs)
	}
	return days
}

func decodeTasks(recs []taskRecord) []*task.Task {
	tasks := make([]*task.Task, 0, len(recs))
	for _, rec := range recs {
		if t := fromRecord(rec); t != nil {
			tasks = append(tasks, t)
		}
	}
	return tasks
}

// loadLegacy reads the variant-1 single-day list and adopts it as today's
// entry. Called only when no date-keyed blob exists.
func (s *KV) loadLegacy(ctx context.Context) (map[string][]*task.Task, error) {
	blob, ok, err := s.get(ctx, keyLegacy)
	if err != nil {
		return nil, err
	}
	if !ok {
		return map[string][]*task.Task{}, nil
	}

	var recs []taskRecord
	if err := json.Unmarshal(blob, &recs); err != nil {
		return map[string][]*task.Task{}, nil
	}

	days := map[string][]*task.Task{}
	if tasks := decodeTasks(recs); len(tasks) > 0 {
		days[dateutil.Today()] = tasks
	}
	return days, nil
}

func encodeSettings(settings task.Settings) ([]byte, error) {
	s := settings.Normalize()
	return json.Marshal(settingsRecord{WakeHour: s.WakeHour, BedHour: s.BedHour})
}

func decodeSettings(blob []byte, fallback task.Settings) task.Settings {
	var rec settingsRecord
	if err := json.Unmarshal(blob, &rec); err != nil {
		return fallback
	}
	if rec.WakeHour < 0 || rec.WakeHour > 23 || rec.BedHour < 0 || rec.BedHour > 23 {
		return fallback
	}
	return task.Settings{WakeHour: rec.WakeHour, BedHour: rec.BedHour}
}

func encodeTemplates(templates []*task.Template) ([]byte, error) {
	recs := make([]templateRecord, 0, len(templates))
	for _, tpl := range templates {
		recs = append(recs, templateRecord{
			ID:       tpl.ID,
			Title:    tpl.Title,
			Duration: tpl.Duration,
			Color:    string(tpl.Color),
		})
	}
	return json.Marshal(recs)
}

func decodeTemplates(blob []byte) []*task.Template {
	var recs []templateRecord
	if err := json.Unmarshal(blob, &recs); err != nil {
		return nil
	}

	templates := make([]*task.Template, 0, len(recs))
	for _, rec := range recs {
		if rec.ID == "" || rec.Duration <= 0 {
			continue
		}
		templates = append(templates, &task.Template{
			ID:       rec.ID,
			Title:    rec.Title,
			Duration: rec.Duration,
			Color:    task.Color(rec.Color).Normalize(),
		})
	}
	return templates
}

package highscores

type document struct {
	Skills     []skillEntry    `json:"skills"`
	Activities []activityEntry `json:"activities"`
}

type skillEntry struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Rank  int64  `json:"rank"`
	Level int    `json:"level"`
	XP    int64  `json:"xp"`
}

type activityEntry struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Rank  int64  `json:"rank"`
	Score int64  `json:"score"`
}

func (e skillEntry) entryName() string    { return e.Name }
func (e activityEntry) entryName() string { return e.Name }

type named interface {
	entryName() string
}

type records struct {
	skills     map[Key]SkillRecord
	activities map[Key]ActivityRecord
	bosses     map[Key]BossRecord
}

// newRecords returns a record set holding an unranked record for every canonical entry.
func newRecords() records {
	r := records{
		skills:     make(map[Key]SkillRecord, len(Skills)),
		activities: make(map[Key]ActivityRecord, len(Activities)),
		bosses:     make(map[Key]BossRecord, len(Bosses)),
	}
	for _, e := range Skills {
		r.skills[e.Key] = SkillRecord{Rank: Unranked, Level: 1, Experience: 0}
	}
	for _, e := range Activities {
		r.activities[e.Key] = ActivityRecord{Rank: Unranked, Score: Unranked}
	}
	for _, e := range Bosses {
		r.bosses[e.Key] = BossRecord{Rank: Unranked, KillCount: Unranked}
	}
	return r
}

// locate finds the entry called name. The upstream arrays are positionally
// aligned with the canonical tables, so position is tried first; a name scan
// covers reordered or inserted entries.
func locate[T named](entries []T, name string, position int) (T, bool) {
	if position >= 0 && position < len(entries) && entries[position].entryName() == name {
		return entries[position], true
	}
	for _, e := range entries {
		if e.entryName() == name {
			return e, true
		}
	}
	var zero T
	return zero, false
}

func parseDocument(doc *document) (records, []Unrecognized) {
	recs := newRecords()

	for i, e := range Skills {
		if entry, ok := locate(doc.Skills, e.Name, i); ok {
			recs.skills[e.Key] = SkillRecord{
				Rank:       unranked(entry.Rank),
				Level:      max(entry.Level, 1),
				Experience: max(entry.XP, 0),
			}
		}
	}

	for i, e := range Activities {
		if entry, ok := locate(doc.Activities, e.Name, i); ok {
			recs.activities[e.Key] = ActivityRecord{Rank: unranked(entry.Rank), Score: unranked(entry.Score)}
		}
	}

	// Bosses follow the activities in the same upstream array.
	offset := len(Activities)
	for i, e := range Bosses {
		if entry, ok := locate(doc.Activities, e.Name, offset+i); ok {
			recs.bosses[e.Key] = BossRecord{Rank: unranked(entry.Rank), KillCount: unranked(entry.Score)}
		}
	}

	var unknown []Unrecognized
	for i, s := range doc.Skills {
		if _, kind, ok := LookupName(s.Name); !ok || kind != KindSkill {
			unknown = append(unknown, Unrecognized{Kind: KindSkill, Name: s.Name, Index: i})
		}
	}
	for i, a := range doc.Activities {
		if _, kind, ok := LookupName(a.Name); !ok || kind == KindSkill {
			label := KindActivity
			if i >= offset {
				label = KindBoss
			}
			unknown = append(unknown, Unrecognized{Kind: label, Name: a.Name, Index: i})
		}
	}

	return recs, unknown
}

func unranked(v int64) int64 {
	if v < 0 {
		return Unranked
	}
	return v
}

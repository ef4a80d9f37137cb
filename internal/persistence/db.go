// Package persistence provides SQLite-based simulation state storage.
// Entities persist as rows with JSON columns for nested maps; the decision
// history and effect log are append-only tables keyed by their uuids.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/lvillegas/mandato/internal/engine"
	"github.com/lvillegas/mandato/internal/polity"
)

// DB wraps a SQLite connection for simulation state persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS factions (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		support REAL NOT NULL,
		power REAL NOT NULL,
		resources REAL NOT NULL,
		relations_json TEXT NOT NULL,
		demands_json TEXT NOT NULL,
		unique_events_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS provinces (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		discontent REAL NOT NULL,
		loyalty REAL NOT NULL,
		economic_level REAL NOT NULL,
		population INTEGER NOT NULL,
		ideology INTEGER NOT NULL,
		influence_json TEXT NOT NULL,
		active_events_json TEXT NOT NULL,
		regional_effects_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS decisions (
		id TEXT PRIMARY KEY,
		tick INTEGER NOT NULL,
		event_id TEXT NOT NULL,
		choice_id TEXT NOT NULL,
		summary TEXT NOT NULL,
		effects_json TEXT NOT NULL,
		triggered_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS effects (
		id TEXT PRIMARY KEY,
		tick INTEGER NOT NULL,
		kind INTEGER NOT NULL,
		source TEXT NOT NULL,
		target TEXT NOT NULL,
		before REAL NOT NULL,
		after REAL NOT NULL,
		requested REAL NOT NULL,
		applied REAL NOT NULL,
		note TEXT NOT NULL,
		cascade_level INTEGER NOT NULL,
		warning INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sim_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_effects_tick ON effects(tick);
	CREATE INDEX IF NOT EXISTS idx_decisions_tick ON decisions(tick);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// runtimeState is the JSON document holding everything that is not an
// entity row: completion history, flags, chains, decrees, missions, unlocks,
// pending events, and operative progress.
type runtimeState struct {
	Tick            uint64                              `json:"tick"`
	President       string                              `json:"president"`
	CrisisLevel     int                                 `json:"crisis_level"`
	Metrics         engine.Metrics                      `json:"metrics"`
	CompletedEvents map[string]uint64                   `json:"completed_events"`
	LastByCategory  map[engine.EventCategory]uint64     `json:"last_by_category"`
	PendingEvents   []engine.PendingEvent               `json:"pending_events"`
	Flags           map[string]*engine.FlagState        `json:"flags"`
	Chains          map[string]*engine.ChainState       `json:"chains"`
	Decrees         map[string]*engine.DecreeInstance   `json:"decrees"`
	Missions        map[string]*engine.MissionState     `json:"missions"`
	UnlockedEvents  map[string]bool                     `json:"unlocked_events"`
	UnlockedMissions map[string]bool                    `json:"unlocked_missions"`
	ProbabilityMods map[string]float64                  `json:"probability_mods"`
	Achievements    []string                            `json:"achievements"`
	Progress        engine.Progress                     `json:"progress"`
}

// SaveState performs a full save: entity tables are replaced, history
// tables receive only rows they have not seen (uuid primary keys).
func (db *DB) SaveState(st *engine.State) error {
	slog.Info("saving state", "tick", st.Tick, "decisions", len(st.Decisions), "effects", len(st.Effects))

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM factions"); err != nil {
		return err
	}
	for _, f := range st.Factions {
		relJSON, _ := json.Marshal(f.Relations)
		demJSON, _ := json.Marshal(f.Demands)
		ueJSON, _ := json.Marshal(f.UniqueEvents)
		_, err := tx.Exec(`INSERT INTO factions
			(id, name, support, power, resources, relations_json, demands_json, unique_events_json)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			f.ID, f.Name, f.Support, f.Power, f.Resources,
			string(relJSON), string(demJSON), string(ueJSON),
		)
		if err != nil {
			return fmt.Errorf("insert faction %s: %w", f.ID, err)
		}
	}

	if _, err := tx.Exec("DELETE FROM provinces"); err != nil {
		return err
	}
	for _, p := range st.Provinces {
		infJSON, _ := json.Marshal(p.Influence)
		aeJSON, _ := json.Marshal(p.ActiveEvents)
		reJSON, _ := json.Marshal(p.RegionalEffects)
		_, err := tx.Exec(`INSERT INTO provinces
			(id, name, discontent, loyalty, economic_level, population, ideology,
			 influence_json, active_events_json, regional_effects_json)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Name, p.Discontent, p.Loyalty, p.EconomicLevel,
			p.Population, p.Ideology,
			string(infJSON), string(aeJSON), string(reJSON),
		)
		if err != nil {
			return fmt.Errorf("insert province %s: %w", p.ID, err)
		}
	}

	for _, d := range st.Decisions {
		effJSON, _ := json.Marshal(d.Effects)
		trigJSON, _ := json.Marshal(d.Triggered)
		_, err := tx.Exec(`INSERT OR IGNORE INTO decisions
			(id, tick, event_id, choice_id, summary, effects_json, triggered_json)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			d.ID, d.Tick, d.EventID, d.ChoiceID, d.Summary,
			string(effJSON), string(trigJSON),
		)
		if err != nil {
			return fmt.Errorf("insert decision %s: %w", d.ID, err)
		}
	}

	for _, e := range st.Effects {
		warning := 0
		if e.Warning {
			warning = 1
		}
		_, err := tx.Exec(`INSERT OR IGNORE INTO effects
			(id, tick, kind, source, target, before, after, requested, applied, note, cascade_level, warning)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, e.Tick, e.Kind, e.Source, e.Target,
			e.Before, e.After, e.Requested, e.Applied,
			e.Note, e.CascadeLevel, warning,
		)
		if err != nil {
			return fmt.Errorf("insert effect %s: %w", e.ID, err)
		}
	}

	rt := runtimeState{
		Tick:             st.Tick,
		President:        st.President,
		CrisisLevel:      st.CrisisLevel,
		Metrics:          st.Metrics,
		CompletedEvents:  st.CompletedEvents,
		LastByCategory:   st.LastByCategory,
		PendingEvents:    st.PendingEvents,
		Flags:            st.Flags,
		Chains:           st.Chains,
		Decrees:          st.Decrees,
		Missions:         st.Missions,
		UnlockedEvents:   st.UnlockedEvents,
		UnlockedMissions: st.UnlockedMissions,
		ProbabilityMods:  st.ProbabilityMods,
		Achievements:     st.Achievements,
		Progress:         st.Progress,
	}
	rtJSON, err := json.Marshal(rt)
	if err != nil {
		return fmt.Errorf("marshal runtime state: %w", err)
	}
	if _, err := tx.Exec(
		"INSERT OR REPLACE INTO sim_meta (key, value) VALUES ('runtime', ?)", string(rtJSON),
	); err != nil {
		return err
	}
	if _, err := tx.Exec(
		"INSERT OR REPLACE INTO sim_meta (key, value) VALUES ('last_tick', ?)", fmt.Sprintf("%d", st.Tick),
	); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("state saved", "tick", st.Tick)
	return nil
}

// HasState reports whether a saved simulation exists.
func (db *DB) HasState() bool {
	var n int
	if err := db.conn.Get(&n, "SELECT COUNT(*) FROM sim_meta WHERE key = 'runtime'"); err != nil {
		return false
	}
	return n > 0
}

// LoadState reconstructs the full simulation state from the database.
func (db *DB) LoadState() (*engine.State, error) {
	var rtJSON string
	if err := db.conn.Get(&rtJSON, "SELECT value FROM sim_meta WHERE key = 'runtime'"); err != nil {
		return nil, fmt.Errorf("load runtime state: %w", err)
	}
	var rt runtimeState
	if err := json.Unmarshal([]byte(rtJSON), &rt); err != nil {
		return nil, fmt.Errorf("unmarshal runtime state: %w", err)
	}

	st := engine.NewState(rt.President)
	st.Tick = rt.Tick
	st.CrisisLevel = rt.CrisisLevel
	st.Metrics = rt.Metrics
	st.CompletedEvents = orEmpty(rt.CompletedEvents)
	st.LastByCategory = orEmpty(rt.LastByCategory)
	st.PendingEvents = rt.PendingEvents
	st.Flags = orEmpty(rt.Flags)
	st.Chains = orEmpty(rt.Chains)
	st.Decrees = orEmpty(rt.Decrees)
	st.Missions = orEmpty(rt.Missions)
	st.UnlockedEvents = orEmpty(rt.UnlockedEvents)
	st.UnlockedMissions = orEmpty(rt.UnlockedMissions)
	st.ProbabilityMods = orEmpty(rt.ProbabilityMods)
	st.Achievements = rt.Achievements
	st.Progress = rt.Progress

	type factionRow struct {
		ID               string  `db:"id"`
		Name             string  `db:"name"`
		Support          float64 `db:"support"`
		Power            float64 `db:"power"`
		Resources        float64 `db:"resources"`
		RelationsJSON    string  `db:"relations_json"`
		DemandsJSON      string  `db:"demands_json"`
		UniqueEventsJSON string  `db:"unique_events_json"`
	}
	var frows []factionRow
	if err := db.conn.Select(&frows, "SELECT * FROM factions"); err != nil {
		return nil, fmt.Errorf("load factions: %w", err)
	}
	for _, r := range frows {
		f := &polity.Faction{
			ID: polity.FactionID(r.ID), Name: r.Name,
			Support: r.Support, Power: r.Power, Resources: r.Resources,
			Relations: make(map[polity.FactionID]float64),
		}
		json.Unmarshal([]byte(r.RelationsJSON), &f.Relations)
		json.Unmarshal([]byte(r.DemandsJSON), &f.Demands)
		json.Unmarshal([]byte(r.UniqueEventsJSON), &f.UniqueEvents)
		st.Factions[f.ID] = f
	}

	type provinceRow struct {
		ID                  string  `db:"id"`
		Name                string  `db:"name"`
		Discontent          float64 `db:"discontent"`
		Loyalty             float64 `db:"loyalty"`
		EconomicLevel       float64 `db:"economic_level"`
		Population          uint64  `db:"population"`
		Ideology            uint8   `db:"ideology"`
		InfluenceJSON       string  `db:"influence_json"`
		ActiveEventsJSON    string  `db:"active_events_json"`
		RegionalEffectsJSON string  `db:"regional_effects_json"`
	}
	var prows []provinceRow
	if err := db.conn.Select(&prows, "SELECT * FROM provinces"); err != nil {
		return nil, fmt.Errorf("load provinces: %w", err)
	}
	for _, r := range prows {
		p := &polity.Province{
			ID: polity.ProvinceID(r.ID), Name: r.Name,
			Discontent: r.Discontent, Loyalty: r.Loyalty, EconomicLevel: r.EconomicLevel,
			Population: r.Population, Ideology: polity.Ideology(r.Ideology),
			Influence: make(map[polity.FactionID]float64),
		}
		json.Unmarshal([]byte(r.InfluenceJSON), &p.Influence)
		json.Unmarshal([]byte(r.ActiveEventsJSON), &p.ActiveEvents)
		json.Unmarshal([]byte(r.RegionalEffectsJSON), &p.RegionalEffects)
		st.Provinces[p.ID] = p
	}

	var drows []struct {
		ID            string `db:"id"`
		Tick          uint64 `db:"tick"`
		EventID       string `db:"event_id"`
		ChoiceID      string `db:"choice_id"`
		Summary       string `db:"summary"`
		EffectsJSON   string `db:"effects_json"`
		TriggeredJSON string `db:"triggered_json"`
	}
	if err := db.conn.Select(&drows, "SELECT * FROM decisions ORDER BY tick ASC"); err != nil {
		return nil, fmt.Errorf("load decisions: %w", err)
	}
	for _, r := range drows {
		d := engine.DecisionResult{
			ID: r.ID, Tick: r.Tick, EventID: r.EventID, ChoiceID: r.ChoiceID, Summary: r.Summary,
		}
		json.Unmarshal([]byte(r.EffectsJSON), &d.Effects)
		json.Unmarshal([]byte(r.TriggeredJSON), &d.Triggered)
		st.Decisions = append(st.Decisions, d)
	}

	effects, err := db.RecentEffects(500)
	if err != nil {
		return nil, err
	}
	st.Effects = effects

	slog.Info("state restored", "tick", st.Tick, "decisions", len(st.Decisions))
	return st, nil
}

// RecentEffects returns the most recent effect log entries, oldest first.
func (db *DB) RecentEffects(limit int) ([]engine.EffectLog, error) {
	var rows []struct {
		ID           string  `db:"id"`
		Tick         uint64  `db:"tick"`
		Kind         uint8   `db:"kind"`
		Source       string  `db:"source"`
		Target       string  `db:"target"`
		Before       float64 `db:"before"`
		After        float64 `db:"after"`
		Requested    float64 `db:"requested"`
		Applied      float64 `db:"applied"`
		Note         string  `db:"note"`
		CascadeLevel int     `db:"cascade_level"`
		Warning      int     `db:"warning"`
	}
	err := db.conn.Select(&rows,
		`SELECT * FROM (SELECT * FROM effects ORDER BY tick DESC LIMIT ?) ORDER BY tick ASC`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("load effects: %w", err)
	}
	out := make([]engine.EffectLog, 0, len(rows))
	for _, r := range rows {
		out = append(out, engine.EffectLog{
			ID: r.ID, Tick: r.Tick, Kind: engine.EffectKind(r.Kind),
			Source: r.Source, Target: r.Target,
			Before: r.Before, After: r.After, Requested: r.Requested, Applied: r.Applied,
			Note: r.Note, CascadeLevel: r.CascadeLevel, Warning: r.Warning != 0,
		})
	}
	return out, nil
}

// SaveMeta stores a key-value pair in simulation metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO sim_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM sim_meta WHERE key = ?", key)
	return value, err
}

func orEmpty[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return make(map[K]V)
	}
	return m
}

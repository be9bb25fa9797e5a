package lib

import (
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	_ "github.com/mattn/go-sqlite3"
)

// Database is a SQLite-backed memoization store for two things the
// pipeline would otherwise recompute or lose across a crash: LOS
// results keyed by the ordered (from, to) site pair, and per-phase
// Topology snapshots for resumability.
// Grounded on the teacher's database.go (Database/Open/Insert/Set,
// one SQLite table keyed by a deduplicating index) -- same "index ->
// cached derived result" shape, generalized from (k, param) antenna
// sweeps to site-pair LOS results.
type Database struct {
	inst *sql.DB
}

const losSchema = `
create table if not exists los_cache (
	from_id    text not null,
	to_id      text not null,
	accepted   integer not null,
	confidence real not null,
	reason     integer not null,
	primary key (from_id, to_id)
);
create table if not exists topology_snapshot (
	run_id text not null,
	phase  text not null,
	seq    integer not null,
	data   blob not null,
	primary key (run_id, seq)
);
`

// OpenDatabase opens (creating if necessary) the SQLite cache file.
func OpenDatabase(fname string) (*Database, error) {
	inst, err := sql.Open("sqlite3", fname)
	if err != nil {
		return nil, err
	}
	if _, err := inst.Exec(losSchema); err != nil {
		inst.Close()
		return nil, err
	}
	return &Database{inst: inst}, nil
}

// Close closes the underlying SQLite connection.
func (db *Database) Close() error {
	if db.inst == nil {
		return errors.New("database not opened")
	}
	return db.inst.Close()
}

//----------------------------------------------------------------------
// LOS cache

// LOSCacheEntry is one memoized Validate() outcome for an ordered
// site pair.
type LOSCacheEntry struct {
	From, To   SiteID
	Accepted   bool
	Confidence float64
	Reason     RejectReason
}

// PutLOS stores (or replaces) the LOS decision for an ordered site
// pair. Keyed by the raw (from, to) order the caller used -- LOS is
// symmetric in outcome (spec.md 8.3) but the cache itself does not
// assume that; callers wanting the symmetry win look up both
// directions, which cost the same single indexed read either way.
func (db *Database) PutLOS(from, to SiteID, d Decision) error {
	_, err := db.inst.Exec(
		`replace into los_cache(from_id, to_id, accepted, confidence, reason) values(?,?,?,?,?)`,
		from.String(), to.String(), boolToInt(d.Accepted), d.Confidence, int(d.Reason),
	)
	return err
}

// GetLOS returns a cached decision for the ordered pair, if present.
func (db *Database) GetLOS(from, to SiteID) (Decision, bool, error) {
	row := db.inst.QueryRow(
		`select accepted, confidence, reason from los_cache where from_id=? and to_id=?`,
		from.String(), to.String(),
	)
	var accepted, reason int
	var confidence float64
	if err := row.Scan(&accepted, &confidence, &reason); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Decision{}, false, nil
		}
		return Decision{}, false, err
	}
	return Decision{Accepted: accepted != 0, Confidence: confidence, Reason: RejectReason(reason)}, true, nil
}

// PutLOSBatch stores a batch of LOS decisions in one transaction,
// written in (from, to) order.
func (db *Database) PutLOSBatch(entries []LOSCacheEntry) error {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].From != entries[j].From {
			return entries[i].From.Less(entries[j].From)
		}
		return entries[i].To.Less(entries[j].To)
	})
	tx, err := db.inst.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`replace into los_cache(from_id, to_id, accepted, confidence, reason) values(?,?,?,?,?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()
	for _, e := range entries {
		if _, err := stmt.Exec(e.From.String(), e.To.String(), boolToInt(e.Accepted), e.Confidence, int(e.Reason)); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

//----------------------------------------------------------------------
// Topology snapshots

// topologySnapshot is the JSON-serializable mirror of a Topology:
// SiteID/SectorID/LinkID keys become hex strings since Go's
// encoding/json requires map keys to be strings (spec.md 9 "Global
// state": "a single mutable Topology handed between phases by value").
type topologySnapshot struct {
	SiteState   map[string]EntityState `json:"site_state"`
	SectorState map[string]EntityState `json:"sector_state"`
	LinkState   map[string]EntityState `json:"link_state"`
	Channel     map[string]int         `json:"channel"`
	MCSClass    map[string]int         `json:"mcs_class"`
	Tau         map[string]float64     `json:"tau"`
	Polarity    map[string]int         `json:"polarity"`
	Shortfall   map[string]float64     `json:"shortfall"`
}

func snapshotOf(t *Topology) topologySnapshot {
	s := topologySnapshot{
		SiteState:   make(map[string]EntityState, len(t.SiteState)),
		SectorState: make(map[string]EntityState, len(t.SectorState)),
		LinkState:   make(map[string]EntityState, len(t.LinkState)),
		Channel:     make(map[string]int, len(t.Channel)),
		MCSClass:    make(map[string]int, len(t.MCSClass)),
		Tau:         make(map[string]float64, len(t.Tau)),
		Polarity:    make(map[string]int, len(t.Polarity)),
		Shortfall:   make(map[string]float64, len(t.Shortfall)),
	}
	for k, v := range t.SiteState {
		s.SiteState[k.String()] = v
	}
	for k, v := range t.SectorState {
		s.SectorState[k.String()] = v
	}
	for k, v := range t.LinkState {
		s.LinkState[k.String()] = v
	}
	for k, v := range t.Channel {
		s.Channel[k.String()] = v
	}
	for k, v := range t.MCSClass {
		s.MCSClass[k.String()] = v
	}
	for k, v := range t.Tau {
		s.Tau[k.String()] = v
	}
	for k, v := range t.Polarity {
		s.Polarity[k.String()] = v
	}
	for k, v := range t.Shortfall {
		s.Shortfall[k.String()] = v
	}
	return s
}

// applyTo restores a snapshot's per-entity state onto a Topology built
// fresh from the same CandidateGraph (the graph itself is never
// serialized; it is reconstructed by the caller from the original
// inputs, matching spec.md 9's "immutable configuration at process
// scope").
func (s topologySnapshot) applyTo(t *Topology) error {
	for k, v := range s.SiteState {
		id, err := parseSiteID(k)
		if err != nil {
			return err
		}
		t.SiteState[id] = v
	}
	for k, v := range s.SectorState {
		id, err := parseSectorID(k)
		if err != nil {
			return err
		}
		t.SectorState[id] = v
	}
	for k, v := range s.LinkState {
		id, err := parseLinkID(k)
		if err != nil {
			return err
		}
		t.LinkState[id] = v
	}
	for k, v := range s.Channel {
		id, err := parseSectorID(k)
		if err != nil {
			return err
		}
		t.Channel[id] = v
	}
	for k, v := range s.MCSClass {
		id, err := parseLinkID(k)
		if err != nil {
			return err
		}
		t.MCSClass[id] = v
	}
	for k, v := range s.Tau {
		id, err := parseLinkID(k)
		if err != nil {
			return err
		}
		t.Tau[id] = v
	}
	for k, v := range s.Polarity {
		id, err := parseSiteID(k)
		if err != nil {
			return err
		}
		t.Polarity[id] = v
	}
	for k, v := range s.Shortfall {
		id, err := parseSiteID(k)
		if err != nil {
			return err
		}
		t.Shortfall[id] = v
	}
	return nil
}

// PutSnapshot persists phase seq's Topology under runID, the adapter's
// resumability feature of SPEC_FULL.md A3.
func (db *Database) PutSnapshot(runID, phase string, seq int, t *Topology) error {
	data, err := json.Marshal(snapshotOf(t))
	if err != nil {
		return err
	}
	_, err = db.inst.Exec(
		`replace into topology_snapshot(run_id, phase, seq, data) values(?,?,?,?)`,
		runID, phase, seq, data,
	)
	return err
}

// LatestSnapshot returns the highest-seq snapshot for runID, applied
// onto a fresh Topology over graph, and the phase name it was taken
// after. ok is false if no snapshot exists for runID.
func (db *Database) LatestSnapshot(runID string, graph *CandidateGraph) (t *Topology, phase string, ok bool, err error) {
	row := db.inst.QueryRow(
		`select phase, data from topology_snapshot where run_id=? order by seq desc limit 1`, runID,
	)
	var data []byte
	if err = row.Scan(&phase, &data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", false, nil
		}
		return nil, "", false, err
	}
	var snap topologySnapshot
	if err = json.Unmarshal(data, &snap); err != nil {
		return nil, "", false, err
	}
	t = NewTopology(graph)
	if err = snap.applyTo(t); err != nil {
		return nil, "", false, err
	}
	return t, phase, true, nil
}

func parseHexInto(hexStr string, out []byte) error {
	decoded, err := hex.DecodeString(hexStr)
	if err != nil {
		return err
	}
	if len(decoded) != len(out) {
		return fmt.Errorf("expected %d bytes, got %d", len(out), len(decoded))
	}
	copy(out, decoded)
	return nil
}

func parseSiteID(hexStr string) (SiteID, error) {
	var id SiteID
	if err := parseHexInto(hexStr, id[:]); err != nil {
		return id, fmt.Errorf("site id %q: %w", hexStr, err)
	}
	return id, nil
}

func parseSectorID(hexStr string) (SectorID, error) {
	var id SectorID
	if err := parseHexInto(hexStr, id[:]); err != nil {
		return id, fmt.Errorf("sector id %q: %w", hexStr, err)
	}
	return id, nil
}

func parseLinkID(hexStr string) (LinkID, error) {
	var id LinkID
	if err := parseHexInto(hexStr, id[:]); err != nil {
		return id, fmt.Errorf("link id %q: %w", hexStr, err)
	}
	return id, nil
}

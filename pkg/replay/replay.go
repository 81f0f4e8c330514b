package replay

import "time"

// Replay is a decoded .osr record.
//
// A Replay is a plain value: the codec builds it wholesale on decode and
// only reads it on encode. All Events must be of the variant matching Mode.
type Replay struct {
	Mode        GameMode `json:"mode"`
	GameVersion uint32   `json:"game_version"`
	BeatmapHash string   `json:"beatmap_hash"`
	Username    string   `json:"username"`
	ReplayHash  string   `json:"replay_hash"`

	Count300  uint16 `json:"count_300"`
	Count100  uint16 `json:"count_100"`
	Count50   uint16 `json:"count_50"`
	CountGeki uint16 `json:"count_geki"`
	CountKatu uint16 `json:"count_katu"`
	CountMiss uint16 `json:"count_miss"`

	Score    uint32 `json:"score"`
	MaxCombo uint16 `json:"max_combo"`
	Perfect  bool   `json:"perfect"`
	Mods     Mod    `json:"mods"`

	LifeBar   []LifeBarState `json:"life_bar,omitempty"` // nil when the replay has no curve
	Timestamp time.Time      `json:"timestamp"`
	Events    []ReplayEvent  `json:"events"`
	ReplayID  int64          `json:"replay_id"`
	RNGSeed   *int32         `json:"rng_seed,omitempty"`
}

// Duration sums the time deltas of all frames
func (r *Replay) Duration() time.Duration {
	var total int64
	for _, e := range r.Events {
		total += int64(e.Delta())
	}
	return time.Duration(total) * time.Millisecond
}

// Summary is the metadata of a replay without its frames
type Summary struct {
	Mode        string    `json:"mode"`
	GameVersion uint32    `json:"game_version"`
	BeatmapHash string    `json:"beatmap_hash"`
	Username    string    `json:"username"`
	ReplayHash  string    `json:"replay_hash"`
	Count300    uint16    `json:"count_300"`
	Count100    uint16    `json:"count_100"`
	Count50     uint16    `json:"count_50"`
	CountGeki   uint16    `json:"count_geki"`
	CountKatu   uint16    `json:"count_katu"`
	CountMiss   uint16    `json:"count_miss"`
	Score       uint32    `json:"score"`
	MaxCombo    uint16    `json:"max_combo"`
	Perfect     bool      `json:"perfect"`
	Mods        string    `json:"mods"`
	ModsValue   uint32    `json:"mods_value"`
	Timestamp   time.Time `json:"timestamp"`
	ReplayID    int64     `json:"replay_id"`
	RNGSeed     *int32    `json:"rng_seed,omitempty"`
	Events      int       `json:"events"`
	LifeBar     int       `json:"life_bar_states"`
	DurationMs  int64     `json:"duration_ms"`
}

// Summary returns the replay metadata with frame and life bar counts
func (r *Replay) Summary() Summary {
	return Summary{
		Mode:        r.Mode.String(),
		GameVersion: r.GameVersion,
		BeatmapHash: r.BeatmapHash,
		Username:    r.Username,
		ReplayHash:  r.ReplayHash,
		Count300:    r.Count300,
		Count100:    r.Count100,
		Count50:     r.Count50,
		CountGeki:   r.CountGeki,
		CountKatu:   r.CountKatu,
		CountMiss:   r.CountMiss,
		Score:       r.Score,
		MaxCombo:    r.MaxCombo,
		Perfect:     r.Perfect,
		Mods:        r.Mods.String(),
		ModsValue:   uint32(r.Mods),
		Timestamp:   r.Timestamp,
		ReplayID:    r.ReplayID,
		RNGSeed:     r.RNGSeed,
		Events:      len(r.Events),
		LifeBar:     len(r.LifeBar),
		DurationMs:  r.Duration().Milliseconds(),
	}
}

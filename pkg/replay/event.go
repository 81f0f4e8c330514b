package replay

// ReplayEvent is one frame of a replay. The concrete type is fixed by the
// game mode: EventOsu, EventTaiko, EventCatch or EventMania.
type ReplayEvent interface {
	// Mode returns the game mode this frame belongs to
	Mode() GameMode
	// Delta returns milliseconds since the previous frame
	Delta() int32

	sealed()
}

// EventOsu is an osu!standard frame: cursor position and buttons
type EventOsu struct {
	TimeDelta int32   `json:"time_delta"`
	X         float32 `json:"x"`
	Y         float32 `json:"y"`
	Keys      Key     `json:"keys"`
}

// EventTaiko is an osu!taiko frame
type EventTaiko struct {
	TimeDelta int32    `json:"time_delta"`
	X         int32    `json:"x"`
	Keys      KeyTaiko `json:"keys"`
}

// EventCatch is an osu!catch frame: catcher position and dash state
type EventCatch struct {
	TimeDelta int32   `json:"time_delta"`
	X         float32 `json:"x"`
	Dashing   bool    `json:"dashing"`
}

// EventMania is an osu!mania frame: pressed lanes
type EventMania struct {
	TimeDelta int32    `json:"time_delta"`
	Keys      KeyMania `json:"keys"`
}

func (EventOsu) Mode() GameMode   { return ModeStd }
func (EventTaiko) Mode() GameMode { return ModeTaiko }
func (EventCatch) Mode() GameMode { return ModeCatch }
func (EventMania) Mode() GameMode { return ModeMania }

func (e EventOsu) Delta() int32   { return e.TimeDelta }
func (e EventTaiko) Delta() int32 { return e.TimeDelta }
func (e EventCatch) Delta() int32 { return e.TimeDelta }
func (e EventMania) Delta() int32 { return e.TimeDelta }

func (EventOsu) sealed()   {}
func (EventTaiko) sealed() {}
func (EventCatch) sealed() {}
func (EventMania) sealed() {}

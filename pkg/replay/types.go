package replay

import (
	"fmt"
	"strconv"
	"strings"
)

// GameMode identifies the ruleset a replay was played on
type GameMode uint8

const (
	ModeStd GameMode = iota
	ModeTaiko
	ModeCatch
	ModeMania
)

// GameModeFromByte maps the mode byte of a replay header to a GameMode.
// Unknown values fall back to ModeStd.
func GameModeFromByte(b uint8) GameMode {
	switch GameMode(b) {
	case ModeStd, ModeTaiko, ModeCatch, ModeMania:
		return GameMode(b)
	default:
		return ModeStd
	}
}

func (m GameMode) String() string {
	switch m {
	case ModeStd:
		return "std"
	case ModeTaiko:
		return "taiko"
	case ModeCatch:
		return "catch"
	case ModeMania:
		return "mania"
	default:
		return "mode(" + strconv.Itoa(int(m)) + ")"
	}
}

// ParseGameMode accepts a mode name (std, osu, taiko, catch, fruits, mania)
// or its numeric value.
func ParseGameMode(s string) (GameMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "std", "osu", "standard", "0":
		return ModeStd, nil
	case "taiko", "1":
		return ModeTaiko, nil
	case "catch", "fruits", "ctb", "2":
		return ModeCatch, nil
	case "mania", "3":
		return ModeMania, nil
	}
	return ModeStd, fmt.Errorf("unknown game mode %q", s)
}

// Mod is the bitset of gameplay modifiers applied to a play
type Mod uint32

const (
	ModNone        Mod = 0
	ModNoFail      Mod = 1 << 0
	ModEasy        Mod = 1 << 1
	ModTouchDevice Mod = 1 << 2
	ModHidden      Mod = 1 << 3
	ModHardRock    Mod = 1 << 4
	ModSuddenDeath Mod = 1 << 5
	ModDoubleTime  Mod = 1 << 6
	ModRelax       Mod = 1 << 7
	ModHalfTime    Mod = 1 << 8
	ModNightcore   Mod = 1 << 9
	ModFlashlight  Mod = 1 << 10
	ModAutoplay    Mod = 1 << 11
	ModSpunOut     Mod = 1 << 12
	ModAutopilot   Mod = 1 << 13
	ModPerfect     Mod = 1 << 14
	ModKey4        Mod = 1 << 15
	ModKey5        Mod = 1 << 16
	ModKey6        Mod = 1 << 17
	ModKey7        Mod = 1 << 18
	ModKey8        Mod = 1 << 19
	ModFadeIn      Mod = 1 << 20
	ModRandom      Mod = 1 << 21
	ModCinema      Mod = 1 << 22
	ModTarget      Mod = 1 << 23
	ModKey9        Mod = 1 << 24
	ModKeyCoop     Mod = 1 << 25
	ModKey1        Mod = 1 << 26
	ModKey3        Mod = 1 << 27
	ModKey2        Mod = 1 << 28
	ModScoreV2     Mod = 1 << 29
	ModMirror      Mod = 1 << 30
)

// Contains reports whether every bit of o is set in m
func (m Mod) Contains(o Mod) bool {
	return m&o == o
}

var modAcronyms = []struct {
	mod  Mod
	name string
}{
	{ModNoFail, "NF"}, {ModEasy, "EZ"}, {ModTouchDevice, "TD"}, {ModHidden, "HD"},
	{ModHardRock, "HR"}, {ModSuddenDeath, "SD"}, {ModDoubleTime, "DT"}, {ModRelax, "RX"},
	{ModHalfTime, "HT"}, {ModNightcore, "NC"}, {ModFlashlight, "FL"}, {ModAutoplay, "AT"},
	{ModSpunOut, "SO"}, {ModAutopilot, "AP"}, {ModPerfect, "PF"}, {ModKey4, "4K"},
	{ModKey5, "5K"}, {ModKey6, "6K"}, {ModKey7, "7K"}, {ModKey8, "8K"},
	{ModFadeIn, "FI"}, {ModRandom, "RD"}, {ModCinema, "CN"}, {ModTarget, "TP"},
	{ModKey9, "9K"}, {ModKeyCoop, "CO"}, {ModKey1, "1K"}, {ModKey3, "3K"},
	{ModKey2, "2K"}, {ModScoreV2, "V2"}, {ModMirror, "MR"},
}

// String renders m as concatenated two-letter acronyms, e.g. "HDHR".
// Nightcore hides its implied DoubleTime and Perfect its implied SuddenDeath.
func (m Mod) String() string {
	if m == ModNone {
		return "NM"
	}
	var sb strings.Builder
	for _, a := range modAcronyms {
		if !m.Contains(a.mod) {
			continue
		}
		if a.mod == ModDoubleTime && m.Contains(ModNightcore) {
			continue
		}
		if a.mod == ModSuddenDeath && m.Contains(ModPerfect) {
			continue
		}
		sb.WriteString(a.name)
	}
	return sb.String()
}

// Key is the button state of an osu!standard frame
type Key uint32

const (
	KeyM1    Key = 1 << 0
	KeyM2    Key = 1 << 1
	KeyK1    Key = 1 << 2
	KeyK2    Key = 1 << 3
	KeySmoke Key = 1 << 4
)

// Contains reports whether every bit of o is set in k
func (k Key) Contains(o Key) bool {
	return k&o == o
}

// KeyTaiko is the drum state of an osu!taiko frame
type KeyTaiko uint32

const (
	KeyTaikoLeftDon  KeyTaiko = 1 << 0
	KeyTaikoLeftKat  KeyTaiko = 1 << 1
	KeyTaikoRightDon KeyTaiko = 1 << 2
	KeyTaikoRightKat KeyTaiko = 1 << 3
)

// Contains reports whether every bit of o is set in k
func (k KeyTaiko) Contains(o KeyTaiko) bool {
	return k&o == o
}

// KeyMania is the lane state of an osu!mania frame, one bit per lane
type KeyMania uint32

const (
	KeyManiaK1 KeyMania = 1 << iota
	KeyManiaK2
	KeyManiaK3
	KeyManiaK4
	KeyManiaK5
	KeyManiaK6
	KeyManiaK7
	KeyManiaK8
	KeyManiaK9
	KeyManiaK10
	KeyManiaK11
	KeyManiaK12
	KeyManiaK13
	KeyManiaK14
	KeyManiaK15
	KeyManiaK16
	KeyManiaK17
	KeyManiaK18
)

// Contains reports whether every bit of o is set in k
func (k KeyMania) Contains(o KeyMania) bool {
	return k&o == o
}

// LifeBarState is one point of the life bar curve
type LifeBarState struct {
	Time int32   `json:"time"`
	Life float32 `json:"life"`
}

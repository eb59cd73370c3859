// Package audio implements the sound-effect subsystem: sfxr-style parameter
// bundles, a software synthesizer, a config-driven action-to-sound mapping,
// an in-process event bus and a playback engine with a voice cap.
package audio

import (
	"strconv"
	"strings"
)

// WaveType selects the oscillator shape.
type WaveType int

const (
	WaveSquare WaveType = iota
	WaveSawtooth
	WaveSine
	WaveNoise
)

// Valid reports whether the wave type is one the synthesizer supports.
func (w WaveType) Valid() bool {
	return w >= WaveSquare && w <= WaveNoise
}

func (w WaveType) String() string {
	switch w {
	case WaveSquare:
		return "square"
	case WaveSawtooth:
		return "sawtooth"
	case WaveSine:
		return "sine"
	case WaveNoise:
		return "noise"
	default:
		return "unknown"
	}
}

// Params is a full sfxr synthesis parameter bundle. All float fields are
// normalized to roughly [-1,1] or [0,1] as in the original sfxr tool.
type Params struct {
	WaveType WaveType

	// Envelope
	AttackTime   float64
	SustainTime  float64
	SustainPunch float64
	DecayTime    float64

	// Frequency
	StartFrequency float64
	MinFrequency   float64
	Slide          float64
	DeltaSlide     float64

	// Vibrato
	VibratoDepth float64
	VibratoSpeed float64

	// Pitch change
	ChangeAmount float64
	ChangeSpeed  float64

	// Square duty
	SquareDuty float64
	DutySweep  float64

	RepeatSpeed float64

	// Phaser
	PhaserOffset float64
	PhaserSweep  float64

	// Filters
	LpFilterCutoff      float64
	LpFilterCutoffSweep float64
	LpFilterResonance   float64
	HpFilterCutoff      float64
	HpFilterCutoffSweep float64

	MasterVolume float64
}

// numFields is the field count of the comma-separated settings format.
const numFields = 24

// ParseSettings decodes a comma-separated sfxr settings string. Empty fields
// read as zero, matching the original format. A minimum sustain time and a
// minimum total envelope length are enforced so short bundles do not click.
func ParseSettings(s string) Params {
	fields := strings.Split(s, ",")

	at := func(i int) float64 {
		if i >= len(fields) || fields[i] == "" {
			return 0
		}
		f, _ := strconv.ParseFloat(strings.TrimSpace(fields[i]), 64)
		return f
	}

	p := Params{
		WaveType:            WaveType(int(at(0))),
		AttackTime:          at(1),
		SustainTime:         at(2),
		SustainPunch:        at(3),
		DecayTime:           at(4),
		StartFrequency:      at(5),
		MinFrequency:        at(6),
		Slide:               at(7),
		DeltaSlide:          at(8),
		VibratoDepth:        at(9),
		VibratoSpeed:        at(10),
		ChangeAmount:        at(11),
		ChangeSpeed:         at(12),
		SquareDuty:          at(13),
		DutySweep:           at(14),
		RepeatSpeed:         at(15),
		PhaserOffset:        at(16),
		PhaserSweep:         at(17),
		LpFilterCutoff:      at(18),
		LpFilterCutoffSweep: at(19),
		LpFilterResonance:   at(20),
		HpFilterCutoff:      at(21),
		HpFilterCutoffSweep: at(22),
		MasterVolume:        at(23),
	}

	if p.SustainTime < 0.01 {
		p.SustainTime = 0.01
	}

	// Stretch the envelope up to a minimum total length to avoid clicks.
	total := p.AttackTime + p.SustainTime + p.DecayTime
	if total < 0.18 {
		mul := 0.18 / total
		p.AttackTime *= mul
		p.SustainTime *= mul
		p.DecayTime *= mul
	}

	return p
}

// Settings encodes the bundle back into the comma-separated format. Zero
// fields are left empty, as the original tool writes them.
func (p Params) Settings() string {
	fields := [numFields]float64{
		float64(p.WaveType),
		p.AttackTime,
		p.SustainTime,
		p.SustainPunch,
		p.DecayTime,
		p.StartFrequency,
		p.MinFrequency,
		p.Slide,
		p.DeltaSlide,
		p.VibratoDepth,
		p.VibratoSpeed,
		p.ChangeAmount,
		p.ChangeSpeed,
		p.SquareDuty,
		p.DutySweep,
		p.RepeatSpeed,
		p.PhaserOffset,
		p.PhaserSweep,
		p.LpFilterCutoff,
		p.LpFilterCutoffSweep,
		p.LpFilterResonance,
		p.HpFilterCutoff,
		p.HpFilterCutoffSweep,
		p.MasterVolume,
	}

	out := make([]string, numFields)
	for i, f := range fields {
		if f == 0 {
			continue
		}
		if i == 0 {
			out[i] = strconv.Itoa(int(f))
			continue
		}
		out[i] = strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strings.Join(out, ",")
}

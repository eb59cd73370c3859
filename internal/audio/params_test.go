package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSettings_FullString(t *testing.T) {
	p := ParseSettings("0,.1,.2,.3,.4,.5,.6,.7,.8,.9,.1,.11,.12,.13,.14,.15,.16,.17,.18,.19,.2,.21,.22,.5")

	assert.Equal(t, WaveSquare, p.WaveType)
	assert.Equal(t, 0.1, p.AttackTime)
	assert.Equal(t, 0.2, p.SustainTime)
	assert.Equal(t, 0.3, p.SustainPunch)
	assert.Equal(t, 0.4, p.DecayTime)
	assert.Equal(t, 0.5, p.StartFrequency)
	assert.Equal(t, 0.6, p.MinFrequency)
	assert.Equal(t, 0.7, p.Slide)
	assert.Equal(t, 0.13, p.SquareDuty)
	assert.Equal(t, 0.21, p.HpFilterCutoff)
	assert.Equal(t, 0.5, p.MasterVolume)
}

func TestParseSettings_EmptyFieldsReadAsZero(t *testing.T) {
	p := ParseSettings("3,,.3626,.5543,.191,.0731,,-.3749,,,,,,,,,,,1,,,,,.4")

	assert.Equal(t, WaveNoise, p.WaveType)
	assert.Equal(t, 0.0, p.AttackTime)
	assert.Equal(t, 0.3626, p.SustainTime)
	assert.Equal(t, -0.3749, p.Slide)
	assert.Equal(t, 1.0, p.LpFilterCutoff)
	assert.Equal(t, 0.4, p.MasterVolume)
}

func TestParseSettings_EnforcesMinimumSustain(t *testing.T) {
	p := ParseSettings("0,0,0,0,0.5,0.5,,,,,,,,,,,,,1,,,,,.5")

	assert.GreaterOrEqual(t, p.SustainTime, 0.01)
}

func TestParseSettings_StretchesShortEnvelope(t *testing.T) {
	p := ParseSettings("0,.01,.02,0,.03,.5,,,,,,,,,,,,,1,,,,,.5")

	total := p.AttackTime + p.SustainTime + p.DecayTime
	assert.InDelta(t, 0.18, total, 1e-9)
	// Relative proportions survive the stretch.
	assert.InDelta(t, p.SustainTime/p.AttackTime, 2.0, 1e-9)
}

func TestParseSettings_LongEnvelopeUntouched(t *testing.T) {
	p := ParseSettings("0,.1,.3,0,.4,.5,,,,,,,,,,,,,1,,,,,.5")

	assert.Equal(t, 0.1, p.AttackTime)
	assert.Equal(t, 0.3, p.SustainTime)
	assert.Equal(t, 0.4, p.DecayTime)
}

func TestParseSettings_ShortString(t *testing.T) {
	p := ParseSettings("1,.2")

	assert.Equal(t, WaveSawtooth, p.WaveType)
	assert.Equal(t, 0.0, p.MasterVolume)
}

func TestSettings_RoundTrip(t *testing.T) {
	original := ParseSettings("2,,.1199,.15,.1361,.5,.0399,-.363,-.4799,,,,,.1314,.0517,,.0154,-.1633,1,,,.0515,,.2")

	reparsed := ParseSettings(original.Settings())

	assert.Equal(t, original, reparsed)
}

func TestWaveType_Valid(t *testing.T) {
	assert.True(t, WaveSquare.Valid())
	assert.True(t, WaveNoise.Valid())
	assert.False(t, WaveType(4).Valid())
	assert.False(t, WaveType(-1).Valid())
}

func TestWaveType_String(t *testing.T) {
	assert.Equal(t, "square", WaveSquare.String())
	assert.Equal(t, "sawtooth", WaveSawtooth.String())
	assert.Equal(t, "sine", WaveSine.String())
	assert.Equal(t, "noise", WaveNoise.String())
	assert.Equal(t, "unknown", WaveType(9).String())
}

package audio

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePlayer records streamers instead of touching audio hardware. Draining
// a recorded streamer fires its completion callback.
type fakePlayer struct {
	initErr error

	mu      sync.Mutex
	streams []beep.Streamer
}

func (f *fakePlayer) Init(beep.SampleRate, int) error {
	return f.initErr
}

func (f *fakePlayer) Play(s beep.Streamer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.streams = append(f.streams, s)
}

func (f *fakePlayer) finishAll() {
	f.mu.Lock()
	streams := f.streams
	f.streams = nil
	f.mu.Unlock()

	buf := make([][2]float64, 512)
	for _, s := range streams {
		for {
			if _, ok := s.Stream(buf); !ok {
				break
			}
		}
	}
}

// quietDef is short to keep renders fast.
var quietDef = SoundDef{Settings: "0,,.01,,.01,.3,,,,,,,,,,,,,1,,,,,.2", Category: "ui"}

func newTestEngine(t *testing.T, cfg EngineConfig) (*Engine, *fakePlayer) {
	t.Helper()
	player := &fakePlayer{}
	if cfg.Player == nil {
		cfg.Player = player
	} else {
		player = cfg.Player.(*fakePlayer)
	}
	if cfg.Library == nil {
		cfg.Library = NewLibrary(t.TempDir())
	}
	if cfg.MasterVolume == 0 {
		cfg.MasterVolume = 0.7
	}
	return NewEngine(cfg), player
}

func TestEngine_PlaySound(t *testing.T) {
	e, player := newTestEngine(t, EngineConfig{Enabled: true})

	ok := e.PlaySound("quiet", quietDef)

	require.True(t, ok)
	assert.Equal(t, 1, e.ActiveVoices())

	player.finishAll()
	assert.Equal(t, 0, e.ActiveVoices())
}

func TestEngine_VoiceCap(t *testing.T) {
	e, player := newTestEngine(t, EngineConfig{Enabled: true, MaxVoices: 3})

	for i := 0; i < 3; i++ {
		require.True(t, e.PlaySound("quiet", quietDef))
	}
	assert.False(t, e.PlaySound("quiet", quietDef), "request beyond the cap must be rejected")
	assert.Equal(t, 3, e.ActiveVoices())

	player.finishAll()
	assert.True(t, e.PlaySound("quiet", quietDef), "slots free up after completion")
}

func TestEngine_StuckVoiceEviction(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }

	e, _ := newTestEngine(t, EngineConfig{Enabled: true, MaxVoices: 1, VoiceTimeout: 10 * time.Second, Now: clock})

	require.True(t, e.PlaySound("quiet", quietDef))
	assert.False(t, e.PlaySound("quiet", quietDef))

	// The completion callback never fires; the wall-clock timeout frees
	// the slot anyway.
	now = now.Add(11 * time.Second)
	assert.True(t, e.PlaySound("quiet", quietDef))
}

func TestEngine_DisabledSuppressesPlayback(t *testing.T) {
	e, player := newTestEngine(t, EngineConfig{Enabled: false})

	assert.False(t, e.PlaySound("quiet", quietDef))
	player.mu.Lock()
	assert.Empty(t, player.streams)
	player.mu.Unlock()
}

func TestEngine_SpeakerFailureDegradesToNoop(t *testing.T) {
	player := &fakePlayer{initErr: errors.New("no audio device")}
	e, _ := newTestEngine(t, EngineConfig{Enabled: true, Player: player})

	assert.False(t, e.PlaySound("quiet", quietDef))
}

func TestEngine_PlayAction(t *testing.T) {
	e, _ := newTestEngine(t, EngineConfig{Enabled: true})

	assert.True(t, e.PlayAction(ActionSliderChange))
	assert.False(t, e.PlayAction("no.such.action"))
}

func TestEngine_VolumeEventsOnBus(t *testing.T) {
	bus := NewBus()
	defer bus.Shutdown()

	ctx, cancel := contextWithCancel(t)
	defer cancel()
	ch := bus.Subscribe(ctx, nil)

	e, _ := newTestEngine(t, EngineConfig{Enabled: true, Bus: bus})

	event := waitEvent(t, ch)
	assert.Equal(t, EventSystemInitialized, event.Type)

	e.SetMasterVolume(0.3)
	event = waitEvent(t, ch)
	require.Equal(t, EventVolumeChanged, event.Type)
	assert.Equal(t, 0.3, event.Volume)
	assert.Equal(t, 0.3, e.MasterVolume())

	e.SetEnabled(false)
	event = waitEvent(t, ch)
	require.Equal(t, EventEnabledChanged, event.Type)
	assert.False(t, event.Enabled)
	assert.False(t, e.Enabled())
}

func TestEngine_SetMasterVolumeClamps(t *testing.T) {
	e, _ := newTestEngine(t, EngineConfig{Enabled: true})

	e.SetMasterVolume(2.5)
	assert.Equal(t, 1.0, e.MasterVolume())

	e.SetMasterVolume(-1)
	assert.Equal(t, 0.0, e.MasterVolume())
}

func TestEngine_BufferCacheReused(t *testing.T) {
	e, _ := newTestEngine(t, EngineConfig{Enabled: true})

	first := e.bufferFor("quiet", quietDef)
	second := e.bufferFor("quiet", quietDef)
	assert.Same(t, first, second)

	e.FlushCache()
	third := e.bufferFor("quiet", quietDef)
	assert.NotSame(t, first, third)
}

func TestEngine_UnsupportedWaveTypeRendersSilence(t *testing.T) {
	e, _ := newTestEngine(t, EngineConfig{Enabled: true})

	def := SoundDef{Settings: "9,,.01,,.01,.3,,,,,,,,,,,,,1,,,,,.2", Category: "ui"}
	assert.True(t, e.PlaySound("broken", def), "silent fallback still plays")
}

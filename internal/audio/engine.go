package audio

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	gocache "github.com/patrickmn/go-cache"

	"github.com/spincat/pixelpet/internal/log"
)

// Player abstracts the speaker backend so tests can run without audio
// hardware.
type Player interface {
	Init(sampleRate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
}

// systemPlayer drives the real speaker.
type systemPlayer struct{}

func (systemPlayer) Init(sampleRate beep.SampleRate, bufferSize int) error {
	return speaker.Init(sampleRate, bufferSize)
}

func (systemPlayer) Play(s beep.Streamer) {
	speaker.Play(s)
}

// EngineConfig wires an Engine's collaborators and limits.
type EngineConfig struct {
	Library *Library
	Bus     *Bus

	// MaxVoices caps simultaneously playing sounds.
	MaxVoices int
	// VoiceTimeout evicts voices whose completion callback never fired.
	VoiceTimeout time.Duration

	// MasterVolume and Enabled seed the persisted user settings.
	MasterVolume    float64
	Enabled         bool
	CategoryVolumes map[string]float64

	// Player overrides the speaker backend. Nil means the real speaker.
	Player Player
	// Now overrides the clock. Nil means time.Now.
	Now func() time.Time
}

// Engine coordinates sound playback: it resolves actions through the
// library, renders and caches buffers, enforces the voice cap and applies
// the user's volume settings.
type Engine struct {
	library *Library
	bus     *Bus
	player  Player
	now     func() time.Time

	cache *gocache.Cache

	mu              sync.Mutex
	voices          map[uint64]time.Time
	nextVoice       uint64
	maxVoices       int
	voiceTimeout    time.Duration
	masterVolume    float64
	enabled         bool
	categoryVolumes map[string]float64
	speakerReady    bool
}

// NewEngine creates an engine and initializes the speaker. A failed speaker
// init is not an error: the engine degrades to a silent no-op.
func NewEngine(cfg EngineConfig) *Engine {
	e := &Engine{
		library:         cfg.Library,
		bus:             cfg.Bus,
		player:          cfg.Player,
		now:             cfg.Now,
		cache:           gocache.New(5*time.Minute, 10*time.Minute),
		voices:          make(map[uint64]time.Time),
		maxVoices:       cfg.MaxVoices,
		voiceTimeout:    cfg.VoiceTimeout,
		masterVolume:    cfg.MasterVolume,
		enabled:         cfg.Enabled,
		categoryVolumes: cfg.CategoryVolumes,
	}
	if e.player == nil {
		e.player = systemPlayer{}
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.maxVoices <= 0 {
		e.maxVoices = 8
	}
	if e.voiceTimeout <= 0 {
		e.voiceTimeout = 10 * time.Second
	}
	if e.categoryVolumes == nil {
		e.categoryVolumes = make(map[string]float64)
	}

	// A tenth of a second of buffer keeps latency low enough for UI feedback.
	if err := e.player.Init(beep.SampleRate(SampleRate), SampleRate/10); err != nil {
		log.Warn(log.CatAudio, "speaker init failed, audio disabled", "error", err)
	} else {
		e.speakerReady = true
	}

	if e.bus != nil {
		e.bus.Publish(Event{Type: EventSystemInitialized, Timestamp: e.now(), Enabled: e.enabled, Volume: e.masterVolume})
	}
	return e
}

// Run consumes action events from the bus and plays them until ctx is
// cancelled. Callers run it in a goroutine.
func (e *Engine) Run(ctx context.Context) {
	if e.bus == nil {
		return
	}
	ch := e.bus.Subscribe(ctx, &EventFilter{Types: []EventType{EventAction}})
	for event := range ch {
		e.PlayAction(event.Action)
	}
}

// PlayAction plays the sound mapped to an abstract action. Unknown actions
// are a silent no-op returning false.
func (e *Engine) PlayAction(action string) bool {
	name, def, ok := e.library.Resolve(action)
	if !ok {
		log.Debug(log.CatAudio, "no sound for action", "action", action)
		return false
	}
	return e.PlaySound(name, def)
}

// PlaySound renders (or fetches from cache) and plays one sound definition.
// It returns false when audio is disabled, the speaker is unavailable or
// the voice cap is reached.
func (e *Engine) PlaySound(name string, def SoundDef) bool {
	e.mu.Lock()
	if !e.enabled || !e.speakerReady {
		e.mu.Unlock()
		log.Debug(log.CatAudio, "playback suppressed", "sound", name, "enabled", e.enabled, "speaker", e.speakerReady)
		return false
	}

	e.evictStaleLocked()
	if len(e.voices) >= e.maxVoices {
		e.mu.Unlock()
		log.Debug(log.CatAudio, "voice cap reached, rejecting", "sound", name, "cap", e.maxVoices)
		return false
	}

	id := e.nextVoice
	e.nextVoice++
	e.voices[id] = e.now()

	gain := e.masterVolume
	if cv, ok := e.categoryVolumes[def.Category]; ok {
		gain *= cv
	}
	e.mu.Unlock()

	buffer := e.bufferFor(name, def)
	streamer := buffer.Streamer(0, buffer.Len())

	vol := &effects.Volume{
		Streamer: streamer,
		Base:     2,
		Volume:   math.Log2(math.Max(gain, 1e-4)),
		Silent:   gain <= 0,
	}

	e.player.Play(beep.Seq(vol, beep.Callback(func() {
		e.release(id)
	})))

	log.Debug(log.CatAudio, "voice started", "sound", name, "voice", id)
	return true
}

// ActiveVoices returns the number of currently playing sounds.
func (e *Engine) ActiveVoices() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.evictStaleLocked()
	return len(e.voices)
}

// SetMasterVolume clamps and applies the master volume, announcing the
// change on the bus.
func (e *Engine) SetMasterVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	e.mu.Lock()
	e.masterVolume = v
	e.mu.Unlock()

	if e.bus != nil {
		e.bus.Publish(Event{Type: EventVolumeChanged, Timestamp: e.now(), Volume: v})
	}
}

// MasterVolume returns the current master volume.
func (e *Engine) MasterVolume() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.masterVolume
}

// SetEnabled flips the enabled flag, announcing the change on the bus.
func (e *Engine) SetEnabled(enabled bool) {
	e.mu.Lock()
	e.enabled = enabled
	e.mu.Unlock()

	if e.bus != nil {
		e.bus.Publish(Event{Type: EventEnabledChanged, Timestamp: e.now(), Enabled: enabled})
	}
}

// Enabled returns the current enabled flag.
func (e *Engine) Enabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enabled
}

// FlushCache drops all cached buffers. Called after a library reload so
// edited settings strings take effect.
func (e *Engine) FlushCache() {
	e.cache.Flush()
}

// bufferFor returns the rendered buffer for a definition, caching by sound
// name and a hash of its settings string.
func (e *Engine) bufferFor(name string, def SoundDef) *beep.Buffer {
	key := cacheKey(name, def.Settings)
	if cached, ok := e.cache.Get(key); ok {
		return cached.(*beep.Buffer)
	}

	params := ParseSettings(def.Settings)
	if !params.WaveType.Valid() {
		log.Warn(log.CatAudio, "unsupported wave type, rendering silence", "sound", name, "wave_type", int(params.WaveType))
	}
	samples := Render(params)

	format := beep.Format{SampleRate: beep.SampleRate(SampleRate), NumChannels: 1, Precision: 2}
	buffer := beep.NewBuffer(format)
	buffer.Append(&pcmStreamer{samples: samples})

	e.cache.Set(key, buffer, gocache.DefaultExpiration)
	return buffer
}

func cacheKey(name, settings string) string {
	h := fnv.New32a()
	h.Write([]byte(settings))
	return fmt.Sprintf("%s|%08x", name, h.Sum32())
}

// release frees a voice slot after playback completes.
func (e *Engine) release(id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.voices[id]; ok {
		delete(e.voices, id)
		log.Debug(log.CatAudio, "voice released", "voice", id)
	}
}

// evictStaleLocked drops voices older than the timeout. Callers hold e.mu.
func (e *Engine) evictStaleLocked() {
	cutoff := e.now().Add(-e.voiceTimeout)
	for id, started := range e.voices {
		if started.Before(cutoff) {
			delete(e.voices, id)
			log.Warn(log.CatAudio, "evicting stuck voice", "voice", id, "age", e.now().Sub(started))
		}
	}
}

// pcmStreamer adapts mono int16 PCM to beep's float64 stereo samples.
type pcmStreamer struct {
	samples []int16
	pos     int
}

func (p *pcmStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if p.pos >= len(p.samples) {
		return 0, false
	}
	for i := range samples {
		if p.pos >= len(p.samples) {
			break
		}
		v := float64(p.samples[p.pos]) / 32768
		samples[i][0] = v
		samples[i][1] = v
		p.pos++
		n++
	}
	return n, true
}

func (p *pcmStreamer) Err() error { return nil }

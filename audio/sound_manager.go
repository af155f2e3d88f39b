// Package audio provides an optional audible bell on the system speaker.
package audio

import (
	"log"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)

	speakerBufferDurationMs = 100
	bellDurationMs          = 80
	bellFrequencyHz         = 220.0
	bellAmplitude           = 0.2
	bellAttackS             = 0.01
)

// SoundManager plays the edge bell. Every method is a no-op until Initialize
// succeeds, so the editor runs silent on machines without an audio device.
type SoundManager struct {
	mu          sync.Mutex
	initialized bool
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{}
}

// Initialize opens the speaker. Safe to call more than once.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*speakerBufferDurationMs))
	if err != nil {
		return err
	}

	sm.initialized = true
	log.Printf("audio: speaker initialized at %d Hz", sampleRate)
	return nil
}

// Cleanup stops playback and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Clear()
	speaker.Close()
	sm.initialized = false
}

// Ring plays a short low buzz
func (sm *SoundManager) Ring() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Play(newBell())
}

// newBell returns a finite buzz streamer
func newBell() beep.Streamer {
	return beep.Take(sampleRate.N(time.Millisecond*bellDurationMs), NewBuzzGenerator(sampleRate, bellFrequencyHz))
}

// BuzzGenerator generates a low-pitch buzz sound
type BuzzGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewBuzzGenerator creates a buzz sound generator
func NewBuzzGenerator(sr beep.SampleRate, freq float64) *BuzzGenerator {
	return &BuzzGenerator{
		sr:   sr,
		freq: freq,
	}
}

func (g *BuzzGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Fundamental plus two harmonics
		sample := 0.3 * math.Sin(2*math.Pi*g.freq*t)
		sample += 0.15 * math.Sin(2*math.Pi*g.freq*2*t)
		sample += 0.075 * math.Sin(2*math.Pi*g.freq*3*t)

		// Attack ramp avoids a click at onset
		envelope := math.Min(t/bellAttackS, 1.0)
		sample *= envelope * bellAmplitude

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BuzzGenerator) Err() error {
	return nil
}

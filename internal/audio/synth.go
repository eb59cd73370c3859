package audio

import "math"

// SampleRate is the output rate of the synthesizer in Hz.
const SampleRate = 44100

// lcg is the deterministic generator feeding the noise bank. Same constants
// as the original sfxr tool so bundles sound identical.
type lcg uint32

func (r *lcg) next() float64 {
	*r = *r*1103515245 + 12345
	return float64(uint32(*r))/float64(1<<31) - 1
}

// synth holds the per-render oscillator state derived from a Params bundle.
type synth struct {
	p Params

	envAttack  float64
	envSustain float64
	envDecay   float64

	period       float64
	maxPeriod    float64
	slide        float64
	deltaSlide   float64
	changeAmount float64
	changeTime   float64
	changeLimit  float64
	squareDuty   float64
	dutySweep    float64

	phaserBuffer [1024]float64
	noiseBank    [32]float64
	noise        lcg
}

// reset recomputes oscillator state from the params. Called at the start of
// a render and again on each repeat boundary.
func (s *synth) reset() {
	p := &s.p

	s.period = 100 / (p.StartFrequency*p.StartFrequency + 0.001)
	s.maxPeriod = 100 / (p.MinFrequency*p.MinFrequency + 0.001)

	s.slide = 1 - p.Slide*p.Slide*p.Slide*0.01
	s.deltaSlide = -p.DeltaSlide * p.DeltaSlide * p.DeltaSlide * 0.000001

	if p.WaveType == WaveSquare {
		s.squareDuty = 0.5 - p.SquareDuty/2
		s.dutySweep = -p.DutySweep * 0.00005
	}

	if p.ChangeAmount > 0 {
		s.changeAmount = 1 - p.ChangeAmount*p.ChangeAmount*0.9
	} else {
		s.changeAmount = 1 + p.ChangeAmount*p.ChangeAmount*10
	}
	s.changeTime = 0
	if p.ChangeSpeed == 1 {
		s.changeLimit = 0
	} else {
		s.changeLimit = (1-p.ChangeSpeed)*(1-p.ChangeSpeed)*20000 + 32
	}
}

// totalReset additionally recomputes the envelope, returning the total
// sample length of the sound.
func (s *synth) totalReset() int {
	s.reset()
	p := &s.p

	s.envAttack = p.AttackTime * p.AttackTime * 100000
	s.envSustain = p.SustainTime * p.SustainTime * 100000
	s.envDecay = p.DecayTime*p.DecayTime*100000 + 10

	return int(s.envAttack + s.envSustain + s.envDecay)
}

// refillNoise regenerates the 32-sample white-noise bank. Runs once per
// oscillator period for the noise wave type.
func (s *synth) refillNoise() {
	for i := range s.noiseBank {
		s.noiseBank[i] = s.noise.next()
	}
}

// Render synthesizes the bundle into 16-bit mono PCM at SampleRate. The
// output is deterministic for a given bundle. An unsupported wave type
// yields a silent buffer of nominal envelope length.
func Render(p Params) []int16 {
	s := &synth{p: p, noise: 12345}
	length := s.totalReset()
	buf := make([]int16, length)

	if !p.WaveType.Valid() {
		return buf
	}

	n := s.synthWave(buf)
	return buf[:n]
}

// synthWave runs the sfxr synthesis loop, writing samples into buf and
// returning how many were produced. The sound may end early when the
// frequency slides below the minimum cutoff.
func (s *synth) synthWave(buf []int16) int {
	p := &s.p

	filtersEnabled := p.LpFilterCutoff != 1 || p.HpFilterCutoff != 0
	hpCutoff := p.HpFilterCutoff * p.HpFilterCutoff * 0.1
	hpDeltaCutoff := 1 + p.HpFilterCutoffSweep*0.0003
	lpCutoff := p.LpFilterCutoff * p.LpFilterCutoff * p.LpFilterCutoff * 0.1
	lpDeltaCutoff := 1 + p.LpFilterCutoffSweep*0.0001
	lpOn := p.LpFilterCutoff != 1
	masterVolume := p.MasterVolume * p.MasterVolume

	phaserEnabled := p.PhaserOffset != 0 || p.PhaserSweep != 0
	phaserDelta := p.PhaserSweep * p.PhaserSweep * p.PhaserSweep * 0.2
	phaserOffset := p.PhaserOffset * p.PhaserOffset
	if p.PhaserOffset < 0 {
		phaserOffset *= -1020
	} else {
		phaserOffset *= 1020
	}

	var repeatLimit int
	if p.RepeatSpeed != 0 {
		repeatLimit = int((1-p.RepeatSpeed)*(1-p.RepeatSpeed)*20000) + 32
	}

	vibratoAmplitude := p.VibratoDepth / 2
	vibratoSpeed := p.VibratoSpeed * p.VibratoSpeed * 0.01

	envLength := s.envAttack
	envOverAttack := 1 / s.envAttack
	envOverSustain := 1 / s.envSustain
	envOverDecay := 1 / s.envDecay

	lpDamping := 5 / (1 + p.LpFilterResonance*p.LpFilterResonance*20) * (0.01 + lpCutoff)
	if lpDamping > 0.8 {
		lpDamping = 0.8
	}
	lpDamping = 1 - lpDamping

	var (
		finished     bool
		envStage     int
		envTime      float64
		envVolume    float64
		hpPos        float64
		lpDeltaPos   float64
		lpOldPos     float64
		lpPos        float64
		phase        float64
		phaserInt    int
		phaserPos    int
		repeatTime   int
		sample       float64
		vibratoPhase float64
	)

	s.refillNoise()

	period := s.period
	maxPeriod := s.maxPeriod
	slide := s.slide
	deltaSlide := s.deltaSlide
	changeAmount := s.changeAmount
	changeTime := s.changeTime
	changeLimit := s.changeLimit
	squareDuty := s.squareDuty
	dutySweep := s.dutySweep

	for i := range buf {
		if finished {
			return i
		}

		if repeatLimit != 0 {
			repeatTime++
			if repeatTime >= repeatLimit {
				repeatTime = 0
				s.reset()
				period = s.period
				maxPeriod = s.maxPeriod
				slide = s.slide
				deltaSlide = s.deltaSlide
				changeAmount = s.changeAmount
				changeTime = s.changeTime
				changeLimit = s.changeLimit
				squareDuty = s.squareDuty
				dutySweep = s.dutySweep
			}
		}

		if changeLimit != 0 {
			changeTime++
			if changeTime >= changeLimit {
				changeLimit = 0
				period *= changeAmount
			}
		}

		slide += deltaSlide
		period *= slide

		if period > maxPeriod {
			period = maxPeriod
			if p.MinFrequency > 0 {
				finished = true
			}
		}

		periodTemp := period
		if vibratoAmplitude > 0 {
			vibratoPhase += vibratoSpeed
			periodTemp *= 1 + math.Sin(vibratoPhase)*vibratoAmplitude
		}
		if periodTemp < 8 {
			periodTemp = 8
		} else {
			periodTemp = float64(int(periodTemp))
		}

		if p.WaveType == WaveSquare {
			squareDuty += dutySweep
			if squareDuty < 0 {
				squareDuty = 0
			}
			if squareDuty > 0.5 {
				squareDuty = 0.5
			}
		}

		envTime++
		if envTime > envLength {
			envTime = 0
			envStage++
			if envStage == 1 {
				envLength = s.envSustain
			} else if envStage == 2 {
				envLength = s.envDecay
			}
		}

		switch envStage {
		case 0:
			envVolume = envTime * envOverAttack
		case 1:
			envVolume = 1 + (1-envTime*envOverSustain)*2*p.SustainPunch
		case 2:
			envVolume = 1 - envTime*envOverDecay
		default:
			envVolume = 0
			finished = true
		}

		if phaserEnabled {
			phaserOffset += phaserDelta
			phaserInt = int(math.Abs(phaserOffset))
			if phaserInt > 1023 {
				phaserInt = 1023
			}
		}

		if filtersEnabled && hpDeltaCutoff != 1 {
			hpCutoff *= hpDeltaCutoff
			if hpCutoff < 0.00001 {
				hpCutoff = 0.00001
			}
			if hpCutoff > 0.1 {
				hpCutoff = 0.1
			}
		}

		// 8x oversampling
		superSample := 0.0
		for j := 0; j < 8; j++ {
			phase++
			if phase >= periodTemp {
				phase = math.Mod(phase, periodTemp)
				if p.WaveType == WaveNoise {
					s.refillNoise()
				}
			}

			pos := phase / periodTemp
			switch p.WaveType {
			case WaveSquare:
				if pos < squareDuty {
					sample = 0.5
				} else {
					sample = -0.5
				}
			case WaveSawtooth:
				sample = 1 - pos*2
			case WaveSine:
				sample = fastSine(pos)
			case WaveNoise:
				sample = s.noiseBank[int(math.Abs(phase*32/periodTemp))%32]
			}

			if filtersEnabled {
				lpOldPos = lpPos
				lpCutoff *= lpDeltaCutoff
				if lpCutoff < 0 {
					lpCutoff = 0
				}
				if lpCutoff > 0.1 {
					lpCutoff = 0.1
				}

				if lpOn {
					lpDeltaPos += (sample - lpPos) * lpCutoff
					lpDeltaPos *= lpDamping
				} else {
					lpPos = sample
					lpDeltaPos = 0
				}
				lpPos += lpDeltaPos

				hpPos += lpPos - lpOldPos
				hpPos *= 1 - hpCutoff
				sample = hpPos
			}

			if phaserEnabled {
				s.phaserBuffer[phaserPos&1023] = sample
				sample += s.phaserBuffer[(phaserPos-phaserInt+1024)&1023]
				phaserPos++
			}

			superSample += sample
		}

		superSample *= 0.125 * envVolume * masterVolume

		switch {
		case superSample >= 1:
			buf[i] = 32767
		case superSample <= -1:
			buf[i] = -32768
		default:
			buf[i] = int16(superSample * 32767)
		}
	}

	return len(buf)
}

// fastSine approximates sin(2*pi*pos) for pos in [0,1) with the polynomial
// pair sfxr uses.
func fastSine(pos float64) float64 {
	if pos > 0.5 {
		pos = (pos - 1) * 6.28318531
	} else {
		pos = pos * 6.28318531
	}

	var sample float64
	if pos < 0 {
		sample = 1.27323954*pos + 0.405284735*pos*pos
	} else {
		sample = 1.27323954*pos - 0.405284735*pos*pos
	}
	if sample < 0 {
		return 0.225*(sample*-sample-sample) + sample
	}
	return 0.225*(sample*sample-sample) + sample
}

package audio

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteWAV(t *testing.T) {
	samples := []int16{0, 1000, -1000, 32767, -32768}

	var buf bytes.Buffer
	require.NoError(t, WriteWAV(&buf, samples))

	data := buf.Bytes()
	require.Len(t, data, 44+len(samples)*2)

	assert.Equal(t, "RIFF", string(data[0:4]))
	assert.Equal(t, "WAVE", string(data[8:12]))
	assert.Equal(t, "fmt ", string(data[12:16]))
	assert.Equal(t, "data", string(data[36:40]))

	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(data[20:22]), "PCM format")
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(data[22:24]), "mono")
	assert.Equal(t, uint32(SampleRate), binary.LittleEndian.Uint32(data[24:28]))
	assert.Equal(t, uint16(16), binary.LittleEndian.Uint16(data[34:36]), "bit depth")
	assert.Equal(t, uint32(len(samples)*2), binary.LittleEndian.Uint32(data[40:44]))

	// First real sample sits right after the header, little-endian.
	assert.Equal(t, uint16(0), binary.LittleEndian.Uint16(data[44:46]))
	assert.Equal(t, uint16(1000), binary.LittleEndian.Uint16(data[46:48]))
}

func TestWriteWAV_RenderedSound(t *testing.T) {
	samples := Render(ParseSettings(blipSettings))

	var buf bytes.Buffer
	require.NoError(t, WriteWAV(&buf, samples))
	assert.Equal(t, 44+len(samples)*2, buf.Len())
}

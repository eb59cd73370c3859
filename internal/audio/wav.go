package audio

import (
	"encoding/binary"
	"fmt"
	"io"
)

// WriteWAV encodes mono 16-bit PCM at SampleRate as a RIFF/WAVE stream.
func WriteWAV(w io.Writer, samples []int16) error {
	dataSize := len(samples) * 2

	var header [44]byte
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(dataSize+36))
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)           // fmt chunk size
	binary.LittleEndian.PutUint16(header[20:22], 1)            // PCM
	binary.LittleEndian.PutUint16(header[22:24], 1)            // mono
	binary.LittleEndian.PutUint32(header[24:28], SampleRate)   // sample rate
	binary.LittleEndian.PutUint32(header[28:32], SampleRate*2) // byte rate
	binary.LittleEndian.PutUint16(header[32:34], 2)            // block align
	binary.LittleEndian.PutUint16(header[34:36], 16)           // bits per sample

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(dataSize))

	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("writing wav header: %w", err)
	}

	pcm := make([]byte, dataSize)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(pcm[i*2:], uint16(s))
	}
	if _, err := w.Write(pcm); err != nil {
		return fmt.Errorf("writing wav samples: %w", err)
	}
	return nil
}

// Package wavfile reads 16bit PCM wave files and measures their loudness
// while they are played back against the frame clock. The resulting RMS
// value drives the mouth of a model during lip sync.
package wavfile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"golang.org/x/image/riff"
)

var (
	waveMagic    = riff.FourCC{'W', 'A', 'V', 'E'}
	wavChunkFmt  = riff.FourCC{'f', 'm', 't', ' '}
	wavChunkData = riff.FourCC{'d', 'a', 't', 'a'}

	ErrFormat      = errors.New("wavfile: bad format")
	ErrUnsupported = errors.New("wavfile: unsupported bits per sample")
	ErrCorrupted   = errors.New("wavfile: corrupted data")
)

// Info is the header of a decoded wave file.
type Info struct {
	Channels          uint32
	BitsPerSample     uint32
	SampleRate        uint32
	SamplesPerChannel uint32
}

// Stream holds the normalized samples of one wave file, one slice per channel.
type Stream struct {
	Info
	Samples [][]float32
}

// rmsAt averages the squared samples of all channels at offset.
func (s *Stream) rmsAt(offset uint32) float32 {
	var sum float64
	for _, ch := range s.Samples {
		v := float64(ch[offset])
		sum += v * v
	}
	return float32(math.Sqrt(sum / float64(len(s.Samples))))
}

// Decode parses a RIFF/WAVE buffer. Chunks other than "fmt " and "data"
// are skipped and the two may come in any order. The RIFF size field is
// not trusted, the buffer length is used instead.
func Decode(data []byte) (*Stream, error) {
	formType, rr, err := riff.NewReader(riffReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if formType != waveMagic {
		return nil, fmt.Errorf("%w: missing WAVE signature", ErrFormat)
	}

	var info Info
	var pcm []byte
	var fmtLoaded, dataLoaded bool
	for !fmtLoaded || !dataLoaded {
		chunkID, chunkLen, chunkData, err := rr.Next()
		if err == io.EOF {
			return nil, fmt.Errorf("%w: missing fmt or data chunk", ErrCorrupted)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
		}

		switch chunkID {
		case wavChunkFmt:
			b, err := io.ReadAll(chunkData)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
			}
			if len(b) < 16 {
				return nil, fmt.Errorf("%w: fmt chunk too short", ErrFormat)
			}
			// format tag, channels, sample rate, byte rate, block align, bits
			info.Channels = uint32(binary.LittleEndian.Uint16(b[2:]))
			info.SampleRate = binary.LittleEndian.Uint32(b[4:])
			info.BitsPerSample = uint32(binary.LittleEndian.Uint16(b[14:]))
			fmtLoaded = true

		case wavChunkData:
			if int64(chunkLen) > int64(len(data)) {
				return nil, fmt.Errorf("%w: data chunk longer than file", ErrCorrupted)
			}
			pcm = make([]byte, chunkLen)
			if _, err := io.ReadFull(chunkData, pcm); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
			}
			dataLoaded = true
		}
	}

	switch info.BitsPerSample {
	case 16:
	case 8, 24, 32:
		return nil, fmt.Errorf("%w: %d", ErrUnsupported, info.BitsPerSample)
	default:
		return nil, fmt.Errorf("%w: %d bits per sample", ErrFormat, info.BitsPerSample)
	}
	if info.Channels == 0 {
		return nil, fmt.Errorf("%w: no channels", ErrFormat)
	}

	blockAlign := int(info.Channels) * int(info.BitsPerSample/8)
	info.SamplesPerChannel = uint32(len(pcm) / blockAlign)

	samples := make([][]float32, info.Channels)
	for ch := range samples {
		samples[ch] = make([]float32, info.SamplesPerChannel)
	}
	for i := 0; i < int(info.SamplesPerChannel); i++ {
		frame := pcm[i*blockAlign:]
		for ch := range samples {
			v := int16(binary.LittleEndian.Uint16(frame[ch*2:]))
			samples[ch][i] = float32(v) / 32768
		}
	}

	return &Stream{Info: info, Samples: samples}, nil
}

// riffReader replaces the RIFF size with the size of the buffer. Streaming
// encoders leave it zero or short.
func riffReader(data []byte) io.Reader {
	if len(data) < 12 || string(data[:4]) != "RIFF" || uint64(len(data)-8) > math.MaxUint32 {
		return bytes.NewReader(data)
	}
	header := make([]byte, 8)
	copy(header, data[:4])
	binary.LittleEndian.PutUint32(header[4:], uint32(len(data)-8))
	return io.MultiReader(bytes.NewReader(header), bytes.NewReader(data[8:]))
}

package player

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// ErrUnrecognizedFormat is returned when a file's content is not a supported
// audio format. It is distinct from I/O and decoding errors.
var ErrUnrecognizedFormat = errors.New("unrecognized audio format")

// Codec identifies a container/codec detected from file content.
type Codec int

const (
	CodecUnknown Codec = iota
	CodecMP3
	CodecFLAC
	CodecWAV
	CodecVorbis
)

func (c Codec) String() string {
	switch c {
	case CodecMP3:
		return "MP3"
	case CodecFLAC:
		return "FLAC"
	case CodecWAV:
		return "WAV"
	case CodecVorbis:
		return "Vorbis"
	default:
		return "unknown"
	}
}

// sniffLen covers the Ogg page header plus the start of the first packet.
const sniffLen = 36

// Sniff detects the codec from the leading bytes of r and rewinds it.
func Sniff(r io.ReadSeeker) (Codec, error) {
	header := make([]byte, sniffLen)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return CodecUnknown, err
	}
	header = header[:n]

	codec := CodecUnknown
	switch {
	case bytes.HasPrefix(header, []byte("ID3")):
		// FLAC files sometimes carry a prepended ID3v2 tag.
		codec = CodecMP3
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return CodecUnknown, err
		}
		if err := skipID3v2(r); err != nil {
			return CodecUnknown, err
		}
		magic := make([]byte, 4)
		if m, _ := io.ReadFull(r, magic); m == 4 && string(magic) == "fLaC" {
			codec = CodecFLAC
		}
	case bytes.HasPrefix(header, []byte("fLaC")):
		codec = CodecFLAC
	case len(header) >= 12 && string(header[0:4]) == "RIFF" && string(header[8:12]) == "WAVE":
		codec = CodecWAV
	case bytes.HasPrefix(header, []byte("OggS")):
		if len(header) >= 35 && string(header[29:35]) == "vorbis" {
			codec = CodecVorbis
		}
	case len(header) >= 2 && header[0] == 0xFF && header[1]&0xE0 == 0xE0:
		codec = CodecMP3
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return CodecUnknown, err
	}
	return codec, nil
}

// CanDecode reports whether the file at path opens and decodes as audio.
func CanDecode(path string) bool {
	src, err := open(path)
	if err != nil {
		return false
	}
	_ = src.Close()
	return true
}

func open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	codec, err := Sniff(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format

	switch codec {
	case CodecMP3:
		streamer, format, err = decodeMP3(f)
	case CodecFLAC:
		if err := skipID3v2(f); err != nil {
			f.Close()
			return nil, err
		}
		streamer, format, err = flac.Decode(f)
	case CodecWAV:
		streamer, format, err = wav.Decode(f)
	case CodecVorbis:
		streamer, format, err = vorbis.Decode(f)
	default:
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, ErrUnrecognizedFormat)
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return &Source{
		Path:     path,
		Codec:    codec,
		streamer: streamer,
		format:   format,
		file:     f,
	}, nil
}

// skipID3v2 skips an ID3v2 tag if present at the current position, which
// must be the start of the file. Without a tag it rewinds to the start.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return err
	}
	if n < 10 || string(header[0:3]) != "ID3" {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	// Syncsafe size: 7 bits per byte.
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])

	_, err = r.Seek(10+size, io.SeekStart)
	return err
}

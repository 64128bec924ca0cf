package bagutil

import (
	"bytes"
	"errors"
	"io"
	"os"
)

// Kind identifies a recording container.
type Kind int

const (
	KindUnknown Kind = iota
	KindROSBag
)

func (k Kind) String() string {
	switch k {
	case KindROSBag:
		return "rosbag"
	default:
		return "unknown"
	}
}

// HeaderLen is the number of bytes inspected by SniffReader.
const HeaderLen = 13

var rosbagSig = []byte("#ROSBAG V")

// Header describes what was found at the start of a file.
type Header struct {
	Kind    Kind
	Version string
}

// DetectHeader inspects the first HeaderLen bytes of a file for a known
// signature. Only the magic line is read; record contents are never decoded.
func DetectHeader(header []byte) (Header, error) {
	if len(header) < len(rosbagSig) {
		return Header{}, errors.New("header too short")
	}

	if !bytes.HasPrefix(header, rosbagSig) {
		return Header{Kind: KindUnknown}, nil
	}

	version := header[len(rosbagSig):]
	if i := bytes.IndexByte(version, '\n'); i >= 0 {
		version = version[:i]
	}
	return Header{Kind: KindROSBag, Version: string(version)}, nil
}

// SniffFile reads the start of a file to determine its container type.
func SniffFile(path string) (Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, err
	}
	defer f.Close()

	return SniffReader(f)
}

// SniffReader reads up to HeaderLen bytes from r and determines its type.
// Short files are reported as KindUnknown rather than an error.
func SniffReader(r io.Reader) (Header, error) {
	header := make([]byte, HeaderLen)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return Header{}, err
	}
	if n < len(rosbagSig) {
		return Header{Kind: KindUnknown}, nil
	}

	return DetectHeader(header[:n])
}

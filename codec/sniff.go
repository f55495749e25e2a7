package codec

import "bytes"

// Kind identifies an image container.
type Kind int

// Image kinds recognised by Sniff.
const (
	KindUnknown Kind = iota
	KindPBM
	KindBMP
	KindRaw
)

// SniffLen is the number of leading bytes Sniff looks at.
const SniffLen = len(RawSignature) + 1

func (k Kind) String() string {
	switch k {
	case KindPBM:
		return "pbm"
	case KindBMP:
		return "bmp"
	case KindRaw:
		return "dat"
	default:
		return "unknown"
	}
}

// Sniff identifies the container of an image from its first bytes.
func Sniff(header []byte) Kind {
	switch {
	case bytes.HasPrefix(header, []byte(RawSignature+"\n")):
		return KindRaw
	case len(header) >= 3 && header[0] == 'P' && (header[1] == '4' || header[1] == '6') && isSpace(header[2]):
		return KindPBM
	case bytes.HasPrefix(header, []byte("BM")):
		return KindBMP
	}
	return KindUnknown
}

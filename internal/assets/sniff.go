package assets

import (
	"bytes"
	"fmt"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
)

// Kind is the detected content type of asset bytes.
type Kind string

const (
	KindUnknown  Kind = ""
	KindGLB      Kind = "glb"
	KindRadiance Kind = "hdr"
	KindPNG      Kind = "png"
	KindJPEG     Kind = "jpg"
)

var (
	glbType      = filetype.NewType("glb", "model/gltf-binary")
	radianceType = filetype.NewType("hdr", "image/vnd.radiance")
)

func init() {
	filetype.AddMatcher(glbType, func(buf []byte) bool {
		return len(buf) >= 4 && bytes.Equal(buf[:4], []byte("glTF"))
	})
	filetype.AddMatcher(radianceType, func(buf []byte) bool {
		return bytes.HasPrefix(buf, []byte("#?RADIANCE")) || bytes.HasPrefix(buf, []byte("#?RGBE"))
	})
}

// Sniff detects the content type from the leading bytes.
func Sniff(data []byte) Kind {
	t, err := filetype.Match(data)
	if err != nil || t == filetype.Unknown {
		return KindUnknown
	}
	return kindOf(t)
}

func kindOf(t types.Type) Kind {
	switch t.Extension {
	case "glb":
		return KindGLB
	case "hdr":
		return KindRadiance
	case "png":
		return KindPNG
	case "jpg":
		return KindJPEG
	default:
		return Kind(t.Extension)
	}
}

// Expect returns an error unless data sniffs as want.
func Expect(data []byte, want Kind) error {
	if got := Sniff(data); got != want {
		if got == KindUnknown {
			return fmt.Errorf("expected %s content, got unrecognized bytes", want)
		}
		return fmt.Errorf("expected %s content, got %s", want, got)
	}
	return nil
}

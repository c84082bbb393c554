package texmat

import (
	"errors"
	"testing"
)

func TestNewColorTexture(t *testing.T) {
	resetForTest()

	fake := &fakeContext{npot: true}
	useContext(fake)

	tex, err := NewColorTexture(255, 0, 0, 128, FlagNoSlicing)
	if err != nil {
		t.Fatalf("NewColorTexture failed: %v", err)
	}
	if tex.Width() != 1 || tex.Height() != 1 {
		t.Errorf("color texture is %dx%d, want 1x1", tex.Width(), tex.Height())
	}

	got := fake.lastTex
	if !got.sliced {
		t.Error("color texture not created through the legacy path")
	}
	if !got.flags.Has(FlagNoSlicing) {
		t.Error("flags not forwarded")
	}
	if got.format != FormatRGBA8Premul || got.internalFormat != FormatAny {
		t.Errorf("formats = %v/%v, want rgba8-premul/any", got.format, got.internalFormat)
	}
	want := []byte{128, 0, 0, 128}
	for i, b := range want {
		if got.data[i] != b {
			t.Fatalf("uploaded pixel = %v, want premultiplied %v", got.data, want)
		}
	}
}

func TestNewColorTextureWithoutProvider(t *testing.T) {
	resetForTest()

	if _, err := NewColorTexture(1, 2, 3, 4, FlagNone); !errors.Is(err, ErrNoProvider) {
		t.Fatalf("error = %v, want ErrNoProvider", err)
	}
}

func TestNewColorTextureFailure(t *testing.T) {
	resetForTest()
	useContext(&fakeContext{npot: true, fail: errors.New("no memory")})

	if _, err := NewColorTexture(0, 0, 0, 255, FlagNone); !errors.Is(err, ErrTextureCreationFailed) {
		t.Fatalf("error = %v, want ErrTextureCreationFailed", err)
	}
}

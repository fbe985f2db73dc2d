package lang

import (
	"errors"
	"testing"
)

func TestClassifyShortInput(t *testing.T) {
	cls := NewWhatlang()
	for _, in := range []string{"", "ok", "  hi  "} {
		if _, err := cls.Classify(in); !errors.Is(err, ErrUnclassifiable) {
			t.Errorf("Classify(%q): expected ErrUnclassifiable, got %v", in, err)
		}
	}
}

func TestClassifyEnglish(t *testing.T) {
	cls := NewWhatlang()
	code, err := cls.Classify("The delivery was quick and the product quality exceeded all of my expectations for something at this price")
	if err != nil {
		t.Fatal(err)
	}
	if code != English {
		t.Fatalf("got %q, want %q", code, English)
	}
}

package videoid

import (
	"errors"
	"testing"
)

func TestExtract(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"ABC123", "ABC123"},
		{"  dQw4w9WgXcQ ", "dQw4w9WgXcQ"},
		{"https://youtu.be/ABC123", "ABC123"},
		{"https://youtu.be/ABC123?si=xyz", "ABC123"},
		{"youtu.be/ABC123", "ABC123"},
		{"https://www.youtube.com/watch?v=ABC123&t=5s", "ABC123"},
		{"https://youtube.com/watch?feature=share&v=ABC123", "ABC123"},
		{"www.youtube.com/watch?v=ABC123", "ABC123"},
		{"https://m.youtube.com/watch?v=ABC123", "ABC123"},
		{"https://www.youtube.com/shorts/ABC123", "ABC123"},
		{"https://www.youtube.com/embed/ABC123?start=3", "ABC123"},
		{"https://www.youtube.com/live/ABC123", "ABC123"},
		{"https://www.youtube-nocookie.com/embed/ABC123", "ABC123"},
	}
	for _, tc := range cases {
		got, err := Extract(tc.in)
		if err != nil {
			t.Fatalf("extract %q: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("extract %q: expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestExtract_Invalid(t *testing.T) {
	for _, in := range []string{
		"",
		"   ",
		"not an id!",
		"https://www.youtube.com/watch",
		"https://www.youtube.com/watch?v=",
		"https://youtu.be/",
		"https://www.youtube.com/channel",
		"https://www.youtube.com/watch?v=bad%20id",
	} {
		_, err := Extract(in)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("extract %q: expected ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestSplit(t *testing.T) {
	got := Split(" a, b\tc\n\nd ,,")
	want := []string{"a", "b", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

package youtube

import (
	"testing"

	ytv3 "google.golang.org/api/youtube/v3"
)

func TestToVideo_Status(t *testing.T) {
	cases := []struct {
		name        string
		status      *ytv3.VideoStatus
		wantFlags   bool
		wantEnabled bool
	}{
		{"status part absent", nil, false, true},
		{"both flags true", &ytv3.VideoStatus{Embeddable: true, PublicStatsViewable: true}, true, true},
		{"embeddable false", &ytv3.VideoStatus{PublicStatsViewable: true}, true, false},
		// The binding cannot tell a missing flag from false once the part is present.
		{"flags missing from present part", &ytv3.VideoStatus{}, true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := toVideo("vid", &ytv3.Video{Status: tc.status})
			hasFlags := v.Status.Embeddable != nil && v.Status.PublicStatsViewable != nil
			if hasFlags != tc.wantFlags {
				t.Fatalf("expected flags reported=%v, got %+v", tc.wantFlags, v.Status)
			}
			if got := v.Status.CommentsEnabled(); got != tc.wantEnabled {
				t.Fatalf("expected enabled=%v, got %v", tc.wantEnabled, got)
			}
		})
	}
}

func TestToVideo_TitleAndID(t *testing.T) {
	v := toVideo("asked", &ytv3.Video{Snippet: &ytv3.VideoSnippet{Title: "  Padded  "}})
	if v.ID != "asked" || v.Title != "Padded" {
		t.Fatalf("unexpected video %+v", v)
	}
	if v := toVideo("asked", &ytv3.Video{Id: "served"}); v.ID != "served" {
		t.Fatalf("expected served id, got %q", v.ID)
	}
}

package player

import (
	"testing"
)

func TestNormalizeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "Patrick Mahomes", want: "patrick mahomes"},
		{in: "  Odell   Beckham Jr.  ", want: "odell beckham"},
		{in: "Marvin Harrison Jr", want: "marvin harrison"},
		{in: "A.J. Brown", want: "aj brown"},
		{in: "D'Andre Swift", want: "dandre swift"},
		{in: "Amon-Ra St. Brown", want: "amon ra st brown"},
		{in: "Michael Pittman III", want: "michael pittman"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeName(tt.in); got != tt.want {
				t.Fatalf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestJoinKeySameOnBothSides(t *testing.T) {
	t.Parallel()

	if JoinKey("Kenneth Walker III") != JoinKey("kenneth walker") {
		t.Fatalf("expected suffix to be ignored, got %q vs %q", JoinKey("Kenneth Walker III"), JoinKey("kenneth walker"))
	}
	if got := JoinKey("Ja'Marr Chase"); got != "jamarr_chase" {
		t.Fatalf("unexpected join key %q", got)
	}
}

func TestIDCandidates(t *testing.T) {
	t.Parallel()

	ids := IDCandidates("Josh Allen")
	if len(ids) == 0 || ids[0] != "Josh Allen#QB" {
		t.Fatalf("expected record id first, got %v", ids)
	}

	want := map[string]bool{"Josh Allen#DST": false, "josh_allen_qb": false, "josh_allen": false}
	for _, id := range ids {
		if _, ok := want[id]; ok {
			want[id] = true
		}
	}
	for id, found := range want {
		if !found {
			t.Fatalf("expected candidate %q in %v", id, ids)
		}
	}

	dst := IDCandidates("Buffalo DST")
	if dst[len(dst)-1] != "buffalo_dst" {
		t.Fatalf("expected team defense id last, got %v", dst)
	}

	if IDCandidates("   ") != nil {
		t.Fatalf("expected no candidates for blank name")
	}
}

func TestBestMatch(t *testing.T) {
	t.Parallel()

	records := []Record{
		{ID: "1", Name: "Josh Allen Jr", Position: PositionQB},
		{ID: "2", Name: "Josh Allen", Position: PositionQB},
		{ID: "3", Name: "Josh Allen", Position: PositionQB, Team: "BUF"},
		{ID: "4", Name: "Joshua Kelley", Position: PositionRB, Team: "LAC"},
	}

	got, ok := BestMatch("josh allen", records)
	if !ok {
		t.Fatalf("expected a match")
	}
	if got.ID != "3" {
		t.Fatalf("expected exact match with team populated, got %s", got.ID)
	}

	partial, ok := BestMatch("Allen", records[3:])
	if ok {
		t.Fatalf("expected no match, got %+v", partial)
	}

	partial, ok = BestMatch("Kelley", records)
	if !ok || partial.ID != "4" {
		t.Fatalf("expected partial match on record 4, got %+v ok=%v", partial, ok)
	}
}

func TestChunkIDs(t *testing.T) {
	t.Parallel()

	ids := make([]string, 0, 250)
	for i := 0; i < 250; i++ {
		ids = append(ids, RecordID("Player", AllPositions[i%len(AllPositions)])+string(rune('a'+i%26))+string(rune('a'+i/26)))
	}
	ids = append(ids, "", ids[0])

	chunks := ChunkIDs(ids, MaxBatchSize)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if len(chunks[0]) != 100 || len(chunks[1]) != 100 || len(chunks[2]) != 50 {
		t.Fatalf("unexpected chunk sizes %d/%d/%d", len(chunks[0]), len(chunks[1]), len(chunks[2]))
	}
}

package client

import (
	"testing"

	"github.com/google/uuid"
)

func sptr(s string) *string { return &s }

func record(name string, birthDate, sex *string) *Record {
	return &Record{ID: uuid.New(), Name: name, BirthDate: birthDate, Sex: sex, Status: StatusActive}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"john smith", "jon smith", 1},
		{"same", "same", 0},
	}
	for _, tt := range tests {
		if got := levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestNameSimilarityTokenOrder(t *testing.T) {
	if got := NameSimilarity("Smith John", "John Smith"); got != 1.0 {
		t.Errorf("token-sorted names should be identical, got %v", got)
	}
	if got := NameSimilarity("John Smith", "JOHN  SMITH"); got != 1.0 {
		t.Errorf("case and spacing must not matter, got %v", got)
	}
	if got := NameSimilarity("John Smith", "Totally Different"); got >= 0.5 {
		t.Errorf("unrelated names scored %v", got)
	}
}

func TestResolveExactMatchReusesWithoutConfirmation(t *testing.T) {
	rec := record("John Smith", sptr("1980-04-02"), sptr("male"))
	identity := Identity{Name: sptr("John Smith"), DateOfBirth: sptr("1980-04-02"), Sex: sptr("male")}

	d, err := Resolve(identity, []*Record{rec})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if d.Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0", d.Confidence)
	}
	if d.Action != ActionReuseExisting || d.RequiresConfirmation {
		t.Errorf("decision = %+v", d)
	}
	if d.ClientID == nil || *d.ClientID != rec.ID {
		t.Errorf("client id = %v", d.ClientID)
	}
	if d.Tier != TierHigh {
		t.Errorf("tier = %v", d.Tier)
	}
}

func TestResolveNullFieldsDropFromDenominator(t *testing.T) {
	// Name similarity in the 0.5-0.7 band earns 1 of 3 name points. With no
	// birth date or sex on either side only the name weight counts, so the
	// confidence is 1/3, below the reuse threshold.
	rec := record("Jane Smithers", nil, nil)
	identity := Identity{Name: sptr("John Smith")}

	sim := NameSimilarity("John Smith", "Jane Smithers")
	if sim < 0.5 || sim >= 0.7 {
		t.Fatalf("test premise broken: similarity = %v", sim)
	}

	d, err := Resolve(identity, []*Record{rec})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := 1.0 / 3.0
	if d.Confidence != want {
		t.Errorf("confidence = %v, want %v", d.Confidence, want)
	}
	if d.Action != ActionCreateNew {
		t.Errorf("action = %v, want create-new", d.Action)
	}
	if d.Tier != TierHigh {
		t.Errorf("create-new decisions carry high tier, got %v", d.Tier)
	}
}

func TestResolveMidBandRequiresConfirmation(t *testing.T) {
	// Name in the 2-point band plus an exact sex match, no birth date on
	// either side: 3 of 4 points = 0.75.
	rec := record("Joan Smythe", nil, sptr("male"))
	identity := Identity{Name: sptr("John Smith"), Sex: sptr("male")}

	sim := NameSimilarity(*identity.Name, rec.Name)
	if sim < 0.7 || sim >= 0.9 {
		t.Fatalf("test premise broken: similarity = %v", sim)
	}

	d, err := Resolve(identity, []*Record{rec})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if d.Confidence != 0.75 {
		t.Errorf("confidence = %v, want 0.75", d.Confidence)
	}
	if d.Action != ActionReuseExisting || !d.RequiresConfirmation || d.Tier != TierMedium {
		t.Errorf("decision = %+v", d)
	}
}

func TestResolveEmptyPoolCreatesNew(t *testing.T) {
	d, err := Resolve(Identity{Name: sptr("John Smith")}, nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if d.Action != ActionCreateNew || d.Tier != TierHigh || d.RequiresConfirmation {
		t.Errorf("decision = %+v", d)
	}
	if d.ClientID != nil {
		t.Errorf("client id should be nil, got %v", d.ClientID)
	}
}

func TestResolveBestCandidateWins(t *testing.T) {
	exact := record("John Smith", sptr("1980-04-02"), nil)
	near := record("John Smith", sptr("1981-05-03"), nil)
	identity := Identity{Name: sptr("John Smith"), DateOfBirth: sptr("1980-04-02")}

	d, err := Resolve(identity, []*Record{near, exact})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if d.ClientID == nil || *d.ClientID != exact.ID {
		t.Errorf("wrong candidate won: %+v", d)
	}
}

func TestResolveTiedCandidatesNeedManualSelect(t *testing.T) {
	a := record("John Smith", sptr("1980-04-02"), nil)
	b := record("John Smith", sptr("1980-04-02"), nil)
	identity := Identity{Name: sptr("John Smith"), DateOfBirth: sptr("1980-04-02")}

	d, err := Resolve(identity, []*Record{a, b})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if d.Action != ActionManualSelect || !d.RequiresConfirmation {
		t.Errorf("decision = %+v", d)
	}
}

func TestResolveCandidateWithoutNameErrors(t *testing.T) {
	bad := &Record{ID: uuid.New()}
	_, err := Resolve(Identity{Name: sptr("John Smith")}, []*Record{bad})
	if err == nil {
		t.Fatal("expected contract violation error")
	}
}

func TestResolveMismatchedDOBCountsAgainst(t *testing.T) {
	rec := record("John Smith", sptr("1990-01-01"), nil)
	identity := Identity{Name: sptr("John Smith"), DateOfBirth: sptr("1980-04-02")}

	d, err := Resolve(identity, []*Record{rec})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	// 3 of 6 points: exact name, wrong birth date.
	if d.Confidence != 0.5 {
		t.Errorf("confidence = %v, want 0.5", d.Confidence)
	}
	if d.Action != ActionCreateNew {
		t.Errorf("action = %v", d.Action)
	}
	if !d.RequiresConfirmation {
		t.Error("near-miss create-new should ask for confirmation")
	}
}

package matching

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
)

func TestMutual_ReciprocalOverlap(t *testing.T) {
	connID := uuid.New()
	me := Profile{
		UserID:     uuid.New(),
		TeachNames: []string{"Guitar"},
		LearnNames: []string{"Spanish"},
	}
	conns := []Profile{{
		UserID:      connID,
		DisplayName: "Carla",
		TeachNames:  []string{"Spanish"},
		LearnNames:  []string{"Guitar"},
	}}

	got := Mutual(me, conns)
	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
	if got[0].UserID != connID {
		t.Fatalf("unexpected match user id")
	}
	if !reflect.DeepEqual(got[0].TeachesWhatILearn, []string{"Spanish"}) {
		t.Fatalf("unexpected teaches list: %v", got[0].TeachesWhatILearn)
	}
	if !reflect.DeepEqual(got[0].WantsWhatITeach, []string{"Guitar"}) {
		t.Fatalf("unexpected wants list: %v", got[0].WantsWhatITeach)
	}
}

func TestMutual_OneSidedOverlapExcluded(t *testing.T) {
	me := Profile{
		TeachNames: []string{"Guitar"},
		LearnNames: []string{"Spanish"},
	}

	// Teaches what I want but wants nothing I teach.
	oneSided := Profile{
		UserID:     uuid.New(),
		TeachNames: []string{"Spanish"},
		LearnNames: []string{"Piano"},
	}
	// Wants what I teach but teaches nothing I want.
	otherSide := Profile{
		UserID:     uuid.New(),
		TeachNames: []string{"French"},
		LearnNames: []string{"Guitar"},
	}

	if got := Mutual(me, []Profile{oneSided, otherSide}); len(got) != 0 {
		t.Fatalf("expected no matches, got %d", len(got))
	}
}

func TestMutual_CaseSensitiveNames(t *testing.T) {
	me := Profile{
		TeachNames: []string{"Guitar"},
		LearnNames: []string{"spanish"},
	}
	conn := Profile{
		UserID:     uuid.New(),
		TeachNames: []string{"Spanish"},
		LearnNames: []string{"Guitar"},
	}

	if got := Mutual(me, []Profile{conn}); len(got) != 0 {
		t.Fatalf("expected case mismatch to exclude, got %d matches", len(got))
	}
}

func TestMutual_PreservesConnectionOrder(t *testing.T) {
	me := Profile{
		TeachNames: []string{"Go", "Chess"},
		LearnNames: []string{"Spanish", "Piano"},
	}

	first := Profile{UserID: uuid.New(), TeachNames: []string{"Piano"}, LearnNames: []string{"Chess"}}
	skipped := Profile{UserID: uuid.New(), TeachNames: []string{"Violin"}, LearnNames: []string{"Go"}}
	second := Profile{UserID: uuid.New(), TeachNames: []string{"Spanish", "Piano"}, LearnNames: []string{"Go"}}

	got := Mutual(me, []Profile{first, skipped, second})
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	if got[0].UserID != first.UserID || got[1].UserID != second.UserID {
		t.Fatalf("match order does not follow connections order")
	}
	if !reflect.DeepEqual(got[1].TeachesWhatILearn, []string{"Spanish", "Piano"}) {
		t.Fatalf("intersection should preserve the connection's list order, got %v", got[1].TeachesWhatILearn)
	}
}

func TestMutual_Idempotent(t *testing.T) {
	me := Profile{
		TeachNames: []string{"Go", "Chess"},
		LearnNames: []string{"Spanish"},
	}
	conns := []Profile{
		{UserID: uuid.New(), TeachNames: []string{"Spanish", "Spanish"}, LearnNames: []string{"Chess", "Go"}},
		{UserID: uuid.New(), TeachNames: []string{"Spanish"}, LearnNames: []string{"Go"}},
	}

	first := Mutual(me, conns)
	second := Mutual(me, conns)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results on unchanged input:\n%v\n%v", first, second)
	}
}

func TestMutual_EmptyConnections(t *testing.T) {
	me := Profile{TeachNames: []string{"Go"}, LearnNames: []string{"Spanish"}}
	got := Mutual(me, nil)
	if len(got) != 0 {
		t.Fatalf("expected empty match list, got %d", len(got))
	}
}

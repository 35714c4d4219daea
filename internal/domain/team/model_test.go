package team

import "testing"

func TestTeam_Validate(t *testing.T) {
	valid := Team{ID: "t1", LeagueID: "l1", Name: "Arsenal"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid team rejected: %v", err)
	}

	if err := (Team{LeagueID: "l1"}).Validate(); err == nil {
		t.Fatalf("missing id accepted")
	}
	if err := (Team{ID: "t1"}).Validate(); err == nil {
		t.Fatalf("missing league id accepted")
	}
}

func TestSortByName(t *testing.T) {
	items := []Team{
		{ID: "t3", Name: "Chelsea"},
		{ID: "t2", Name: "Arsenal"},
		{ID: "t4", Name: ""},
		{ID: "t1", Name: "Arsenal"},
	}

	SortByName(items)

	want := []string{"t4", "t1", "t2", "t3"}
	for i, id := range want {
		if items[i].ID != id {
			t.Fatalf("unexpected order at %d: got=%s want=%s", i, items[i].ID, id)
		}
	}
}

package hotness

import "testing"

func TestScore(t *testing.T) {
	t.Parallel()

	cases := []struct {
		age   float64
		posts int
		want  float64
	}{
		{0, 10, 12},
		{3, 16, 17.2},
		{4, 24, 21.2},
		{12, 10, 5.5},
		{20, 12, 2.6},
		{30, 100, 5},
		{2, 0, 0},
	}
	for _, tc := range cases {
		if got := Score(tc.age, tc.posts); got != tc.want {
			t.Errorf("Score(%v, %d) = %v, want %v", tc.age, tc.posts, got, tc.want)
		}
	}
}

func TestScoreRoundsToEightPlaces(t *testing.T) {
	t.Parallel()

	if got := Score(1, 3); got != 3.475 {
		t.Fatalf("Score(1,3) = %v", got)
	}
	if got := Score(7, 1); got != 0.75833333 {
		t.Fatalf("Score(7,1) = %v", got)
	}
}

func TestScoreMonotonic(t *testing.T) {
	t.Parallel()

	prev := Score(0, 5)
	for age := 0.5; age < FreshHours; age += 0.5 {
		s := Score(age, 5)
		if s >= prev {
			t.Fatalf("fresh score did not decrease at age %v: %v >= %v", age, s, prev)
		}
		prev = s
	}
	prev = Score(6, 1)
	for posts := 2; posts < 50; posts++ {
		s := Score(6, posts)
		if s <= prev {
			t.Fatalf("score did not increase at posts %d", posts)
		}
		prev = s
	}
}

func TestGroup(t *testing.T) {
	t.Parallel()

	got := Group([]Member{{AgeHours: 2, Posts: 10}, {AgeHours: 3, Posts: 6}})
	if got != 17.2 {
		t.Fatalf("Group = %v, want 17.2", got)
	}
	if Group(nil) != 0 {
		t.Fatal("empty group should score 0")
	}
}

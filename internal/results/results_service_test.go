package results_test

import (
	"context"
	"testing"

	"bookclub-service/internal/book"
	"bookclub-service/internal/category"
	"bookclub-service/internal/club"
	"bookclub-service/internal/member"
	"bookclub-service/internal/results"
	"bookclub-service/internal/testutil"
	"bookclub-service/internal/voting"
)

func TestRankCandidatesHigherShareWins(t *testing.T) {
	rows := []results.CandidateRow{
		{BookID: 1, Title: "Book A", ReadersCount: 10, VotesCount: 5},
		{BookID: 2, Title: "Book B", ReadersCount: 20, VotesCount: 15},
	}

	ranked := results.RankCandidates(rows)
	if len(ranked) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(ranked))
	}
	// B has both more raw votes and a higher share: 0.75 vs 0.5.
	if ranked[0].BookID != 2 {
		t.Errorf("expected book 2 first, got %d", ranked[0].BookID)
	}
	if !ranked[0].IsWinner {
		t.Error("expected book 2 flagged as winner")
	}
	if ranked[1].IsWinner {
		t.Error("expected exactly one winner")
	}
	if ranked[0].WeightedScore != 0.75 || ranked[1].WeightedScore != 0.5 {
		t.Errorf("unexpected scores: %v, %v", ranked[0].WeightedScore, ranked[1].WeightedScore)
	}
}

func TestRankCandidatesZeroReadersBreakTieOnVotes(t *testing.T) {
	// Zero-reader books all score 0.0; raw votes decide the leader.
	rows := []results.CandidateRow{
		{BookID: 1, Title: "Book A", ReadersCount: 0, VotesCount: 3},
		{BookID: 2, Title: "Book B", ReadersCount: 0, VotesCount: 1},
	}

	ranked := results.RankCandidates(rows)
	if !ranked[0].IsWinner || ranked[0].BookID != 1 {
		t.Errorf("expected book 1 to win on raw votes, got winner=%v book=%d", ranked[0].IsWinner, ranked[0].BookID)
	}
	if ranked[0].WeightedScore != 0 || ranked[1].WeightedScore != 0 {
		t.Errorf("zero readers must score 0.0, got %v and %v", ranked[0].WeightedScore, ranked[1].WeightedScore)
	}
}

func TestRankCandidatesWinnerFlagSurvivesDisplaySort(t *testing.T) {
	// A and B tie on score; B leads on raw votes and takes the winner flag.
	// The stable display sort keeps A first, so the winner sits at index 1.
	rows := []results.CandidateRow{
		{BookID: 1, Title: "Book A", ReadersCount: 10, VotesCount: 5},
		{BookID: 2, Title: "Book B", ReadersCount: 20, VotesCount: 10},
	}

	ranked := results.RankCandidates(rows)
	if ranked[0].BookID != 1 {
		t.Errorf("stable sort should keep book 1 first on a score tie, got %d", ranked[0].BookID)
	}
	if ranked[0].IsWinner {
		t.Error("book 1 must not carry the winner flag")
	}
	if !ranked[1].IsWinner || ranked[1].BookID != 2 {
		t.Errorf("expected book 2 flagged as winner at index 1, got %+v", ranked[1])
	}
}

func TestRankCandidatesEmpty(t *testing.T) {
	ranked := results.RankCandidates(nil)
	if len(ranked) != 0 {
		t.Fatalf("expected no entries, got %d", len(ranked))
	}
}

func TestRoundScore(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{1.0 / 3.0, 0.3333},
		{2.0 / 3.0, 0.6667},
		{0.5, 0.5},
		{0, 0},
	}
	for _, tc := range cases {
		if got := results.RoundScore(tc.in); got != tc.want {
			t.Errorf("RoundScore(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestComputeResults(t *testing.T) {
	db := testutil.OpenTestDB(t)
	ctx := context.Background()

	owner := &club.Club{Name: "Test Club", Slug: "test-club", VotingOpen: false}
	if err := club.NewClubRepository(db).Create(ctx, owner); err != nil {
		t.Fatalf("create club: %v", err)
	}

	categoryRepo := category.NewCategoryRepository(db)
	fiction := &category.Category{ClubID: owner.ID, Name: "Fiction", SortOrder: 1, Active: true}
	retired := &category.Category{ClubID: owner.ID, Name: "Retired", SortOrder: 2, Active: false}
	for _, cat := range []*category.Category{fiction, retired} {
		if err := categoryRepo.Create(ctx, cat); err != nil {
			t.Fatalf("create category: %v", err)
		}
	}

	bookA := &book.Book{ClubID: owner.ID, Title: "Book A", ReadersCount: 10}
	bookB := &book.Book{ClubID: owner.ID, Title: "Book B", ReadersCount: 4}
	bookRepo := book.NewBookRepository(db)
	for _, b := range []*book.Book{bookA, bookB} {
		if err := bookRepo.Create(ctx, b); err != nil {
			t.Fatalf("create book: %v", err)
		}
	}

	voters := make([]*voting.Voter, 3)
	for i, name := range []string{"Ann", "Ben", "Cy"} {
		voters[i] = &voting.Voter{ClubID: owner.ID, Name: name}
		if err := db.Create(voters[i]).Error; err != nil {
			t.Fatalf("create voter: %v", err)
		}
	}
	// Book A gets 2 of 10 readers (0.2), book B gets 1 of 4 (0.25).
	ballots := []voting.Vote{
		{VoterID: voters[0].ID, ClubID: owner.ID, CategoryID: fiction.ID, BookID: bookA.ID},
		{VoterID: voters[1].ID, ClubID: owner.ID, CategoryID: fiction.ID, BookID: bookA.ID},
		{VoterID: voters[2].ID, ClubID: owner.ID, CategoryID: fiction.ID, BookID: bookB.ID},
	}
	for i := range ballots {
		if err := db.Create(&ballots[i]).Error; err != nil {
			t.Fatalf("create vote: %v", err)
		}
	}

	memberVotes := []member.MemberVote{
		{VoterID: voters[0].ID, ClubID: owner.ID, NomineeName: "Dana"},
		{VoterID: voters[1].ID, ClubID: owner.ID, NomineeName: "Dana"},
		{VoterID: voters[2].ID, ClubID: owner.ID, NomineeName: "Eli"},
	}
	for i := range memberVotes {
		if err := db.Create(&memberVotes[i]).Error; err != nil {
			t.Fatalf("create member vote: %v", err)
		}
	}

	memberService := member.NewMemberService(member.NewMemberRepository(db), nil)
	service := results.NewResultsService(results.NewResultsRepository(db), categoryRepo, memberService)

	resp, err := service.ComputeResults(ctx, owner)
	if err != nil {
		t.Fatalf("ComputeResults: %v", err)
	}

	if resp.Club.Slug != owner.Slug {
		t.Errorf("expected club echoed back, got %+v", resp.Club)
	}
	if len(resp.Categories) != 2 {
		t.Fatalf("expected both categories including the inactive one, got %d", len(resp.Categories))
	}

	fictionResults := resp.Categories[0]
	if fictionResults.CategoryID != fiction.ID {
		t.Fatalf("expected fiction first by sort_order, got category %d", fictionResults.CategoryID)
	}
	if len(fictionResults.Results) != 2 {
		t.Fatalf("expected 2 ranked books, got %d", len(fictionResults.Results))
	}
	top := fictionResults.Results[0]
	if top.BookID != bookB.ID || !top.IsWinner {
		t.Errorf("expected book B (0.25 share) to win over book A (0.2), got %+v", top)
	}
	if top.WeightedScore != 0.25 || top.VotesCount != 1 {
		t.Errorf("unexpected winner stats: %+v", top)
	}
	if fictionResults.Results[1].WeightedScore != 0.2 {
		t.Errorf("expected book A at 0.2, got %v", fictionResults.Results[1].WeightedScore)
	}

	// A category nobody voted in reports an empty ranking, not an error.
	if n := len(resp.Categories[1].Results); n != 0 {
		t.Errorf("expected empty results for the unvoted category, got %d", n)
	}

	if len(resp.BestMember) != 2 {
		t.Fatalf("expected 2 nominees in the tally, got %d", len(resp.BestMember))
	}
	lead := resp.BestMember[0]
	if lead.NomineeName != "Dana" || lead.VotesCount != 2 || !lead.IsWinner {
		t.Errorf("expected Dana to lead with 2 ballots, got %+v", lead)
	}
	if resp.BestMember[1].IsWinner {
		t.Error("expected exactly one best-member winner")
	}
}

package voting_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"bookclub-service/internal/book"
	"bookclub-service/internal/category"
	"bookclub-service/internal/club"
	"bookclub-service/internal/testutil"
	"bookclub-service/internal/voting"

	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	service  voting.VotingService
	club     *club.Club
	fiction  *category.Category
	inactive *category.Category
	bookA    *book.Book
	bookB    *book.Book
}

func setup(t *testing.T, votingOpen bool) *fixture {
	t.Helper()
	db := testutil.OpenTestDB(t)
	ctx := context.Background()

	owner := &club.Club{Name: "Test Club", Slug: "test-club", VotingOpen: votingOpen}
	if err := club.NewClubRepository(db).Create(ctx, owner); err != nil {
		t.Fatalf("create club: %v", err)
	}

	categoryRepo := category.NewCategoryRepository(db)
	fiction := &category.Category{ClubID: owner.ID, Name: "Fiction", SortOrder: 1, Active: true}
	if err := categoryRepo.Create(ctx, fiction); err != nil {
		t.Fatalf("create category: %v", err)
	}
	inactive := &category.Category{ClubID: owner.ID, Name: "Retired", SortOrder: 2, Active: false}
	if err := categoryRepo.Create(ctx, inactive); err != nil {
		t.Fatalf("create category: %v", err)
	}

	bookRepo := book.NewBookRepository(db)
	bookA := &book.Book{ClubID: owner.ID, Title: "Book A", ReadersCount: 10}
	bookB := &book.Book{ClubID: owner.ID, Title: "Book B", ReadersCount: 20}
	for _, b := range []*book.Book{bookA, bookB} {
		if err := bookRepo.Create(ctx, b); err != nil {
			t.Fatalf("create book: %v", err)
		}
	}

	return &fixture{
		db:       db,
		service:  voting.NewVotingService(voting.NewVotingRepository(db), categoryRepo, bookRepo),
		club:     owner,
		fiction:  fiction,
		inactive: inactive,
		bookA:    bookA,
		bookB:    bookB,
	}
}

func (f *fixture) voterCount(t *testing.T, name string) int64 {
	t.Helper()
	var n int64
	err := f.db.Model(&voting.Voter{}).Where("club_id = ? AND name = ?", f.club.ID, name).Count(&n).Error
	if err != nil {
		t.Fatalf("count voters: %v", err)
	}
	return n
}

func (f *fixture) voteCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	if err := f.db.Model(&voting.Vote{}).Count(&n).Error; err != nil {
		t.Fatalf("count votes: %v", err)
	}
	return n
}

func TestResolveVoterCreatesWithTrimmedName(t *testing.T) {
	f := setup(t, true)

	voter, err := f.service.ResolveVoter(context.Background(), f.club, "  Sam  ")
	if err != nil {
		t.Fatalf("ResolveVoter: %v", err)
	}
	if voter.Name != "Sam" {
		t.Errorf("expected trimmed name %q, got %q", "Sam", voter.Name)
	}
	if voter.ID == 0 {
		t.Error("expected a persisted voter id")
	}
	if n := f.voterCount(t, "Sam"); n != 1 {
		t.Errorf("expected 1 voter row, got %d", n)
	}
}

func TestResolveVoterRejectsEmptyName(t *testing.T) {
	f := setup(t, true)

	for _, name := range []string{"", "   ", "\t\n"} {
		if _, err := f.service.ResolveVoter(context.Background(), f.club, name); !errors.Is(err, voting.ErrEmptyVoterName) {
			t.Errorf("name %q: expected ErrEmptyVoterName, got %v", name, err)
		}
	}
}

func TestResolveVoterReturnsExisting(t *testing.T) {
	f := setup(t, true)
	ctx := context.Background()

	first, err := f.service.ResolveVoter(ctx, f.club, "Sam")
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	second, err := f.service.ResolveVoter(ctx, f.club, "Sam")
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("expected same voter, got ids %d and %d", first.ID, second.ID)
	}
	if n := f.voterCount(t, "Sam"); n != 1 {
		t.Errorf("expected 1 voter row, got %d", n)
	}
}

func TestResolveVoterConcurrent(t *testing.T) {
	f := setup(t, true)

	const workers = 8
	ids := make([]uint, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			voter, err := f.service.ResolveVoter(context.Background(), f.club, "Sam")
			if err != nil {
				errs[i] = err
				return
			}
			ids[i] = voter.ID
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("worker %d: %v", i, errs[i])
		}
		if ids[i] != ids[0] {
			t.Errorf("worker %d resolved voter %d, worker 0 resolved %d", i, ids[i], ids[0])
		}
	}
	if n := f.voterCount(t, "Sam"); n != 1 {
		t.Errorf("expected 1 voter row after concurrent resolution, got %d", n)
	}
}

// stubRepo forces the insert-conflict path deterministically: the initial
// lookup misses, the insert reports a duplicate, and the re-read either finds
// the row the racing writer created or keeps missing.
type stubRepo struct {
	voting.VotingRepository
	rereadFinds bool
	voter       voting.Voter
	lookups     int
}

func (s *stubRepo) FindVoterByName(ctx context.Context, clubID uint, name string) (*voting.Voter, error) {
	s.lookups++
	if s.lookups == 1 || !s.rereadFinds {
		return nil, gorm.ErrRecordNotFound
	}
	v := s.voter
	return &v, nil
}

func (s *stubRepo) CreateVoter(ctx context.Context, voter *voting.Voter) error {
	return gorm.ErrDuplicatedKey
}

func TestResolveVoterRecoversFromInsertConflict(t *testing.T) {
	stub := &stubRepo{rereadFinds: true, voter: voting.Voter{ID: 7, ClubID: 1, Name: "Sam"}}
	service := voting.NewVotingService(stub, nil, nil)

	voter, err := service.ResolveVoter(context.Background(), &club.Club{ID: 1, VotingOpen: true}, "Sam")
	if err != nil {
		t.Fatalf("ResolveVoter: %v", err)
	}
	if voter.ID != 7 {
		t.Errorf("expected the re-read voter, got id %d", voter.ID)
	}
	if stub.lookups != 2 {
		t.Errorf("expected lookup, conflict, re-read; got %d lookups", stub.lookups)
	}
}

func TestResolveVoterConflictWithFailedRereadEscalates(t *testing.T) {
	stub := &stubRepo{rereadFinds: false}
	service := voting.NewVotingService(stub, nil, nil)

	_, err := service.ResolveVoter(context.Background(), &club.Club{ID: 1, VotingOpen: true}, "Sam")
	if err == nil {
		t.Fatal("expected an error when the post-conflict re-read misses")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected the underlying store error, got %v", err)
	}
}

func TestSubmitVotesRejectedWhenClosed(t *testing.T) {
	f := setup(t, false)

	req := &voting.VoteSubmissionRequest{
		VoterName: "Sam",
		Votes:     []voting.VoteEntry{{CategoryID: f.fiction.ID, BookID: f.bookA.ID}},
	}
	_, _, err := f.service.SubmitVotes(context.Background(), f.club, req)
	if !errors.Is(err, voting.ErrVotingClosed) {
		t.Fatalf("expected ErrVotingClosed, got %v", err)
	}
	if n := f.voterCount(t, "Sam"); n != 0 {
		t.Errorf("closed submission must not create a voter, found %d", n)
	}
	if n := f.voteCount(t); n != 0 {
		t.Errorf("closed submission must not create votes, found %d", n)
	}
}

func TestSubmitVotesUnknownCategory(t *testing.T) {
	f := setup(t, true)

	req := &voting.VoteSubmissionRequest{
		VoterName: "Sam",
		Votes: []voting.VoteEntry{
			{CategoryID: f.fiction.ID, BookID: f.bookA.ID},
			{CategoryID: 999, BookID: f.bookA.ID},
		},
	}
	_, _, err := f.service.SubmitVotes(context.Background(), f.club, req)

	var refErr *voting.InvalidReferenceError
	if !errors.As(err, &refErr) {
		t.Fatalf("expected InvalidReferenceError, got %v", err)
	}
	if refErr.Kind != "category" || refErr.ID != 999 {
		t.Errorf("expected invalid category 999, got %s %d", refErr.Kind, refErr.ID)
	}
	if n := f.voteCount(t); n != 0 {
		t.Errorf("failed batch must not write any votes, found %d", n)
	}
}

func TestSubmitVotesInactiveCategory(t *testing.T) {
	f := setup(t, true)

	req := &voting.VoteSubmissionRequest{
		VoterName: "Sam",
		Votes:     []voting.VoteEntry{{CategoryID: f.inactive.ID, BookID: f.bookA.ID}},
	}
	_, _, err := f.service.SubmitVotes(context.Background(), f.club, req)

	var refErr *voting.InvalidReferenceError
	if !errors.As(err, &refErr) {
		t.Fatalf("expected InvalidReferenceError for inactive category, got %v", err)
	}
	if refErr.Kind != "category" || refErr.ID != f.inactive.ID {
		t.Errorf("expected invalid category %d, got %s %d", f.inactive.ID, refErr.Kind, refErr.ID)
	}
}

func TestSubmitVotesCrossClubReferences(t *testing.T) {
	f := setup(t, true)
	ctx := context.Background()

	other := &club.Club{Name: "Other Club", Slug: "other-club", VotingOpen: true}
	if err := club.NewClubRepository(f.db).Create(ctx, other); err != nil {
		t.Fatalf("create club: %v", err)
	}
	foreignCategory := &category.Category{ClubID: other.ID, Name: "Foreign", Active: true}
	if err := category.NewCategoryRepository(f.db).Create(ctx, foreignCategory); err != nil {
		t.Fatalf("create category: %v", err)
	}
	foreignBook := &book.Book{ClubID: other.ID, Title: "Foreign Book"}
	if err := book.NewBookRepository(f.db).Create(ctx, foreignBook); err != nil {
		t.Fatalf("create book: %v", err)
	}

	var refErr *voting.InvalidReferenceError

	req := &voting.VoteSubmissionRequest{
		VoterName: "Sam",
		Votes:     []voting.VoteEntry{{CategoryID: foreignCategory.ID, BookID: f.bookA.ID}},
	}
	_, _, err := f.service.SubmitVotes(ctx, f.club, req)
	if !errors.As(err, &refErr) || refErr.Kind != "category" {
		t.Errorf("cross-club category: expected invalid category, got %v", err)
	}

	req = &voting.VoteSubmissionRequest{
		VoterName: "Sam",
		Votes:     []voting.VoteEntry{{CategoryID: f.fiction.ID, BookID: foreignBook.ID}},
	}
	_, _, err = f.service.SubmitVotes(ctx, f.club, req)
	if !errors.As(err, &refErr) || refErr.Kind != "book" {
		t.Errorf("cross-club book: expected invalid book, got %v", err)
	}
}

func TestSubmitVotesOverwritesAcrossSubmissions(t *testing.T) {
	f := setup(t, true)
	ctx := context.Background()

	first := &voting.VoteSubmissionRequest{
		VoterName: "Sam",
		Votes:     []voting.VoteEntry{{CategoryID: f.fiction.ID, BookID: f.bookA.ID}},
	}
	if _, _, err := f.service.SubmitVotes(ctx, f.club, first); err != nil {
		t.Fatalf("first submission: %v", err)
	}

	second := &voting.VoteSubmissionRequest{
		VoterName: "Sam",
		Votes:     []voting.VoteEntry{{CategoryID: f.fiction.ID, BookID: f.bookB.ID}},
	}
	voter, votes, err := f.service.SubmitVotes(ctx, f.club, second)
	if err != nil {
		t.Fatalf("second submission: %v", err)
	}
	if len(votes) != 1 || votes[0].BookID != f.bookB.ID {
		t.Fatalf("expected one updated vote for book %d, got %+v", f.bookB.ID, votes)
	}

	var stored []voting.Vote
	err = f.db.Where("voter_id = ? AND category_id = ?", voter.ID, f.fiction.ID).Find(&stored).Error
	if err != nil {
		t.Fatalf("load votes: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("expected exactly one vote row, got %d", len(stored))
	}
	if stored[0].BookID != f.bookB.ID {
		t.Errorf("expected last submission to win, stored book %d", stored[0].BookID)
	}
}

func TestSubmitVotesSameCategoryTwiceInBatch(t *testing.T) {
	f := setup(t, true)

	req := &voting.VoteSubmissionRequest{
		VoterName: "Sam",
		Votes: []voting.VoteEntry{
			{CategoryID: f.fiction.ID, BookID: f.bookA.ID},
			{CategoryID: f.fiction.ID, BookID: f.bookB.ID},
		},
	}
	voter, votes, err := f.service.SubmitVotes(context.Background(), f.club, req)
	if err != nil {
		t.Fatalf("SubmitVotes: %v", err)
	}
	if len(votes) != 2 {
		t.Fatalf("expected both entries reported, got %d", len(votes))
	}

	var stored []voting.Vote
	err = f.db.Where("voter_id = ? AND category_id = ?", voter.ID, f.fiction.ID).Find(&stored).Error
	if err != nil {
		t.Fatalf("load votes: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("expected a single vote row, got %d", len(stored))
	}
	if stored[0].BookID != f.bookB.ID {
		t.Errorf("expected last entry in batch order to win, stored book %d", stored[0].BookID)
	}
}

func TestSubmitVotesMultipleCategories(t *testing.T) {
	f := setup(t, true)
	ctx := context.Background()

	second := &category.Category{ClubID: f.club.ID, Name: "Nonfiction", SortOrder: 3, Active: true}
	if err := category.NewCategoryRepository(f.db).Create(ctx, second); err != nil {
		t.Fatalf("create category: %v", err)
	}

	req := &voting.VoteSubmissionRequest{
		VoterName: "Sam",
		Votes: []voting.VoteEntry{
			{CategoryID: f.fiction.ID, BookID: f.bookA.ID},
			{CategoryID: second.ID, BookID: f.bookB.ID},
		},
	}
	_, votes, err := f.service.SubmitVotes(ctx, f.club, req)
	if err != nil {
		t.Fatalf("SubmitVotes: %v", err)
	}
	if len(votes) != 2 {
		t.Fatalf("expected 2 votes, got %d", len(votes))
	}
	for _, vote := range votes {
		if vote.ID == 0 {
			t.Error("expected persisted vote ids in the response")
		}
		if vote.ClubID != f.club.ID {
			t.Errorf("expected denormalized club id %d, got %d", f.club.ID, vote.ClubID)
		}
	}
	if n := f.voteCount(t); n != 2 {
		t.Errorf("expected 2 vote rows, got %d", n)
	}
}

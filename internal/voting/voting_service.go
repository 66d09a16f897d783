package voting

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bookclub-service/internal/book"
	"bookclub-service/internal/category"
	"bookclub-service/internal/club"

	"gorm.io/gorm"
)

var (
	ErrEmptyVoterName = errors.New("voter name is required")
	ErrVotingClosed   = errors.New("voting is closed for this club")
)

// InvalidReferenceError reports a selection that names a category or book the
// club does not offer.
type InvalidReferenceError struct {
	Kind string
	ID   uint
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid %s %d", e.Kind, e.ID)
}

type VotingService interface {
	// ResolveVoter maps a display name to the club's voter row, creating it
	// on first use. Concurrent first-time resolutions of the same name
	// converge on a single row.
	ResolveVoter(ctx context.Context, owner *club.Club, displayName string) (*Voter, error)
	// SubmitVotes applies a batch of category/book selections for the named
	// voter. The whole batch is validated before anything is written.
	SubmitVotes(ctx context.Context, owner *club.Club, req *VoteSubmissionRequest) (*Voter, []Vote, error)
}

type votingService struct {
	repo         VotingRepository
	categoryRepo category.CategoryRepository
	bookRepo     book.BookRepository
}

func NewVotingService(repo VotingRepository, categoryRepo category.CategoryRepository, bookRepo book.BookRepository) VotingService {
	return &votingService{repo: repo, categoryRepo: categoryRepo, bookRepo: bookRepo}
}

func (s *votingService) ResolveVoter(ctx context.Context, owner *club.Club, displayName string) (*Voter, error) {
	name := strings.TrimSpace(displayName)
	if name == "" {
		return nil, ErrEmptyVoterName
	}

	voter, err := s.repo.FindVoterByName(ctx, owner.ID, name)
	if err == nil {
		return voter, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	voter = &Voter{ClubID: owner.ID, Name: name}
	err = s.repo.CreateVoter(ctx, voter)
	if err == nil {
		return voter, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, err
	}

	// Lost the insert race: another submission created the row between the
	// lookup and the insert. Re-read by the natural key; a miss here is a
	// genuine fault, not something to paper over.
	voter, err = s.repo.FindVoterByName(ctx, owner.ID, name)
	if err != nil {
		return nil, fmt.Errorf("re-read voter after conflict: %w", err)
	}
	return voter, nil
}

func (s *votingService) SubmitVotes(ctx context.Context, owner *club.Club, req *VoteSubmissionRequest) (*Voter, []Vote, error) {
	if !owner.VotingOpen {
		return nil, nil, ErrVotingClosed
	}

	voter, err := s.ResolveVoter(ctx, owner, req.VoterName)
	if err != nil {
		return nil, nil, err
	}

	categories, err := s.categoryRepo.FindByClubID(ctx, owner.ID, true)
	if err != nil {
		return nil, nil, err
	}
	validCategories := make(map[uint]struct{}, len(categories))
	for _, cat := range categories {
		validCategories[cat.ID] = struct{}{}
	}

	books, err := s.bookRepo.FindByClubID(ctx, owner.ID)
	if err != nil {
		return nil, nil, err
	}
	validBooks := make(map[uint]struct{}, len(books))
	for _, b := range books {
		validBooks[b.ID] = struct{}{}
	}

	// Validate the entire batch up front so a bad entry never leaves earlier
	// entries committed.
	for _, entry := range req.Votes {
		if _, ok := validCategories[entry.CategoryID]; !ok {
			return nil, nil, &InvalidReferenceError{Kind: "category", ID: entry.CategoryID}
		}
		if _, ok := validBooks[entry.BookID]; !ok {
			return nil, nil, &InvalidReferenceError{Kind: "book", ID: entry.BookID}
		}
	}

	updated := make([]Vote, 0, len(req.Votes))
	for _, entry := range req.Votes {
		vote, err := s.upsertVote(ctx, owner, voter, entry)
		if err != nil {
			return nil, nil, err
		}
		updated = append(updated, *vote)
	}
	return voter, updated, nil
}

// upsertVote enforces the one-vote-per-voter-per-category rule: an existing
// row has its book overwritten, otherwise a new row is inserted. A duplicate
// entry for the same category later in the batch finds the fresh row and
// overwrites it, so last in batch order wins.
func (s *votingService) upsertVote(ctx context.Context, owner *club.Club, voter *Voter, entry VoteEntry) (*Vote, error) {
	existing, err := s.repo.FindVote(ctx, voter.ID, entry.CategoryID)
	if err == nil {
		existing.BookID = entry.BookID
		if err := s.repo.UpdateVote(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	vote := &Vote{
		VoterID:    voter.ID,
		ClubID:     owner.ID,
		CategoryID: entry.CategoryID,
		BookID:     entry.BookID,
	}
	if err := s.repo.CreateVote(ctx, vote); err != nil {
		return nil, err
	}
	return vote, nil
}

package member

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bookclub-service/internal/club"
	"bookclub-service/internal/voting"

	"gorm.io/gorm"
)

var (
	ErrNomineeExists   = errors.New("nominee already exists")
	ErrNomineeNotFound = errors.New("nominee not found")
)

// UnknownNomineeError reports a ballot naming a nominee the club does not have.
type UnknownNomineeError struct {
	Name string
}

func (e *UnknownNomineeError) Error() string {
	return fmt.Sprintf("unknown nominee %q", e.Name)
}

type MemberService interface {
	AddNominee(ctx context.Context, clubID uint, req *CreateNomineeRequest) (*MemberNominee, error)
	GetNomineesByClub(ctx context.Context, clubID uint) ([]MemberNominee, error)
	RemoveNominee(ctx context.Context, clubID, id uint) error
	// SubmitBallot records the voter's single best-member choice for the
	// club, overwriting any earlier ballot.
	SubmitBallot(ctx context.Context, owner *club.Club, req *MemberVoteRequest) (*MemberVote, error)
	// ComputeTally returns the per-nominee ballot counts with the winner
	// flagged, or an empty list when no ballots were cast.
	ComputeTally(ctx context.Context, clubID uint) ([]MemberResult, error)
}

type memberService struct {
	repo          MemberRepository
	votingService voting.VotingService
}

func NewMemberService(repo MemberRepository, votingService voting.VotingService) MemberService {
	return &memberService{repo: repo, votingService: votingService}
}

func (s *memberService) AddNominee(ctx context.Context, clubID uint, req *CreateNomineeRequest) (*MemberNominee, error) {
	nominee := &MemberNominee{ClubID: clubID, Name: strings.TrimSpace(req.Name)}
	if err := s.repo.CreateNominee(ctx, nominee); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNomineeExists
		}
		return nil, err
	}
	return nominee, nil
}

func (s *memberService) GetNomineesByClub(ctx context.Context, clubID uint) ([]MemberNominee, error) {
	return s.repo.FindNomineesByClubID(ctx, clubID)
}

func (s *memberService) RemoveNominee(ctx context.Context, clubID, id uint) error {
	nominee, err := s.repo.FindNomineeByID(ctx, clubID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNomineeNotFound
		}
		return err
	}
	return s.repo.DeleteNominee(ctx, nominee)
}

func (s *memberService) SubmitBallot(ctx context.Context, owner *club.Club, req *MemberVoteRequest) (*MemberVote, error) {
	if !owner.VotingOpen {
		return nil, voting.ErrVotingClosed
	}

	voter, err := s.votingService.ResolveVoter(ctx, owner, req.VoterName)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.NomineeName)
	nominee, err := s.repo.FindNomineeByName(ctx, owner.ID, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &UnknownNomineeError{Name: name}
		}
		return nil, err
	}

	ballot, err := s.repo.FindBallot(ctx, owner.ID, voter.ID)
	if err == nil {
		ballot.NomineeName = nominee.Name
		if err := s.repo.UpdateBallot(ctx, ballot); err != nil {
			return nil, err
		}
		return ballot, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	ballot = &MemberVote{VoterID: voter.ID, ClubID: owner.ID, NomineeName: nominee.Name}
	err = s.repo.CreateBallot(ctx, ballot)
	if err == nil {
		return ballot, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, err
	}

	// Two first ballots for the same voter raced; take over the winning row.
	ballot, err = s.repo.FindBallot(ctx, owner.ID, voter.ID)
	if err != nil {
		return nil, fmt.Errorf("re-read ballot after conflict: %w", err)
	}
	ballot.NomineeName = nominee.Name
	if err := s.repo.UpdateBallot(ctx, ballot); err != nil {
		return nil, err
	}
	return ballot, nil
}

func (s *memberService) ComputeTally(ctx context.Context, clubID uint) ([]MemberResult, error) {
	rows, err := s.repo.Tally(ctx, clubID)
	if err != nil {
		return nil, err
	}

	results := make([]MemberResult, len(rows))
	for i, row := range rows {
		results[i] = MemberResult{
			NomineeName: row.NomineeName,
			VotesCount:  row.VotesCount,
			// Rows arrive most votes first; the leader is the first row.
			IsWinner: i == 0,
		}
	}
	return results, nil
}

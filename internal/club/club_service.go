package club

import (
	"context"
	"errors"
	"regexp"

	"gorm.io/gorm"
)

var (
	ErrClubNotFound = errors.New("club not found")
	ErrSlugExists   = errors.New("slug already exists")
	ErrInvalidSlug  = errors.New("slug must contain only letters, digits, '-' and '_'")
)

var slugPattern = regexp.MustCompile(`^[a-zA-Z0-9-_]+$`)

type ClubService interface {
	CreateClub(ctx context.Context, req *CreateClubRequest) (*Club, error)
	ListClubs(ctx context.Context) ([]Club, error)
	GetClubBySlug(ctx context.Context, slug string) (*Club, error)
	SetVotingState(ctx context.Context, slug string, open bool) (*Club, error)
}

type clubService struct {
	repo ClubRepository
}

func NewClubService(repo ClubRepository) ClubService {
	return &clubService{repo: repo}
}

func (s *clubService) CreateClub(ctx context.Context, req *CreateClubRequest) (*Club, error) {
	if !slugPattern.MatchString(req.Slug) {
		return nil, ErrInvalidSlug
	}

	club := &Club{
		Name:       req.Name,
		Slug:       req.Slug,
		VotingOpen: true,
	}
	if req.VotingOpen != nil {
		club.VotingOpen = *req.VotingOpen
	}

	if err := s.repo.Create(ctx, club); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugExists
		}
		return nil, err
	}
	return club, nil
}

func (s *clubService) ListClubs(ctx context.Context) ([]Club, error) {
	return s.repo.List(ctx)
}

func (s *clubService) GetClubBySlug(ctx context.Context, slug string) (*Club, error) {
	club, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}
	return club, nil
}

func (s *clubService) SetVotingState(ctx context.Context, slug string, open bool) (*Club, error) {
	club, err := s.GetClubBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	club.VotingOpen = open
	if err := s.repo.Update(ctx, club); err != nil {
		return nil, err
	}
	return club, nil
}

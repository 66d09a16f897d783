package voting

import (
	"context"

	"gorm.io/gorm"
)

type VotingRepository interface {
	FindVoterByName(ctx context.Context, clubID uint, name string) (*Voter, error)
	CreateVoter(ctx context.Context, voter *Voter) error
	FindVote(ctx context.Context, voterID, categoryID uint) (*Vote, error)
	CreateVote(ctx context.Context, vote *Vote) error
	UpdateVote(ctx context.Context, vote *Vote) error
}

type votingRepository struct {
	db *gorm.DB
}

func NewVotingRepository(db *gorm.DB) VotingRepository {
	return &votingRepository{db: db}
}

func (r *votingRepository) FindVoterByName(ctx context.Context, clubID uint, name string) (*Voter, error) {
	var voter Voter
	err := r.db.WithContext(ctx).First(&voter, "club_id = ? AND name = ?", clubID, name).Error
	if err != nil {
		return nil, err
	}
	return &voter, nil
}

func (r *votingRepository) CreateVoter(ctx context.Context, voter *Voter) error {
	return r.db.WithContext(ctx).Create(voter).Error
}

func (r *votingRepository) FindVote(ctx context.Context, voterID, categoryID uint) (*Vote, error) {
	var vote Vote
	err := r.db.WithContext(ctx).First(&vote, "voter_id = ? AND category_id = ?", voterID, categoryID).Error
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

func (r *votingRepository) CreateVote(ctx context.Context, vote *Vote) error {
	return r.db.WithContext(ctx).Create(vote).Error
}

func (r *votingRepository) UpdateVote(ctx context.Context, vote *Vote) error {
	return r.db.WithContext(ctx).Save(vote).Error
}

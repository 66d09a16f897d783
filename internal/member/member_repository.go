package member

import (
	"context"

	"gorm.io/gorm"
)

// TallyRow is a nominee's aggregated ballot count.
type TallyRow struct {
	NomineeName string
	VotesCount  int
}

type MemberRepository interface {
	CreateNominee(ctx context.Context, nominee *MemberNominee) error
	FindNomineeByID(ctx context.Context, clubID, id uint) (*MemberNominee, error)
	FindNomineeByName(ctx context.Context, clubID uint, name string) (*MemberNominee, error)
	FindNomineesByClubID(ctx context.Context, clubID uint) ([]MemberNominee, error)
	DeleteNominee(ctx context.Context, nominee *MemberNominee) error

	FindBallot(ctx context.Context, clubID, voterID uint) (*MemberVote, error)
	CreateBallot(ctx context.Context, ballot *MemberVote) error
	UpdateBallot(ctx context.Context, ballot *MemberVote) error
	// Tally counts ballots per nominee, most votes first, ties by name.
	Tally(ctx context.Context, clubID uint) ([]TallyRow, error)
}

type memberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) CreateNominee(ctx context.Context, nominee *MemberNominee) error {
	return r.db.WithContext(ctx).Create(nominee).Error
}

func (r *memberRepository) FindNomineeByID(ctx context.Context, clubID, id uint) (*MemberNominee, error) {
	var nominee MemberNominee
	err := r.db.WithContext(ctx).First(&nominee, "id = ? AND club_id = ?", id, clubID).Error
	if err != nil {
		return nil, err
	}
	return &nominee, nil
}

func (r *memberRepository) FindNomineeByName(ctx context.Context, clubID uint, name string) (*MemberNominee, error) {
	var nominee MemberNominee
	err := r.db.WithContext(ctx).First(&nominee, "club_id = ? AND name = ?", clubID, name).Error
	if err != nil {
		return nil, err
	}
	return &nominee, nil
}

func (r *memberRepository) FindNomineesByClubID(ctx context.Context, clubID uint) ([]MemberNominee, error) {
	var nominees []MemberNominee
	err := r.db.WithContext(ctx).Where("club_id = ?", clubID).Order("name").Find(&nominees).Error
	return nominees, err
}

func (r *memberRepository) DeleteNominee(ctx context.Context, nominee *MemberNominee) error {
	return r.db.WithContext(ctx).Delete(nominee).Error
}

func (r *memberRepository) FindBallot(ctx context.Context, clubID, voterID uint) (*MemberVote, error) {
	var ballot MemberVote
	err := r.db.WithContext(ctx).First(&ballot, "club_id = ? AND voter_id = ?", clubID, voterID).Error
	if err != nil {
		return nil, err
	}
	return &ballot, nil
}

func (r *memberRepository) CreateBallot(ctx context.Context, ballot *MemberVote) error {
	return r.db.WithContext(ctx).Create(ballot).Error
}

func (r *memberRepository) UpdateBallot(ctx context.Context, ballot *MemberVote) error {
	return r.db.WithContext(ctx).Save(ballot).Error
}

func (r *memberRepository) Tally(ctx context.Context, clubID uint) ([]TallyRow, error) {
	var rows []TallyRow
	err := r.db.WithContext(ctx).
		Table("best_member_votes").
		Select("nominee_name, COUNT(id) AS votes_count").
		Where("club_id = ?", clubID).
		Group("nominee_name").
		Order("votes_count DESC").
		Order("nominee_name").
		Scan(&rows).Error
	return rows, err
}

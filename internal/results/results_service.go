package results

import (
	"context"
	"math"
	"sort"

	"bookclub-service/internal/category"
	"bookclub-service/internal/club"
	"bookclub-service/internal/member"
)

type BookResult struct {
	BookID        uint    `json:"book_id"`
	Title         string  `json:"title"`
	Author        *string `json:"author"`
	ReadersCount  int     `json:"readers_count"`
	VotesCount    int     `json:"votes_count"`
	WeightedScore float64 `json:"weighted_score"`
	IsWinner      bool    `json:"is_winner"`
}

type CategoryResult struct {
	CategoryID   uint         `json:"category_id"`
	CategoryName string       `json:"category_name"`
	Results      []BookResult `json:"results"`
}

type ResultsResponse struct {
	Club       *club.Club            `json:"club"`
	Categories []CategoryResult      `json:"categories"`
	BestMember []member.MemberResult `json:"best_member"`
}

type ResultsService interface {
	// ComputeResults builds the full award standing for a club: a weighted
	// per-category ranking of voted books plus the best-member tally. Pure
	// read; safe to call while voting is still in progress.
	ComputeResults(ctx context.Context, owner *club.Club) (*ResultsResponse, error)
}

type resultsService struct {
	repo          ResultsRepository
	categoryRepo  category.CategoryRepository
	memberService member.MemberService
}

func NewResultsService(repo ResultsRepository, categoryRepo category.CategoryRepository, memberService member.MemberService) ResultsService {
	return &resultsService{repo: repo, categoryRepo: categoryRepo, memberService: memberService}
}

func (s *resultsService) ComputeResults(ctx context.Context, owner *club.Club) (*ResultsResponse, error) {
	categories, err := s.categoryRepo.FindByClubID(ctx, owner.ID, false)
	if err != nil {
		return nil, err
	}

	categoryResults := make([]CategoryResult, 0, len(categories))
	for _, cat := range categories {
		rows, err := s.repo.FindCandidates(ctx, cat.ID)
		if err != nil {
			return nil, err
		}
		categoryResults = append(categoryResults, CategoryResult{
			CategoryID:   cat.ID,
			CategoryName: cat.Name,
			Results:      rankCandidates(rows),
		})
	}

	bestMember, err := s.memberService.ComputeTally(ctx, owner.ID)
	if err != nil {
		return nil, err
	}

	return &ResultsResponse{
		Club:       owner,
		Categories: categoryResults,
		BestMember: bestMember,
	}, nil
}

// rankCandidates scores each voted book and flags the winner. The winner is
// picked by a single left-to-right leader scan over the enumeration order: a
// candidate takes the lead when its score strictly beats the current best, or
// ties it with strictly more raw votes. The scan runs on full precision and
// BEFORE the display sort; a score tie can therefore leave the winner flag on
// a book that is not first in the sorted list. That is the contract, not a
// bug; do not re-derive the winner from the sorted output.
func rankCandidates(rows []CandidateRow) []BookResult {
	entries := make([]BookResult, 0, len(rows))

	winnerIdx := -1
	bestScore := -1.0
	bestVotes := -1
	for idx, row := range rows {
		readers := row.ReadersCount
		if readers < 0 {
			readers = 0
		}

		var weighted float64
		if readers > 0 {
			weighted = float64(row.VotesCount) / float64(readers)
		}

		if weighted > bestScore || (weighted == bestScore && row.VotesCount > bestVotes) {
			bestScore = weighted
			bestVotes = row.VotesCount
			winnerIdx = idx
		}

		entries = append(entries, BookResult{
			BookID:        row.BookID,
			Title:         row.Title,
			Author:        row.Author,
			ReadersCount:  readers,
			VotesCount:    row.VotesCount,
			WeightedScore: roundScore(weighted),
		})
	}
	if winnerIdx >= 0 {
		entries[winnerIdx].IsWinner = true
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].WeightedScore > entries[j].WeightedScore
	})
	return entries
}

// roundScore rounds to 4 decimal digits for display. Winner selection always
// runs on the unrounded value.
func roundScore(score float64) float64 {
	return math.Round(score*10000) / 10000
}

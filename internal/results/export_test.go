package results

var (
	RankCandidates = rankCandidates
	RoundScore     = roundScore
)

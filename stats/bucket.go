package stats

type PlayerAverages struct {
	Goals        float64 `json:"goals"`
	Assists      float64 `json:"assists"`
	GoalsAssists float64 `json:"goals_assists"`
	CleanSheets  float64 `json:"clean_sheets"`
	YellowCards  float64 `json:"yellow_cards"`
	RedCards     float64 `json:"red_cards"`
	OwnGoals     float64 `json:"own_goals"`
	SubsIn       float64 `json:"subs_in"`
	SubsOut      float64 `json:"subs_out"`
}

type PlayerBucket struct {
	Matches      int `json:"matches"`
	Wins         int `json:"wins"`
	Draws        int `json:"draws"`
	Losses       int `json:"losses"`
	Goals        int `json:"goals"`
	Assists      int `json:"assists"`
	GoalsAssists int `json:"goals_assists"`
	CleanSheets  int `json:"clean_sheets"`
	YellowCards  int `json:"yellow_cards"`
	RedCards     int `json:"red_cards"`
	OwnGoals     int `json:"own_goals"`
	SubsIn       int `json:"subs_in"`
	SubsOut      int `json:"subs_out"`

	PerMatch PlayerAverages `json:"per_match"`
}

func (b *PlayerBucket) add(other *PlayerBucket) {
	b.Matches += other.Matches
	b.Wins += other.Wins
	b.Draws += other.Draws
	b.Losses += other.Losses
	b.Goals += other.Goals
	b.Assists += other.Assists
	b.CleanSheets += other.CleanSheets
	b.YellowCards += other.YellowCards
	b.RedCards += other.RedCards
	b.OwnGoals += other.OwnGoals
	b.SubsIn += other.SubsIn
	b.SubsOut += other.SubsOut
	b.finish()
}

// finish пересчитывает производные поля. При нуле матчей средние равны нулю.
func (b *PlayerBucket) finish() {
	b.GoalsAssists = b.Goals + b.Assists
	b.PerMatch = PlayerAverages{
		Goals:        perMatch(b.Goals, b.Matches),
		Assists:      perMatch(b.Assists, b.Matches),
		GoalsAssists: perMatch(b.GoalsAssists, b.Matches),
		CleanSheets:  perMatch(b.CleanSheets, b.Matches),
		YellowCards:  perMatch(b.YellowCards, b.Matches),
		RedCards:     perMatch(b.RedCards, b.Matches),
		OwnGoals:     perMatch(b.OwnGoals, b.Matches),
		SubsIn:       perMatch(b.SubsIn, b.Matches),
		SubsOut:      perMatch(b.SubsOut, b.Matches),
	}
}

type TeamAverages struct {
	Goals        float64 `json:"goals"`
	Conceded     float64 `json:"conceded"`
	GoalDiff     float64 `json:"goal_diff"`
	Assists      float64 `json:"assists"`
	GoalsAssists float64 `json:"goals_assists"`
	CleanSheets  float64 `json:"clean_sheets"`
	Subs         float64 `json:"subs"`
	OwnGoals     float64 `json:"own_goals"`
	YellowCards  float64 `json:"yellow_cards"`
	RedCards     float64 `json:"red_cards"`
	Points       float64 `json:"points"`
}

type TeamBucket struct {
	Matches     int     `json:"matches"`
	Wins        int     `json:"wins"`
	Draws       int     `json:"draws"`
	Losses      int     `json:"losses"`
	WinRate     float64 `json:"win_rate"`
	Points      int     `json:"points"`
	Goals       int     `json:"goals"`
	Conceded    int     `json:"conceded"`
	GoalDiff    int     `json:"goal_diff"`
	Assists     int     `json:"assists"`
	CleanSheets int     `json:"clean_sheets"`
	Subs        int     `json:"subs"`
	OwnGoals    int     `json:"own_goals"`
	YellowCards int     `json:"yellow_cards"`
	RedCards    int     `json:"red_cards"`

	PerMatch TeamAverages `json:"per_match"`
}

func (b *TeamBucket) add(other *TeamBucket) {
	b.Matches += other.Matches
	b.Wins += other.Wins
	b.Draws += other.Draws
	b.Losses += other.Losses
	b.Goals += other.Goals
	b.Conceded += other.Conceded
	b.Assists += other.Assists
	b.CleanSheets += other.CleanSheets
	b.Subs += other.Subs
	b.OwnGoals += other.OwnGoals
	b.YellowCards += other.YellowCards
	b.RedCards += other.RedCards
	b.finish()
}

func (b *TeamBucket) finish() {
	b.Points = b.Wins*3 + b.Draws
	b.GoalDiff = b.Goals - b.Conceded
	b.WinRate = perMatch(b.Wins, b.Matches) * 100
	b.PerMatch = TeamAverages{
		Goals:        perMatch(b.Goals, b.Matches),
		Conceded:     perMatch(b.Conceded, b.Matches),
		GoalDiff:     perMatch(b.Goals, b.Matches) - perMatch(b.Conceded, b.Matches),
		Assists:      perMatch(b.Assists, b.Matches),
		GoalsAssists: perMatch(b.Goals+b.Assists, b.Matches),
		CleanSheets:  perMatch(b.CleanSheets, b.Matches),
		Subs:         perMatch(b.Subs, b.Matches),
		OwnGoals:     perMatch(b.OwnGoals, b.Matches),
		YellowCards:  perMatch(b.YellowCards, b.Matches),
		RedCards:     perMatch(b.RedCards, b.Matches),
		Points:       perMatch(b.Points, b.Matches),
	}
}

// file: dto/scoring.go
package dto

// ScoreInput 评委打分请求：缺失的维度按 0 计，未声明的维度拒绝
type ScoreInput struct {
	Values  map[string]float64 `json:"values" binding:"required"`
	Comment string             `json:"comment"`
}

// LeaderboardEntry 排行榜条目，总分与名次永远现算
type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	ProjectID  uint32  `json:"project_id"`
	Title      string  `json:"title"`
	TeamID     uint32  `json:"team_id"`
	Total      float64 `json:"total"`
	JudgeCount int     `json:"judge_count"`
}

// WinnerEntry 公布结果时的获奖条目
type WinnerEntry struct {
	ProjectID uint32 `json:"project_id" binding:"required"`
	AwardName string `json:"award_name" binding:"required"`
	Rank      int    `json:"rank" binding:"required"`
	Comment   string `json:"comment"`
}

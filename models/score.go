// file: models/score.go
package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Score 一名评委对一个作品的打分，(judge, project) 唯一，重复提交整体覆盖。
// Values 按维度名存 0-100 的分值；总分始终由维度权重现算，不落库
type Score struct {
	ID          uint32         `gorm:"primarykey" json:"id"`
	JudgeID     uint32         `gorm:"uniqueIndex:unique_judge_project;not null" json:"judge_id"`
	ProjectID   uint32         `gorm:"uniqueIndex:unique_judge_project;not null" json:"project_id"`
	HackathonID uint32         `gorm:"index;not null" json:"hackathon_id"`
	Values      datatypes.JSON `json:"values"`
	Comment     string         `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (Score) TableName() string {
	return "vibebuild_score"
}

// DimensionValues 反序列化各维度分值
func (s *Score) DimensionValues() (map[string]float64, error) {
	values := make(map[string]float64)
	if len(s.Values) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(s.Values, &values); err != nil {
		return nil, err
	}
	return values, nil
}

// SetDimensionValues 序列化各维度分值
func (s *Score) SetDimensionValues(values map[string]float64) error {
	raw, err := json.Marshal(values)
	if err != nil {
		return err
	}
	s.Values = raw
	return nil
}

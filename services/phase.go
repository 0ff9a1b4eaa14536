// file: services/phase.go
package services

import (
	"time"

	"vibebuild/apperrors"
	"vibebuild/models"
)

// Phase 推导出的黑客松阶段。阶段永远现算不落库，任何客户端用同样的
// 输入都能推导出同一结果
type Phase string

const (
	PhaseDraft                Phase = "draft"
	PhaseRegistrationUpcoming Phase = "registration_upcoming"
	PhaseRegistrationOpen     Phase = "registration_open"
	PhaseInProgress           Phase = "in_progress"
	PhaseSubmissionOpen       Phase = "submission_open"
	PhaseJudgingOpen          Phase = "judging_open"
	PhaseEnded                Phase = "ended"
)

func (p Phase) String() string {
	return string(p)
}

// within 判断 now 是否落在窗口内；未设置的边界不拦截
func within(start, end *time.Time, now time.Time) bool {
	if start != nil && now.Before(*start) {
		return false
	}
	if end != nil && now.After(*end) {
		return false
	}
	return true
}

// DerivePhase 由主办方状态和时间窗口推导当前阶段。
// 终态检查在最前：发布后主办方把日期改出矛盾时，宁可判定关闭也不放行
func DerivePhase(h *models.Hackathon, now time.Time) Phase {
	if h.Status == models.HackathonStatusDraft {
		return PhaseDraft
	}
	if h.Status == models.HackathonStatusEnded {
		return PhaseEnded
	}
	if now.After(h.EventEnd) {
		return PhaseEnded
	}

	if h.JudgingStart != nil && !now.Before(*h.JudgingStart) && within(h.JudgingStart, h.JudgingEnd, now) {
		return PhaseJudgingOpen
	}
	if h.SubmissionStart != nil && within(h.SubmissionStart, h.SubmissionEnd, now) {
		return PhaseSubmissionOpen
	}
	if h.RegistrationStart != nil && now.Before(*h.RegistrationStart) {
		return PhaseRegistrationUpcoming
	}
	if h.RegistrationStart != nil || h.RegistrationEnd != nil {
		if within(h.RegistrationStart, h.RegistrationEnd, now) {
			return PhaseRegistrationOpen
		}
	} else if now.Before(h.EventStart) {
		// 未配置报名窗口时，活动开始前都视为报名期
		return PhaseRegistrationOpen
	}
	if now.Before(h.EventStart) {
		return PhaseRegistrationUpcoming
	}
	return PhaseInProgress
}

// RegistrationAllowed 报名是否开放；未配置报名窗口时回落到活动窗口
func RegistrationAllowed(h *models.Hackathon, now time.Time) bool {
	if h.Status != models.HackathonStatusPublished || now.After(h.EventEnd) {
		return false
	}
	if h.RegistrationStart == nil && h.RegistrationEnd == nil {
		return true
	}
	return within(h.RegistrationStart, h.RegistrationEnd, now)
}

// TeamActivityAllowed 组队、入队等队伍变更是否开放；评审开始后冻结
func TeamActivityAllowed(h *models.Hackathon, now time.Time) bool {
	if h.Status != models.HackathonStatusPublished || now.After(h.EventEnd) {
		return false
	}
	if h.JudgingStart != nil && !now.Before(*h.JudgingStart) {
		return false
	}
	return true
}

// SubmitAllowed 提交作品是否开放；未配置提交窗口时回落到活动进行中
func SubmitAllowed(h *models.Hackathon, now time.Time) bool {
	if h.Status != models.HackathonStatusPublished || now.After(h.EventEnd) {
		return false
	}
	if h.JudgingStart != nil && !now.Before(*h.JudgingStart) {
		return false
	}
	if h.SubmissionStart == nil && h.SubmissionEnd == nil {
		return !now.Before(h.EventStart)
	}
	return within(h.SubmissionStart, h.SubmissionEnd, now)
}

// ProjectEditAllowed 作品是否可编辑：草稿可改到评审开始，
// 已提交的只能改到提交窗口关闭
func ProjectEditAllowed(h *models.Hackathon, p *models.Project, now time.Time) bool {
	if h.Status != models.HackathonStatusPublished || now.After(h.EventEnd) {
		return false
	}
	if h.JudgingStart != nil && !now.Before(*h.JudgingStart) {
		return false
	}
	if p != nil && p.Status == models.ProjectSubmitted {
		if h.SubmissionEnd != nil && now.After(*h.SubmissionEnd) {
			return false
		}
	}
	return true
}

// JudgingAllowed 评审是否开放；未配置评审窗口时回落到提交结束后的活动窗口
func JudgingAllowed(h *models.Hackathon, now time.Time) bool {
	if h.Status != models.HackathonStatusPublished || now.After(h.EventEnd) {
		return false
	}
	if h.JudgingStart == nil && h.JudgingEnd == nil {
		if now.Before(h.EventStart) {
			return false
		}
		if h.SubmissionEnd != nil && now.Before(*h.SubmissionEnd) {
			return false
		}
		return true
	}
	return within(h.JudgingStart, h.JudgingEnd, now)
}

// ValidatePublish 发布时一次性校验字段与时间窗口的一致性，
// 之后的阶段推导不再逐次校验
func ValidatePublish(h *models.Hackathon) error {
	if h.Title == "" {
		return apperrors.New(apperrors.Validation, "title is required")
	}
	if h.Description == "" {
		return apperrors.New(apperrors.Validation, "description is required")
	}
	if h.EventStart.IsZero() || h.EventEnd.IsZero() {
		return apperrors.New(apperrors.Validation, "event window is required")
	}
	if h.EventEnd.Before(h.EventStart) {
		return apperrors.New(apperrors.Validation, "event_start must not be after event_end")
	}
	if err := validateWindow(h.RegistrationStart, h.RegistrationEnd, "registration"); err != nil {
		return err
	}
	if err := validateWindow(h.SubmissionStart, h.SubmissionEnd, "submission"); err != nil {
		return err
	}
	if err := validateWindow(h.JudgingStart, h.JudgingEnd, "judging"); err != nil {
		return err
	}
	if h.RegistrationEnd != nil && h.RegistrationEnd.After(h.EventEnd) {
		return apperrors.New(apperrors.Validation, "registration_end must not be after event_end")
	}
	if h.SubmissionEnd != nil && h.JudgingStart != nil && h.SubmissionEnd.After(*h.JudgingStart) {
		return apperrors.New(apperrors.Validation, "submission_end must not be after judging_start")
	}
	if h.RegistrationType != models.RegistrationIndividual && h.RegistrationType != models.RegistrationTeam {
		return apperrors.Newf(apperrors.Validation, "invalid registration_type %q", h.RegistrationType)
	}
	if h.TeamSizeMin < 1 {
		return apperrors.New(apperrors.Validation, "team_size_min must be at least 1")
	}
	if h.TeamSizeMax < h.TeamSizeMin {
		return apperrors.New(apperrors.Validation, "team_size_max must not be less than team_size_min")
	}

	dims, err := h.Dimensions()
	if err != nil {
		return apperrors.New(apperrors.Validation, "scoring_dimensions is not a valid dimension list")
	}
	if len(dims) == 0 {
		return apperrors.New(apperrors.Validation, "at least one scoring dimension is required")
	}
	seen := make(map[string]bool, len(dims))
	sum := 0
	for _, d := range dims {
		if d.Name == "" {
			return apperrors.New(apperrors.Validation, "scoring dimension name must not be empty")
		}
		if seen[d.Name] {
			return apperrors.Newf(apperrors.Validation, "duplicate scoring dimension %q", d.Name)
		}
		seen[d.Name] = true
		if d.Weight < 0 {
			return apperrors.Newf(apperrors.Validation, "scoring dimension %q has negative weight", d.Name)
		}
		sum += d.Weight
	}
	if sum != 100 {
		return apperrors.Newf(apperrors.Validation, "scoring dimension weights must sum to 100, got %d", sum)
	}

	if _, err := h.AwardList(); err != nil {
		return apperrors.New(apperrors.Validation, "awards is not a valid award list")
	}
	return nil
}

func validateWindow(start, end *time.Time, name string) error {
	if start != nil && end != nil && end.Before(*start) {
		return apperrors.Newf(apperrors.Validation, "%s window start must not be after its end", name)
	}
	return nil
}

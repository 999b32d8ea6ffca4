package service

import (
	"context"
	"strings"
	"time"

	"github.com/xxxsen/examprep/internal/ai"
	appErr "github.com/xxxsen/examprep/internal/pkg/errors"
	"github.com/xxxsen/examprep/internal/prompt"
)

const (
	dateLayout         = "2006-01-02"
	minHoursPerDay     = 2
	defaultHoursPerDay = 2
)

// ScheduleRequest accepts exam_date as an alias of end_date for older
// clients; start_date then defaults to today. A nil HoursPerDay means the
// field was absent.
type ScheduleRequest struct {
	Subjects    string `json:"subjects"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	ExamDate    string `json:"exam_date"`
	HoursPerDay *int   `json:"hours_per_day"`
}

type ScheduleService struct {
	client *ai.Client
	now    func() time.Time
}

func NewScheduleService(client *ai.Client) *ScheduleService {
	return &ScheduleService{client: client, now: time.Now}
}

func (s *ScheduleService) validate(req ScheduleRequest) (prompt.ScheduleInput, error) {
	subjects := strings.TrimSpace(req.Subjects)
	start := strings.TrimSpace(req.StartDate)
	end := strings.TrimSpace(req.EndDate)
	if end == "" {
		end = strings.TrimSpace(req.ExamDate)
		if start == "" && end != "" {
			start = s.now().Format(dateLayout)
		}
	}
	if subjects == "" || start == "" || end == "" {
		return prompt.ScheduleInput{}, appErr.Invalid("Please provide subjects, start date, and end date")
	}
	hours := defaultHoursPerDay
	if req.HoursPerDay != nil {
		hours = *req.HoursPerDay
	}
	if hours < minHoursPerDay {
		return prompt.ScheduleInput{}, appErr.Invalid("Minimum study hours is 2 hours per day")
	}
	startAt, err := time.Parse(dateLayout, start)
	if err != nil {
		return prompt.ScheduleInput{}, appErr.Invalid("start date must use YYYY-MM-DD")
	}
	endAt, err := time.Parse(dateLayout, end)
	if err != nil {
		return prompt.ScheduleInput{}, appErr.Invalid("end date must use YYYY-MM-DD")
	}
	if endAt.Before(startAt) {
		return prompt.ScheduleInput{}, appErr.Invalid("end date must not be before start date")
	}
	return prompt.ScheduleInput{Subjects: subjects, StartDate: start, EndDate: end, HoursPerDay: hours}, nil
}

func (s *ScheduleService) Create(ctx context.Context, req ScheduleRequest) (string, error) {
	in, err := s.validate(req)
	if err != nil {
		return "", err
	}
	return s.client.GenerateText(ctx, prompt.Schedule(in), "schedule generation"), nil
}

func (s *ScheduleService) Stream(ctx context.Context, req ScheduleRequest) (<-chan ai.Fragment, error) {
	in, err := s.validate(req)
	if err != nil {
		return nil, err
	}
	return s.client.Stream(ctx, prompt.Schedule(in), "schedule generation"), nil
}

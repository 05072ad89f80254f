package payload

import (
	"time"

	"github.com/vasapolrittideah/cashflower/services/account-service/internal/model"
	"github.com/vasapolrittideah/cashflower/services/account-service/internal/repository"
)

type GoalRequest struct {
	Email       string `json:"email"       validate:"required,email"`
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description"`
	TargetDate  string `json:"targetDate"  validate:"required"`
}

func (r *GoalRequest) ToModel() (*model.Goal, error) {
	targetDate, err := ParseDate(r.TargetDate)
	if err != nil {
		return nil, err
	}

	return &model.Goal{
		Email:       r.Email,
		Title:       r.Title,
		Description: r.Description,
		TargetDate:  targetDate,
	}, nil
}

// UpdateGoalRequest is a partial update; absent fields are left unchanged.
type UpdateGoalRequest struct {
	Title       *string `json:"title"       validate:"omitempty,min=1"`
	Description *string `json:"description"`
	TargetDate  *string `json:"targetDate"`
}

func (r *UpdateGoalRequest) ToParams() (repository.UpdateGoalParams, error) {
	params := repository.UpdateGoalParams{
		Title:       r.Title,
		Description: r.Description,
	}

	if r.TargetDate != nil {
		targetDate, err := ParseDate(*r.TargetDate)
		if err != nil {
			return repository.UpdateGoalParams{}, err
		}
		params.TargetDate = &targetDate
	}

	return params, nil
}

type GoalResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	TargetDate  time.Time `json:"targetDate"`
}

func NewGoalResponse(g *model.Goal) *GoalResponse {
	return &GoalResponse{
		ID:          g.ID.Hex(),
		Email:       g.Email,
		Title:       g.Title,
		Description: g.Description,
		TargetDate:  g.TargetDate,
	}
}

func NewGoalResponses(goals []*model.Goal) []*GoalResponse {
	resp := make([]*GoalResponse, 0, len(goals))
	for _, g := range goals {
		resp = append(resp, NewGoalResponse(g))
	}
	return resp
}

package payload

import (
	"github.com/vasapolrittideah/cashflower/services/account-service/internal/model"
)

type ProfileRequest struct {
	FirstName    string   `json:"firstName"    validate:"required"`
	LastName     string   `json:"lastName"     validate:"required"`
	Username     string   `json:"username"     validate:"required"`
	Email        string   `json:"email"        validate:"required,email"`
	MobileNumber string   `json:"mobileNumber" validate:"required"`
	DateOfBirth  string   `json:"dateOfBirth"  validate:"required"`
	AnnualIncome *float64 `json:"annualIncome" validate:"required,gte=0"`
	Occupation   string   `json:"occupation"   validate:"required"`
	Address      string   `json:"address"      validate:"required"`
	State        string   `json:"state"        validate:"required"`
	Zip          string   `json:"zip"          validate:"required"`
	Gender       string   `json:"gender"       validate:"required"`
	Photo        string   `json:"photo"        validate:"required"`
	Bio          string   `json:"bio"          validate:"required"`
}

// ToModel converts the request into a profile document.
func (r *ProfileRequest) ToModel() (*model.Profile, error) {
	dateOfBirth, err := ParseDate(r.DateOfBirth)
	if err != nil {
		return nil, err
	}

	return &model.Profile{
		Email:        r.Email,
		Photo:        r.Photo,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Username:     r.Username,
		MobileNumber: r.MobileNumber,
		DateOfBirth:  dateOfBirth,
		AnnualIncome: *r.AnnualIncome,
		Occupation:   r.Occupation,
		Address:      r.Address,
		State:        r.State,
		Zip:          r.Zip,
		Gender:       r.Gender,
		Bio:          r.Bio,
	}, nil
}

type ProfileResponse struct {
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	Username     string  `json:"username"`
	Email        string  `json:"email"`
	MobileNumber string  `json:"mobileNumber"`
	DateOfBirth  string  `json:"dateOfBirth"`
	AnnualIncome float64 `json:"annualIncome"`
	Occupation   string  `json:"occupation"`
	Address      string  `json:"address"`
	State        string  `json:"state"`
	Zip          string  `json:"zip"`
	Gender       string  `json:"gender"`
	Photo        string  `json:"photo"`
	Bio          string  `json:"bio"`
}

func NewProfileResponse(p *model.Profile) *ProfileResponse {
	return &ProfileResponse{
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Username:     p.Username,
		Email:        p.Email,
		MobileNumber: p.MobileNumber,
		DateOfBirth:  p.DateOfBirth.UTC().Format(DateLayout),
		AnnualIncome: p.AnnualIncome,
		Occupation:   p.Occupation,
		Address:      p.Address,
		State:        p.State,
		Zip:          p.Zip,
		Gender:       p.Gender,
		Photo:        p.Photo,
		Bio:          p.Bio,
	}
}

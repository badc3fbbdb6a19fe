package rest

import (
	"time"

	"github.com/dmitrijs2005/alumnet/internal/server/models"
)

type registerRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	PassoutYear int    `json:"passoutYear" binding:"required,gte=1950,lte=2100"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type verifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,numeric,len=6"`
}

type resendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type profileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Headline  *string `json:"headline"`
	Bio       *string `json:"bio"`
	Location  *string `json:"location"`
	Company   *string `json:"company"`
}

func (r profileRequest) changes() models.ProfileChanges {
	return models.ProfileChanges{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Headline:  r.Headline,
		Bio:       r.Bio,
		Location:  r.Location,
		Company:   r.Company,
	}
}

type jobRequest struct {
	Title       string `json:"title" binding:"required"`
	Company     string `json:"company" binding:"required"`
	Location    string `json:"location"`
	Description string `json:"description"`
	ApplyURL    string `json:"apply_url" binding:"omitempty,url"`
}

type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	PassoutYear int       `json:"passout_year"`
	Headline    string    `json:"headline,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	Location    string    `json:"location,omitempty"`
	Company     string    `json:"company,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func userToResponse(u models.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PassoutYear: u.PassoutYear,
		Headline:    u.Headline,
		Bio:         u.Bio,
		Location:    u.Location,
		Company:     u.Company,
		CreatedAt:   u.CreatedAt,
	}
}

type JobResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
	ApplyURL    string    `json:"apply_url,omitempty"`
	PostedBy    string    `json:"posted_by"`
	CreatedAt   time.Time `json:"created_at"`
}

func jobToResponse(j models.Job) JobResponse {
	return JobResponse{
		ID:          j.ID,
		Title:       j.Title,
		Company:     j.Company,
		Location:    j.Location,
		Description: j.Description,
		ApplyURL:    j.ApplyURL,
		PostedBy:    j.PostedBy,
		CreatedAt:   j.CreatedAt,
	}
}

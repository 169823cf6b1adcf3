package testutil

import (
	"github.com/researchhub/portal-api/internal/domain/model"
)

// ProfileBuilder provides a fluent interface for building Profile objects for testing.
type ProfileBuilder struct {
	p *model.Profile
}

// NewProfile creates a new ProfileBuilder with sensible defaults.
func NewProfile() *ProfileBuilder {
	return &ProfileBuilder{
		p: &model.Profile{
			UserID:             "user-1",
			Email:              "jordan.rivera@example.edu",
			FirstName:          "Jordan",
			LastName:           "Rivera",
			Role:               "researcher",
			Institution:        "Example University",
			Department:         "Computational Biology",
			OnboardingComplete: true,
		},
	}
}

// WithUserID sets the user ID.
func (b *ProfileBuilder) WithUserID(id string) *ProfileBuilder {
	b.p.UserID = id
	return b
}

// WithEmail sets the email address.
func (b *ProfileBuilder) WithEmail(email string) *ProfileBuilder {
	b.p.Email = email
	return b
}

// WithRole sets the role.
func (b *ProfileBuilder) WithRole(role string) *ProfileBuilder {
	b.p.Role = role
	return b
}

// WithInstitution sets the institution.
func (b *ProfileBuilder) WithInstitution(inst string) *ProfileBuilder {
	b.p.Institution = inst
	return b
}

// WithBio sets the bio text.
func (b *ProfileBuilder) WithBio(bio string) *ProfileBuilder {
	b.p.Bio = bio
	return b
}

// WithOnboardingComplete sets the onboarding flag.
func (b *ProfileBuilder) WithOnboardingComplete(done bool) *ProfileBuilder {
	b.p.OnboardingComplete = done
	return b
}

// Build returns the constructed Profile.
func (b *ProfileBuilder) Build() *model.Profile {
	p := *b.p
	return &p
}

// ProjectRequestBuilder provides a fluent interface for building
// CreateProjectRequest objects for testing.
type ProjectRequestBuilder struct {
	req *model.CreateProjectRequest
}

// NewProjectRequest creates a new ProjectRequestBuilder with sensible defaults.
func NewProjectRequest() *ProjectRequestBuilder {
	return &ProjectRequestBuilder{
		req: &model.CreateProjectRequest{
			Title:       "Protein Folding Survey",
			Description: "Survey of recent protein folding techniques",
			Status:      model.ProjectStatusPlanning,
			Priority:    model.PriorityMedium,
		},
	}
}

// WithTitle sets the project title.
func (b *ProjectRequestBuilder) WithTitle(title string) *ProjectRequestBuilder {
	b.req.Title = title
	return b
}

// WithStatus sets the project status.
func (b *ProjectRequestBuilder) WithStatus(status model.ProjectStatus) *ProjectRequestBuilder {
	b.req.Status = status
	return b
}

// WithPriority sets the project priority.
func (b *ProjectRequestBuilder) WithPriority(p model.Priority) *ProjectRequestBuilder {
	b.req.Priority = p
	return b
}

// WithDescription sets the project description.
func (b *ProjectRequestBuilder) WithDescription(desc string) *ProjectRequestBuilder {
	b.req.Description = desc
	return b
}

// Build returns the constructed CreateProjectRequest.
func (b *ProjectRequestBuilder) Build() *model.CreateProjectRequest {
	req := *b.req
	return &req
}

package dto

import (
	"time"

	"github.com/yukikurage/tracker-api/internal/models"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID        uint64     `json:"id"`
	Name      string     `json:"name"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	CreatedBy uint64     `json:"createdBy"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// MemberDTO represents a project member
type MemberDTO struct {
	User     UserDTO           `json:"user"`
	Role     models.MemberRole `json:"role"`
	JoinedAt time.Time         `json:"joinedAt"`
}

// TargetVersionDTO represents a target version of a project
type TargetVersionDTO struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	Project uint64 `json:"project"`
}

// TagDTO represents a tag of a project
type TagDTO struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	TextColor string `json:"textColor"`
	Project   uint64 `json:"project"`
}

func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:        project.ID,
		Name:      project.Name,
		StartDate: project.StartDate,
		EndDate:   project.EndDate,
		CreatedBy: project.CreatedByID,
		CreatedAt: project.CreatedAt,
		UpdatedAt: project.UpdatedAt,
	}
}

func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	out := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		out[i] = ToProjectDTO(p)
	}
	return out
}

func ToMemberDTO(member models.ProjectMember) MemberDTO {
	return MemberDTO{
		User:     ToUserDTO(member.User),
		Role:     member.Role,
		JoinedAt: member.JoinedAt,
	}
}

func ToMemberDTOs(members []models.ProjectMember) []MemberDTO {
	out := make([]MemberDTO, len(members))
	for i, m := range members {
		out[i] = ToMemberDTO(m)
	}
	return out
}

func ToTargetVersionDTO(v models.TargetVersion) TargetVersionDTO {
	return TargetVersionDTO{ID: v.ID, Name: v.Name, Project: v.ProjectID}
}

func ToTargetVersionDTOs(versions []models.TargetVersion) []TargetVersionDTO {
	out := make([]TargetVersionDTO, len(versions))
	for i, v := range versions {
		out[i] = ToTargetVersionDTO(v)
	}
	return out
}

func ToTagDTO(t models.Tag) TagDTO {
	return TagDTO{ID: t.ID, Name: t.Name, Color: t.Color, TextColor: t.TextColor, Project: t.ProjectID}
}

func ToTagDTOs(tags []models.Tag) []TagDTO {
	out := make([]TagDTO, len(tags))
	for i, t := range tags {
		out[i] = ToTagDTO(t)
	}
	return out
}

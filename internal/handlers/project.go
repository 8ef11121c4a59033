package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/tracker-api/internal/dto"
	apierrors "github.com/yukikurage/tracker-api/internal/errors"
	"github.com/yukikurage/tracker-api/internal/logging"
	"github.com/yukikurage/tracker-api/internal/models"
	"github.com/yukikurage/tracker-api/internal/services"
)

// ProjectHandler serves projects, their members and their catalog of target
// versions and tags.
type ProjectHandler struct {
	projectService *services.ProjectService
	memberService  *services.MemberService
	catalogService *services.CatalogService
	log            logging.Logger
}

func NewProjectHandler(projectService *services.ProjectService, memberService *services.MemberService, catalogService *services.CatalogService, log logging.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		memberService:  memberService,
		catalogService: catalogService,
		log:            log,
	}
}

// CreateProject creates a new project
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	type CreateProjectRequest struct {
		Name      string `json:"name"`
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), id, services.CreateProjectInput{
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"project": dto.ToProjectDTO(*project)})
}

// ListProjects returns the projects visible to the caller
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	projects, err := h.projectService.ListProjects(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": dto.ToProjectDTOs(projects)})
}

// GetProject returns project details
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(c.Request.Context(), id, projectID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": dto.ToProjectDTO(*project)})
}

// UpdateProject applies a partial update
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	body, ok := bindUpdate(c)
	if !ok {
		return
	}

	project, err := h.projectService.UpdateProject(c.Request.Context(), id, projectID, body)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": dto.ToProjectDTO(*project)})
}

// ListMembers lists project members
func (h *ProjectHandler) ListMembers(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	members, err := h.memberService.ListMembers(c.Request.Context(), id, projectID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": dto.ToMemberDTOs(members)})
}

// AddMember adds a user to the project
func (h *ProjectHandler) AddMember(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	type AddMemberRequest struct {
		UserID uint64            `json:"userId" binding:"required"`
		Role   models.MemberRole `json:"role"`
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	member, err := h.memberService.AddMember(c.Request.Context(), id, projectID, services.AddMemberInput{
		UserID: req.UserID,
		Role:   req.Role,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"member": dto.ToMemberDTO(*member)})
}

// RemoveMember removes the user named in the body from the project
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	type RemoveMemberRequest struct {
		UserID uint64 `json:"userId" binding:"required"`
	}

	var req RemoveMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.memberService.RemoveMember(c.Request.Context(), id, projectID, req.UserID); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (h *ProjectHandler) ListVersions(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	versions, err := h.catalogService.ListTargetVersions(c.Request.Context(), id, projectID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"versions": dto.ToTargetVersionDTOs(versions)})
}

func (h *ProjectHandler) CreateVersion(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	version, err := h.catalogService.CreateTargetVersion(c.Request.Context(), id, projectID, req.Name)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"version": dto.ToTargetVersionDTO(*version)})
}

func (h *ProjectHandler) ListTags(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	tags, err := h.catalogService.ListTags(c.Request.Context(), id, projectID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tags": dto.ToTagDTOs(tags)})
}

func (h *ProjectHandler) CreateTag(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Name      string `json:"name"`
		Color     string `json:"color"`
		TextColor string `json:"textColor"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	tag, err := h.catalogService.CreateTag(c.Request.Context(), id, projectID, services.TagInput{
		Name:      req.Name,
		Color:     req.Color,
		TextColor: req.TextColor,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"tag": dto.ToTagDTO(*tag)})
}

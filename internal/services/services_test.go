package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/tracker-api/internal/auth"
	"github.com/yukikurage/tracker-api/internal/authz"
	apierrors "github.com/yukikurage/tracker-api/internal/errors"
	"github.com/yukikurage/tracker-api/internal/logging"
	"github.com/yukikurage/tracker-api/internal/models"
	"github.com/yukikurage/tracker-api/internal/repository"
	"github.com/yukikurage/tracker-api/internal/testutil"
	"github.com/yukikurage/tracker-api/internal/utils"
	"gorm.io/gorm"
)

type fakeSuggester struct {
	tasks []SuggestedTask
	err   error
}

func (f *fakeSuggester) SuggestTasks(context.Context, string, string) ([]SuggestedTask, error) {
	return f.tasks, f.err
}

// ServiceTestSuite wires every service on a fresh in-memory database.
type ServiceTestSuite struct {
	suite.Suite
	ctx context.Context
	db  *gorm.DB

	auth     *AuthService
	projects *ProjectService
	members  *MemberService
	tasks    *TaskService
	logs     *LogTimeService
	catalog  *CatalogService
	ai       *fakeSuggester

	admin    *models.User
	manager  *models.User
	dev      *models.User
	outsider *models.User
	project  *models.Project
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = testutil.NewDB(s.T())

	userRepo := repository.NewUserRepository(s.db)
	projectRepo := repository.NewProjectRepository(s.db)
	taskRepo := repository.NewTaskRepository(s.db)
	logRepo := repository.NewLogTimeRepository(s.db)
	catalogRepo := repository.NewCatalogRepository(s.db)
	authorizer := authz.New(projectRepo)
	s.ai = &fakeSuggester{}

	s.auth = NewAuthService(userRepo, auth.NewTokenManager("test-secret", time.Hour), authorizer, logging.Discard())
	s.projects = NewProjectService(projectRepo, authorizer)
	s.members = NewMemberService(projectRepo, userRepo, authorizer, logging.Discard())
	s.tasks = NewTaskService(taskRepo, projectRepo, catalogRepo, authorizer, s.ai)
	s.logs = NewLogTimeService(logRepo, taskRepo, authorizer)
	s.catalog = NewCatalogService(catalogRepo, projectRepo, authorizer)

	s.admin = testutil.CreateUser(s.T(), s.db, "admin", models.RoleAdmin)
	s.manager = testutil.CreateUser(s.T(), s.db, "manager", models.RoleUser)
	s.dev = testutil.CreateUser(s.T(), s.db, "dev", models.RoleUser)
	s.outsider = testutil.CreateUser(s.T(), s.db, "outsider", models.RoleUser)
	s.project = testutil.CreateProject(s.T(), s.db, "Apollo", s.admin.ID)
	testutil.AddMember(s.T(), s.db, s.project.ID, s.manager.ID, models.MemberRoleManager)
	testutil.AddMember(s.T(), s.db, s.project.ID, s.dev.ID, models.MemberRoleDev)
}

func (s *ServiceTestSuite) identity(u *models.User) authz.Identity {
	return authz.Identity{UserID: u.ID, Role: u.Role}
}

func (s *ServiceTestSuite) requireDenial(err error, code string) {
	s.T().Helper()
	var denial *authz.Denial
	s.Require().True(errors.As(err, &denial), "expected denial, got %v", err)
	s.Equal(code, denial.Code)
}

func (s *ServiceTestSuite) requireInputError(err error, code string) {
	s.T().Helper()
	var inputErr *InputError
	s.Require().True(errors.As(err, &inputErr), "expected input error, got %v", err)
	s.Equal(code, inputErr.Code)
}

// Accounts and sessions

func (s *ServiceTestSuite) TestRegisterAndAuthenticate() {
	user, token, err := s.auth.Register(s.ctx, UserInput{Username: "neo", Email: " Neo@Example.com ", Password: "password1"})
	s.Require().NoError(err)
	s.Equal("neo@example.com", user.Email)
	s.Equal(models.RoleUser, user.Role)

	id, err := s.auth.Authenticate(s.ctx, token)
	s.Require().NoError(err)
	s.Equal(user.ID, id.UserID)
	s.Equal(token, id.Token)
}

func (s *ServiceTestSuite) TestRegisterValidation() {
	_, _, err := s.auth.Register(s.ctx, UserInput{Password: "password1"})
	s.ErrorIs(err, ErrEmailRequired)

	_, _, err = s.auth.Register(s.ctx, UserInput{Email: "a@b.c", Password: "short"})
	s.ErrorIs(err, ErrPasswordTooShort)

	_, _, err = s.auth.Register(s.ctx, UserInput{Email: "dev@example.com", Password: "password1"})
	s.ErrorIs(err, ErrEmailTaken)
}

func (s *ServiceTestSuite) TestLoginByEmailOrUsername() {
	_, _, err := s.auth.Login(s.ctx, LoginInput{UserInput: "dev@example.com", Password: testutil.Password})
	s.NoError(err)

	_, _, err = s.auth.Login(s.ctx, LoginInput{UserInput: "dev", Password: testutil.Password})
	s.NoError(err)

	_, _, err = s.auth.Login(s.ctx, LoginInput{UserInput: "dev", Password: "wrong-password"})
	s.ErrorIs(err, ErrInvalidCredentials)

	_, _, err = s.auth.Login(s.ctx, LoginInput{UserInput: "ghost", Password: testutil.Password})
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceTestSuite) TestLogoutRevokesOnlyThatSession() {
	_, t1, err := s.auth.Login(s.ctx, LoginInput{UserInput: "dev", Password: testutil.Password})
	s.Require().NoError(err)
	_, t2, err := s.auth.Login(s.ctx, LoginInput{UserInput: "dev", Password: testutil.Password})
	s.Require().NoError(err)

	id, err := s.auth.Authenticate(s.ctx, t1)
	s.Require().NoError(err)
	s.Require().NoError(s.auth.Logout(s.ctx, id))

	_, err = s.auth.Authenticate(s.ctx, t1)
	s.ErrorIs(err, ErrSessionRevoked)

	_, err = s.auth.Authenticate(s.ctx, t2)
	s.NoError(err)
}

func (s *ServiceTestSuite) TestAuthenticateRejectsForeignToken() {
	other := auth.NewTokenManager("other-secret", time.Hour)
	token, err := other.Generate(s.dev.ID)
	s.Require().NoError(err)

	_, err = s.auth.Authenticate(s.ctx, token)
	s.ErrorIs(err, ErrInvalidCredential)
}

func (s *ServiceTestSuite) TestCreateUserAdminOnly() {
	_, err := s.auth.CreateUser(s.ctx, s.identity(s.dev), UserInput{Email: "x@example.com", Password: "password1"}, "")
	s.requireDenial(err, apierrors.ErrCodeUnauthorized)

	user, err := s.auth.CreateUser(s.ctx, s.identity(s.admin), UserInput{Email: "x@example.com", Password: "password1"}, models.RoleAdmin)
	s.Require().NoError(err)
	s.Equal(models.RoleAdmin, user.Role)

	_, err = s.auth.CreateUser(s.ctx, s.identity(s.admin), UserInput{Email: "y@example.com", Password: "password1"}, "root")
	s.requireInputError(err, apierrors.ErrCodeFieldInvalid)
}

func (s *ServiceTestSuite) TestUpdateUser() {
	_, err := s.auth.UpdateUser(s.ctx, s.identity(s.dev), s.dev.ID, map[string]any{"role": "admin"})
	var fieldErr *utils.FieldError
	s.Require().ErrorAs(err, &fieldErr)
	s.Equal([]string{"role"}, fieldErr.Fields)

	_, err = s.auth.UpdateUser(s.ctx, s.identity(s.dev), s.manager.ID, map[string]any{"firstName": "Eve"})
	s.requireDenial(err, apierrors.ErrCodeUnauthorized)

	_, err = s.auth.UpdateUser(s.ctx, s.identity(s.dev), s.dev.ID, map[string]any{"email": "manager@example.com"})
	s.ErrorIs(err, ErrEmailTaken)

	user, err := s.auth.UpdateUser(s.ctx, s.identity(s.dev), s.dev.ID, map[string]any{"firstName": "Dana", "password": "new-password"})
	s.Require().NoError(err)
	s.Equal("Dana", user.FirstName)

	_, _, err = s.auth.Login(s.ctx, LoginInput{UserInput: "dev", Password: "new-password"})
	s.NoError(err)
}

func (s *ServiceTestSuite) TestPasswordKeepsSurroundingSpaces() {
	_, err := s.auth.UpdateUser(s.ctx, s.identity(s.dev), s.dev.ID, map[string]any{"password": " secret-pass "})
	s.Require().NoError(err)

	_, _, err = s.auth.Login(s.ctx, LoginInput{UserInput: "dev@example.com", Password: " secret-pass "})
	s.NoError(err)
	_, _, err = s.auth.Login(s.ctx, LoginInput{UserInput: "dev@example.com", Password: "secret-pass"})
	s.ErrorIs(err, ErrInvalidCredentials)

	_, _, err = s.auth.Register(s.ctx, UserInput{Email: "padded@example.com", Password: " padded-pw "})
	s.Require().NoError(err)
	_, _, err = s.auth.Login(s.ctx, LoginInput{UserInput: "padded@example.com", Password: " padded-pw "})
	s.NoError(err)
}

func (s *ServiceTestSuite) TestUsernameIsUnique() {
	_, _, err := s.auth.Register(s.ctx, UserInput{Username: " dev ", Email: "dev2@example.com", Password: "password1"})
	s.ErrorIs(err, ErrUsernameTaken)

	_, err = s.auth.UpdateUser(s.ctx, s.identity(s.outsider), s.outsider.ID, map[string]any{"username": "dev"})
	s.ErrorIs(err, ErrUsernameTaken)

	_, err = s.auth.UpdateUser(s.ctx, s.identity(s.dev), s.dev.ID, map[string]any{"username": "dev", "firstName": "Dana"})
	s.NoError(err)

	_, _, err = s.auth.Register(s.ctx, UserInput{Email: "anon1@example.com", Password: "password1"})
	s.Require().NoError(err)
	_, _, err = s.auth.Register(s.ctx, UserInput{Email: "anon2@example.com", Password: "password1"})
	s.NoError(err)

	var count int64
	s.Require().NoError(s.db.Model(&models.User{}).Where("username = ?", "dev").Count(&count).Error)
	s.Equal(int64(1), count)
}

func (s *ServiceTestSuite) TestDeleteUser() {
	s.requireDenial(s.auth.DeleteUser(s.ctx, s.identity(s.dev), s.manager.ID), apierrors.ErrCodeUnauthorized)

	s.Require().NoError(s.auth.DeleteUser(s.ctx, s.identity(s.dev), s.dev.ID))
	_, err := s.auth.GetUser(s.ctx, s.dev.ID)
	s.ErrorIs(err, ErrUserNotFound)

	s.ErrorIs(s.auth.DeleteUser(s.ctx, s.identity(s.admin), s.dev.ID), ErrUserNotFound)
}

// Projects and members

func (s *ServiceTestSuite) TestCreateProject() {
	_, err := s.projects.CreateProject(s.ctx, s.identity(s.manager), CreateProjectInput{Name: "Nope"})
	s.requireDenial(err, apierrors.ErrCodeUnauthorized)

	_, err = s.projects.CreateProject(s.ctx, s.identity(s.admin), CreateProjectInput{Name: "  "})
	s.ErrorIs(err, ErrInvalidProjectName)

	_, err = s.projects.CreateProject(s.ctx, s.identity(s.admin), CreateProjectInput{Name: "Gemini", StartDate: "2024-05-01", EndDate: "2024-04-01"})
	s.requireInputError(err, apierrors.ErrCodeInvalidInput)

	project, err := s.projects.CreateProject(s.ctx, s.identity(s.admin), CreateProjectInput{Name: " Gemini ", StartDate: "2024-04-01"})
	s.Require().NoError(err)
	s.Equal("Gemini", project.Name)
	s.Require().NotNil(project.StartDate)
	s.Nil(project.EndDate)
}

func (s *ServiceTestSuite) TestListProjectsScoped() {
	testutil.CreateProject(s.T(), s.db, "Hidden", s.admin.ID)

	all, err := s.projects.ListProjects(s.ctx, s.identity(s.admin))
	s.Require().NoError(err)
	s.Len(all, 2)

	mine, err := s.projects.ListProjects(s.ctx, s.identity(s.dev))
	s.Require().NoError(err)
	s.Require().Len(mine, 1)
	s.Equal("Apollo", mine[0].Name)

	none, err := s.projects.ListProjects(s.ctx, s.identity(s.outsider))
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *ServiceTestSuite) TestGetProject() {
	_, err := s.projects.GetProject(s.ctx, s.identity(s.outsider), s.project.ID)
	s.requireDenial(err, apierrors.ErrCodeProjectAccessDenied)

	_, err = s.projects.GetProject(s.ctx, s.identity(s.dev), 9999)
	s.ErrorIs(err, ErrProjectNotFound)

	project, err := s.projects.GetProject(s.ctx, s.identity(s.dev), s.project.ID)
	s.Require().NoError(err)
	s.Equal(s.project.ID, project.ID)
}

func (s *ServiceTestSuite) TestUpdateProject() {
	_, err := s.projects.UpdateProject(s.ctx, s.identity(s.manager), s.project.ID, map[string]any{"name": "X", "createdBy": 1})
	var fieldErr *utils.FieldError
	s.ErrorAs(err, &fieldErr)

	_, err = s.projects.UpdateProject(s.ctx, s.identity(s.dev), s.project.ID, map[string]any{"name": "X"})
	s.requireDenial(err, apierrors.ErrCodeUnauthorized)

	project, err := s.projects.UpdateProject(s.ctx, s.identity(s.manager), s.project.ID, map[string]any{"name": "Apollo 2", "endDate": "2025-01-31"})
	s.Require().NoError(err)
	s.Equal("Apollo 2", project.Name)
	s.Require().NotNil(project.EndDate)
}

func (s *ServiceTestSuite) TestAddMember() {
	_, err := s.members.AddMember(s.ctx, s.identity(s.dev), s.project.ID, AddMemberInput{UserID: s.outsider.ID})
	s.requireDenial(err, apierrors.ErrCodeUnauthorized)

	member, err := s.members.AddMember(s.ctx, s.identity(s.manager), s.project.ID, AddMemberInput{UserID: s.outsider.ID, Role: models.MemberRoleQC})
	s.Require().NoError(err)
	s.Equal(models.MemberRoleQC, member.Role)
	s.Equal("outsider", member.User.Username)

	_, err = s.members.AddMember(s.ctx, s.identity(s.admin), s.project.ID, AddMemberInput{UserID: s.outsider.ID})
	s.requireDenial(err, apierrors.ErrCodeAlreadyAdded)

	_, err = s.members.AddMember(s.ctx, s.identity(s.admin), s.project.ID, AddMemberInput{UserID: 9999})
	s.ErrorIs(err, ErrUserNotFound)

	_, err = s.members.AddMember(s.ctx, s.identity(s.admin), s.project.ID, AddMemberInput{UserID: s.admin.ID, Role: "owner"})
	s.requireInputError(err, apierrors.ErrCodeFieldInvalid)

	members, err := s.members.ListMembers(s.ctx, s.identity(s.dev), s.project.ID)
	s.Require().NoError(err)
	s.Len(members, 3)
}

func (s *ServiceTestSuite) TestRemoveMember() {
	s.requireDenial(s.members.RemoveMember(s.ctx, s.identity(s.dev), s.project.ID, s.manager.ID), apierrors.ErrCodeUnauthorized)

	s.Require().NoError(s.members.RemoveMember(s.ctx, s.identity(s.manager), s.project.ID, s.dev.ID))
	s.ErrorIs(s.members.RemoveMember(s.ctx, s.identity(s.manager), s.project.ID, s.dev.ID), ErrMemberNotFound)

	_, err := s.projects.GetProject(s.ctx, s.identity(s.dev), s.project.ID)
	s.requireDenial(err, apierrors.ErrCodeProjectAccessDenied)
}

// Tasks

func (s *ServiceTestSuite) TestCreateTask() {
	_, err := s.tasks.CreateTask(s.ctx, s.identity(s.outsider), CreateTaskInput{ProjectID: s.project.ID, Title: "x"})
	s.requireDenial(err, apierrors.ErrCodeTaskPermissionDenied)

	_, err = s.tasks.CreateTask(s.ctx, s.identity(s.dev), CreateTaskInput{ProjectID: s.project.ID, Title: "x", AssigneeID: s.outsider.ID})
	s.requireDenial(err, apierrors.ErrCodeTaskAssigneeNotFound)

	_, err = s.tasks.CreateTask(s.ctx, s.identity(s.dev), CreateTaskInput{ProjectID: s.project.ID, Title: "x", Status: "done"})
	s.requireInputError(err, apierrors.ErrCodeFieldInvalid)

	task, err := s.tasks.CreateTask(s.ctx, s.identity(s.dev), CreateTaskInput{ProjectID: s.project.ID, Title: " Build ", Priority: models.TaskPriorityHigh})
	s.Require().NoError(err)
	s.Equal("Build", task.Title)
	s.Equal(models.TaskStatusAssigned, task.Status)
	s.Equal(s.dev.ID, task.AssigneeID)
	s.Equal(s.dev.ID, task.CreatedByID)
}

func (s *ServiceTestSuite) TestCreateTaskAdminAssigneeStillBound() {
	_, err := s.tasks.CreateTask(s.ctx, s.identity(s.admin), CreateTaskInput{ProjectID: s.project.ID, Title: "x", AssigneeID: s.outsider.ID})
	s.requireDenial(err, apierrors.ErrCodeTaskAssigneeNotFound)

	var count int64
	s.Require().NoError(s.db.Model(&models.Task{}).Count(&count).Error)
	s.Zero(count)

	task, err := s.tasks.CreateTask(s.ctx, s.identity(s.admin), CreateTaskInput{ProjectID: s.project.ID, Title: "x", AssigneeID: s.dev.ID})
	s.Require().NoError(err)
	s.Equal(s.dev.ID, task.AssigneeID)
}

func (s *ServiceTestSuite) TestCreateTaskTargetVersion() {
	other := testutil.CreateProject(s.T(), s.db, "Other", s.admin.ID)
	foreign, err := s.catalog.CreateTargetVersion(s.ctx, s.identity(s.admin), other.ID, "v9")
	s.Require().NoError(err)
	own, err := s.catalog.CreateTargetVersion(s.ctx, s.identity(s.manager), s.project.ID, "v1")
	s.Require().NoError(err)

	_, err = s.tasks.CreateTask(s.ctx, s.identity(s.dev), CreateTaskInput{ProjectID: s.project.ID, Title: "x", TargetVersionID: &foreign.ID})
	s.ErrorIs(err, ErrTargetVersionNotFound)

	task, err := s.tasks.CreateTask(s.ctx, s.identity(s.dev), CreateTaskInput{ProjectID: s.project.ID, Title: "x", TargetVersionID: &own.ID})
	s.Require().NoError(err)
	s.Require().NotNil(task.TargetVersionID)
	s.Equal(own.ID, *task.TargetVersionID)
}

func (s *ServiceTestSuite) TestListTasksScopedToAssignee() {
	testutil.CreateTask(s.T(), s.db, "mine", s.project.ID, s.dev.ID)
	testutil.CreateTask(s.T(), s.db, "theirs", s.project.ID, s.manager.ID)

	tasks, total, err := s.tasks.ListTasks(s.ctx, s.identity(s.dev), ListTasksInput{})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Equal("mine", tasks[0].Title)

	_, total, err = s.tasks.ListTasks(s.ctx, s.identity(s.admin), ListTasksInput{})
	s.Require().NoError(err)
	s.Equal(int64(2), total)

	_, total, err = s.tasks.ListProjectTasks(s.ctx, s.identity(s.dev), s.project.ID, ListTasksInput{})
	s.Require().NoError(err)
	s.Equal(int64(2), total)

	_, _, err = s.tasks.ListProjectTasks(s.ctx, s.identity(s.outsider), s.project.ID, ListTasksInput{})
	s.requireDenial(err, apierrors.ErrCodeProjectAccessDenied)

	bad := models.TaskStatus("nope")
	_, _, err = s.tasks.ListTasks(s.ctx, s.identity(s.dev), ListTasksInput{Status: &bad})
	s.requireInputError(err, apierrors.ErrCodeFieldInvalid)
}

func (s *ServiceTestSuite) TestGetTask() {
	task := testutil.CreateTask(s.T(), s.db, "t", s.project.ID, s.dev.ID)

	_, err := s.tasks.GetTask(s.ctx, s.identity(s.outsider), task.ID)
	s.requireDenial(err, apierrors.ErrCodeTaskAccessDenied)

	_, err = s.tasks.GetTask(s.ctx, s.identity(s.dev), 9999)
	s.ErrorIs(err, ErrTaskNotFound)

	got, err := s.tasks.GetTask(s.ctx, s.identity(s.manager), task.ID)
	s.Require().NoError(err)
	s.Equal("dev", got.Assignee.Username)
}

func (s *ServiceTestSuite) TestUpdateTask() {
	task := testutil.CreateTask(s.T(), s.db, "t", s.project.ID, s.dev.ID)

	_, err := s.tasks.UpdateTask(s.ctx, s.identity(s.dev), task.ID, map[string]any{"projectId": 2})
	var fieldErr *utils.FieldError
	s.ErrorAs(err, &fieldErr)

	_, err = s.tasks.UpdateTask(s.ctx, s.identity(s.outsider), task.ID, map[string]any{"status": "resolved"})
	s.requireDenial(err, apierrors.ErrCodeTaskAccessDenied)

	_, err = s.tasks.UpdateTask(s.ctx, s.identity(s.dev), task.ID, map[string]any{"status": "finished"})
	s.requireInputError(err, apierrors.ErrCodeFieldInvalid)

	_, err = s.tasks.UpdateTask(s.ctx, s.identity(s.admin), task.ID, map[string]any{"assignee": float64(s.outsider.ID)})
	s.requireDenial(err, apierrors.ErrCodeTaskAssigneeNotFound)

	updated, err := s.tasks.UpdateTask(s.ctx, s.identity(s.dev), task.ID, map[string]any{
		"status":   "inprogress",
		"assignee": float64(s.manager.ID),
		"estimate": 3.5,
	})
	s.Require().NoError(err)
	s.Equal(models.TaskStatusInProgress, updated.Status)
	s.Equal(s.manager.ID, updated.AssigneeID)
	s.Equal("manager", updated.Assignee.Username)
	s.Require().NotNil(updated.Estimate)
	s.InDelta(3.5, *updated.Estimate, 0.001)
}

func (s *ServiceTestSuite) TestSuggestTasks() {
	estimate := -1.0
	s.ai.tasks = []SuggestedTask{
		{Title: " Write docs ", Priority: "urgent", Estimate: &estimate},
		{Title: "   "},
	}

	_, err := s.tasks.SuggestTasks(s.ctx, s.identity(s.outsider), s.project.ID, "docs")
	s.requireDenial(err, apierrors.ErrCodeProjectAccessDenied)

	drafts, err := s.tasks.SuggestTasks(s.ctx, s.identity(s.dev), s.project.ID, "docs")
	s.Require().NoError(err)
	s.Require().Len(drafts, 1)
	s.Equal("Write docs", drafts[0].Title)
	s.Empty(drafts[0].Priority)
	s.Nil(drafts[0].Estimate)

	s.ai.tasks = nil
	_, err = s.tasks.SuggestTasks(s.ctx, s.identity(s.dev), s.project.ID, "docs")
	s.ErrorIs(err, ErrAINoTasksGenerated)

	s.tasks.suggester = nil
	_, err = s.tasks.SuggestTasks(s.ctx, s.identity(s.dev), s.project.ID, "docs")
	s.ErrorIs(err, ErrAIServiceNotConfigured)
}

// Time logs

func (s *ServiceTestSuite) TestCreateLogTime() {
	task := testutil.CreateTask(s.T(), s.db, "t", s.project.ID, s.dev.ID)

	_, err := s.logs.CreateLogTime(s.ctx, s.identity(s.outsider), CreateLogTimeInput{TaskID: task.ID, Time: 1, Date: "2024-03-01"})
	s.requireDenial(err, apierrors.ErrCodeTaskAccessDenied)

	_, err = s.logs.CreateLogTime(s.ctx, s.identity(s.admin), CreateLogTimeInput{TaskID: task.ID, Time: 1, Date: "2024-03-01"})
	s.requireDenial(err, apierrors.ErrCodeTaskAccessDenied)

	_, err = s.logs.CreateLogTime(s.ctx, s.identity(s.dev), CreateLogTimeInput{TaskID: task.ID, Time: 0, Date: "2024-03-01"})
	s.requireInputError(err, apierrors.ErrCodeInvalidInput)

	_, err = s.logs.CreateLogTime(s.ctx, s.identity(s.dev), CreateLogTimeInput{TaskID: task.ID, Time: 1, Date: "yesterday"})
	s.requireInputError(err, apierrors.ErrCodeInvalidInput)

	log, err := s.logs.CreateLogTime(s.ctx, s.identity(s.dev), CreateLogTimeInput{TaskID: task.ID, Time: 2.5, Date: "2024-03-01", Note: "pairing"})
	s.Require().NoError(err)
	s.Equal(s.dev.ID, log.UserID)
	s.Equal(s.project.ID, log.ProjectID)
}

func (s *ServiceTestSuite) TestLogTimeOwnership() {
	task := testutil.CreateTask(s.T(), s.db, "t", s.project.ID, s.dev.ID)
	log := testutil.CreateLogTime(s.T(), s.db, task, s.dev.ID, 2)

	_, err := s.logs.GetLogTime(s.ctx, s.identity(s.manager), log.ID)
	s.NoError(err, "members of the project can read")

	_, err = s.logs.GetLogTime(s.ctx, s.identity(s.outsider), log.ID)
	s.requireDenial(err, apierrors.ErrCodeAccessDenied)

	_, err = s.logs.UpdateLogTime(s.ctx, s.identity(s.manager), log.ID, map[string]any{"time": 4.0})
	s.requireDenial(err, apierrors.ErrCodeAccessDenied)

	_, err = s.logs.UpdateLogTime(s.ctx, s.identity(s.dev), log.ID, map[string]any{"userId": 1})
	var fieldErr *utils.FieldError
	s.ErrorAs(err, &fieldErr)

	updated, err := s.logs.UpdateLogTime(s.ctx, s.identity(s.dev), log.ID, map[string]any{"time": 4.0, "note": "more"})
	s.Require().NoError(err)
	s.InDelta(4.0, updated.Time, 0.001)
	s.Equal("more", updated.Note)

	s.requireDenial(s.logs.DeleteLogTime(s.ctx, s.identity(s.manager), log.ID), apierrors.ErrCodeAccessDenied)
	s.Require().NoError(s.logs.DeleteLogTime(s.ctx, s.identity(s.dev), log.ID))

	_, err = s.logs.GetLogTime(s.ctx, s.identity(s.dev), log.ID)
	s.ErrorIs(err, ErrLogTimeNotFound)
}

func (s *ServiceTestSuite) TestListLogTimes() {
	task := testutil.CreateTask(s.T(), s.db, "t", s.project.ID, s.dev.ID)
	testutil.CreateLogTime(s.T(), s.db, task, s.dev.ID, 1)
	testutil.CreateLogTime(s.T(), s.db, task, s.manager.ID, 2)

	_, total, err := s.logs.ListLogTimes(s.ctx, s.identity(s.dev), ListLogTimesInput{})
	s.Require().NoError(err)
	s.Equal(int64(1), total, "own logs only without a project filter")

	_, total, err = s.logs.ListLogTimes(s.ctx, s.identity(s.dev), ListLogTimesInput{ProjectID: &s.project.ID})
	s.Require().NoError(err)
	s.Equal(int64(2), total)

	_, _, err = s.logs.ListLogTimes(s.ctx, s.identity(s.outsider), ListLogTimesInput{ProjectID: &s.project.ID})
	s.requireDenial(err, apierrors.ErrCodeUnauthorized)

	_, total, err = s.logs.ListLogTimes(s.ctx, s.identity(s.admin), ListLogTimesInput{TaskID: &task.ID})
	s.Require().NoError(err)
	s.Equal(int64(2), total)
}

// Catalog

func (s *ServiceTestSuite) TestCatalog() {
	_, err := s.catalog.CreateTag(s.ctx, s.identity(s.dev), s.project.ID, TagInput{Name: "bug"})
	s.requireDenial(err, apierrors.ErrCodeUnauthorized)

	_, err = s.catalog.CreateTag(s.ctx, s.identity(s.manager), s.project.ID, TagInput{})
	s.ErrorIs(err, ErrNameRequired)

	tag, err := s.catalog.CreateTag(s.ctx, s.identity(s.manager), s.project.ID, TagInput{Name: "bug", Color: "#f00", TextColor: "#fff"})
	s.Require().NoError(err)
	s.Equal("#fff", tag.TextColor)

	tags, err := s.catalog.ListTags(s.ctx, s.identity(s.dev), s.project.ID)
	s.Require().NoError(err)
	s.Len(tags, 1)

	_, err = s.catalog.ListTargetVersions(s.ctx, s.identity(s.outsider), s.project.ID)
	s.requireDenial(err, apierrors.ErrCodeProjectAccessDenied)

	_, err = s.catalog.ListTags(s.ctx, s.identity(s.dev), 9999)
	s.ErrorIs(err, ErrProjectNotFound)
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

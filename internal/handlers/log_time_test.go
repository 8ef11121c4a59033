package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/tracker-api/internal/authz"
	"github.com/yukikurage/tracker-api/internal/logging"
	"github.com/yukikurage/tracker-api/internal/models"
	"github.com/yukikurage/tracker-api/internal/repository"
	"github.com/yukikurage/tracker-api/internal/services"
	"github.com/yukikurage/tracker-api/internal/testutil"
)

func setupLogTimeHandler(t *testing.T) (*LogTimeHandler, *models.Task, authz.Identity, authz.Identity, authz.Identity) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	projectRepo := repository.NewProjectRepository(db)
	svc := services.NewLogTimeService(
		repository.NewLogTimeRepository(db),
		repository.NewTaskRepository(db),
		authz.New(projectRepo),
	)

	admin := testutil.CreateUser(t, db, "admin", models.RoleAdmin)
	author := testutil.CreateUser(t, db, "author", models.RoleUser)
	peer := testutil.CreateUser(t, db, "peer", models.RoleUser)
	project := testutil.CreateProject(t, db, "Apollo", admin.ID)
	testutil.AddMember(t, db, project.ID, author.ID, models.MemberRoleDev)
	testutil.AddMember(t, db, project.ID, peer.ID, models.MemberRoleQC)
	task := testutil.CreateTask(t, db, "Wire it", project.ID, author.ID)

	return NewLogTimeHandler(svc, logging.Discard()),
		task,
		authz.Identity{UserID: admin.ID, Role: models.RoleAdmin},
		authz.Identity{UserID: author.ID, Role: models.RoleUser},
		authz.Identity{UserID: peer.ID, Role: models.RoleUser}
}

func TestLogTimeHandler_Create(t *testing.T) {
	handler, task, admin, author, _ := setupLogTimeHandler(t)

	tests := []struct {
		name   string
		id     authz.Identity
		body   gin.H
		status int
		code   string
	}{
		{"member", author, gin.H{"taskId": task.ID, "time": 2.5, "date": "2024-03-01", "note": "wiring"}, http.StatusCreated, ""},
		{"admin outside project", admin, gin.H{"taskId": task.ID, "time": 1, "date": "2024-03-01"}, http.StatusForbidden, "TASK_ACCESS_DENIED"},
		{"zero time", author, gin.H{"taskId": task.ID, "time": 0, "date": "2024-03-01"}, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad date", author, gin.H{"taskId": task.ID, "time": 1, "date": "March"}, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown task", author, gin.H{"taskId": 404, "time": 1, "date": "2024-03-01"}, http.StatusNotFound, "TASK_NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := identityContext(http.MethodPost, "/api/logtimes", tt.body, tt.id)
			handler.CreateLogTime(c)

			require.Equal(t, tt.status, w.Code, w.Body.String())
			response := decodeBody(t, w.Body.Bytes())
			if tt.code != "" {
				assert.Equal(t, tt.code, response["code"])
				return
			}
			log := response["logtime"].(map[string]any)
			assert.Equal(t, "2024-03-01", log["date"])
			assert.Equal(t, float64(task.ProjectID), log["projectId"])
			assert.Equal(t, float64(author.UserID), log["userId"])
		})
	}
}

func TestLogTimeHandler_AuthorOnlyWrites(t *testing.T) {
	handler, task, admin, author, peer := setupLogTimeHandler(t)

	c, w := identityContext(http.MethodPost, "/api/logtimes", gin.H{"taskId": task.ID, "time": 3, "date": "2024-03-02"}, author)
	handler.CreateLogTime(c)
	require.Equal(t, http.StatusCreated, w.Code)
	logID := uint64(decodeBody(t, w.Body.Bytes())["logtime"].(map[string]any)["id"].(float64))
	params := gin.Params{{Key: "id", Value: fmt.Sprint(logID)}}

	c, w = identityContext(http.MethodGet, "/api/logtimes/1", nil, peer)
	c.Params = params
	handler.GetLogTime(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = identityContext(http.MethodPatch, "/api/logtimes/1", gin.H{"time": 4}, peer)
	c.Params = params
	handler.UpdateLogTime(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "ACCESS_DENIED", decodeBody(t, w.Body.Bytes())["code"])

	c, w = identityContext(http.MethodPatch, "/api/logtimes/1", gin.H{"time": 4, "note": "more"}, author)
	c.Params = params
	handler.UpdateLogTime(c)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(4), decodeBody(t, w.Body.Bytes())["logtime"].(map[string]any)["time"])

	c, w = identityContext(http.MethodPatch, "/api/logtimes/1", gin.H{"taskId": 9, "time": 8}, author)
	c.Params = params
	handler.UpdateLogTime(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "FIELD_INVALID", decodeBody(t, w.Body.Bytes())["code"])

	c, w = identityContext(http.MethodGet, "/api/logtimes/1", nil, author)
	c.Params = params
	handler.GetLogTime(c)
	require.Equal(t, http.StatusOK, w.Code)
	unchanged := decodeBody(t, w.Body.Bytes())["logtime"].(map[string]any)
	assert.Equal(t, float64(4), unchanged["time"])
	assert.Equal(t, float64(task.ID), unchanged["taskId"])

	c, w = identityContext(http.MethodDelete, "/api/logtimes/1", nil, admin)
	c.Params = params
	handler.DeleteLogTime(c)
	require.Equal(t, http.StatusOK, w.Code)

	c, w = identityContext(http.MethodGet, "/api/logtimes/1", nil, author)
	c.Params = params
	handler.GetLogTime(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "MODEL_NOT_FOUND", decodeBody(t, w.Body.Bytes())["code"])
}

func TestLogTimeHandler_List(t *testing.T) {
	handler, task, _, author, peer := setupLogTimeHandler(t)

	for _, date := range []string{"2024-03-01", "2024-03-02"} {
		c, w := identityContext(http.MethodPost, "/api/logtimes", gin.H{"taskId": task.ID, "time": 1, "date": date}, author)
		handler.CreateLogTime(c)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	c, w := identityContext(http.MethodGet, "/api/logtimes", nil, peer)
	handler.ListLogTimes(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody(t, w.Body.Bytes())["logtimes"])

	c, w = identityContext(http.MethodGet, fmt.Sprintf("/api/logtimes?projectId=%d&limit=1", task.ProjectID), nil, peer)
	handler.ListLogTimes(c)
	require.Equal(t, http.StatusOK, w.Code)
	response := decodeBody(t, w.Body.Bytes())
	assert.Len(t, response["logtimes"], 1)
	assert.Equal(t, float64(2), response["pagination"].(map[string]any)["total"])

	c, w = identityContext(http.MethodGet, "/api/logtimes?taskId=abc", nil, author)
	handler.ListLogTimes(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

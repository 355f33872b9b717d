package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/staffhub/employee-system/internal/core/domain"
	"github.com/staffhub/employee-system/internal/core/ports"
)

type stubProjectService struct {
	createFn func(ctx context.Context, input ports.CreateProjectInput) (*domain.Project, error)
	getFn    func(ctx context.Context, id string) (*ports.ProjectDetail, error)
	listFn   func(ctx context.Context) ([]ports.ProjectDetail, error)
	updateFn func(ctx context.Context, id string, input ports.UpdateProjectInput) (*domain.Project, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubProjectService) Create(ctx context.Context, input ports.CreateProjectInput) (*domain.Project, error) {
	return s.createFn(ctx, input)
}

func (s *stubProjectService) Get(ctx context.Context, id string) (*ports.ProjectDetail, error) {
	return s.getFn(ctx, id)
}

func (s *stubProjectService) List(ctx context.Context) ([]ports.ProjectDetail, error) {
	return s.listFn(ctx)
}

func (s *stubProjectService) Update(ctx context.Context, id string, input ports.UpdateProjectInput) (*domain.Project, error) {
	return s.updateFn(ctx, id, input)
}

func (s *stubProjectService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func TestProjectHandler_Create_DuplicateNamePropagates(t *testing.T) {
	stub := &stubProjectService{
		createFn: func(ctx context.Context, input ports.CreateProjectInput) (*domain.Project, error) {
			return nil, domain.ErrProjectExists
		},
	}
	h := NewProjectHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/api/projects", `{"name":"Apollo"}`)
	if err := h.Create(c); !errors.Is(err, domain.ErrProjectExists) {
		t.Fatalf("expected ErrProjectExists, got %v", err)
	}
}

func TestProjectHandler_Create_MissingName(t *testing.T) {
	h := NewProjectHandler(&stubProjectService{})

	c, _ := newTestContext(t, http.MethodPost, "/api/projects", `{"description":"no name"}`)
	err := h.Create(c)

	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestProjectHandler_Get_IncludesTeamMembers(t *testing.T) {
	stub := &stubProjectService{
		getFn: func(ctx context.Context, id string) (*ports.ProjectDetail, error) {
			return &ports.ProjectDetail{
				Project: domain.Project{ID: id, Name: "Apollo", TeamMemberIDs: []string{"e1"}},
				TeamMembers: []domain.TeamMember{
					{ID: "e1", Name: "Ann", Email: "ann@x.com"},
				},
			}, nil
		},
	}
	h := NewProjectHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/api/projects/p1", "")
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp struct {
		Name        string              `json:"name"`
		TeamMembers []domain.TeamMember `json:"team_members"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Name != "Apollo" || len(resp.TeamMembers) != 1 || resp.TeamMembers[0].Name != "Ann" {
		t.Fatalf("unexpected payload: %s", rec.Body.String())
	}
}

func TestProjectHandler_Update_PassesID(t *testing.T) {
	stub := &stubProjectService{
		updateFn: func(ctx context.Context, id string, input ports.UpdateProjectInput) (*domain.Project, error) {
			if id != "p2" || input.Description != "revised" {
				t.Fatalf("unexpected args: %s %+v", id, input)
			}
			return &domain.Project{ID: id, Name: "Apollo", Description: input.Description}, nil
		},
	}
	h := NewProjectHandler(stub)

	c, rec := newTestContext(t, http.MethodPut, "/api/projects/p2", `{"description":"revised"}`)
	c.SetParamNames("id")
	c.SetParamValues("p2")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"assignment_hub/internal/domain"
)

const dateLayout = "2006-01-02"

// Both read variants share one wire shape: the upstream contract's
// {"content": [...]} wrapper.
type listResponse struct {
	Content []assignmentResponse `json:"content"`
}

type assignmentResponse struct {
	ID                int64              `json:"id"`
	SourceID          string             `json:"sourceId"`
	Title             string             `json:"title"`
	StartDate         string             `json:"startDate"`
	EndDate           string             `json:"endDate"`
	HoursPerWeek      int                `json:"hoursPerWeek"`
	Level             string             `json:"level"`
	Locations         []locationResponse `json:"locations"`
	LegalEntityClient clientResponse     `json:"legalEntityClient"`
}

type locationResponse struct {
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type clientResponse struct {
	Name string `json:"name"`
}

func toAssignmentResponse(a domain.Assignment) assignmentResponse {
	resp := assignmentResponse{
		ID:                a.ID,
		SourceID:          a.SourceID,
		Title:             a.Title,
		StartDate:         a.StartDate.Format(dateLayout),
		EndDate:           a.EndDate.Format(dateLayout),
		HoursPerWeek:      a.HoursPerWeek,
		Level:             a.Level,
		Locations:         make([]locationResponse, 0, len(a.Locations)),
		LegalEntityClient: clientResponse{Name: a.Client.Name},
	}
	for _, loc := range a.Locations {
		resp.Locations = append(resp.Locations, locationResponse{
			Name:    loc.Name,
			City:    loc.City,
			Country: loc.Country,
		})
	}
	return resp
}

func (s *Server) internalError(c *gin.Context, msg string, err error) {
	s.logger.Error(msg, "error", err, "path", c.FullPath())
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// listJobRequests serves the stored copy of the listings.
func (s *Server) listJobRequests(c *gin.Context) {
	assignments, err := s.assignments.List(c.Request.Context())
	if err != nil {
		s.internalError(c, "list assignments failed", err)
		return
	}

	resp := listResponse{Content: make([]assignmentResponse, 0, len(assignments))}
	for _, a := range assignments {
		resp.Content = append(resp.Content, toAssignmentResponse(a))
	}

	c.JSON(http.StatusOK, resp)
}

// upstreamJobRequests relays the validated upstream payload without touching
// the store; ids stay numeric as upstream sends them.
func (s *Server) upstreamJobRequests(c *gin.Context) {
	payload, err := s.upstream.FetchValidated(c.Request.Context())
	if err != nil {
		s.internalError(c, "upstream fetch failed", err)
		return
	}

	c.JSON(http.StatusOK, payload)
}

func (s *Server) getJobRequest(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	assignment, err := s.assignments.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "assignment not found"})
			return
		}
		s.internalError(c, "get assignment failed", err)
		return
	}

	c.JSON(http.StatusOK, toAssignmentResponse(*assignment))
}

type applicationRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

func (s *Server) submitApplication(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req applicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if _, err := s.assignments.GetByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "assignment not found"})
			return
		}
		s.internalError(c, "get assignment failed", err)
		return
	}

	application := &domain.Application{
		AssignmentID: id,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Message:      req.Message,
	}

	if err := s.applications.Create(c.Request.Context(), application); err != nil {
		s.internalError(c, "create application failed", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": application.ID})
}

func (s *Server) listFavorites(c *gin.Context) {
	ids, err := s.favorites.List(c.Request.Context())
	if err != nil {
		s.internalError(c, "list favorites failed", err)
		return
	}

	c.JSON(http.StatusOK, ids)
}

func (s *Server) toggleFavorite(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	ids, err := s.favorites.Toggle(c.Request.Context(), id)
	if err != nil {
		s.internalError(c, "toggle favorite failed", err)
		return
	}

	c.JSON(http.StatusOK, ids)
}

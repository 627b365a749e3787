package api

import (
	"net/http"

	"github.com/vytor/cerebro/internal/errors"
	"github.com/vytor/cerebro/internal/models"
)

type courseRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type topicRequest struct {
	CourseID int64  `json:"courseId"`
	Name     string `json:"name"`
}

type toggleRequest struct {
	Completed *bool `json:"completed"`
}

func (s *Server) handleCreateCourse(w http.ResponseWriter, r *http.Request) {
	var req courseRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	course, err := s.Courses.CreateCourse(r.Context(), models.Course{Name: req.Name, Description: req.Description})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, course)
}

func (s *Server) handleListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := s.Courses.ListCourses(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, courses)
}

func (s *Server) handleGetCourse(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	course, err := s.Courses.GetCourse(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, course)
}

func (s *Server) handleDeleteCourse(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.Courses.DeleteCourse(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleTopicsByCourse(w http.ResponseWriter, r *http.Request) {
	s.writeTopics(w, r, "id")
}

func (s *Server) handleTopicsByCourseParam(w http.ResponseWriter, r *http.Request) {
	s.writeTopics(w, r, "courseId")
}

func (s *Server) writeTopics(w http.ResponseWriter, r *http.Request, param string) {
	courseID, err := pathID(r, param)
	if err != nil {
		handleError(w, r, err)
		return
	}
	topics, err := s.Courses.TopicsByCourse(r.Context(), courseID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, topics)
}

func (s *Server) handleCreateTopic(w http.ResponseWriter, r *http.Request) {
	var req topicRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	topic, err := s.Courses.CreateTopic(r.Context(), models.Topic{CourseID: req.CourseID, Name: req.Name})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, topic)
}

func (s *Server) handleToggleTopic(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	var req toggleRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.Completed == nil {
		handleError(w, r, errors.NewBadRequestError("completed is required"))
		return
	}
	topic, err := s.Courses.ToggleTopicComplete(r.Context(), id, *req.Completed)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, topic)
}

package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/examhub/internal/server/models"
	"github.com/dmitrijs2005/examhub/internal/server/services"
	"github.com/gorilla/mux"
)

// own returns the {id} path variable when it names the authenticated
// student, and reports a 403 otherwise.
func (s *Server) own(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := mux.Vars(r)["id"]
	if id != userID(r.Context()) {
		s.fail(w, r, services.ErrForbidden)
		return "", false
	}
	return id, true
}

func (s *Server) questions(w http.ResponseWriter, r *http.Request) {
	qs, err := s.content.Questions(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(qs, toQuestion), "Questions fetched")
}

func (s *Server) questionDetails(w http.ResponseWriter, r *http.Request) {
	q, err := s.content.QuestionDetails(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toQuestion(*q), "Question fetched")
}

type questionRequest struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	SubjectID string `json:"subjectId"`
	Marks     int    `json:"marks"`
	Content   string `json:"content"`
}

func (q questionRequest) input() services.QuestionInput {
	return services.QuestionInput{Title: q.Title, SubjectID: q.SubjectID, Marks: q.Marks, Content: q.Content}
}

func (s *Server) postQuestion(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	q, err := s.content.PostQuestion(r.Context(), userID(r.Context()), req.input())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toQuestion(*q), "Question posted")
}

// updateQuestion edits the question named in the body; only its owner may.
func (s *Server) updateQuestion(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if req.ID == "" {
		s.fail(w, r, services.ErrMissingFields)
		return
	}

	q, err := s.content.UpdateQuestion(r.Context(), userID(r.Context()), req.ID, req.input())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toQuestion(*q), "Question updated")
}

func (s *Server) studentPosts(w http.ResponseWriter, r *http.Request) {
	qs, err := s.content.StudentPosts(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(qs, toQuestion), "Student posts fetched")
}

func (s *Server) recentActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := s.own(w, r)
	if !ok {
		return
	}
	qs, err := s.content.RecentActivity(r.Context(), id, services.DefaultRecentActivityLimit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(qs, toQuestion), "Recent activity fetched")
}

func (s *Server) topContributors(w http.ResponseWriter, r *http.Request) {
	cs, err := s.content.TopContributors(r.Context(), services.DefaultContributorsLimit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(cs, func(c services.Contributor) contributorView {
		return contributorView{Owner: toUser(&c.Owner), TotalReads: c.TotalReads, QuestionCount: c.QuestionCount}
	}), "Top contributors fetched")
}

func (s *Server) analytics(w http.ResponseWriter, r *http.Request) {
	id, ok := s.own(w, r)
	if !ok {
		return
	}
	a, err := s.content.Analytics(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, analyticsView(*a), "Analytics fetched")
}

func (s *Server) withdrawals(w http.ResponseWriter, r *http.Request) {
	id, ok := s.own(w, r)
	if !ok {
		return
	}
	ws, err := s.content.Withdrawals(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(ws, func(wd models.Withdrawal) withdrawalView {
		return withdrawalView(wd)
	}), "Withdrawal requests fetched")
}

func (s *Server) institutes(w http.ResponseWriter, r *http.Request) {
	is, err := s.content.Institutes(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(is, func(i models.Institute) *instituteView { return toInstitute(&i) }), "Institutes fetched")
}

func (s *Server) instituteCourses(w http.ResponseWriter, r *http.Request) {
	cs, err := s.content.InstituteCourses(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(cs, func(c models.Course) *courseView { return toCourse(&c) }), "Institute courses fetched")
}

func (s *Server) courses(w http.ResponseWriter, r *http.Request) {
	cs, err := s.content.Courses(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(cs, func(c models.Course) *courseView { return toCourse(&c) }), "Courses fetched")
}

func (s *Server) subjects(w http.ResponseWriter, r *http.Request) {
	ss, err := s.content.Subjects(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(ss, func(sub models.Subject) subjectView { return toSubject(&sub) }), "Subjects fetched")
}

func (s *Server) subjectsByCourse(w http.ResponseWriter, r *http.Request) {
	ss, err := s.content.SubjectsByCourse(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(ss, func(sub models.Subject) subjectView { return toSubject(&sub) }), "Subjects fetched")
}

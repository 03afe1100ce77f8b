package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/examhub/internal/common"
	"github.com/gorilla/mux"
)

func (s *Server) routes() http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeErrorPage(w, r, http.StatusNotFound, CodeNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeErrorPage(w, r, http.StatusMethodNotAllowed, CodeMethodNotAllowed)
	})
	r.Use(s.recoverPanics, s.logRequests)

	api := r.PathPrefix(APIPrefix).Subrouter()

	api.HandleFunc("/student/login/", s.login).Methods(http.MethodPost)
	api.HandleFunc("/student/signup", s.signup).Methods(http.MethodPost)
	api.HandleFunc(common.RefreshPath, s.refresh).Methods(http.MethodPost)
	api.HandleFunc("/student/generateOtp", s.generateOTP).Methods(http.MethodPost)
	api.HandleFunc("/student/verifyOtp", s.verifyOTP).Methods(http.MethodPost)
	api.HandleFunc("/student/resetPassword", s.resetPassword).Methods(http.MethodPost)

	protected := func(path string, h http.HandlerFunc, method string) {
		api.Handle(path, s.authenticate(h)).Methods(method)
	}

	protected("/student/getUserDetails/{id}", s.userDetails, http.MethodGet)
	protected("/student/student-posts/{id}", s.studentPosts, http.MethodGet)
	protected("/student/updateUserProfile/{id}", s.updateProfile, http.MethodPatch)
	protected("/student/changePassword", s.changePassword, http.MethodPost)
	protected("/student/getTopContributors/", s.topContributors, http.MethodGet)
	protected("/student/analytics/{id}", s.analytics, http.MethodGet)

	protected("/question/getAllQuestions", s.questions, http.MethodGet)
	protected("/question/getQuestionDetails/{id}", s.questionDetails, http.MethodGet)
	protected("/question/getRecentActivity/{id}", s.recentActivity, http.MethodGet)
	protected("/question/postQuestion", s.postQuestion, http.MethodPost)
	protected("/question/updateQuestionDetails", s.updateQuestion, http.MethodPatch)

	protected("/institute/getAllInstitutes", s.institutes, http.MethodGet)
	protected("/instituteCourse/getInstituteCourses/{id}", s.instituteCourses, http.MethodGet)
	protected("/course/getAllCourses", s.courses, http.MethodGet)
	protected("/subject/getAllSubjects/", s.subjects, http.MethodGet)
	protected("/subject/getByCourse/{id}", s.subjectsByCourse, http.MethodGet)

	protected("/withdraw/requests/{id}", s.withdrawals, http.MethodGet)

	return r
}

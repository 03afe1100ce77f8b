// Package models defines the client-side view of backend resources:
// students, questions and the institute/course/subject catalog.
//
// Field names follow the backend's JSON (ids are "_id").
package models

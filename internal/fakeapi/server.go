// Package fakeapi provides an in-memory Hobby Part Tracker backend for tests.
//
// It serves the same routes as the real backend over httptest, keeps its
// collections in memory, records every request, and can be told to fail a
// route with a given status code.
package fakeapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/gorilla/mux"

	"github.com/hobbyparts/hpt/internal/model"
)

// Request is a recorded request.
type Request struct {
	Method        string
	Path          string
	Authorization string
	RequestID     string
}

// Data is the initial content of the fake backend.
type Data struct {
	Items      []model.Item
	Containers []model.Container
	Locations  []model.Location
	Links      []model.ItemLocationLink
	Projects   []model.Project
}

// Server is a fake backend. Use New to start one and Close to stop it.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	data     Data
	nextLink model.ID
	requests []Request
	failures map[string]int
	token    string
}

// New starts a fake backend serving data.
func New(data Data) *Server {
	s := &Server{
		data:     data,
		failures: make(map[string]int),
		nextLink: 1,
	}
	for _, l := range data.Links {
		if l.ItemLocationID >= s.nextLink {
			s.nextLink = l.ItemLocationID + 1
		}
	}

	r := mux.NewRouter()
	r.Use(s.record)
	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/ItemsBlob/GetItems", s.list(func(d *Data) any { return d.Items })).Methods(http.MethodGet)
	api.HandleFunc("/containers/GetContainers", s.list(func(d *Data) any { return d.Containers })).Methods(http.MethodGet)
	api.HandleFunc("/locations/GetLocations", s.list(func(d *Data) any { return d.Locations })).Methods(http.MethodGet)
	api.HandleFunc("/item_locations/GetItemLocations", s.list(func(d *Data) any { return d.Links })).Methods(http.MethodGet)
	api.HandleFunc("/ProjectsBlob/GetProjects", s.list(func(d *Data) any { return d.Projects })).Methods(http.MethodGet)
	api.HandleFunc("/item_locations/AddItemLocation", s.addLink).Methods(http.MethodPost)
	api.HandleFunc("/item_locations/DeleteItemLocation/{id}", s.deleteLink).Methods(http.MethodDelete)

	s.Server = httptest.NewServer(r)
	return s
}

// RequireToken makes every /api route answer 401 unless the bearer token matches.
func (s *Server) RequireToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Fail makes the route at path answer with status until cleared with Fail(path, 0).
func (s *Server) Fail(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.failures, path)
		return
	}
	s.failures[path] = status
}

// Requests returns a copy of the recorded requests, in arrival order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Links returns the current link rows.
func (s *Server) Links() []model.ItemLocationLink {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.ItemLocationLink(nil), s.data.Links...)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			RequestID:     r.Header.Get("X-Request-ID"),
		})
		status := s.failures[r.URL.Path]
		token := s.token
		s.mu.Unlock()

		if status != 0 {
			http.Error(w, http.StatusText(status), status)
			return
		}
		if token != "" && r.URL.Path != "/health" && r.Header.Get("Authorization") != "Bearer "+token {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) list(pick func(*Data) any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		s.mu.Lock()
		body, err := json.Marshal(pick(&s.data))
		s.mu.Unlock()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}
}

func (s *Server) addLink(w http.ResponseWriter, r *http.Request) {
	var link model.ItemLocationLink
	if err := json.NewDecoder(r.Body).Decode(&link); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	link.ItemLocationID = s.nextLink
	s.nextLink++
	s.data.Links = append(s.data.Links, link)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, link)
}

func (s *Server) deleteLink(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.data.Links {
		if l.ItemLocationID == id {
			s.data.Links = append(s.data.Links[:i:i], s.data.Links[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	http.Error(w, "not found", http.StatusNotFound)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

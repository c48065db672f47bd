package bindingstest

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/containers/docker-cp/pkg/define"
	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

// APIVersion is the engine API version announced by Server.
const APIVersion = "1.41"

// xDockerContainerPathStatHeader is the header carrying the base64 encoded
// stat of the path requested from /containers/{name}/archive.
const xDockerContainerPathStatHeader = "X-Docker-Container-Path-Stat"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type pathStat struct {
	Name       string      `json:"name"`
	Size       int64       `json:"size"`
	Mode       os.FileMode `json:"mode"`
	Mtime      time.Time   `json:"mtime"`
	LinkTarget string      `json:"linkTarget"`
}

type archiveQuery struct {
	Path                 string `schema:"path"`
	Chown                bool   `schema:"copyUIDGID"`
	NoOverwriteDirNonDir bool   `schema:"noOverwriteDirNonDir"`
}

// Server serves the containers of a FakeClient over the subset of the
// Docker API used by bindings.NewConnection.
type Server struct {
	*httptest.Server
	Backend *FakeClient
	decoder *schema.Decoder
}

// NewServer starts a server backed by backend.  Close it when done.
func NewServer(backend *FakeClient) *Server {
	s := &Server{
		Backend: backend,
		decoder: schema.NewDecoder(),
	}
	s.decoder.IgnoreUnknownKeys(true)

	r := mux.NewRouter()
	for _, prefix := range []string{"", "/v{version:[0-9.]+}"} {
		r.HandleFunc(prefix+"/_ping", s.ping).Methods(http.MethodGet, http.MethodHead)
		r.HandleFunc(prefix+"/containers/{name}/json", s.inspect).Methods(http.MethodGet)
		r.HandleFunc(prefix+"/containers/{name}/archive", s.archive).Methods(http.MethodGet, http.MethodHead, http.MethodPut)
	}
	s.Server = httptest.NewServer(r)
	return s
}

// URI returns the address of the server in DOCKER_HOST form.
func (s *Server) URI() string {
	return "tcp://" + s.Listener.Addr().String()
}

func (s *Server) ping(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("API-Version", APIVersion)
	w.Header().Set("OSType", "linux")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodGet {
		_, _ = io.WriteString(w, "OK")
	}
}

func (s *Server) inspect(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	ctr, ok := s.Backend.Lookup(name)
	if !ok {
		writeError(w, http.StatusNotFound, "No such container: "+name)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"Id":   ctr.ID(),
		"Name": "/" + ctr.Name(),
		"State": map[string]interface{}{
			"Status":  "running",
			"Running": true,
		},
	})
}

func (s *Server) archive(w http.ResponseWriter, r *http.Request) {
	var query archiveQuery
	if err := s.decoder.Decode(&query, r.URL.Query()); err != nil {
		writeError(w, http.StatusBadRequest, "couldn't decode the query: "+err.Error())
		return
	}
	if query.Path == "" {
		writeError(w, http.StatusBadRequest, "missing `path` parameter")
		return
	}

	name := mux.Vars(r)["name"]
	ctr, ok := s.Backend.Lookup(name)
	if !ok {
		writeError(w, http.StatusNotFound, "No such container: "+name)
		return
	}

	if r.Method == http.MethodPut {
		s.put(w, r, ctr, query)
		return
	}

	archive, entry, err := ctr.Stat(query.Path)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, define.ErrNoSuchPath) {
			code = http.StatusNotFound
		}
		writeError(w, code, err.Error())
		return
	}

	stat, err := json.Marshal(pathStat{
		Name:  entry.Name,
		Size:  entry.Size,
		Mode:  define.FileMode(entry.Mode),
		Mtime: entry.ModTime(),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set(xDockerContainerPathStatHeader, base64.StdEncoding.EncodeToString(stat))

	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}
	w.Header().Set("Content-Type", "application/x-tar")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(archive); err != nil {
		logrus.Errorf("Unable to write archive: %q", err)
	}
}

func (s *Server) put(w http.ResponseWriter, r *http.Request, ctr *FakeContainer, query archiveQuery) {
	if err := ctr.PutArchive(r.Context(), query.Path, r.Body); err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, define.ErrNoSuchPath) {
			code = http.StatusNotFound
		}
		writeError(w, code, err.Error())
		return
	}
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, code int, value interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(value); err != nil {
		logrus.Errorf("Unable to write json: %q", err)
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"message": msg})
}

package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"interntrack/intern-track/internal/repository/memory"
	"interntrack/intern-track/internal/service"
	"interntrack/intern-track/internal/storage"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "api-test-secret"

type testServer struct {
	router   *gin.Engine
	root     string
	students *memory.StudentRepository
	tokens   service.TokenService
}

func newTestServer(t *testing.T, maxSize int64) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	root := t.TempDir()
	planner, err := storage.NewPlanner(root)
	if err != nil {
		t.Fatal(err)
	}
	store := storage.NewLocalDocumentStore(planner, maxSize)

	students := memory.NewStudentRepository()
	coordinators := memory.NewCoordinatorRepository()
	internships := memory.NewInternshipRepository()
	tokens := service.NewTokenService(testSecret, 0)

	router := gin.New()
	SetupRoutes(router, RouterConfig{
		AuthService:        service.NewAuthService(students, coordinators, tokens, bcrypt.MinCost),
		StudentService:     service.NewStudentService(students),
		InternshipService:  service.NewInternshipService(internships, store, nil, service.InternshipOptions{URLPrefix: "/documents"}),
		Resolver:           service.NewPrincipalResolver(tokens, students, coordinators),
		DocumentsRoot:      planner.Root(),
		DocumentsURLPrefix: "/documents",
		MaxUploadSize:      maxSize,
	})

	return &testServer{router: router, root: root, students: students, tokens: tokens}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	return httptestDo(s.router, req)
}

func httptestDo(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func (s *testServer) doJSON(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return s.do(req)
}

type upload struct {
	field       string
	fileName    string
	contentType string
	content     []byte
}

func (s *testServer) doUpload(t *testing.T, token string, fields map[string]string, file *upload) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if file != nil {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="`+file.field+`"; filename="`+file.fileName+`"`)
		h.Set("Content-Type", file.contentType)
		part, err := mw.CreatePart(h)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write(file.content); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/internships", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return s.do(req)
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	decode(t, w, &body)
	return body.Error
}

func pdf(size int) []byte {
	b := bytes.Repeat([]byte("x"), size)
	copy(b, "%PDF-1.7\n")
	return b
}

func internshipFields() map[string]string {
	return map[string]string{
		"batch":              "2021",
		"mobileNumber":       "9876543210",
		"companyName":        "Acme",
		"duration":           "8",
		"stipend":            "10000",
		"obtainedThroughCDC": "on",
	}
}

func (s *testServer) registerStudent(t *testing.T, regNo, email string) string {
	t.Helper()
	w := s.doJSON(t, http.MethodPost, "/api/v1/register/student", "", map[string]string{
		"registerNumber": regNo, "name": "A", "email": email, "password": "secret1", "batch": "2021",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register student: %d %s", w.Code, w.Body.String())
	}
	var resp StudentAuthResponse
	decode(t, w, &resp)
	return resp.Token
}

func (s *testServer) registerCoordinator(t *testing.T, email string) string {
	t.Helper()
	w := s.doJSON(t, http.MethodPost, "/api/v1/register/coordinator", "", map[string]string{
		"email": email, "password": "secret1", "name": "Head", "department": "CSE",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register coordinator: %d %s", w.Code, w.Body.String())
	}
	var resp CoordinatorAuthResponse
	decode(t, w, &resp)
	return resp.Token
}

package handler

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/xxxsen/examprep/internal/ai"
	"github.com/xxxsen/examprep/internal/document"
	"github.com/xxxsen/examprep/internal/render"
	"github.com/xxxsen/examprep/internal/repo"
	"github.com/xxxsen/examprep/internal/service"
	"github.com/xxxsen/examprep/internal/stream"
)

const testSubjects = `{"CS101": {"name": "Intro to CS", "modules": [{"id": 1, "name": "Basics", "topics": ["Variables"]}]}}`

type scriptedGenerator struct {
	text   string
	chunks []string
	err    error
}

func (g *scriptedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.text, g.err
}

func (g *scriptedGenerator) GenerateStream(ctx context.Context, prompt string, onChunk ai.ChunkFunc) error {
	for _, c := range g.chunks {
		if err := onChunk(c); err != nil {
			return err
		}
	}
	return g.err
}

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func setupRouter(t *testing.T, gen ai.IGenerator) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	subjectsFile := filepath.Join(dir, "subjects.json")
	require.NoError(t, os.WriteFile(subjectsFile, []byte(testSubjects), 0o644))

	subjects := repo.NewSubjectRepo(subjectsFile, "", 0)
	client := ai.NewClient(gen, ai.ClientConfig{})
	assembler := document.NewAssembler(&render.MindMapRenderer{Diagram: render.Disabled{}}, nil)

	router := gin.New()
	RegisterRoutes(router.Group("/api"), RouterDeps{
		Subjects: NewSubjectHandler(service.NewSubjectService(subjects, repo.NewResourceRepo())),
		Study:    NewStudyHandler(service.NewStudyService(subjects, client, service.StudyConfig{})),
		Schedule: NewScheduleHandler(service.NewScheduleService(client)),
		Chat:     NewChatHandler(service.NewChatService(client), nil),
		Export:   NewExportHandler(service.NewExportService(assembler, document.HTMLOptions{})),
		Sessions: NewSessionHandler(service.NewSessionService()),
	})
	return router
}

func doJSON(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func readFrames(t *testing.T, body []byte) []stream.Frame {
	t.Helper()
	var frames []stream.Frame
	sc := bufio.NewScanner(bytes.NewReader(body))
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		require.True(t, strings.HasPrefix(line, "data: "), line)
		var f stream.Frame
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &f))
		frames = append(frames, f)
	}
	return frames
}

func TestListSubjects(t *testing.T) {
	router := setupRouter(t, &scriptedGenerator{})
	resp := doJSON(router, http.MethodGet, "/api/subjects?q=intro", "")
	require.Equal(t, http.StatusOK, resp.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	require.Contains(t, string(env.Data), `"code":"CS101"`)
}

func TestGenerateStudyContent(t *testing.T) {
	router := setupRouter(t, &scriptedGenerator{text: "```json\n[{\"question\":\"Q\",\"answer\":\"A\"}]\n```"})

	resp := doJSON(router, http.MethodPost, "/api/generate-study-content", `{"subject_code":"xx1"}`)
	require.Equal(t, http.StatusNotFound, resp.Code)
	require.Contains(t, resp.Body.String(), "Subject XX1 not found")

	resp = doJSON(router, http.MethodPost, "/api/generate-study-content", `{"subject_code":"cs101","exam_type":"internal1"}`)
	require.Equal(t, http.StatusOK, resp.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	var content service.StudyContent
	require.NoError(t, json.Unmarshal(env.Data, &content))
	require.Equal(t, "Intro to CS", content.SubjectName)
	require.Len(t, content.Flashcards.Cards, 1)
	require.NotEmpty(t, content.MindMap.Error)
}

func TestNotesStream(t *testing.T) {
	router := setupRouter(t, &scriptedGenerator{chunks: []string{"# Basics", "\nVariables"}})
	resp := doJSON(router, http.MethodPost, "/api/generate-notes/stream", `{"subject_code":"CS101"}`)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "text/event-stream", resp.Header().Get("Content-Type"))
	require.Equal(t, []stream.Frame{
		stream.SubjectFrame("Intro to CS"),
		stream.TextFrame("# Basics"),
		stream.TextFrame("\nVariables"),
		stream.DoneFrame(),
	}, readFrames(t, resp.Body.Bytes()))
}

func TestChatStreamFailure(t *testing.T) {
	router := setupRouter(t, &scriptedGenerator{chunks: []string{"Hel"}, err: errors.New("backend down")})
	resp := doJSON(router, http.MethodPost, "/api/chat/stream", `{"message":"hi"}`)
	frames := readFrames(t, resp.Body.Bytes())
	require.Len(t, frames, 2)
	require.Equal(t, stream.TextFrame("Hel"), frames[0])
	require.True(t, strings.HasPrefix(frames[1].Error, ai.ErrorMarker))
	require.False(t, frames[1].Done)
}

func TestValidationErrors(t *testing.T) {
	router := setupRouter(t, &scriptedGenerator{text: "ok"})
	tests := []struct {
		path string
		body string
		msg  string
	}{
		{"/api/create-schedule/stream", `{"subjects":"CS101","start_date":"2026-01-01","end_date":"2026-01-05","hours_per_day":1}`, "Minimum study hours is 2 hours per day"},
		{"/api/create-schedule", `{"subjects":"CS101","start_date":"2026-01-01","end_date":"2026-01-05","hours_per_day":0}`, "Minimum study hours is 2 hours per day"},
		{"/api/create-schedule", `{"subjects":""}`, "Please provide subjects, start date, and end date"},
		{"/api/chat", `{"message":""}`, "Please provide a message"},
		{"/api/download-pdf", `{"notes":""}`, "No notes provided"},
		{"/api/download-notes?format=docx", `{"notes":"x"}`, "unsupported export format: docx"},
		{"/api/chat", `not json`, "invalid request"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp := doJSON(router, http.MethodPost, tt.path, tt.body)
			require.Equal(t, http.StatusBadRequest, resp.Code)
			require.Contains(t, resp.Body.String(), tt.msg)
		})
	}
}

func TestDownloadPDF(t *testing.T) {
	router := setupRouter(t, &scriptedGenerator{})
	body := `{"notes":"# Basics\n\nSome **bold** text","subject_name":"Intro to CS","subject_code":"CS101","exam_type":"internal1","mindmap":"mindmap\n  root((CS))"}`
	resp := doJSON(router, http.MethodPost, "/api/download-pdf", body)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, document.PDFMime, resp.Header().Get("Content-Type"))
	require.Equal(t, `attachment; filename="CS101_Intro_to_CS_Internal1_Notes.pdf"`, resp.Header().Get("Content-Disposition"))
	require.True(t, bytes.HasPrefix(resp.Body.Bytes(), []byte("%PDF-")))

	resp = doJSON(router, http.MethodPost, "/api/download-notes?format=markdown", body)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), "```mermaid")
}

func TestSessions(t *testing.T) {
	router := setupRouter(t, &scriptedGenerator{})
	resp := doJSON(router, http.MethodPost, "/api/save-session", `{"duration":50,"subject":"CS101"}`)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), "Session saved successfully")

	resp = doJSON(router, http.MethodGet, "/api/get-sessions", "")
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), `"sessions":[]`)
}

func TestUnwrapWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	require.Same(t, rec, unwrapWriter(c.Writer))
}

func TestChatWebSocket(t *testing.T) {
	srv := httptest.NewServer(setupRouter(t, &scriptedGenerator{chunks: []string{"Hi", " there"}}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/api/chat/ws", nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	require.NoError(t, wsjson.Write(ctx, conn, service.ChatRequest{Message: ""}))
	var invalid stream.Frame
	require.NoError(t, wsjson.Read(ctx, conn, &invalid))
	require.Equal(t, "Please provide a message", invalid.Error)

	require.NoError(t, wsjson.Write(ctx, conn, service.ChatRequest{Message: "hello"}))
	var got []stream.Frame
	for {
		var f stream.Frame
		require.NoError(t, wsjson.Read(ctx, conn, &f))
		got = append(got, f)
		if f.Done || f.Error != "" {
			break
		}
	}
	require.Equal(t, []stream.Frame{stream.TextFrame("Hi"), stream.TextFrame(" there"), stream.DoneFrame()}, got)
	require.NoError(t, conn.Close(websocket.StatusNormalClosure, ""))
}
